package models

import "strings"

// Preferences holds a user's news preferences. Topic and publication order is
// preserved for display.
type Preferences struct {
	FavoriteTopics       []string `json:"favoriteTopics"`
	FavoritePublications []string `json:"favoritePublications"`
	UpdateFrequency      string   `json:"updateFrequency"`
	Region               string   `json:"region"`
}

// DefaultPreferences returns the preferences a session starts with.
func DefaultPreferences() Preferences {
	return Preferences{
		FavoriteTopics:       []string{},
		FavoritePublications: []string{},
		UpdateFrequency:      "daily",
		Region:               "global",
	}
}

// Clone returns a copy with its own backing arrays, so callers cannot alias
// into shared state through the slice fields.
func (p Preferences) Clone() Preferences {
	p.FavoriteTopics = append([]string(nil), p.FavoriteTopics...)
	p.FavoritePublications = append([]string(nil), p.FavoritePublications...)
	return p
}

// PreferencesUpdate is a partial preferences payload. A nil slice or empty
// string marks the key as absent from the update; absent keys leave the
// current value untouched.
type PreferencesUpdate struct {
	FavoriteTopics       []string `json:"favoriteTopics,omitempty"`
	FavoritePublications []string `json:"favoritePublications,omitempty"`
	UpdateFrequency      string   `json:"updateFrequency,omitempty"`
	Region               string   `json:"region,omitempty"`
}

// IsEmpty reports whether the update carries no keys at all.
func (u PreferencesUpdate) IsEmpty() bool {
	return u.FavoriteTopics == nil && u.FavoritePublications == nil &&
		u.UpdateFrequency == "" && u.Region == ""
}

// Apply shallow-merges the update into p: keys present in the update replace
// the prior value whole, absent keys are untouched.
func (u PreferencesUpdate) Apply(p *Preferences) {
	if u.FavoriteTopics != nil {
		p.FavoriteTopics = append([]string(nil), u.FavoriteTopics...)
	}
	if u.FavoritePublications != nil {
		p.FavoritePublications = append([]string(nil), u.FavoritePublications...)
	}
	if u.UpdateFrequency != "" {
		p.UpdateFrequency = u.UpdateFrequency
	}
	if u.Region != "" {
		p.Region = u.Region
	}
}

// Summary describes the keys present in the update for the confirmation
// message, lists joined by ", ". Returns "" when nothing was set.
func (u PreferencesUpdate) Summary() string {
	var parts []string
	if len(u.FavoriteTopics) > 0 {
		parts = append(parts, "favorite topics: "+strings.Join(u.FavoriteTopics, ", "))
	}
	if len(u.FavoritePublications) > 0 {
		parts = append(parts, "favorite publications: "+strings.Join(u.FavoritePublications, ", "))
	}
	if u.Region != "" {
		parts = append(parts, "region: "+u.Region)
	}
	if u.UpdateFrequency != "" {
		parts = append(parts, "update frequency: "+u.UpdateFrequency)
	}
	return strings.Join(parts, ", ")
}

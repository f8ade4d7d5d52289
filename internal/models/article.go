package models

// Article is the common shape every provider payload is normalized into.
// PublishedAt is kept as the provider's timestamp string and never reparsed.
// Articles are immutable once constructed.
type Article struct {
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
	URL         string `json:"url,omitempty"`
	ImageURL    string `json:"imageUrl,omitempty"`
	Source      string `json:"source"`
	PublishedAt string `json:"publishedAt,omitempty"`
	Content     string `json:"content,omitempty"`
	Section     string `json:"section,omitempty"`
}

// Titles returns up to max non-empty titles in order.
func Titles(articles []Article, max int) []string {
	titles := make([]string, 0, max)
	for _, a := range articles {
		if a.Title == "" {
			continue
		}
		titles = append(titles, a.Title)
		if len(titles) == max {
			break
		}
	}
	return titles
}

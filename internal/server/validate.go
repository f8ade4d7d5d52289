package server

import (
	"encoding/json"
	"io"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/xeipuuv/gojsonschema"

	apperrors "news-agent/internal/common/errors"
)

var initializeSchema = map[string]interface{}{
	"type":     "object",
	"required": []string{"userId"},
	"properties": map[string]interface{}{
		"userId":      map[string]interface{}{"type": "string", "minLength": 1},
		"preferences": map[string]interface{}{"type": "object"},
	},
}

var userRequestSchema = map[string]interface{}{
	"type":     "object",
	"required": []string{"userId", "userInput"},
	"properties": map[string]interface{}{
		"userId":    map[string]interface{}{"type": "string", "minLength": 1},
		"userInput": map[string]interface{}{"type": "string", "minLength": 1},
	},
}

var analyzeSchema = map[string]interface{}{
	"type":     "object",
	"required": []string{"articles", "prompt"},
	"properties": map[string]interface{}{
		"articles": map[string]interface{}{"type": "array", "minItems": 1},
		"prompt":   map[string]interface{}{"type": "string", "minLength": 1},
	},
}

var preferencesSchema = map[string]interface{}{
	"type":     "object",
	"required": []string{"preferences"},
	"properties": map[string]interface{}{
		"preferences": map[string]interface{}{"type": "object"},
	},
}

// decodeAndValidate reads the request body, checks it against the schema and
// unmarshals it into out. A schema violation returns a VALIDATION_FAILED
// error carrying the individual violations.
func decodeAndValidate(c echo.Context, schema map[string]interface{}, out interface{}) error {
	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return apperrors.NewValidationError("unreadable request body")
	}

	var document map[string]interface{}
	if err := json.Unmarshal(body, &document); err != nil {
		return apperrors.NewValidationError("request body is not a JSON object")
	}

	schemaLoader := gojsonschema.NewGoLoader(schema)
	documentLoader := gojsonschema.NewGoLoader(document)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return apperrors.NewValidationError(err.Error())
	}
	if !result.Valid() {
		errs := make([]string, len(result.Errors()))
		for i, desc := range result.Errors() {
			errs[i] = desc.String()
		}
		return apperrors.NewValidationError(strings.Join(errs, "; "))
	}

	if err := json.Unmarshal(body, out); err != nil {
		return apperrors.NewValidationError(err.Error())
	}
	return nil
}

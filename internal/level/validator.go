package level

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"

	apperrors "gsnake-editor-api/internal/shared/errors"
)

// The canonical structural contract lives in one data artifact. Every
// validating consumer compiles this same document; none hand-maintains its
// own field list.
//
//go:embed level.schema.json
var schemaJSON string

// Validator is the authoritative LevelDefinition validator: full structural
// schema validation followed by the coordinate-bounds pass.
type Validator struct {
	schema *jsonschema.Schema
}

func NewValidator() (*Validator, error) {
	schema, err := jsonschema.CompileString("level.schema.json", schemaJSON)
	if err != nil {
		return nil, fmt.Errorf("compile level schema: %w", err)
	}
	return &Validator{schema: schema}, nil
}

// Validate parses raw and returns every structural and bounds violation.
// An empty result means raw is a fully valid LevelDefinition. Structural
// errors are collected exhaustively; the bounds pass runs only once the
// payload is structurally sound. A non-nil error means raw is not valid
// JSON at all.
func (v *Validator) Validate(raw []byte) ([]ValidationDetail, error) {
	var payload interface{}
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, apperrors.MalformedJSON(err)
	}

	if err := v.schema.Validate(payload); err != nil {
		ve, ok := err.(*jsonschema.ValidationError)
		if !ok {
			return nil, apperrors.WrapInternal("schema validation failed", err)
		}
		var details []ValidationDetail
		flattenSchemaError(ve, &details)
		return details, nil
	}

	var def LevelDefinition
	if err := json.Unmarshal(raw, &def); err != nil {
		// Schema-valid payloads always decode into the struct.
		return nil, apperrors.WrapInternal("decode level definition", err)
	}

	return CheckBounds(&def), nil
}

// quotedNames extracts the quoted property names from jsonschema messages
// like "missing properties: 'snake', 'exit'".
var quotedNames = regexp.MustCompile(`'([^']*)'`)

// flattenSchemaError walks the cause tree down to its leaves and converts
// each into a ValidationDetail with a dot-notation field path. Two keywords
// are special-cased: a "required" failure is addressed at the missing
// property, and an "additionalProperties" failure at the rejected property,
// rather than at the parent object that the instance pointer names.
func flattenSchemaError(ve *jsonschema.ValidationError, out *[]ValidationDetail) {
	if len(ve.Causes) > 0 {
		for _, cause := range ve.Causes {
			flattenSchemaError(cause, out)
		}
		return
	}

	keyword := schemaKeyword(ve.KeywordLocation)
	field := dotPath(ve.InstanceLocation)

	switch keyword {
	case "required", "additionalProperties":
		matches := quotedNames.FindAllStringSubmatch(ve.Message, -1)
		if len(matches) > 0 {
			for _, m := range matches {
				*out = append(*out, ValidationDetail{
					Field:   joinField(field, m[1]),
					Keyword: keyword,
					Message: ve.Message,
				})
			}
			return
		}
	}

	*out = append(*out, ValidationDetail{
		Field:   field,
		Keyword: keyword,
		Message: ve.Message,
	})
}

// schemaKeyword returns the schema keyword a failure belongs to: the last
// non-index segment of its keyword location pointer.
func schemaKeyword(location string) string {
	segments := strings.Split(location, "/")
	for i := len(segments) - 1; i >= 0; i-- {
		s := segments[i]
		if s == "" {
			continue
		}
		if _, err := strconv.Atoi(s); err == nil {
			continue
		}
		return s
	}
	return ""
}

// dotPath flattens a JSON pointer like "/food/0/x" to "food.0.x".
func dotPath(pointer string) string {
	if pointer == "" || pointer == "/" {
		return ""
	}

	segments := strings.Split(strings.TrimPrefix(pointer, "/"), "/")
	for i, s := range segments {
		s = strings.ReplaceAll(s, "~1", "/")
		segments[i] = strings.ReplaceAll(s, "~0", "~")
	}
	return strings.Join(segments, ".")
}

func joinField(parent, name string) string {
	if parent == "" {
		return name
	}
	return parent + "." + name
}

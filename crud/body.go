package crud

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/pkg/errors"

	"github.com/sistemaclass/classcli/core"
)

// ParseJSONObject validates the free-form extras blob. Blank input is an
// empty object; anything that does not parse to a plain JSON object is
// rejected before any network call.
func ParseJSONObject(raw string) (map[string]interface{}, error) {
	trimmed := core.CleanString(raw)
	if trimmed == "" {
		return map[string]interface{}{}, nil
	}
	var parsed interface{}
	if err := json.Unmarshal([]byte(trimmed), &parsed); err != nil {
		return nil, core.NewValidationError(errors.New("JSON inválido"))
	}
	obj, ok := parsed.(map[string]interface{})
	if !ok {
		return nil, core.NewValidationError(errors.New("JSON deve ser um objeto { ... }"))
	}
	return obj, nil
}

// BuildBody collects one value per schema field on top of the extras blob.
// Number fields must parse (field-specific error otherwise), booleans coerce
// to strict booleans, blank optionals are omitted entirely.
func BuildBody(fields []FieldDef, values map[string]interface{}, extrasJSON string) (map[string]interface{}, error) {
	body, err := ParseJSONObject(extrasJSON)
	if err != nil {
		return nil, err
	}

	for _, f := range fields {
		v, ok := values[f.Key]
		if !ok {
			continue
		}
		switch f.Type {
		case FieldNumber:
			s := core.CleanString(core.AsString(v))
			if s == "" {
				continue
			}
			n, err := strconv.ParseFloat(s, 64)
			if err != nil {
				msg := fmt.Sprintf("Campo %q deve ser número", f.Label)
				return nil, core.NewValidationError(errors.New(msg), core.FieldError{Field: f.Key, Error: msg})
			}
			body[f.Key] = n
		case FieldBoolean:
			b, _ := v.(bool)
			body[f.Key] = b
		default:
			s := core.CleanString(core.AsString(v))
			if s == "" {
				continue
			}
			body[f.Key] = s
		}
	}
	return body, nil
}

// EditValues pre-populates a form value set from the record's current
// fields, coerced per field type.
func EditValues(fields []FieldDef, rec core.Record) map[string]interface{} {
	values := make(map[string]interface{}, len(fields))
	for _, f := range fields {
		if f.Type == FieldBoolean {
			values[f.Key] = rec.Bool(f.Key)
		} else {
			values[f.Key] = rec.Str(f.Key)
		}
	}
	return values
}

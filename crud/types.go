// Package crud renders list/create/edit/delete flows for one resource path
// from a declarative field schema, without per-entity code. Nested child
// panels reuse the same contract recursively.
package crud

type FieldType string

const (
	FieldText     FieldType = "text"
	FieldTextarea FieldType = "textarea"
	FieldBoolean  FieldType = "boolean"
	FieldDate     FieldType = "date"
	FieldNumber   FieldType = "number"
	FieldSelect   FieldType = "select"
)

type SelectOption struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

type FieldDef struct {
	Key         string
	Label       string
	Type        FieldType
	Placeholder string
	Options     []SelectOption
}

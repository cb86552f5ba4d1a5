package agenda

import "github.com/sistemaclass/classcli/core"

// Materias is the subject list offered by the activity form.
var Materias = []string{
	"Português",
	"Matemática",
	"Ciências",
	"História",
	"Geografia",
	"Inglês",
	"Artes",
	"Educação Física",
}

// NewActivity contains information needed to create an activity under one
// agenda day. A blank DataEntrega defaults to the day's own date.
type NewActivity struct {
	Materia     string `json:"materia" validate:"required"`
	Conteudo    string `json:"conteudo" validate:"required"`
	DataEntrega string `json:"data_entrega" validate:"omitempty,dateonly"`
}

func (na *NewActivity) Validate() error {
	na.Materia = core.CleanString(na.Materia)
	na.Conteudo = core.CleanString(na.Conteudo)
	na.DataEntrega = core.CleanString(na.DataEntrega)
	return core.TranslateValidationErrors(core.Validate.Struct(na))
}

// ChildOutcome records one step of a compound creation flow so callers can
// see exactly which children persisted when the flow fails partway.
type ChildOutcome struct {
	Index  int
	Record core.Record
	Err    error
}

// DayResult is the outcome of CreateDayWithActivities. There is no
// transactional rollback: already-created rows stay persisted.
type DayResult struct {
	Day        core.Record
	Activities []ChildOutcome
}

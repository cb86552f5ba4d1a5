package reading

import (
	"github.com/pkg/errors"

	"github.com/sistemaclass/classcli/core"
)

// NewEvaluation is one peer rating of a reading's summary/response. The
// score range is enforced client-side before any network call.
type NewEvaluation struct {
	UsuarioID  string  `json:"usuario_id" validate:"required"`
	Nota       float64 `json:"nota"`
	Comentario string  `json:"comentario"`
}

func (ne *NewEvaluation) Validate() error {
	ne.UsuarioID = core.CleanString(ne.UsuarioID)
	ne.Comentario = core.CleanString(ne.Comentario)
	if ne.Nota < 0 || ne.Nota > 10 {
		msg := "A nota deve estar entre 0 e 10"
		return core.NewValidationError(errors.New(msg), core.FieldError{Field: "nota", Error: msg})
	}
	return core.TranslateValidationErrors(core.Validate.Struct(ne))
}

package user

import (
	"github.com/sistemaclass/classcli/core"
)

// User is the selectable session identity. The display name doubles as a
// policy discriminant: one distinguished name gets role-specific behavior.
type User struct {
	ID   string `json:"id"`
	Nome string `json:"nome"`
}

// NormNome returns the normalized display name used for all comparisons.
func (u User) NormNome() string {
	return core.CleanString(u.Nome, true /* lower */)
}

// IsDistinguished reports whether this user is the distinguished role
// (selected by display name, configurable; "davi" by default).
func (u User) IsDistinguished() bool {
	return u.NormNome() == core.CleanString(core.Conf.GetString("distinguishedUser"), true /* lower */)
}

// FromRecord builds a User out of a loose record. The id may be a string or
// a number; the name must be a non-blank string. Returns nil otherwise.
func FromRecord(rec core.Record) *User {
	id := rec.ID()
	if id == "" {
		return nil
	}
	nome, ok := rec["nome"].(string)
	if !ok || core.CleanString(nome) == "" {
		return nil
	}
	return &User{ID: id, Nome: core.CleanString(nome)}
}

// Option is one entry of the login selection list.
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// NewUser contains information needed to create a new User.
type NewUser struct {
	Nome string `json:"nome" validate:"required"`
}

func (nu *NewUser) Validate() error {
	nu.Nome = core.CleanString(nu.Nome)
	return core.TranslateValidationErrors(core.Validate.Struct(nu))
}

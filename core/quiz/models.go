package quiz

import (
	"github.com/sistemaclass/classcli/core"
)

// NewQuestion is one drafted question of a test under creation.
type NewQuestion struct {
	Enunciado       string `json:"enunciado" validate:"required"`
	RespostaCorreta string `json:"resposta_correta"`
}

func (nq *NewQuestion) Validate() error {
	nq.Enunciado = core.CleanString(nq.Enunciado)
	nq.RespostaCorreta = core.CleanString(nq.RespostaCorreta)
	return core.TranslateValidationErrors(core.Validate.Struct(nq))
}

// Score summarizes correction state over one test's answers for one user.
// Pending counts answers whose correta flag is still unset.
type Score struct {
	Total   int
	Correct int
	Wrong   int
	Pending int
}

// TestResult reports the compound creation outcome: the created test plus
// each question's individual result. Created rows stay persisted on failure.
type TestResult struct {
	Test      core.Record
	Questions []QuestionOutcome
}

type QuestionOutcome struct {
	Index  int
	Record core.Record
	Err    error
}

// Package quiz implements tests, their questions and per-user answers.
// The distinguished role answers tests; everyone else authors and corrects
// them, so the permission checks here run opposite to the other packages.
package quiz

import (
	"context"
	"fmt"
	"net/url"
	"sort"
	"strconv"

	"github.com/pkg/errors"

	"github.com/sistemaclass/classcli/core"
	"github.com/sistemaclass/classcli/core/user"
)

type Service struct {
	api core.API
}

func NewService(api core.API) *Service {
	return &Service{api: api}
}

// List returns tests newest first: data desc, then "titulo|id" desc as a
// stable tiebreaker.
func (svc *Service) List(ctx context.Context) ([]core.Record, error) {
	rows, err := svc.api.List(ctx, "/testes")
	if err != nil {
		return nil, err
	}
	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		da, db := core.DateOnly(a["data"]), core.DateOnly(b["data"])
		if da != db {
			return da > db
		}
		return a.Str("titulo")+"|"+a.ID() > b.Str("titulo")+"|"+b.ID()
	})
	return rows, nil
}

// CreateWithQuestions is the compound creation flow: the test row first, then
// each question sequentially. The distinguished role may not author tests.
// The first failing question aborts the flow; created rows stay persisted and
// the result reports each question's outcome.
func (svc *Service) CreateWithQuestions(ctx context.Context, titulo string, questions []NewQuestion, actor user.User) (*TestResult, error) {
	if actor.IsDistinguished() {
		return nil, core.NewValidationError(errors.New("Você não tem permissão para criar testes."))
	}
	t := core.CleanString(titulo)
	if t == "" {
		return nil, core.NewValidationError(errors.New("Informe o título do teste"))
	}
	if len(questions) == 0 {
		return nil, core.NewValidationError(errors.New("Adicione pelo menos 1 questão"))
	}
	for i := range questions {
		if err := questions[i].Validate(); err != nil {
			return nil, err
		}
	}

	test, err := svc.api.Create(ctx, "/testes", map[string]interface{}{
		"titulo": t,
		"data":   core.Today(),
	})
	if err != nil {
		return nil, err
	}
	testID := test.ID()
	if testID == "" {
		return &TestResult{Test: test}, errors.New("API retornou um teste sem id")
	}

	res := &TestResult{Test: test}
	for i, q := range questions {
		body := map[string]interface{}{"enunciado": q.Enunciado}
		if q.RespostaCorreta != "" {
			body["resposta_correta"] = q.RespostaCorreta
		}
		rec, err := svc.api.Create(ctx, "/testes/"+testID+"/questoes", body)
		res.Questions = append(res.Questions, QuestionOutcome{Index: i, Record: rec, Err: err})
		if err != nil {
			return res, err
		}
	}
	return res, nil
}

func (svc *Service) Questions(ctx context.Context, testID string) ([]core.Record, error) {
	return svc.api.List(ctx, "/testes/"+testID+"/questoes")
}

// Answers lists a test's answers, falling back to the flat query route when
// the nested one is unavailable.
func (svc *Service) Answers(ctx context.Context, testID string) ([]core.Record, error) {
	rows, err := svc.api.List(ctx, "/testes/"+testID+"/respostas")
	if err != nil {
		rows, err = svc.api.List(ctx, "/teste-respostas?teste_id="+url.QueryEscape(testID))
		if err != nil {
			return nil, err
		}
	}
	// line answers up with the on-screen question order
	SortByID(rows)
	return rows, nil
}

// AnsweredIndex maps teste_id to the user's answers for it. Any fetch
// failure yields an empty index; the caller then treats every test as
// unanswered, which only costs an extra confirmation on submit.
func (svc *Service) AnsweredIndex(ctx context.Context, userID string) map[string][]core.Record {
	idx := map[string][]core.Record{}
	rows, err := svc.api.List(ctx, "/teste-respostas?usuario_id="+url.QueryEscape(userID))
	if err != nil {
		return idx
	}
	for _, rec := range rows {
		tid := core.CleanString(rec.Str("teste_id"))
		if tid == "" {
			continue
		}
		idx[tid] = append(idx[tid], rec)
	}
	return idx
}

// SubmitAnswers posts the distinguished user's answer to every question of a
// test, one POST per question. All questions must be answered, and a test may
// only be answered once.
func (svc *Service) SubmitAnswers(ctx context.Context, testID string, answers map[string]string, actor user.User) error {
	if !actor.IsDistinguished() {
		msg := fmt.Sprintf("Somente o usuário %s pode responder este teste.", core.Conf.GetString("distinguishedUser"))
		return core.NewValidationError(errors.New(msg))
	}
	existing, err := svc.Answers(ctx, testID)
	if err == nil {
		for _, rec := range existing {
			if rec.Str("usuario_id") == actor.ID {
				return core.NewValidationError(errors.New("Você já respondeu este teste."))
			}
		}
	}
	questions, err := svc.Questions(ctx, testID)
	if err != nil {
		return err
	}
	for _, q := range questions {
		if core.CleanString(answers[q.ID()]) == "" {
			return core.NewValidationError(errors.New("Responda todas as questões antes de enviar."))
		}
	}
	for _, q := range questions {
		body := map[string]interface{}{
			"questao_id":       q.ID(),
			"usuario_id":       actor.ID,
			"resposta_usuario": core.CleanString(answers[q.ID()]),
		}
		if _, err := svc.api.Create(ctx, "/testes/"+testID+"/respostas", body); err != nil {
			return err
		}
	}
	return nil
}

// ScoreOf tallies the correction state of one answer set.
func ScoreOf(answers []core.Record) Score {
	s := Score{Total: len(answers)}
	for _, rec := range answers {
		switch c := rec.TriBool("correta"); {
		case c == nil:
			s.Pending++
		case *c:
			s.Correct++
		default:
			s.Wrong++
		}
	}
	return s
}

// Partition splits tests into pending (not yet answered by the user) and
// completed, preserving the incoming order within each group.
func Partition(tests []core.Record, answered map[string][]core.Record) (pending, completed []core.Record) {
	for _, t := range tests {
		if len(answered[t.ID()]) > 0 {
			completed = append(completed, t)
		} else {
			pending = append(pending, t)
		}
	}
	return pending, completed
}

func (svc *Service) Update(ctx context.Context, testID, titulo, data string) error {
	t := core.CleanString(titulo)
	if t == "" {
		return core.NewValidationError(errors.New("Informe o título"))
	}
	d := core.CleanString(data)
	if d == "" {
		return core.NewValidationError(errors.New("Informe a data"))
	}
	return svc.api.Patch(ctx, "/testes/"+testID, map[string]interface{}{"titulo": t, "data": d})
}

func (svc *Service) Delete(ctx context.Context, testID string) error {
	return svc.api.Delete(ctx, "/testes/"+testID)
}

// numeric id compare kept for callers sorting answers within a test.
func idLess(a, b core.Record) bool {
	na, aErr := strconv.ParseFloat(a.ID(), 64)
	nb, bErr := strconv.ParseFloat(b.ID(), 64)
	if aErr == nil && bErr == nil {
		return na < nb
	}
	return a.ID() < b.ID()
}

// SortByID orders answer rows by id ascending so they line up with the
// question order on screen.
func SortByID(rows []core.Record) {
	sort.SliceStable(rows, func(i, j int) bool { return idLess(rows[i], rows[j]) })
}

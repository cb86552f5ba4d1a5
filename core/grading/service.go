// Package grading implements manual correction of the distinguished user's
// test answers by the other users. The distinguished role itself is locked
// out of this flow entirely.
package grading

import (
	"context"
	"fmt"
	"sync"

	"github.com/pkg/errors"

	"github.com/sistemaclass/classcli/core"
	"github.com/sistemaclass/classcli/core/quiz"
	"github.com/sistemaclass/classcli/core/user"
)

type Service struct {
	api   core.API
	tests *quiz.Service
	users *user.Service
}

func NewService(api core.API) *Service {
	return &Service{
		api:   api,
		tests: quiz.NewService(api),
		users: user.NewService(api),
	}
}

// Data is the correction screen's working set.
type Data struct {
	Tests []core.Record
	Users []user.User
}

// Load fetches tests and users concurrently and joins the results. Either
// failure fails the whole load.
func (svc *Service) Load(ctx context.Context) (*Data, error) {
	var (
		wg         sync.WaitGroup
		tests      []core.Record
		users      []user.User
		tErr, uErr error
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		tests, tErr = svc.tests.List(ctx)
	}()
	go func() {
		defer wg.Done()
		users, uErr = svc.users.List(ctx)
	}()
	wg.Wait()
	if tErr != nil {
		return nil, tErr
	}
	if uErr != nil {
		return nil, uErr
	}
	return &Data{Tests: tests, Users: users}, nil
}

// DistinguishedID resolves the distinguished user's id from the user list.
func DistinguishedID(users []user.User) (string, error) {
	name := core.Conf.GetString("distinguishedUser")
	if u := user.FindByName(users, name); u != nil {
		return u.ID, nil
	}
	return "", errors.Errorf("Não encontrei o usuário %q em /api/usuarios.", name)
}

// Sheet pairs a test's questions with the distinguished user's answers to
// them, keyed by questao_id.
type Sheet struct {
	Questions []core.Record
	Answers   map[string]core.Record
}

// AnswersFor loads the correction sheet for one test: its questions plus the
// distinguished user's answers, indexed by question.
func (svc *Service) AnswersFor(ctx context.Context, testID, distinguishedID string) (*Sheet, error) {
	questions, err := svc.tests.Questions(ctx, testID)
	if err != nil {
		return nil, err
	}
	answers, err := svc.tests.Answers(ctx, testID)
	if err != nil {
		return nil, err
	}
	byQuestion := map[string]core.Record{}
	for _, rec := range answers {
		if core.CleanString(rec.Str("usuario_id")) != distinguishedID {
			continue
		}
		if qid := core.CleanString(rec.Str("questao_id")); qid != "" {
			byQuestion[qid] = rec
		}
	}
	return &Sheet{Questions: questions, Answers: byQuestion}, nil
}

// Grade marks one answer right or wrong, stamping the corrector's identity.
// Some API deployments reject the authorship fields, so any failure of the
// full PATCH retries with the correta flag alone.
func (svc *Service) Grade(ctx context.Context, answerID string, correta bool, actor user.User) error {
	if actor.IsDistinguished() {
		msg := fmt.Sprintf("O usuário %s não pode acessar a tela de correções.", core.Conf.GetString("distinguishedUser"))
		return core.NewValidationError(errors.New(msg))
	}
	full := map[string]interface{}{
		"correta":             correta,
		"autor_correcao_id":   actor.ID,
		"autor_correcao_nome": actor.Nome,
	}
	path := "/teste-respostas/" + answerID
	if err := svc.api.Patch(ctx, path, full); err != nil {
		if rerr := svc.api.Patch(ctx, path, map[string]interface{}{"correta": correta}); rerr != nil {
			return errors.Wrap(rerr, "falha ao salvar correção")
		}
	}
	return nil
}

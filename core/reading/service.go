// Package reading implements the two-phase content model: an author submits
// a text, the distinguished role later attaches a summary/response, then the
// other users each rate it once.
package reading

import (
	"context"
	"fmt"
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

// List returns readings most recent first: created_at desc when both sides
// have one, else id desc.
func (svc *Service) List(ctx context.Context) ([]core.Record, error) {
	rows, err := svc.api.List(ctx, "/leituras")
	if err != nil {
		return nil, err
	}
	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		ca, cb := core.DateOnly(a["created_at"]), core.DateOnly(b["created_at"])
		if ca != "" && cb != "" && ca != cb {
			return ca > cb
		}
		ia, iaErr := strconv.ParseFloat(a.ID(), 64)
		ib, ibErr := strconv.ParseFloat(b.ID(), 64)
		if iaErr == nil && ibErr == nil && ia != ib {
			return ia > ib
		}
		return a.ID() > b.ID()
	})
	return rows, nil
}

func (svc *Service) Create(ctx context.Context, texto string) (core.Record, error) {
	t := core.CleanString(texto)
	if t == "" {
		return nil, core.NewValidationError(errors.New("Informe o texto da leitura"))
	}
	return svc.api.Create(ctx, "/leituras", map[string]interface{}{"texto": t})
}

// AttachSummary sets resumo_resposta; only the distinguished role may do it.
func (svc *Service) AttachSummary(ctx context.Context, leituraID, resumo string, actor user.User) error {
	if !actor.IsDistinguished() {
		msg := fmt.Sprintf("Apenas o usuário %s pode salvar o resumo/resposta", core.Conf.GetString("distinguishedUser"))
		return core.NewValidationError(errors.New(msg))
	}
	r := core.CleanString(resumo)
	if r == "" {
		return core.NewValidationError(errors.New("Informe o resumo/resposta"))
	}
	return svc.api.Patch(ctx, "/leituras/"+leituraID, map[string]interface{}{"resumo_resposta": r})
}

func (svc *Service) Evaluations(ctx context.Context, leituraID string) ([]core.Record, error) {
	return svc.api.List(ctx, "/leituras/"+leituraID+"/avaliacoes")
}

// MyEvaluation finds the user's existing rating record, nil when absent.
// The one-rating-per-user rule is a UI nicety, not a race-free guarantee.
func MyEvaluation(items []core.Record, userID string) core.Record {
	for _, rec := range items {
		if rec.Str("usuario_id") == userID {
			return rec
		}
	}
	return nil
}

// SubmitEvaluation posts one rating. Out-of-range scores never reach the
// network; a blank comment is omitted from the body entirely.
func (svc *Service) SubmitEvaluation(ctx context.Context, leituraID string, ne NewEvaluation) error {
	if err := ne.Validate(); err != nil {
		return err
	}
	existing, err := svc.Evaluations(ctx, leituraID)
	if err == nil && MyEvaluation(existing, ne.UsuarioID) != nil {
		return core.NewValidationError(errors.New("Você já avaliou esta leitura"))
	}
	body := map[string]interface{}{
		"usuario_id": ne.UsuarioID,
		"nota":       ne.Nota,
	}
	if ne.Comentario != "" {
		body["comentario"] = ne.Comentario
	}
	_, err = svc.api.Create(ctx, "/leituras/"+leituraID+"/avaliacoes", body)
	return err
}

// Average is the arithmetic mean of all numeric scores, nil when none.
func Average(items []core.Record) *float64 {
	var sum float64
	var count int
	for _, rec := range items {
		n, err := strconv.ParseFloat(core.CleanString(rec.Str("nota")), 64)
		if err != nil {
			continue
		}
		sum += n
		count++
	}
	if count == 0 {
		return nil
	}
	avg := sum / float64(count)
	return &avg
}

func (svc *Service) Update(ctx context.Context, leituraID, texto string) error {
	t := core.CleanString(texto)
	if t == "" {
		return core.NewValidationError(errors.New("Informe o texto"))
	}
	return svc.api.Patch(ctx, "/leituras/"+leituraID, map[string]interface{}{"texto": t})
}

func (svc *Service) Delete(ctx context.Context, leituraID string) error {
	return svc.api.Delete(ctx, "/leituras/"+leituraID)
}

package reading_test

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"

	"github.com/sistemaclass/classcli/core"
	"github.com/sistemaclass/classcli/core/reading"
	"github.com/sistemaclass/classcli/core/user"
	testutil "github.com/sistemaclass/classcli/tests"
)

var (
	davi = user.User{ID: "1", Nome: "Davi"}
	ana  = user.User{ID: "2", Nome: "Ana"}
)

func validationMsg(t *testing.T, err error) string {
	t.Helper()
	vErr, ok := errors.Cause(err).(*core.ValidationError)
	if !ok {
		t.Fatalf("error = %v, want *core.ValidationError", err)
	}
	return vErr.Error()
}

func Test_Service_Create(t *testing.T) {
	api, _ := testutil.NewAPI(t)
	svc := reading.NewService(api)
	ctx := context.Background()

	_, err := svc.Create(ctx, "   ")
	assert.Equal(t, "Informe o texto da leitura", validationMsg(t, err))

	rec, err := svc.Create(ctx, "  O Pequeno Príncipe, cap. 1  ")
	assert.NoError(t, err)
	assert.Equal(t, "O Pequeno Príncipe, cap. 1", rec.Str("texto"))
}

func Test_Service_AttachSummary(t *testing.T) {
	api, db := testutil.NewAPI(t)
	svc := reading.NewService(api)
	ctx := context.Background()
	rec := testutil.Seed(t, db.Leituras, core.Record{"texto": "cap. 1"})

	err := svc.AttachSummary(ctx, rec.ID(), "resumo", ana)
	assert.Error(t, err)

	err = svc.AttachSummary(ctx, rec.ID(), "   ", davi)
	assert.Equal(t, "Informe o resumo/resposta", validationMsg(t, err))

	assert.NoError(t, svc.AttachSummary(ctx, rec.ID(), "um resumo", davi))
	fresh, _ := db.Leituras.Get(rec.ID())
	assert.Equal(t, "um resumo", fresh.Str("resumo_resposta"))
}

func Test_Service_SubmitEvaluation(t *testing.T) {
	api, db := testutil.NewAPI(t)
	svc := reading.NewService(api)
	ctx := context.Background()
	rec := testutil.Seed(t, db.Leituras, core.Record{"texto": "cap. 1"})

	t.Run("score bounds rejected before the network", func(t *testing.T) {
		for _, nota := range []float64{-1, 10.5, 11} {
			err := svc.SubmitEvaluation(ctx, rec.ID(), reading.NewEvaluation{UsuarioID: ana.ID, Nota: nota})
			assert.Equal(t, "A nota deve estar entre 0 e 10", validationMsg(t, err))
		}
		assert.Empty(t, db.LeituraAvaliacoes.All())
	})

	t.Run("boundary scores accepted", func(t *testing.T) {
		assert.NoError(t, svc.SubmitEvaluation(ctx, rec.ID(), reading.NewEvaluation{UsuarioID: "10", Nota: 0}))
		assert.NoError(t, svc.SubmitEvaluation(ctx, rec.ID(), reading.NewEvaluation{UsuarioID: "11", Nota: 10, Comentario: "ótimo"}))
	})

	t.Run("one evaluation per user", func(t *testing.T) {
		err := svc.SubmitEvaluation(ctx, rec.ID(), reading.NewEvaluation{UsuarioID: "10", Nota: 5})
		assert.Equal(t, "Você já avaliou esta leitura", validationMsg(t, err))
	})

	t.Run("blank comment omitted from the stored record", func(t *testing.T) {
		evals, err := svc.Evaluations(ctx, rec.ID())
		assert.NoError(t, err)
		if !assert.Len(t, evals, 2) {
			return
		}
		_, hasComment := evals[0]["comentario"]
		assert.False(t, hasComment)
		assert.Equal(t, "ótimo", evals[1].Str("comentario"))
	})
}

func Test_Average(t *testing.T) {
	assert.Nil(t, reading.Average(nil))
	assert.Nil(t, reading.Average([]core.Record{{"nota": "dez"}}))

	avg := reading.Average([]core.Record{
		{"nota": float64(10)},
		{"nota": float64(7)},
		{"nota": "4"},
		{"nota": nil},
	})
	if assert.NotNil(t, avg) {
		assert.InDelta(t, 7.0, *avg, 0.0001)
	}
}

func Test_MyEvaluation(t *testing.T) {
	items := []core.Record{
		{"usuario_id": "1", "nota": float64(8)},
		{"usuario_id": "2", "nota": float64(6)},
	}
	if mine := reading.MyEvaluation(items, "2"); assert.NotNil(t, mine) {
		assert.Equal(t, "6", mine.Str("nota"))
	}
	assert.Nil(t, reading.MyEvaluation(items, "3"))
}

func Test_Service_List_order(t *testing.T) {
	api, db := testutil.NewAPI(t)
	svc := reading.NewService(api)

	testutil.Seed(t, db.Leituras, core.Record{"texto": "antiga", "created_at": "2026-01-01T10:00:00Z"})
	testutil.Seed(t, db.Leituras, core.Record{"texto": "nova", "created_at": "2026-02-01T10:00:00Z"})

	items, err := svc.List(context.Background())
	assert.NoError(t, err)
	if !assert.Len(t, items, 2) {
		return
	}
	assert.Equal(t, "nova", items[0].Str("texto"))
	assert.Equal(t, "antiga", items[1].Str("texto"))
}

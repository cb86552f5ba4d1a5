package grading_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sistemaclass/classcli/core"
	"github.com/sistemaclass/classcli/core/grading"
	"github.com/sistemaclass/classcli/core/user"
	testutil "github.com/sistemaclass/classcli/tests"
)

var (
	davi = user.User{ID: "1", Nome: "Davi"}
	ana  = user.User{ID: "2", Nome: "Ana"}
)

func Test_Service_Load(t *testing.T) {
	api, db := testutil.NewAPI(t)
	svc := grading.NewService(api)

	testutil.Seed(t, db.Usuarios, core.Record{"nome": "Davi"})
	testutil.Seed(t, db.Usuarios, core.Record{"nome": "Ana"})
	testutil.Seed(t, db.Testes, core.Record{"titulo": "Teste 1", "data": "2026-03-09"})

	data, err := svc.Load(context.Background())
	assert.NoError(t, err)
	assert.Len(t, data.Tests, 1)
	assert.Len(t, data.Users, 2)
}

func Test_DistinguishedID(t *testing.T) {
	users := []user.User{{ID: "5", Nome: "Ana"}, {ID: "7", Nome: "  DAVI "}}
	id, err := grading.DistinguishedID(users)
	assert.NoError(t, err)
	assert.Equal(t, "7", id)

	_, err = grading.DistinguishedID([]user.User{{ID: "5", Nome: "Ana"}})
	assert.EqualError(t, err, `Não encontrei o usuário "davi" em /api/usuarios.`)
}

func Test_Service_AnswersFor(t *testing.T) {
	api, db := testutil.NewAPI(t)
	svc := grading.NewService(api)

	test := testutil.Seed(t, db.Testes, core.Record{"titulo": "Teste 1", "data": "2026-03-09"})
	q1 := testutil.Seed(t, db.Questoes, core.Record{"teste_id": test.ID(), "enunciado": "2+2?"})
	q2 := testutil.Seed(t, db.Questoes, core.Record{"teste_id": test.ID(), "enunciado": "Capital?"})
	testutil.Seed(t, db.TesteRespostas, core.Record{
		"teste_id": test.ID(), "questao_id": q1.ID(), "usuario_id": davi.ID, "resposta_usuario": "4",
	})
	// another user's answer must not leak into the sheet
	testutil.Seed(t, db.TesteRespostas, core.Record{
		"teste_id": test.ID(), "questao_id": q2.ID(), "usuario_id": "99", "resposta_usuario": "Rio",
	})

	sheet, err := svc.AnswersFor(context.Background(), test.ID(), davi.ID)
	assert.NoError(t, err)
	assert.Len(t, sheet.Questions, 2)
	assert.Len(t, sheet.Answers, 1)
	assert.Equal(t, "4", sheet.Answers[q1.ID()].Str("resposta_usuario"))
}

func Test_Service_Grade(t *testing.T) {
	api, db := testutil.NewAPI(t)
	svc := grading.NewService(api)
	ctx := context.Background()

	answer := testutil.Seed(t, db.TesteRespostas, core.Record{
		"teste_id": "1", "questao_id": "1", "usuario_id": davi.ID, "resposta_usuario": "4",
	})

	t.Run("distinguished user is locked out", func(t *testing.T) {
		err := svc.Grade(ctx, answer.ID(), true, davi)
		assert.Error(t, err)
	})

	t.Run("marks and stamps the corrector", func(t *testing.T) {
		assert.NoError(t, svc.Grade(ctx, answer.ID(), true, ana))
		fresh, _ := db.TesteRespostas.Get(answer.ID())
		assert.Equal(t, true, fresh["correta"])
		assert.Equal(t, ana.ID, fresh.Str("autor_correcao_id"))
		assert.Equal(t, ana.Nome, fresh.Str("autor_correcao_nome"))
	})

	t.Run("missing answer fails both attempts", func(t *testing.T) {
		assert.Error(t, svc.Grade(ctx, "9999", false, ana))
	})
}

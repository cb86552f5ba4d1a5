package crud_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sistemaclass/classcli/core"
	"github.com/sistemaclass/classcli/crud"
	testutil "github.com/sistemaclass/classcli/tests"
)

func Test_Panel_LoadAndRows(t *testing.T) {
	api, db := testutil.NewAPI(t)
	testutil.Seed(t, db.Resumos, core.Record{"materia": "História", "topico": "Idade Média", "usuario_id": "1"})
	testutil.Seed(t, db.Resumos, core.Record{"materia": "Ciências", "topico": "Células"})

	p := crud.SummariesPanel(api)
	p.SetUser("2", "Bia")
	assert.NoError(t, p.Load(context.Background()))

	rows := p.Rows()
	if !assert.Len(t, rows, 2) {
		return
	}
	// owned by user 1: Bia may not touch it
	assert.False(t, rows[0].CanEdit)
	assert.False(t, rows[0].CanDelete)
	// no owner fields: any logged-in user may
	assert.True(t, rows[1].CanEdit)
	assert.True(t, rows[1].CanDelete)
	for _, row := range rows {
		assert.True(t, row.Actionable)
	}
}

func Test_Panel_CreateReloads(t *testing.T) {
	api, _ := testutil.NewAPI(t)
	p := crud.SummariesPanel(api)
	p.SetUser("1", "Ana")
	assert.NoError(t, p.Load(context.Background()))

	err := p.Create(context.Background(), map[string]interface{}{
		"materia": "Matemática",
		"topico":  "Frações",
	}, "")
	assert.NoError(t, err)
	assert.Len(t, p.Rows(), 1)
	assert.Equal(t, core.StatusReady, p.Collection().Status())
}

func Test_Panel_CreateNotAllowed(t *testing.T) {
	api, _ := testutil.NewAPI(t)
	p := crud.SummariesPanel(api)
	p.CanCreate = false
	err := p.Create(context.Background(), map[string]interface{}{"materia": "x", "topico": "y"}, "")
	assert.Equal(t, crud.ErrCreateNotAllowed, err)
}

func Test_Panel_DeleteTwoStep(t *testing.T) {
	api, db := testutil.NewAPI(t)
	rec := testutil.Seed(t, db.Usuarios, core.Record{"nome": "Ana"})

	p := crud.UsersPanel(api)
	p.SetUser("1", "Ana")
	assert.NoError(t, p.Load(context.Background()))

	// delete without arming is refused
	assert.Equal(t, crud.ErrDeleteNotConfirmed, p.Delete(context.Background(), rec.ID()))

	// arming a different row does not confirm this one
	p.ArmDelete("999")
	assert.Equal(t, crud.ErrDeleteNotConfirmed, p.Delete(context.Background(), rec.ID()))

	p.ArmDelete(rec.ID())
	assert.NoError(t, p.Delete(context.Background(), rec.ID()))
	assert.Empty(t, p.Rows())
}

func Test_Panel_UpdateOwnershipGate(t *testing.T) {
	api, db := testutil.NewAPI(t)
	rec := testutil.Seed(t, db.Resumos, core.Record{"materia": "História", "topico": "Egito", "usuario_id": "1"})

	p := crud.SummariesPanel(api)
	p.SetUser("2", "Bia")
	assert.NoError(t, p.Load(context.Background()))

	err := p.Update(context.Background(), rec.ID(), map[string]interface{}{"topico": "Roma"}, "")
	assert.Equal(t, crud.ErrEditNotAllowed, err)
}

func Test_Panel_NestedDictionary(t *testing.T) {
	api, db := testutil.NewAPI(t)
	word := testutil.Seed(t, db.Palavras, core.Record{"palavra": "efêmero"})

	p := crud.DictionaryPanel(api)
	p.SetUser("1", "Ana")
	assert.NoError(t, p.Load(context.Background()))

	attempts, err := p.Child(word)
	assert.NoError(t, err)
	if !assert.NotNil(t, attempts) {
		return
	}
	err = attempts.Create(context.Background(), map[string]interface{}{
		"usuario_id": "1",
		"resposta":   "que dura pouco",
	}, "")
	assert.NoError(t, err)

	rows := attempts.Rows()
	if !assert.Len(t, rows, 1) {
		return
	}
	ratings, err := attempts.Child(rows[0].Record)
	assert.NoError(t, err)
	assert.NotNil(t, ratings)
	assert.NoError(t, ratings.Load(context.Background()))
	assert.Empty(t, ratings.Rows())
}

func Test_Panel_FailKeepsMessage(t *testing.T) {
	api, _ := testutil.NewAPI(t)
	p := crud.NewPanel(api, "X", "/rota-inexistente", nil, nil)
	err := p.Load(context.Background())
	assert.Error(t, err)
	assert.Equal(t, core.StatusError, p.Collection().Status())
	assert.NotEmpty(t, p.Collection().Err())
}

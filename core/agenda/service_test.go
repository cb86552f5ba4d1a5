package agenda_test

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"

	"github.com/sistemaclass/classcli/core"
	"github.com/sistemaclass/classcli/core/agenda"
	testutil "github.com/sistemaclass/classcli/tests"
)

func Test_Service_DayFor(t *testing.T) {
	api, db := testutil.NewAPI(t)
	svc := agenda.NewService(api)
	ctx := context.Background()

	day, err := svc.DayFor(ctx, "2026-03-09")
	assert.NoError(t, err)
	assert.Nil(t, day)

	seeded := testutil.Seed(t, db.Agenda, core.Record{"dia": "2026-03-09"})
	day, err = svc.DayFor(ctx, "2026-03-09")
	assert.NoError(t, err)
	if assert.NotNil(t, day) {
		assert.Equal(t, seeded.ID(), day.ID())
	}
}

func Test_Service_CreateDayWithActivities(t *testing.T) {
	api, db := testutil.NewAPI(t)
	svc := agenda.NewService(api)
	ctx := context.Background()

	t.Run("invalid draft aborts before any network call", func(t *testing.T) {
		_, err := svc.CreateDayWithActivities(ctx, "2026-03-09", []agenda.NewActivity{
			{Materia: "Matemática", Conteudo: "Frações"},
			{Materia: "", Conteudo: "sem matéria"},
		})
		vErr, ok := errors.Cause(err).(*core.ValidationError)
		if !ok {
			t.Fatalf("CreateDayWithActivities() error = %v, want *core.ValidationError", err)
		}
		assert.Equal(t, "materia", vErr.Fields[0].Field)
		assert.Empty(t, db.Agenda.All())
	})

	t.Run("creates day then each activity", func(t *testing.T) {
		res, err := svc.CreateDayWithActivities(ctx, "2026-03-10", []agenda.NewActivity{
			{Materia: "Matemática", Conteudo: "Frações", DataEntrega: "2026-03-12"},
			{Materia: "História", Conteudo: "Egito"},
		})
		assert.NoError(t, err)
		if !assert.NotNil(t, res) {
			return
		}
		assert.NotEmpty(t, res.Day.ID())
		assert.Len(t, res.Activities, 2)
		for _, out := range res.Activities {
			assert.NoError(t, out.Err)
		}
		// blank delivery date defaults to the day's dia
		assert.Equal(t, "2026-03-10", res.Activities[1].Record.Str("data_entrega"))
		assert.Equal(t, "2026-03-12", res.Activities[0].Record.Str("data_entrega"))
	})
}

func Test_Service_Activities_sorted(t *testing.T) {
	api, db := testutil.NewAPI(t)
	svc := agenda.NewService(api)
	day := testutil.Seed(t, db.Agenda, core.Record{"dia": "2026-03-09"})

	testutil.Seed(t, db.Atividades, core.Record{"agenda_id": day.ID(), "materia": "Artes", "data_entrega": "2026-03-09"})
	testutil.Seed(t, db.Atividades, core.Record{"agenda_id": day.ID(), "materia": "Inglês", "data_entrega": "2026-03-11"})
	testutil.Seed(t, db.Atividades, core.Record{"agenda_id": day.ID(), "materia": "Ciências", "data_entrega": "2026-03-11"})

	items, err := svc.Activities(context.Background(), day.ID())
	assert.NoError(t, err)
	if !assert.Len(t, items, 3) {
		return
	}
	// data_entrega desc, newer id first within the same date
	assert.Equal(t, "Ciências", items[0].Str("materia"))
	assert.Equal(t, "Inglês", items[1].Str("materia"))
	assert.Equal(t, "Artes", items[2].Str("materia"))
}

func Test_Service_ToggleDone_rollbackByRefetch(t *testing.T) {
	api, db := testutil.NewAPI(t)
	svc := agenda.NewService(api)
	ctx := context.Background()

	day := testutil.Seed(t, db.Agenda, core.Record{"dia": "2026-03-09"})
	act := testutil.Seed(t, db.Atividades, core.Record{"agenda_id": day.ID(), "materia": "Artes", "conteudo": "x", "feita": false})

	col := core.NewCollection()
	items, err := svc.Activities(ctx, day.ID())
	assert.NoError(t, err)
	col.EndLoad(items)

	t.Run("success keeps the optimistic flip", func(t *testing.T) {
		assert.NoError(t, svc.ToggleDone(ctx, col, day.ID(), act.ID(), true))
		assert.True(t, col.Items()[0].Bool("feita"))
		fresh, _ := db.Atividades.Get(act.ID())
		assert.Equal(t, true, fresh["feita"])
	})

	t.Run("failed patch resynchronizes from the server", func(t *testing.T) {
		err := svc.ToggleDone(ctx, col, day.ID(), "9999", true)
		assert.Error(t, err)
		// the refetched list still has exactly the one real activity
		if assert.Len(t, col.Items(), 1) {
			assert.Equal(t, act.ID(), col.Items()[0].ID())
		}
	})
}

func Test_Service_Upcoming(t *testing.T) {
	api, db := testutil.NewAPI(t)
	svc := agenda.NewService(api)
	today := core.Today()

	testutil.Seed(t, db.Atividades, core.Record{"materia": "B", "data_entrega": today, "feita": true})
	testutil.Seed(t, db.Atividades, core.Record{"materia": "A", "data_entrega": today, "feita": false})
	testutil.Seed(t, db.Atividades, core.Record{"materia": "C", "data_entrega": "2001-01-01"})
	testutil.Seed(t, db.Atividades, core.Record{"materia": "D", "data_entrega": "2999-01-01"})
	testutil.Seed(t, db.Atividades, core.Record{"materia": "E"})

	items, err := svc.Upcoming(context.Background(), 12)
	assert.NoError(t, err)
	if !assert.Len(t, items, 3) {
		return
	}
	// same date: pending before done; past and undated rows dropped
	assert.Equal(t, "A", items[0].Str("materia"))
	assert.Equal(t, "B", items[1].Str("materia"))
	assert.Equal(t, "D", items[2].Str("materia"))

	capped, err := svc.Upcoming(context.Background(), 2)
	assert.NoError(t, err)
	assert.Len(t, capped, 2)
}

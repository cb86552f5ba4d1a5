package agenda

import (
	"context"
	"net/url"
	"sort"
	"strconv"

	"github.com/pkg/errors"

	"github.com/sistemaclass/classcli/core"
)

type Service struct {
	api core.API
}

func NewService(api core.API) *Service {
	return &Service{api: api}
}

// DayFor returns the agenda day for the given date (today when blank), or
// nil when none exists yet.
func (svc *Service) DayFor(ctx context.Context, dia string) (core.Record, error) {
	d := core.CleanString(dia)
	if d == "" {
		d = core.Today()
	}
	rows, err := svc.api.List(ctx, "/agenda?dia="+url.QueryEscape(d))
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return rows[0], nil
}

func (svc *Service) CreateDay(ctx context.Context, dia string) (core.Record, error) {
	d := core.CleanString(dia)
	if d == "" {
		d = core.Today()
	}
	return svc.api.Create(ctx, "/agenda", map[string]interface{}{"dia": d})
}

// Activities lists one day's activities, most recent on top: data_entrega
// desc, then numeric id desc, then materia desc.
func (svc *Service) Activities(ctx context.Context, dayID string) ([]core.Record, error) {
	rows, err := svc.api.List(ctx, "/agenda/"+dayID+"/atividades")
	if err != nil {
		return nil, err
	}
	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		da, db := core.DateOnly(a["data_entrega"]), core.DateOnly(b["data_entrega"])
		if da != db {
			return da > db
		}
		ia, iaOK := idAsNumber(a)
		ib, ibOK := idAsNumber(b)
		if iaOK && ibOK && ia != ib {
			return ia > ib
		}
		return a.Str("materia") > b.Str("materia")
	})
	return rows, nil
}

func idAsNumber(rec core.Record) (float64, bool) {
	s := core.CleanString(rec.ID())
	if s == "" {
		return 0, false
	}
	n, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

// CreateActivity creates one activity under the day; a blank delivery date
// defaults to the day's dia (today when that is blank too).
func (svc *Service) CreateActivity(ctx context.Context, dayID, dia string, na NewActivity) (core.Record, error) {
	if err := na.Validate(); err != nil {
		return nil, err
	}
	d := core.CleanString(dia)
	if d == "" {
		d = core.Today()
	}
	entrega := na.DataEntrega
	if entrega == "" {
		entrega = d
	}
	body := map[string]interface{}{
		"materia":      na.Materia,
		"conteudo":     na.Conteudo,
		"data_entrega": entrega,
	}
	return svc.api.Create(ctx, "/agenda/"+dayID+"/atividades", body)
}

// CreateDayWithActivities is the compound creation flow: the day first, then
// each drafted activity sequentially. The first failure aborts the flow but
// leaves already-created rows persisted; the result reports each child's
// outcome so the caller can retry only the missing ones.
func (svc *Service) CreateDayWithActivities(ctx context.Context, dia string, drafts []NewActivity) (*DayResult, error) {
	for i := range drafts {
		if err := drafts[i].Validate(); err != nil {
			return nil, err
		}
	}

	day, err := svc.CreateDay(ctx, dia)
	if err != nil {
		return nil, err
	}
	dayID := day.ID()
	if dayID == "" {
		return &DayResult{Day: day}, errors.New("API retornou um dia sem id")
	}

	res := &DayResult{Day: day}
	for i, draft := range drafts {
		rec, err := svc.CreateActivity(ctx, dayID, core.CleanString(dia), draft)
		res.Activities = append(res.Activities, ChildOutcome{Index: i, Record: rec, Err: err})
		if err != nil {
			return res, err
		}
	}
	return res, nil
}

// ToggleDone flips the completion flag optimistically on the collection and
// PATCHes it. A failed PATCH resynchronizes by refetching the day's
// activities (rollback-by-refetch), replacing only if no newer local edit
// happened in the meantime. The error is reported either way.
func (svc *Service) ToggleDone(ctx context.Context, col *core.Collection, dayID, activityID string, next bool) error {
	version := col.Apply(func(items []core.Record) []core.Record {
		out := make([]core.Record, len(items))
		for i, rec := range items {
			if rec.ID() == activityID {
				dup := rec.Clone()
				dup["feita"] = next
				out[i] = dup
			} else {
				out[i] = rec
			}
		}
		return out
	})

	err := svc.api.Patch(ctx, "/atividades/"+activityID, map[string]interface{}{"feita": next})
	if err != nil {
		if fresh, rerr := svc.Activities(ctx, dayID); rerr == nil {
			col.ReplaceIfVersion(fresh, version)
		}
		return err
	}
	return nil
}

func (svc *Service) DeleteActivity(ctx context.Context, activityID string) error {
	return svc.api.Delete(ctx, "/atividades/"+activityID)
}

// Upcoming aggregates all activities across all days, keeps those delivered
// today or later, sorts by date then pending-before-done then subject, and
// returns the nearest limit entries (the dashboard strip shows 12).
func (svc *Service) Upcoming(ctx context.Context, limit int) ([]core.Record, error) {
	rows, err := svc.api.List(ctx, "/atividades")
	if err != nil {
		return nil, err
	}
	today := core.Today()

	next := make([]core.Record, 0, len(rows))
	for _, rec := range rows {
		if de := core.DateOnly(rec["data_entrega"]); de != "" && de >= today {
			next = append(next, rec)
		}
	}
	sort.SliceStable(next, func(i, j int) bool {
		a, b := next[i], next[j]
		da, db := core.DateOnly(a["data_entrega"]), core.DateOnly(b["data_entrega"])
		if da != db {
			return da < db
		}
		fa, fb := a.Bool("feita"), b.Bool("feita")
		if fa != fb {
			return !fa // pendentes primeiro no mesmo dia
		}
		return a.Str("materia") < b.Str("materia")
	})
	if limit > 0 && len(next) > limit {
		next = next[:limit]
	}
	return next, nil
}

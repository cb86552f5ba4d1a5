package main

import (
	"context"
	"flag"
	"fmt"

	"github.com/sistemaclass/classcli/core"
	"github.com/sistemaclass/classcli/core/agenda"
	"github.com/sistemaclass/classcli/session"
)

// agenda shows one day's activities and, with -materia/-conteudo set, runs
// the compound day+activity creation flow. -feita/-pendente flip an
// activity's completion flag; -rm deletes one.
func (cli *commandLine) agenda(ctx context.Context, args []string) error {
	cmd := flag.NewFlagSet("agenda", flag.ExitOnError)
	dia := cmd.String("dia", "", "Dia no formato AAAA-MM-DD (hoje por padrão).")
	materia := cmd.String("materia", "", "Matéria da nova atividade.")
	conteudo := cmd.String("conteudo", "", "Conteúdo da nova atividade.")
	entrega := cmd.String("entrega", "", "Data de entrega (AAAA-MM-DD, opcional).")
	feita := cmd.String("feita", "", "ID da atividade a marcar como feita.")
	pendente := cmd.String("pendente", "", "ID da atividade a marcar como pendente.")
	rm := cmd.String("rm", "", "ID da atividade a excluir.")
	if err := cmd.Parse(args); err != nil {
		return err
	}

	if _, err := session.RequireUser(cli.store, "agenda"); err != nil {
		return err
	}
	svc := agenda.NewService(cli.client)

	if *materia != "" || *conteudo != "" {
		draft := agenda.NewActivity{Materia: *materia, Conteudo: *conteudo, DataEntrega: *entrega}
		day, err := svc.DayFor(ctx, *dia)
		if err != nil {
			return err
		}
		if day == nil {
			res, err := svc.CreateDayWithActivities(ctx, *dia, []agenda.NewActivity{draft})
			if err != nil {
				return err
			}
			day = res.Day
		} else if _, err := svc.CreateActivity(ctx, day.ID(), day.Str("dia"), draft); err != nil {
			return err
		}
		fmt.Fprintf(cli.out, "atividade criada no dia %s\n", day.Str("dia"))
		return cli.showDay(ctx, svc, day)
	}

	if id := pickToggle(*feita, *pendente); id != "" {
		day, err := svc.DayFor(ctx, *dia)
		if err != nil {
			return err
		}
		if day == nil {
			fmt.Fprintln(cli.out, "nenhum dia de agenda para esta data")
			return nil
		}
		col := core.NewCollection()
		items, err := svc.Activities(ctx, day.ID())
		if err != nil {
			return err
		}
		col.BeginLoad()
		col.EndLoad(items)
		if err := svc.ToggleDone(ctx, col, day.ID(), id, *feita != ""); err != nil {
			return err
		}
		return cli.showDay(ctx, svc, day)
	}

	if *rm != "" {
		if err := svc.DeleteActivity(ctx, *rm); err != nil {
			return err
		}
		fmt.Fprintln(cli.out, "atividade excluída")
		return nil
	}

	day, err := svc.DayFor(ctx, *dia)
	if err != nil {
		return err
	}
	if day == nil {
		fmt.Fprintln(cli.out, "nenhum dia de agenda para esta data")
		return nil
	}
	return cli.showDay(ctx, svc, day)
}

func pickToggle(feita, pendente string) string {
	if feita != "" {
		return feita
	}
	return pendente
}

func (cli *commandLine) showDay(ctx context.Context, svc *agenda.Service, day core.Record) error {
	items, err := svc.Activities(ctx, day.ID())
	if err != nil {
		return err
	}
	fmt.Fprintf(cli.out, "agenda de %s (%d atividades)\n", day.Str("dia"), len(items))
	for _, rec := range items {
		mark := "[ ]"
		if rec.Bool("feita") {
			mark = "[x]"
		}
		fmt.Fprintf(cli.out, "%s %s  %s - %s (entrega %s)\n",
			mark, rec.ID(), rec.Str("materia"), rec.Str("conteudo"),
			core.FormatDayMonth(rec.Str("data_entrega")))
	}
	return nil
}

// upcoming prints the dashboard strip: nearest activities due today or later.
func (cli *commandLine) upcoming(ctx context.Context, args []string) error {
	cmd := flag.NewFlagSet("proximas", flag.ExitOnError)
	limit := cmd.Int("limite", 12, "Quantidade máxima de atividades.")
	if err := cmd.Parse(args); err != nil {
		return err
	}
	if _, err := session.RequireUser(cli.store, "proximas"); err != nil {
		return err
	}

	items, err := agenda.NewService(cli.client).Upcoming(ctx, *limit)
	if err != nil {
		return err
	}
	if len(items) == 0 {
		fmt.Fprintln(cli.out, "nenhuma atividade futura")
		return nil
	}
	for _, rec := range items {
		status := "pendente"
		if rec.Bool("feita") {
			status = "feita"
		}
		fmt.Fprintf(cli.out, "%s  %s - %s (%s)\n",
			core.FormatDayMonth(rec.Str("data_entrega")), rec.Str("materia"), rec.Str("conteudo"), status)
	}
	return nil
}

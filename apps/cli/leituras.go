package main

import (
	"context"
	"flag"
	"fmt"
	"strconv"

	"github.com/pkg/errors"

	"github.com/sistemaclass/classcli/core"
	"github.com/sistemaclass/classcli/core/reading"
	"github.com/sistemaclass/classcli/session"
)

// readings lists readings by default. -texto creates one; -resumo attaches
// the summary/response to -id; -avaliar submits a rating for a reading.
func (cli *commandLine) readings(ctx context.Context, args []string) error {
	cmd := flag.NewFlagSet("leituras", flag.ExitOnError)
	texto := cmd.String("texto", "", "Texto da nova leitura.")
	id := cmd.String("id", "", "ID da leitura alvo.")
	resumo := cmd.String("resumo", "", "Resumo/resposta a salvar (requer -id).")
	avaliar := cmd.String("avaliar", "", "ID da leitura a avaliar.")
	nota := cmd.String("nota", "", "Nota de 0 a 10 (com -avaliar).")
	comentario := cmd.String("comentario", "", "Comentário opcional (com -avaliar).")
	rm := cmd.String("rm", "", "ID da leitura a excluir.")
	if err := cmd.Parse(args); err != nil {
		return err
	}

	usr, err := session.RequireUser(cli.store, "leituras")
	if err != nil {
		return err
	}
	svc := reading.NewService(cli.client)

	switch {
	case *texto != "":
		rec, err := svc.Create(ctx, *texto)
		if err != nil {
			return err
		}
		fmt.Fprintf(cli.out, "leitura %s criada\n", rec.ID())
		return nil

	case *resumo != "":
		if *id == "" {
			cmd.Usage()
			return errHelp
		}
		if err := svc.AttachSummary(ctx, *id, *resumo, *usr); err != nil {
			return err
		}
		fmt.Fprintln(cli.out, "resumo/resposta salvo")
		return nil

	case *avaliar != "":
		if core.CleanString(*nota) == "" {
			return core.NewValidationError(errors.New("Informe uma nota (0 a 10)"))
		}
		n, err := strconv.ParseFloat(*nota, 64)
		if err != nil {
			return core.NewValidationError(errors.New("Informe uma nota (0 a 10)"))
		}
		ne := reading.NewEvaluation{UsuarioID: usr.ID, Nota: n, Comentario: *comentario}
		if err := svc.SubmitEvaluation(ctx, *avaliar, ne); err != nil {
			return err
		}
		fmt.Fprintln(cli.out, "avaliação registrada")
		return nil

	case *rm != "":
		if err := svc.Delete(ctx, *rm); err != nil {
			return err
		}
		fmt.Fprintln(cli.out, "leitura excluída")
		return nil
	}

	items, err := svc.List(ctx)
	if err != nil {
		return err
	}
	for _, rec := range items {
		evals, err := svc.Evaluations(ctx, rec.ID())
		avgLabel := "sem avaliações"
		if err == nil {
			if avg := reading.Average(evals); avg != nil {
				avgLabel = fmt.Sprintf("média %.1f (%d avaliações)", *avg, len(evals))
			}
		}
		fmt.Fprintf(cli.out, "%s  %s - %s\n", rec.ID(), truncate(rec.Str("texto"), 60), avgLabel)
		if r := rec.Str("resumo_resposta"); r != "" {
			fmt.Fprintf(cli.out, "    resumo: %s\n", truncate(r, 70))
		}
	}
	return nil
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "…"
}

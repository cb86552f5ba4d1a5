package main

import (
	"context"
	"flag"
	"fmt"
	"strings"

	"github.com/pkg/errors"

	"github.com/sistemaclass/classcli/core"
	"github.com/sistemaclass/classcli/core/grading"
	"github.com/sistemaclass/classcli/core/quiz"
	"github.com/sistemaclass/classcli/session"
)

// tests lists tests split into pending and completed for the session user.
// -titulo plus -questoes runs the compound test+questions creation flow.
func (cli *commandLine) tests(ctx context.Context, args []string) error {
	cmd := flag.NewFlagSet("testes", flag.ExitOnError)
	titulo := cmd.String("titulo", "", "Título do novo teste.")
	questoes := cmd.String("questoes", "", "Enunciados separados por ';'.")
	rm := cmd.String("rm", "", "ID do teste a excluir.")
	if err := cmd.Parse(args); err != nil {
		return err
	}

	usr, err := session.RequireUser(cli.store, "testes")
	if err != nil {
		return err
	}
	svc := quiz.NewService(cli.client)

	if *titulo != "" || *questoes != "" {
		var drafts []quiz.NewQuestion
		for _, enunciado := range splitList(*questoes) {
			drafts = append(drafts, quiz.NewQuestion{Enunciado: enunciado})
		}
		res, err := svc.CreateWithQuestions(ctx, *titulo, drafts, *usr)
		if err != nil {
			if res != nil {
				fmt.Fprintf(cli.out, "teste %s criado, mas %d de %d questões falharam\n",
					res.Test.ID(), len(drafts)-countCreated(res), len(drafts))
			}
			return err
		}
		fmt.Fprintf(cli.out, "teste %s criado com %d questões\n", res.Test.ID(), len(res.Questions))
		return nil
	}

	if *rm != "" {
		if err := svc.Delete(ctx, *rm); err != nil {
			return err
		}
		fmt.Fprintln(cli.out, "teste excluído")
		return nil
	}

	tests, err := svc.List(ctx)
	if err != nil {
		return err
	}
	answered := svc.AnsweredIndex(ctx, usr.ID)
	pending, completed := quiz.Partition(tests, answered)

	fmt.Fprintf(cli.out, "pendentes (%d):\n", len(pending))
	for _, t := range pending {
		fmt.Fprintf(cli.out, "  %s  %s (%s)\n", t.ID(), t.Str("titulo"), core.FormatDayMonth(t.Str("data")))
	}
	fmt.Fprintf(cli.out, "respondidos (%d):\n", len(completed))
	for _, t := range completed {
		score := quiz.ScoreOf(answered[t.ID()])
		fmt.Fprintf(cli.out, "  %s  %s - %d/%d certas, %d erradas, %d sem correção\n",
			t.ID(), t.Str("titulo"), score.Correct, score.Total, score.Wrong, score.Pending)
	}
	return nil
}

// answer submits the session user's answers to every question of a test, in
// question order.
func (cli *commandLine) answer(ctx context.Context, args []string) error {
	cmd := flag.NewFlagSet("responder", flag.ExitOnError)
	teste := cmd.String("teste", "", "ID do teste.")
	respostas := cmd.String("respostas", "", "Respostas separadas por ';' na ordem das questões.")
	if err := cmd.Parse(args); err != nil {
		return err
	}
	if *teste == "" {
		cmd.Usage()
		return errHelp
	}

	usr, err := session.RequireUser(cli.store, "responder")
	if err != nil {
		return err
	}
	svc := quiz.NewService(cli.client)

	questions, err := svc.Questions(ctx, *teste)
	if err != nil {
		return err
	}
	given := splitList(*respostas)
	if len(given) != len(questions) {
		return core.NewValidationError(errors.New("Responda todas as questões antes de enviar."))
	}
	answers := make(map[string]string, len(questions))
	for i, q := range questions {
		answers[q.ID()] = given[i]
	}
	if err := svc.SubmitAnswers(ctx, *teste, answers, *usr); err != nil {
		return err
	}
	fmt.Fprintf(cli.out, "%d respostas enviadas\n", len(answers))
	return nil
}

// grade shows the correction sheet of a test, or marks one answer with
// -resposta and -correta.
func (cli *commandLine) grade(ctx context.Context, args []string) error {
	cmd := flag.NewFlagSet("corrigir", flag.ExitOnError)
	teste := cmd.String("teste", "", "ID do teste a corrigir.")
	resposta := cmd.String("resposta", "", "ID da resposta a marcar.")
	correta := cmd.Bool("correta", false, "Marcar como correta (false marca como errada).")
	if err := cmd.Parse(args); err != nil {
		return err
	}

	usr, err := session.RequireUser(cli.store, "corrigir")
	if err != nil {
		return err
	}
	svc := grading.NewService(cli.client)

	if *resposta != "" {
		if err := svc.Grade(ctx, *resposta, *correta, *usr); err != nil {
			return err
		}
		fmt.Fprintln(cli.out, "correção salva")
		return nil
	}
	if *teste == "" {
		cmd.Usage()
		return errHelp
	}

	data, err := svc.Load(ctx)
	if err != nil {
		return err
	}
	distID, err := grading.DistinguishedID(data.Users)
	if err != nil {
		return err
	}
	sheet, err := svc.AnswersFor(ctx, *teste, distID)
	if err != nil {
		return err
	}
	for _, q := range sheet.Questions {
		fmt.Fprintf(cli.out, "questão %s: %s\n", q.ID(), q.Str("enunciado"))
		ans, ok := sheet.Answers[q.ID()]
		if !ok {
			fmt.Fprintln(cli.out, "  (sem resposta)")
			continue
		}
		state := "sem correção"
		if c := ans.TriBool("correta"); c != nil {
			if *c {
				state = "correta"
			} else {
				state = "errada"
			}
		}
		fmt.Fprintf(cli.out, "  resposta %s: %s [%s]\n", ans.ID(), ans.Str("resposta_usuario"), state)
	}
	return nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ";") {
		if p := core.CleanString(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func countCreated(res *quiz.TestResult) int {
	var n int
	for _, q := range res.Questions {
		if q.Err == nil {
			n++
		}
	}
	return n
}

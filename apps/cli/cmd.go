package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/sistemaclass/classcli/core"
	"github.com/sistemaclass/classcli/session"
	"github.com/sistemaclass/classcli/storage/rest"
)

var errHelp = errors.New("help provided")

type commandLine struct {
	client *rest.Client
	store  *session.Store
	out    io.Writer
}

func (cli *commandLine) printUsage() {
	fmt.Fprintln(cli.out, "Usage:")
	fmt.Fprintln(cli.out, "  login -nome NOME                      - entrar como um usuário existente")
	fmt.Fprintln(cli.out, "  logout                                - sair da sessão atual")
	fmt.Fprintln(cli.out, "  whoami                                - mostrar a sessão atual")
	fmt.Fprintln(cli.out, "  health                                - checar se a API está no ar")
	fmt.Fprintln(cli.out, "  agenda [-dia AAAA-MM-DD] [...]        - ver/criar dias e atividades")
	fmt.Fprintln(cli.out, "  proximas [-limite N]                  - próximas atividades")
	fmt.Fprintln(cli.out, "  leituras [...]                        - leituras, resumos e avaliações")
	fmt.Fprintln(cli.out, "  testes [...]                          - listar/criar testes")
	fmt.Fprintln(cli.out, "  responder -teste ID -respostas A;B;.. - responder um teste")
	fmt.Fprintln(cli.out, "  corrigir [...]                        - corrigir respostas")
	fmt.Fprintln(cli.out, "  usuarios [...]                        - gerenciar usuários")
	fmt.Fprintln(cli.out, "  resumos [...]                         - gerenciar resumos")
	fmt.Fprintln(cli.out, "  dicionario [...]                      - navegar palavras/tentativas/avaliações")
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	ctx := context.Background()

	switch args[1] {
	case "login":
		return cli.login(ctx, args[2:])
	case "logout":
		return cli.logout()
	case "whoami":
		return cli.whoami()
	case "health":
		return cli.health(ctx)
	case "agenda":
		return cli.agenda(ctx, args[2:])
	case "proximas":
		return cli.upcoming(ctx, args[2:])
	case "leituras":
		return cli.readings(ctx, args[2:])
	case "testes":
		return cli.tests(ctx, args[2:])
	case "responder":
		return cli.answer(ctx, args[2:])
	case "corrigir":
		return cli.grade(ctx, args[2:])
	case "usuarios":
		return cli.panelCmd(ctx, "usuarios", args[2:])
	case "resumos":
		return cli.panelCmd(ctx, "resumos", args[2:])
	case "dicionario":
		return cli.panelCmd(ctx, "dicionario", args[2:])
	default:
		cli.printUsage()
		return errHelp
	}
}

func (cli *commandLine) health(ctx context.Context) error {
	if cli.client.Health(ctx) {
		fmt.Fprintln(cli.out, "API online")
		return nil
	}
	fmt.Fprintln(cli.out, "API offline")
	return nil
}

// printRecord renders one record as "key: value" lines for quick inspection.
func (cli *commandLine) printRecord(rec core.Record, keys ...string) {
	for _, k := range keys {
		fmt.Fprintf(cli.out, "  %s: %s\n", k, rec.Str(k))
	}
}

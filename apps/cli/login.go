package main

import (
	"context"
	"flag"
	"fmt"

	"github.com/pkg/errors"

	"github.com/sistemaclass/classcli/core/user"
)

func (cli *commandLine) login(ctx context.Context, args []string) error {
	cmd := flag.NewFlagSet("login", flag.ExitOnError)
	nome := cmd.String("nome", "", "Nome do usuário cadastrado.")
	if err := cmd.Parse(args); err != nil {
		return err
	}
	if *nome == "" {
		cmd.Usage()
		return errHelp
	}

	usrSvc := user.NewService(cli.client)
	users, err := usrSvc.List(ctx)
	if err != nil {
		return errors.Wrap(err, "listing users")
	}
	u := user.FindByName(users, *nome)
	if u == nil {
		return errors.Errorf("usuário %q não encontrado", *nome)
	}
	if err := cli.store.Set(*u); err != nil {
		return err
	}
	fmt.Fprintf(cli.out, "logado como %s (id %s)\n", u.Nome, u.ID)
	return nil
}

func (cli *commandLine) logout() error {
	if err := cli.store.Logout(); err != nil {
		return err
	}
	fmt.Fprintln(cli.out, "sessão encerrada")
	return nil
}

func (cli *commandLine) whoami() error {
	u := cli.store.Current()
	if u == nil {
		fmt.Fprintln(cli.out, "nenhum usuário logado")
		return nil
	}
	fmt.Fprintf(cli.out, "%s (id %s)\n", u.Nome, u.ID)
	return nil
}

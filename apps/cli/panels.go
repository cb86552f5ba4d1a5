package main

import (
	"context"
	"flag"
	"fmt"
	"text/tabwriter"

	"github.com/pkg/errors"

	"github.com/sistemaclass/classcli/core"
	"github.com/sistemaclass/classcli/crud"
	"github.com/sistemaclass/classcli/session"
)

// panelCmd drives the generic CRUD panels (usuarios, resumos, dicionario).
// -create takes a JSON object; -update needs -id and a JSON object; -rm with
// -confirma runs the two-step delete in one go. -filhos descends into the
// nested panel of a record (repeatable by chaining ids with '/').
func (cli *commandLine) panelCmd(ctx context.Context, name string, args []string) error {
	cmd := flag.NewFlagSet(name, flag.ExitOnError)
	create := cmd.String("create", "", "JSON do novo registro.")
	update := cmd.String("update", "", "JSON com os campos a alterar (requer -id).")
	id := cmd.String("id", "", "ID do registro alvo.")
	rm := cmd.String("rm", "", "ID do registro a excluir.")
	confirm := cmd.Bool("confirma", false, "Confirma a exclusão.")
	view := cmd.String("ver", "", "ID do registro a exibir por inteiro.")
	filhos := cmd.String("filhos", "", "Caminho de ids para descer nos registros aninhados (ex.: 3 ou 3/7).")
	if err := cmd.Parse(args); err != nil {
		return err
	}

	usr, err := session.RequireUser(cli.store, name)
	if err != nil {
		return err
	}

	panel, err := cli.buildPanel(name)
	if err != nil {
		return err
	}
	panel.SetUser(usr.ID, usr.Nome)
	if name == "resumos" && usr.IsDistinguished() {
		// the distinguished role only reads summaries
		panel.CanCreate = false
		panel.CanEdit = false
		panel.CanDelete = false
	}

	if *filhos != "" {
		panel, err = descend(ctx, panel, splitPath(*filhos))
		if err != nil {
			return err
		}
	}
	if err := panel.Load(ctx); err != nil {
		return errors.New(panel.Collection().Err())
	}

	switch {
	case *create != "":
		values, err := crud.ParseJSONObject(*create)
		if err != nil {
			return err
		}
		if err := panel.Create(ctx, values, ""); err != nil {
			return err
		}
		fmt.Fprintln(cli.out, "registro criado")

	case *update != "":
		if *id == "" {
			cmd.Usage()
			return errHelp
		}
		values, err := crud.ParseJSONObject(*update)
		if err != nil {
			return err
		}
		if err := panel.Update(ctx, *id, values, ""); err != nil {
			return err
		}
		fmt.Fprintln(cli.out, "registro atualizado")

	case *rm != "":
		if !*confirm {
			return crud.ErrDeleteNotConfirmed
		}
		panel.ArmDelete(*rm)
		if err := panel.Delete(ctx, *rm); err != nil {
			return err
		}
		fmt.Fprintln(cli.out, "registro excluído")

	case *view != "":
		for _, row := range panel.Rows() {
			if row.Record.ID() == *view {
				fmt.Fprintln(cli.out, panel.View(row.Record))
				return nil
			}
		}
		return errors.Errorf("registro %q não encontrado", *view)
	}

	cli.printPanel(panel)
	return nil
}

func (cli *commandLine) buildPanel(name string) (*crud.Panel, error) {
	switch name {
	case "usuarios":
		return crud.UsersPanel(cli.client), nil
	case "resumos":
		return crud.SummariesPanel(cli.client), nil
	case "dicionario":
		return crud.DictionaryPanel(cli.client), nil
	default:
		return nil, errors.Errorf("painel desconhecido: %s", name)
	}
}

// descend walks the nested-panel chain loading each level so child panels can
// resolve their parent records.
func descend(ctx context.Context, panel *crud.Panel, ids []string) (*crud.Panel, error) {
	for _, id := range ids {
		if err := panel.Load(ctx); err != nil {
			return nil, err
		}
		var parent core.Record
		for _, row := range panel.Rows() {
			if row.Record.ID() == id {
				parent = row.Record
				break
			}
		}
		if parent == nil {
			return nil, errors.Errorf("registro %q não encontrado em %s", id, panel.Path)
		}
		child, err := panel.Child(parent)
		if err != nil {
			return nil, err
		}
		if child == nil {
			return nil, errors.Errorf("%s não tem registros aninhados", panel.Title)
		}
		panel = child
	}
	return panel, nil
}

func splitPath(s string) []string {
	var out []string
	start := 0
	for i := 0; i <= len(s); i++ {
		if i == len(s) || s[i] == '/' {
			if p := core.CleanString(s[start:i]); p != "" {
				out = append(out, p)
			}
			start = i + 1
		}
	}
	return out
}

func (cli *commandLine) printPanel(panel *crud.Panel) {
	fmt.Fprintf(cli.out, "%s (%d registros)\n", panel.Title, len(panel.Rows()))
	w := tabwriter.NewWriter(cli.out, 2, 4, 2, ' ', 0)
	for _, col := range panel.Columns {
		fmt.Fprintf(w, "%s\t", col)
	}
	fmt.Fprintln(w, "ações")
	for _, row := range panel.Rows() {
		for _, col := range panel.Columns {
			fmt.Fprintf(w, "%s\t", row.Record.Str(col))
		}
		actions := "-"
		if row.CanEdit && row.CanDelete {
			actions = "editar/excluir"
		} else if row.CanEdit {
			actions = "editar"
		} else if row.CanDelete {
			actions = "excluir"
		}
		fmt.Fprintln(w, actions)
	}
	w.Flush()
}

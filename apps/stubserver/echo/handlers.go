package stubapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/sistemaclass/classcli/core"
)

const msgNotFound = "Registro não encontrado"

func okJSON(ctx echo.Context, code int, data interface{}) error {
	return ctx.JSON(code, echo.Map{"ok": true, "data": data})
}

func failJSON(ctx echo.Context, code int, message string, details interface{}) error {
	errBody := echo.Map{"message": message}
	if details != nil {
		errBody["details"] = details
	}
	return ctx.JSON(code, echo.Map{"ok": false, "error": errBody})
}

type resourceApi struct {
	db *DB
}

func registerResourceAPI(g *echo.Group, db *DB) {
	api := resourceApi{db: db}

	g.GET("/usuarios", api.list(db.Usuarios))
	g.POST("/usuarios", api.create(db.Usuarios, require("nome")))
	g.PATCH("/usuarios/:id", api.patch(db.Usuarios))
	g.DELETE("/usuarios/:id", api.delete(db.Usuarios))

	g.GET("/agenda", api.listAgenda)
	g.POST("/agenda", api.create(db.Agenda, require("dia")))
	g.GET("/agenda/:id/atividades", api.listChildren(db.Atividades, "agenda_id"))
	g.POST("/agenda/:id/atividades", api.createChild(db.Agenda, db.Atividades, "agenda_id", require("materia", "conteudo")))
	g.GET("/atividades", api.list(db.Atividades))
	g.PATCH("/atividades/:id", api.patch(db.Atividades))
	g.DELETE("/atividades/:id", api.delete(db.Atividades))

	g.GET("/leituras", api.list(db.Leituras))
	g.POST("/leituras", api.create(db.Leituras, require("texto")))
	g.PATCH("/leituras/:id", api.patch(db.Leituras))
	g.DELETE("/leituras/:id", api.delete(db.Leituras))
	g.GET("/leituras/:id/avaliacoes", api.listChildren(db.LeituraAvaliacoes, "leitura_id"))
	g.POST("/leituras/:id/avaliacoes", api.createChild(db.Leituras, db.LeituraAvaliacoes, "leitura_id", require("usuario_id")))

	g.GET("/testes", api.list(db.Testes))
	g.POST("/testes", api.create(db.Testes, require("titulo")))
	g.PATCH("/testes/:id", api.patch(db.Testes))
	g.DELETE("/testes/:id", api.delete(db.Testes))
	g.GET("/testes/:id/questoes", api.listChildren(db.Questoes, "teste_id"))
	g.POST("/testes/:id/questoes", api.createChild(db.Testes, db.Questoes, "teste_id", require("enunciado")))
	g.GET("/testes/:id/respostas", api.listChildren(db.TesteRespostas, "teste_id"))
	g.POST("/testes/:id/respostas", api.createChild(db.Testes, db.TesteRespostas, "teste_id", require("questao_id", "usuario_id")))
	g.GET("/teste-respostas", api.listAnswers)
	g.PATCH("/teste-respostas/:id", api.patch(db.TesteRespostas))
	g.DELETE("/teste-respostas/:id", api.delete(db.TesteRespostas))

	g.GET("/resumos", api.list(db.Resumos))
	g.POST("/resumos", api.create(db.Resumos, require("materia", "topico")))
	g.PATCH("/resumos/:id", api.patch(db.Resumos))
	g.DELETE("/resumos/:id", api.delete(db.Resumos))

	g.GET("/dicionario", api.list(db.Palavras))
	g.POST("/dicionario", api.create(db.Palavras, require("palavra")))
	g.PATCH("/dicionario/:id", api.patch(db.Palavras))
	g.DELETE("/dicionario/:id", api.delete(db.Palavras))
	g.GET("/dicionario/:id/tentativas", api.listChildren(db.Tentativas, "palavra_id"))
	g.POST("/dicionario/:id/tentativas", api.createChild(db.Palavras, db.Tentativas, "palavra_id", require("usuario_id")))
	g.PATCH("/dicionario-tentativas/:id", api.patch(db.Tentativas))
	g.DELETE("/dicionario-tentativas/:id", api.delete(db.Tentativas))
	g.GET("/dicionario-tentativas/:id/avaliacoes", api.listChildren(db.TentativaAvaliacoes, "tentativa_id"))
	g.POST("/dicionario-tentativas/:id/avaliacoes", api.createChild(db.Tentativas, db.TentativaAvaliacoes, "tentativa_id", require("usuario_id")))
	g.PATCH("/dicionario-avaliacoes/:id", api.patch(db.TentativaAvaliacoes))
	g.DELETE("/dicionario-avaliacoes/:id", api.delete(db.TentativaAvaliacoes))
}

// require builds the per-resource body check: each named field must be a
// non-blank string (or any non-nil value for ids posted as numbers).
func require(fields ...string) func(core.Record) error {
	return func(rec core.Record) error {
		flds := make([]core.FieldError, 0)
		for _, f := range fields {
			v, ok := rec[f]
			if !ok || v == nil || core.CleanString(core.AsString(v)) == "" {
				flds = append(flds, core.FieldError{Field: f, Error: "campo obrigatório"})
			}
		}
		if len(flds) > 0 {
			return core.NewValidationError(errors.New("Dados inválidos"), flds...)
		}
		return nil
	}
}

func bindRecord(ctx echo.Context) (core.Record, error) {
	rec := core.Record{}
	if err := ctx.Bind(&rec); err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "JSON inválido")
	}
	return rec, nil
}

// Handlers

func (api *resourceApi) list(t *Table) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		return okJSON(ctx, http.StatusOK, t.All())
	}
}

func (api *resourceApi) create(t *Table, check func(core.Record) error) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		rec, err := bindRecord(ctx)
		if err != nil {
			return err
		}
		if err := check(rec); err != nil {
			return renderValidationError(ctx, err)
		}
		return okJSON(ctx, http.StatusCreated, t.Insert(rec))
	}
}

func (api *resourceApi) patch(t *Table) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		fields, err := bindRecord(ctx)
		if err != nil {
			return err
		}
		rec, ok := t.Patch(ctx.Param("id"), fields)
		if !ok {
			return failJSON(ctx, http.StatusNotFound, msgNotFound, nil)
		}
		return okJSON(ctx, http.StatusOK, rec)
	}
}

func (api *resourceApi) delete(t *Table) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		if !t.Delete(ctx.Param("id")) {
			return failJSON(ctx, http.StatusNotFound, msgNotFound, nil)
		}
		return okJSON(ctx, http.StatusOK, echo.Map{"deleted": true})
	}
}

func (api *resourceApi) listChildren(t *Table, fk string) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		return okJSON(ctx, http.StatusOK, t.Where(fk, ctx.Param("id")))
	}
}

func (api *resourceApi) createChild(parent, t *Table, fk string, check func(core.Record) error) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		id := ctx.Param("id")
		if _, ok := parent.Get(id); !ok {
			return failJSON(ctx, http.StatusNotFound, msgNotFound, nil)
		}
		rec, err := bindRecord(ctx)
		if err != nil {
			return err
		}
		if err := check(rec); err != nil {
			return renderValidationError(ctx, err)
		}
		rec[fk] = id
		return okJSON(ctx, http.StatusCreated, t.Insert(rec))
	}
}

// listAgenda supports the ?dia= filter used by the day lookup.
func (api *resourceApi) listAgenda(ctx echo.Context) error {
	if dia := core.CleanString(ctx.QueryParam("dia")); dia != "" {
		return okJSON(ctx, http.StatusOK, api.db.Agenda.Where("dia", dia))
	}
	return okJSON(ctx, http.StatusOK, api.db.Agenda.All())
}

// listAnswers supports the flat ?usuario_id= and ?teste_id= filters.
func (api *resourceApi) listAnswers(ctx echo.Context) error {
	rows := api.db.TesteRespostas.All()
	if uid := core.CleanString(ctx.QueryParam("usuario_id")); uid != "" {
		filtered := make([]core.Record, 0)
		for _, rec := range rows {
			if rec.Str("usuario_id") == uid {
				filtered = append(filtered, rec)
			}
		}
		rows = filtered
	}
	if tid := core.CleanString(ctx.QueryParam("teste_id")); tid != "" {
		filtered := make([]core.Record, 0)
		for _, rec := range rows {
			if rec.Str("teste_id") == tid {
				filtered = append(filtered, rec)
			}
		}
		rows = filtered
	}
	return okJSON(ctx, http.StatusOK, rows)
}

func renderValidationError(ctx echo.Context, err error) error {
	vErr, ok := errors.Cause(err).(*core.ValidationError)
	if !ok {
		return err
	}
	details := make(map[string]string, len(vErr.Fields))
	for _, f := range vErr.Fields {
		details[f.Field] = f.Error
	}
	return failJSON(ctx, http.StatusBadRequest, vErr.Error(), details)
}

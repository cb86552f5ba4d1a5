package crud

import (
	"fmt"
	"strings"

	"github.com/sistemaclass/classcli/core"
)

// Materias7Ano is the 7th-grade subject list used by the summaries form.
var Materias7Ano = []string{
	"Língua Portuguesa",
	"Matemática",
	"Ciências",
	"História",
	"Geografia",
	"Língua Inglesa",
	"Arte",
	"Educação Física",
	"Ensino Religioso",
}

func subjectOptions() []SelectOption {
	opts := make([]SelectOption, 0, len(Materias7Ano))
	for _, m := range Materias7Ano {
		opts = append(opts, SelectOption{Value: m, Label: m})
	}
	return opts
}

// UsersPanel manages /usuarios.
func UsersPanel(api core.API) *Panel {
	fields := []FieldDef{
		{Key: "nome", Label: "Nome", Type: FieldText, Placeholder: "Ex.: Ana"},
	}
	return NewPanel(api, "Usuários", "/usuarios", fields, []string{"id", "nome"})
}

// SummariesPanel manages /resumos. The distinguished role is read-only here;
// callers flip the permission flags off for it.
func SummariesPanel(api core.API) *Panel {
	fields := []FieldDef{
		{Key: "materia", Label: "Matéria", Type: FieldSelect, Options: subjectOptions(), Placeholder: "Selecione a matéria"},
		{Key: "topico", Label: "Tópico", Type: FieldText},
		{Key: "conteudo", Label: "Conteúdo", Type: FieldTextarea},
	}
	p := NewPanel(api, "Resumos", "/resumos", fields, []string{"materia", "topico"})
	p.EnableView = true
	p.ViewRender = func(rec core.Record) string {
		var b strings.Builder
		fmt.Fprintln(&b, strings.ToUpper(rec.Str("materia")))
		fmt.Fprintln(&b, rec.Str("topico"))
		fmt.Fprintln(&b, rec.Str("conteudo"))
		return b.String()
	}
	return p
}

// DictionaryPanel manages the three-level nesting: word -> attempt -> rating.
func DictionaryPanel(api core.API) *Panel {
	wordFields := []FieldDef{
		{Key: "palavra", Label: "Palavra", Type: FieldText},
		{Key: "definicao", Label: "Definição (opcional)", Type: FieldTextarea},
	}
	attemptFields := []FieldDef{
		{Key: "usuario_id", Label: "ID do usuário", Type: FieldText},
		{Key: "resposta", Label: "Resposta (significado)", Type: FieldTextarea},
	}
	ratingFields := []FieldDef{
		{Key: "usuario_id", Label: "ID do usuário (avaliador)", Type: FieldText},
		{Key: "comentario", Label: "Comentário", Type: FieldTextarea},
	}

	p := NewPanel(api, "Palavras", "/dicionario", wordFields, []string{"id", "palavra"})
	p.Nested = func(word core.Record) *Panel {
		wordID := word.ID()
		if wordID == "" {
			return nil
		}
		attempts := NewPanel(api, "Tentativas",
			fmt.Sprintf("/dicionario/%s/tentativas", wordID), attemptFields, []string{"id", "usuario_id"})
		attempts.Nested = func(attempt core.Record) *Panel {
			attemptID := attempt.ID()
			if attemptID == "" {
				return nil
			}
			return NewPanel(api, "Avaliações",
				fmt.Sprintf("/dicionario-tentativas/%s/avaliacoes", attemptID), ratingFields, []string{"id", "usuario_id"})
		}
		return attempts
	}
	return p
}

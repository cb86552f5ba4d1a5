package stubapi

import (
	"sort"
	"sync"
	"time"

	"github.com/sistemaclass/classcli/core"
)

// DB is the stub backend's storage: one mutex-guarded table per resource,
// integer sequence ids, records kept as open maps so unknown fields posted
// by clients ride along untouched.
type DB struct {
	Usuarios            *Table
	Agenda              *Table
	Atividades          *Table
	Leituras            *Table
	LeituraAvaliacoes   *Table
	Testes              *Table
	Questoes            *Table
	TesteRespostas      *Table
	Resumos             *Table
	Palavras            *Table
	Tentativas          *Table
	TentativaAvaliacoes *Table
}

func Open() *DB {
	return &DB{
		Usuarios:            newTable(),
		Agenda:              newTable(),
		Atividades:          newTable(),
		Leituras:            newTable(),
		LeituraAvaliacoes:   newTable(),
		Testes:              newTable(),
		Questoes:            newTable(),
		TesteRespostas:      newTable(),
		Resumos:             newTable(),
		Palavras:            newTable(),
		Tentativas:          newTable(),
		TentativaAvaliacoes: newTable(),
	}
}

type Table struct {
	sync.RWMutex
	seq  int
	rows map[int]core.Record
}

func newTable() *Table {
	return &Table{rows: make(map[int]core.Record)}
}

// Insert stamps id and created_at and stores a copy of rec.
func (t *Table) Insert(rec core.Record) core.Record {
	t.Lock()
	defer t.Unlock()

	t.seq++
	dup := rec.Clone()
	dup["id"] = t.seq
	if _, ok := dup["created_at"]; !ok {
		dup["created_at"] = time.Now().UTC().Format(time.RFC3339)
	}
	t.rows[t.seq] = dup
	return dup.Clone()
}

// All returns every row ordered by id ascending.
func (t *Table) All() []core.Record {
	t.RLock()
	defer t.RUnlock()

	ids := make([]int, 0, len(t.rows))
	for id := range t.rows {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	out := make([]core.Record, 0, len(ids))
	for _, id := range ids {
		out = append(out, t.rows[id].Clone())
	}
	return out
}

// Where returns rows whose field, coerced to string, equals value.
func (t *Table) Where(field, value string) []core.Record {
	out := make([]core.Record, 0)
	for _, rec := range t.All() {
		if rec.Str(field) == value {
			out = append(out, rec)
		}
	}
	return out
}

func (t *Table) Get(id string) (core.Record, bool) {
	t.RLock()
	defer t.RUnlock()

	for k, rec := range t.rows {
		if core.AsString(k) == id {
			return rec.Clone(), true
		}
	}
	return nil, false
}

// Patch merges the given fields into an existing row.
func (t *Table) Patch(id string, fields core.Record) (core.Record, bool) {
	t.Lock()
	defer t.Unlock()

	for k, rec := range t.rows {
		if core.AsString(k) == id {
			for key, val := range fields {
				if key == "id" {
					continue
				}
				rec[key] = val
			}
			return rec.Clone(), true
		}
	}
	return nil, false
}

func (t *Table) Delete(id string) bool {
	t.Lock()
	defer t.Unlock()

	for k := range t.rows {
		if core.AsString(k) == id {
			delete(t.rows, k)
			return true
		}
	}
	return false
}

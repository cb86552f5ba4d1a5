package crud

import (
	"context"
	"encoding/json"
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/sistemaclass/classcli/core"
)

// maxNestingDepth caps recursive child panels; three levels are in use
// today (word -> attempt -> rating).
const maxNestingDepth = 5

var (
	ErrCreateNotAllowed   = errors.New("criação não permitida")
	ErrEditNotAllowed     = errors.New("edição não permitida")
	ErrDeleteNotAllowed   = errors.New("exclusão não permitida")
	ErrDeleteNotConfirmed = errors.New("confirme a exclusão antes de excluir")
	ErrDeleteInFlight     = errors.New("exclusão já em andamento")
	ErrNestingTooDeep     = errors.New("nível máximo de aninhamento atingido")
)

// Panel drives full CRUD for one resource path from a field schema.
type Panel struct {
	Title   string
	Path    string
	Fields  []FieldDef
	Columns []string
	Hidden  []string

	// merged into the request body after the schema fields, so callers can
	// force values the form does not expose.
	CreateDefaults map[string]interface{}
	EditDefaults   map[string]interface{}

	Sort       func(a, b core.Record) bool
	Nested     func(rec core.Record) *Panel
	CanCreate  bool
	CanEdit    bool
	CanDelete  bool
	EnableView bool
	// ViewRender overrides the raw pretty-printed record dump in view mode.
	ViewRender func(rec core.Record) string

	api      core.API
	userID   string
	userName string
	depth    int

	mu          sync.Mutex
	col         *core.Collection
	armedDelete string
	deletingID  string
}

// NewPanel builds a panel with every permission enabled; callers switch the
// flags off per page policy.
func NewPanel(api core.API, title, path string, fields []FieldDef, columns []string) *Panel {
	return &Panel{
		Title:     title,
		Path:      path,
		Fields:    fields,
		Columns:   columns,
		CanCreate: true,
		CanEdit:   true,
		CanDelete: true,
		api:       api,
		col:       core.NewCollection(),
	}
}

// SetUser binds the session identity used for per-row ownership gating.
func (p *Panel) SetUser(id, nome string) {
	p.userID = id
	p.userName = nome
}

func (p *Panel) Collection() *core.Collection { return p.col }

// Load fetches the full collection and replaces local state. A non-array
// response is treated as empty; failure empties the list and keeps the
// message for inline display.
func (p *Panel) Load(ctx context.Context) error {
	p.col.BeginLoad()
	items, err := p.api.List(ctx, p.Path)
	if err != nil {
		p.col.Fail(core.APIMessage(err, "Falha ao carregar"))
		return err
	}
	p.col.EndLoad(items)
	return nil
}

// Row is one renderable list entry with its per-render permission checks.
type Row struct {
	Key        string
	Record     core.Record
	Actionable bool
	CanEdit    bool
	CanDelete  bool
}

// Rows returns the sorted list with ownership gating evaluated per row at
// render time, never cached. Records without a resolvable id get a
// throwaway key solely for rendering identity and are not actionable.
func (p *Panel) Rows() []Row {
	items := p.col.Items()
	if p.Sort != nil {
		sort.SliceStable(items, func(i, j int) bool { return p.Sort(items[i], items[j]) })
	}
	rows := make([]Row, 0, len(items))
	for _, rec := range items {
		id := rec.ID()
		row := Row{Key: id, Record: rec, Actionable: id != ""}
		if id == "" {
			row.Key = "noid-" + uuid.New().String()
		}
		if row.Actionable && core.CanMutate(rec, p.userID, p.userName) {
			row.CanEdit = p.CanEdit
			row.CanDelete = p.CanDelete
		}
		rows = append(rows, row)
	}
	return rows
}

// Create validates and coerces the form values plus the extras blob before
// any network call, POSTs the merged body and reloads the list.
func (p *Panel) Create(ctx context.Context, values map[string]interface{}, extrasJSON string) error {
	if !p.CanCreate {
		return ErrCreateNotAllowed
	}
	body, err := BuildBody(p.Fields, values, extrasJSON)
	if err != nil {
		return err
	}
	for k, v := range p.CreateDefaults {
		body[k] = v
	}
	if _, err := p.api.Create(ctx, p.Path, body); err != nil {
		return err
	}
	return p.Load(ctx)
}

// Update PATCHes only the built body merged with the edit defaults.
func (p *Panel) Update(ctx context.Context, id string, values map[string]interface{}, extrasJSON string) error {
	if !p.CanEdit {
		return ErrEditNotAllowed
	}
	if rec := p.find(id); rec != nil && !core.CanMutate(rec, p.userID, p.userName) {
		return ErrEditNotAllowed
	}
	body, err := BuildBody(p.Fields, values, extrasJSON)
	if err != nil {
		return err
	}
	for k, v := range p.EditDefaults {
		body[k] = v
	}
	if err := p.api.Patch(ctx, p.Path+"/"+id, body); err != nil {
		return err
	}
	return p.Load(ctx)
}

// ArmDelete is the first step of the two-step confirm affordance.
func (p *Panel) ArmDelete(id string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.armedDelete = id
}

// Delete requires a prior ArmDelete for the same row and refuses concurrent
// double-submission while a delete is in flight.
func (p *Panel) Delete(ctx context.Context, id string) error {
	if !p.CanDelete {
		return ErrDeleteNotAllowed
	}
	if rec := p.find(id); rec != nil && !core.CanMutate(rec, p.userID, p.userName) {
		return ErrDeleteNotAllowed
	}

	p.mu.Lock()
	if p.armedDelete != id {
		p.mu.Unlock()
		return ErrDeleteNotConfirmed
	}
	if p.deletingID != "" {
		p.mu.Unlock()
		return ErrDeleteInFlight
	}
	p.deletingID = id
	p.armedDelete = ""
	p.mu.Unlock()

	defer func() {
		p.mu.Lock()
		p.deletingID = ""
		p.mu.Unlock()
	}()

	if err := p.api.Delete(ctx, p.Path+"/"+id); err != nil {
		return err
	}
	return p.Load(ctx)
}

// Child resolves the nested panel for a record, recursively reusing this
// same contract at each level.
func (p *Panel) Child(rec core.Record) (*Panel, error) {
	if p.Nested == nil {
		return nil, nil
	}
	if p.depth+1 >= maxNestingDepth {
		return nil, ErrNestingTooDeep
	}
	child := p.Nested(rec)
	if child == nil {
		return nil, nil
	}
	child.api = p.api
	child.userID = p.userID
	child.userName = p.userName
	child.depth = p.depth + 1
	if child.col == nil {
		child.col = core.NewCollection()
	}
	return child, nil
}

// View renders the read-only detail: the caller-supplied renderer when set,
// else a raw pretty-printed dump of the record.
func (p *Panel) View(rec core.Record) string {
	if p.ViewRender != nil {
		return p.ViewRender(rec)
	}
	out, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return core.AsString(rec)
	}
	return string(out)
}

func (p *Panel) find(id string) core.Record {
	for _, rec := range p.col.Items() {
		if rec.ID() == id {
			return rec
		}
	}
	return nil
}

package core

import "sync"

// Status tracks the lifecycle of an asynchronously loaded collection:
// idle -> loading -> (ready | error); ready/error can be driven back to
// idle to force a refetch. No state is retried automatically.
type Status string

const (
	StatusIdle    Status = "idle"
	StatusLoading Status = "loading"
	StatusReady   Status = "ready"
	StatusError   Status = "error"
)

// Collection is the client-side cache for one remote resource list. It is
// the sole cache: cross-page consistency comes from reloading, never from
// sharing. The version counter makes optimistic updates safe to roll back
// by refetch without clobbering newer local edits.
type Collection struct {
	mu      sync.Mutex
	status  Status
	items   []Record
	errMsg  string
	version int
}

func NewCollection() *Collection {
	return &Collection{status: StatusIdle}
}

func (c *Collection) Status() Status {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.status
}

func (c *Collection) Err() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.errMsg
}

func (c *Collection) Version() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.version
}

// Items returns a copy of the current list.
func (c *Collection) Items() []Record {
	c.mu.Lock()
	defer c.mu.Unlock()
	items := make([]Record, len(c.items))
	copy(items, c.items)
	return items
}

func (c *Collection) BeginLoad() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.status = StatusLoading
	c.errMsg = ""
}

func (c *Collection) EndLoad(items []Record) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.status = StatusReady
	c.items = items
	c.errMsg = ""
	c.version++
}

// Fail replaces the list with empty and records the error message.
func (c *Collection) Fail(msg string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.status = StatusError
	c.items = nil
	c.errMsg = msg
	c.version++
}

// Invalidate drives the collection back to idle so the next action refetches.
func (c *Collection) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.status = StatusIdle
}

// Apply runs an optimistic local mutation and returns the resulting version.
// Callers keep the version to roll back by refetch on failure.
func (c *Collection) Apply(mutate func(items []Record) []Record) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = mutate(c.items)
	c.version++
	return c.version
}

// ReplaceIfVersion installs freshly fetched items only when no further local
// mutation happened since version was taken. Reports whether it replaced.
func (c *Collection) ReplaceIfVersion(items []Record, version int) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.version != version {
		return false
	}
	c.status = StatusReady
	c.items = items
	c.errMsg = ""
	c.version++
	return true
}

package testutil

import (
	"net/http/httptest"
	"testing"
	"time"

	stubapi "github.com/sistemaclass/classcli/apps/stubserver/echo"
	"github.com/sistemaclass/classcli/core"
	"github.com/sistemaclass/classcli/storage/rest"
)

// NewAPI starts the stub backend on an ephemeral port and returns a client
// pointed at it plus the backing tables for direct seeding/inspection.
func NewAPI(t *testing.T) (*rest.Client, *stubapi.DB) {
	t.Helper()

	db := stubapi.Open()
	srv := stubapi.NewServer(&stubapi.Options{DisableReqLogs: true, DB: db})
	ts := httptest.NewServer(srv)
	t.Cleanup(ts.Close)

	return rest.NewClient(ts.URL+"/api", 5*time.Second), db
}

// Seed inserts a record directly into a stub table, skipping the HTTP layer.
func Seed(t *testing.T, table *stubapi.Table, rec core.Record) core.Record {
	t.Helper()
	return table.Insert(rec)
}

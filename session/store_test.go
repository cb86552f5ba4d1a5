package session

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sistemaclass/classcli/core/user"
)

func Test_Store_roundTrip(t *testing.T) {
	dir := t.TempDir()

	s, err := NewStore(dir)
	assert.NoError(t, err)
	assert.Nil(t, s.Current())

	u := user.User{ID: "3", Nome: "Ana"}
	assert.NoError(t, s.Set(u))
	if cur := s.Current(); assert.NotNil(t, cur) {
		assert.Equal(t, u, *cur)
	}

	// a new store over the same dir sees the persisted session
	s2, err := NewStore(dir)
	assert.NoError(t, err)
	if cur := s2.Current(); assert.NotNil(t, cur) {
		assert.Equal(t, u, *cur)
	}

	// legacy keys are written alongside the consolidated record
	raw, err := ioutil.ReadFile(filepath.Join(dir, "sc_user_name"))
	assert.NoError(t, err)
	assert.Equal(t, "Ana", string(raw))
}

func Test_Store_rejectsMalformedRecord(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{name: "not json", raw: `lol{`},
		{name: "array", raw: `[1]`},
		{name: "numeric id", raw: `{"id":3,"nome":"Ana"}`},
		{name: "missing nome", raw: `{"id":"3"}`},
		{name: "blank fields", raw: `{"id":"","nome":""}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			err := ioutil.WriteFile(filepath.Join(dir, "sc_user.json"), []byte(tt.raw), 0o600)
			assert.NoError(t, err)

			s, err := NewStore(dir)
			assert.NoError(t, err)
			assert.Nil(t, s.Current())
		})
	}
}

func Test_Store_migratesLegacyKeys(t *testing.T) {
	dir := t.TempDir()
	assert.NoError(t, ioutil.WriteFile(filepath.Join(dir, "sc_user_name"), []byte(" Ana "), 0o600))
	assert.NoError(t, ioutil.WriteFile(filepath.Join(dir, "sc_user_id"), []byte("3"), 0o600))

	s, err := NewStore(dir)
	assert.NoError(t, err)
	if cur := s.Current(); assert.NotNil(t, cur) {
		assert.Equal(t, user.User{ID: "3", Nome: "Ana"}, *cur)
	}

	// the consolidated record now exists too
	raw, err := ioutil.ReadFile(filepath.Join(dir, "sc_user.json"))
	assert.NoError(t, err)
	assert.JSONEq(t, `{"id":"3","nome":"Ana"}`, string(raw))
}

func Test_Store_Logout(t *testing.T) {
	dir := t.TempDir()
	s, err := NewStore(dir)
	assert.NoError(t, err)
	assert.NoError(t, s.Set(user.User{ID: "3", Nome: "Ana"}))

	assert.NoError(t, s.Logout())
	assert.Nil(t, s.Current())
	for _, key := range []string{"sc_user.json", "sc_user_name", "sc_user_id"} {
		_, err := os.Stat(filepath.Join(dir, key))
		assert.True(t, os.IsNotExist(err))
	}

	// logging out twice is harmless
	assert.NoError(t, s.Logout())
}

func Test_RequireUser(t *testing.T) {
	dir := t.TempDir()
	s, err := NewStore(dir)
	assert.NoError(t, err)

	_, err = RequireUser(s, "agenda")
	assert.EqualError(t, err, "faça login para continuar (comando solicitado: agenda)")

	assert.NoError(t, s.Set(user.User{ID: "3", Nome: "Ana"}))
	u, err := RequireUser(s, "agenda")
	assert.NoError(t, err)
	assert.Equal(t, "Ana", u.Nome)
}

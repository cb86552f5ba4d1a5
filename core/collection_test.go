package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_Collection_lifecycle(t *testing.T) {
	c := NewCollection()
	assert.Equal(t, StatusIdle, c.Status())

	c.BeginLoad()
	assert.Equal(t, StatusLoading, c.Status())

	c.EndLoad([]Record{{"id": 1}})
	assert.Equal(t, StatusReady, c.Status())
	assert.Len(t, c.Items(), 1)

	c.Fail("Falha ao carregar")
	assert.Equal(t, StatusError, c.Status())
	assert.Empty(t, c.Items())
	assert.Equal(t, "Falha ao carregar", c.Err())

	c.Invalidate()
	assert.Equal(t, StatusIdle, c.Status())
}

func Test_Collection_ReplaceIfVersion(t *testing.T) {
	c := NewCollection()
	c.EndLoad([]Record{{"id": 1, "feita": false}})

	version := c.Apply(func(items []Record) []Record {
		items[0] = items[0].Clone()
		items[0]["feita"] = true
		return items
	})

	// no newer edit: the refetched list replaces the optimistic one
	assert.True(t, c.ReplaceIfVersion([]Record{{"id": 1, "feita": false}}, version))
	assert.False(t, c.Items()[0].Bool("feita"))

	// a newer local edit wins over a stale refetch
	version = c.Apply(func(items []Record) []Record { return items })
	c.Apply(func(items []Record) []Record { return items })
	assert.False(t, c.ReplaceIfVersion(nil, version))
}

func Test_Collection_Items_isCopy(t *testing.T) {
	c := NewCollection()
	c.EndLoad([]Record{{"id": 1}})

	items := c.Items()
	items[0] = Record{"id": 99}
	assert.Equal(t, "1", c.Items()[0].ID())
}

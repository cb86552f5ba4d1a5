package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_DateOnly(t *testing.T) {
	tests := []struct {
		name string
		raw  interface{}
		want string
	}{
		{name: "already date-only", raw: "2026-03-09", want: "2026-03-09"},
		{name: "rfc3339", raw: "2026-03-09T14:30:00Z", want: "2026-03-09"},
		{name: "rfc3339 with nanos", raw: "2026-03-09T14:30:00.123456Z", want: "2026-03-09"},
		{name: "no zone", raw: "2026-03-09T14:30:00", want: "2026-03-09"},
		{name: "space separated", raw: "2026-03-09 14:30:00", want: "2026-03-09"},
		{name: "padded", raw: "  2026-03-09  ", want: "2026-03-09"},
		{name: "nil", raw: nil, want: ""},
		{name: "garbage", raw: "amanhã", want: ""},
		{name: "blank", raw: "   ", want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DateOnly(tt.raw))
		})
	}
}

func Test_FormatDayMonth(t *testing.T) {
	assert.Equal(t, "09/03", FormatDayMonth("2026-03-09"))
	assert.Equal(t, "09/03", FormatDayMonth("2026-03-09T10:00:00Z"))
	assert.Equal(t, "—", FormatDayMonth(""))
	assert.Equal(t, "—", FormatDayMonth(nil))
	assert.Equal(t, "amanhã", FormatDayMonth("amanhã"))
}

func Test_Today(t *testing.T) {
	assert.Regexp(t, `^\d{4}-\d{2}-\d{2}$`, Today())
}

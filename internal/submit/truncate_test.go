package submit

import (
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestTruncate(t *testing.T) {
	tests := []struct {
		name string
		in   string
		n    int
		want string
	}{
		{name: "short", in: "ok", n: 5, want: "ok"},
		{name: "ascii", in: "abcdef", n: 3, want: "abc... (truncated)"},
		{name: "cut inside rune", in: "ошибка", n: 3, want: "о... (truncated)"},
		{name: "on rune boundary", in: "ошибка", n: 4, want: "ош... (truncated)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := truncate(tt.in, tt.n)
			assert.Equal(t, tt.want, got)
			assert.True(t, utf8.ValidString(got))
		})
	}
}

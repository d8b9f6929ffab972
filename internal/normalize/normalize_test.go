package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestName(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"already clean", "Computer World", "Computer World"},
		{"trims ends", "  Numbers \t", "Numbers"},
		{"collapses inner runs", "Trans-Europe   \n Express", "Trans-Europe Express"},
		{"composes accents", "Beyoncé", "Beyoncé"},
		{"whitespace only", " \t\n", ""},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Name(tt.input))
		})
	}
}

func TestText(t *testing.T) {
	assert.Equal(t, "line one\n\nline two", Text("  line one\n\nline two\n"))
	assert.Equal(t, "café", Text("café"))
	assert.Empty(t, Text("   "))
}

func TestEmail(t *testing.T) {
	assert.Equal(t, "ada@example.com", Email("  Ada@Example.COM "))
}

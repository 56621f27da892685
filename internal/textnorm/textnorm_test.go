package textnorm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Who drew the picture?", "who drew the picture"},
		{"  Yes,   I did. ", "yes i did"},
		{"Jane\tGoodall\ndid.", "jane goodall did"},
		{"", ""},
		{"?.,", ""},
		{"Stop!", "stop!"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Normalize(tt.in), "Normalize(%q)", tt.in)
	}
}

func TestWords(t *testing.T) {
	assert.Equal(t, []string{"i", "go", "to", "school"}, Words("I go to school."))
	assert.Empty(t, Words("   "))
}

package handlers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractHashtags(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "lowercases and keeps order",
			text: "big news #GoLang beats #Rust today",
			want: []string{"golang", "rust"},
		},
		{
			name: "duplicates preserved",
			text: "hello #World #world",
			want: []string{"world", "world"},
		},
		{
			name: "word characters only",
			text: "#go-routines #c++ #under_score #num1",
			want: []string{"go", "c", "under_score", "num1"},
		},
		{
			name: "no hashtags",
			text: "just plain text",
			want: []string{},
		},
		{
			name: "empty text",
			text: "",
			want: []string{},
		},
		{
			name: "bare hash ignored",
			text: "# not a tag, #real is",
			want: []string{"real"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractHashtags(tt.text))
		})
	}
}

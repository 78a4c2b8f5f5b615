package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPublicIDFromURL(t *testing.T) {
	tests := []struct {
		name string
		url  string
		want string
	}{
		{
			name: "delivery url",
			url:  "https://res.cloudinary.com/demo/image/upload/v1712345/abc123xyz.png",
			want: "abc123xyz",
		},
		{
			name: "no extension",
			url:  "https://res.cloudinary.com/demo/image/upload/abc123xyz",
			want: "abc123xyz",
		},
		{
			name: "multiple dots keeps all but last",
			url:  "https://host/path/my.photo.final.jpeg",
			want: "my.photo.final",
		},
		{
			name: "bare segment",
			url:  "abc123xyz.webp",
			want: "abc123xyz",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PublicIDFromURL(tt.url))
		})
	}
}

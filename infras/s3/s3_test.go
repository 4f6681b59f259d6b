package s3

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStorage_KeyFromURL(t *testing.T) {
	st := &storage{publicDomain: "https://cdn.example.com"}

	tests := []struct {
		url      string
		expected string
	}{
		{url: "https://cdn.example.com/persona/a.png", expected: "persona/a.png"},
		{url: "https://elsewhere.example.com/persona/a.png", expected: ""},
		{url: "", expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			assert.Equal(t, tt.expected, st.KeyFromURL(tt.url))
		})
	}
}

package stringutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTruncate(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		length   int
		expected string
	}{
		{name: "Shorter Than Limit", input: "make", length: 10, expected: "make"},
		{name: "Exactly At Limit", input: "make", length: 4, expected: "make"},
		{name: "Longer Than Limit", input: "make --jobs=8", length: 4, expected: "make"},
		{name: "Zero Length", input: "make", length: 0, expected: ""},
		{name: "Multibyte Runes", input: "héllo wörld", length: 5, expected: "héllo"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Truncate(tt.input, tt.length))
		})
	}
}

func TestEllipsize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		length   int
		expected string
	}{
		{name: "Shorter Than Limit", input: "make", length: 10, expected: "make"},
		{name: "Longer Than Limit", input: "make --jobs=8 --silent", length: 10, expected: "make --..."},
		{name: "Limit Too Small For Ellipsis", input: "make", length: 2, expected: "ma"},
		{name: "Zero Length", input: "make", length: 0, expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Ellipsize(tt.input, tt.length))
		})
	}
}

package service

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFolderName(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		expected string
	}{
		{name: "folder and file", path: "case-042/slide1.jpg", expected: "case-042"},
		{name: "nested folders keep the first segment", path: "case-042/stained/slide1.jpg", expected: "case-042"},
		{name: "leading slash", path: "/case-042/slide1.jpg", expected: "case-042"},
		{name: "bare filename has no folder", path: "slide1.jpg", expected: ""},
		{name: "empty path", path: "", expected: ""},
		{name: "dot path", path: ".", expected: ""},
		{name: "redundant separators are cleaned", path: "case-042//slide1.jpg", expected: "case-042"},
		{name: "parent traversal is cleaned away", path: "../case-042/slide1.jpg", expected: "case-042"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, folderName(tt.path))
		})
	}
}

func TestRandomItemName(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		name := randomItemName()
		assert.Len(t, name, itemNameLength)
		for _, r := range name {
			assert.True(t, strings.ContainsRune(nameAlphabet, r),
				"unexpected character %q in item name", r)
		}
		seen[name] = true
	}
	// 100 draws from a 62^20 space colliding would mean a broken generator.
	assert.Len(t, seen, 100)
}

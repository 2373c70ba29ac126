package extract

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const sampleNotebook = `{
  "cells": [
    {"cell_type": "code", "source": "a = 1\nb = 2\nprint(a + b)"},
    {"cell_type": "markdown", "source": "# heading"},
    {"cell_type": "code", "source": ["c = 3\n", "print(c)"]}
  ],
  "nbformat": 4
}`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestText(t *testing.T) {
	path := writeFile(t, t.TempDir(), "sample.py", "print('hello')")
	require.Equal(t, "print('hello')", Text(path))
}

func TestText_Missing(t *testing.T) {
	require.Equal(t, "", Text(filepath.Join(t.TempDir(), "missing.txt")))
}

// TestNotebook verifies only code cells are extracted, in cell order,
// handling both string and string-list sources.
func TestNotebook(t *testing.T) {
	path := writeFile(t, t.TempDir(), "sample.ipynb", sampleNotebook)
	require.Equal(t, "a = 1\nb = 2\nprint(a + b)\nc = 3\nprint(c)\n", Notebook(path))
}

func TestNotebook_Malformed(t *testing.T) {
	path := writeFile(t, t.TempDir(), "bad.ipynb", "{not json")
	require.Equal(t, "", Notebook(path))
}

func TestPDF_Missing(t *testing.T) {
	require.Equal(t, "", PDF(filepath.Join(t.TempDir(), "missing.pdf")))
}

func TestDirectory(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "sample.txt", "This is a sample text file.")
	writeFile(t, dir, "sample.py", "print('Hello, world!')")
	writeFile(t, dir, "sample.ipynb", sampleNotebook)
	writeFile(t, dir, "ignored.exe", "binary")
	writeFile(t, dir, "empty.txt", "")

	documents, err := Directory(dir)
	require.NoError(t, err)
	require.Len(t, documents, 3)

	byName := map[string]Document{}
	for _, d := range documents {
		byName[d.Filename] = d
	}
	require.Equal(t, "text", byName["sample.txt"].Type)
	require.Equal(t, "text", byName["sample.py"].Type)
	require.Equal(t, "ipynb", byName["sample.ipynb"].Type)
	require.Contains(t, byName["sample.ipynb"].Content, "print(a + b)")
	require.NotContains(t, byName["sample.ipynb"].Content, "heading")
}

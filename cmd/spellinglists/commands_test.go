package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestSpellingListsCLI(t *testing.T) {
	dir := t.TempDir()
	listsFile := filepath.Join(dir, "spelling-lists.json")
	wordsFile := filepath.Join(dir, "animals.txt")
	require.NoError(t, os.WriteFile(wordsFile, []byte("cat\ndog\n\nhorse\n"), 0o644))

	out, err := run(t, "--file", listsFile, "list")
	require.NoError(t, err)
	assert.Contains(t, out, "No spelling lists")

	out, err = run(t, "--file", listsFile, "add", "Farm Animals", wordsFile)
	require.NoError(t, err)
	assert.Contains(t, out, `Added "Farm Animals" with 3 words`)
	assert.Contains(t, out, "custom-farm-animals")

	require.NoError(t, os.WriteFile(wordsFile, []byte("cow, pig"), 0o644))
	out, err = run(t, "--file", listsFile, "add", "farm animals", wordsFile)
	require.NoError(t, err)
	assert.Contains(t, out, "Updated")

	out, err = run(t, "--file", listsFile, "show", "farm-animals")
	require.NoError(t, err)
	assert.Contains(t, out, "cow, pig")

	out, err = run(t, "--file", listsFile, "list")
	require.NoError(t, err)
	assert.Contains(t, out, "farm-animals")

	_, err = run(t, "--file", listsFile, "delete", "farm-animals")
	require.NoError(t, err)

	_, err = run(t, "--file", listsFile, "show", "farm-animals")
	assert.Error(t, err)

	_, err = run(t, "--file", listsFile, "add", "Empty", filepath.Join(dir, "missing.txt"))
	assert.Error(t, err)
}

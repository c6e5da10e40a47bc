package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()

	var stdout bytes.Buffer
	cmd := newRootCmd(strings.NewReader(stdin), &stdout)
	// a nil slice makes cobra fall back to os.Args
	cmd.SetArgs(append([]string{}, args...))
	cmd.SetErr(&bytes.Buffer{})
	err := cmd.Execute()
	return stdout.String(), err
}

func TestRender_Stdin(t *testing.T) {
	out, err := execute(t, "# Pasta\n* **200g** spaghetti")

	require.NoError(t, err)
	assert.Equal(t, "<h1>Pasta</h1>\n<ul>\n  <li><strong>200g</strong> spaghetti</li>\n</ul>\n", out)
}

func TestRender_FilesInOrder(t *testing.T) {
	dir := t.TempDir()
	first := filepath.Join(dir, "a.md")
	second := filepath.Join(dir, "b.md")
	require.NoError(t, os.WriteFile(first, []byte("## One"), 0o600))
	require.NoError(t, os.WriteFile(second, []byte("## Two"), 0o600))

	out, err := execute(t, "", first, second)

	require.NoError(t, err)
	assert.Equal(t, "<h2>One</h2>\n<h2>Two</h2>\n", out)
}

func TestRender_WrapAndOutputFile(t *testing.T) {
	target := filepath.Join(t.TempDir(), "out.html")

	out, err := execute(t, "hello", "--wrap", "--title", "Soup & Bread", "-o", target)

	require.NoError(t, err)
	assert.Empty(t, out)

	data, err := os.ReadFile(target)
	require.NoError(t, err)
	html := string(data)
	assert.True(t, strings.HasPrefix(html, "<!DOCTYPE html>\n"))
	assert.Contains(t, html, "<title>Soup &amp; Bread</title>")
	assert.Contains(t, html, "<body>\n<p>hello</p>\n</body>")
}

func TestRender_MissingFile(t *testing.T) {
	_, err := execute(t, "", filepath.Join(t.TempDir(), "nope.md"))

	assert.Error(t, err)
}

package main

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) string {
	t.Helper()
	out := &bytes.Buffer{}
	rootCmd.SetOut(out)
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetArgs(args)
	require.NoError(t, rootCmd.Execute())
	return out.String()
}

func TestBrowse(t *testing.T) {
	out := execute(t, "browse", "laptops",
		"--data-dir", t.TempDir(),
		"--brand", "Dell", "--brand", "ASUS",
		"--ram", "16GB",
		"--sort", "price-high",
		"--layout", "list",
	)
	xps := bytes.Index([]byte(out), []byte("Dell XPS 13"))
	g14 := bytes.Index([]byte(out), []byte("ASUS ROG Zephyrus G14"))
	require.NotEqual(t, -1, xps)
	require.NotEqual(t, -1, g14)
	assert.Less(t, g14, xps, "highest price first")
	assert.Contains(t, out, "2 products")
	assert.NotContains(t, out, "MacBook")
}

func TestCategories(t *testing.T) {
	out := execute(t, "categories", "--data-dir", t.TempDir())
	assert.Contains(t, out, "laptops")
	assert.Contains(t, out, "Accessories")
}

func TestSeed(t *testing.T) {
	dir := t.TempDir()
	out := execute(t, "seed", "--data-dir", dir)
	assert.Contains(t, out, "wrote 29 products")
	assert.FileExists(t, filepath.Join(dir, "catalog.json.gz"))
	assert.FileExists(t, filepath.Join(dir, "settings.json"))

	out = execute(t, "categories", "--data-dir", dir)
	assert.Contains(t, out, "laptops")
}

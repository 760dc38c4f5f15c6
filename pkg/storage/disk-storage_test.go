package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/matst80/slask-storefront/pkg/catalog"
	"github.com/matst80/slask-storefront/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadCatalogFallsBackToEmbedded(t *testing.T) {
	d := NewDiskStorage(t.TempDir())
	c, err := d.LoadCatalog()
	require.NoError(t, err)
	def, err := catalog.Default()
	require.NoError(t, err)
	assert.Equal(t, def.Len(), c.Len())
}

func TestLoadPlainCatalog(t *testing.T) {
	dir := t.TempDir()
	data := `[{"id":7,"name":"Tiny TV","category":"tvs","brand":"LG","price":19900}]`
	require.NoError(t, os.WriteFile(filepath.Join(dir, catalogFile), []byte(data), 0o644))

	c, err := NewDiskStorage(dir).LoadCatalog()
	require.NoError(t, err)
	require.Equal(t, 1, c.Len())
	p, ok := c.Get(7)
	require.True(t, ok)
	assert.Equal(t, "LG", p.Brand)
}

func TestGzippedCatalogRoundtrip(t *testing.T) {
	d := NewDiskStorage(t.TempDir())
	c, err := catalog.New([]types.Product{
		{Id: 1, Name: "A", Category: types.Phones, Brand: "Apple", Price: 99900},
		{Id: 2, Name: "B", Category: types.Phones, Brand: "Google", Price: 59900},
	})
	require.NoError(t, err)
	require.NoError(t, d.SaveCatalog(c))

	loaded, err := d.LoadCatalog()
	require.NoError(t, err)
	assert.Equal(t, c.All(), loaded.All())

	leftovers, _ := filepath.Glob(filepath.Join(d.RootFolder, "*.tmp-*"))
	assert.Empty(t, leftovers)
}

func TestInvalidCatalogOnDisk(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, catalogFile), []byte(`[{"id":1,"category":"fridges","price":1}]`), 0o644))
	_, err := NewDiskStorage(dir).LoadCatalog()
	assert.ErrorIs(t, err, types.ErrInvalidProduct)
}

func TestSettings(t *testing.T) {
	d := NewDiskStorage(t.TempDir())

	settings := types.DefaultSettings()
	require.NoError(t, d.LoadSettings(settings))
	assert.Equal(t, types.DefaultSort, settings.GetDefaultSort())

	settings.DefaultSort = types.SortRating
	settings.PopularityRules = types.JsonTypes{&types.OutOfStockRule{NoStockValue: -10}}
	require.NoError(t, d.SaveSettings(settings))

	loaded := types.DefaultSettings()
	require.NoError(t, d.LoadSettings(loaded))
	assert.Equal(t, types.SortRating, loaded.GetDefaultSort())
	rules := loaded.Rules()
	require.Len(t, rules, 1)
	assert.Equal(t, -10.0, rules[0].GetValue(&types.Product{}))
}

func TestSaveCreatesFolder(t *testing.T) {
	d := NewDiskStorage(filepath.Join(t.TempDir(), "nested", "data"))
	require.NoError(t, d.SaveSettings(types.DefaultSettings()))
	_, err := os.Stat(filepath.Join(d.RootFolder, settingsFile))
	assert.NoError(t, err)
}

package storage

import (
	"compress/gzip"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/bytedance/sonic"
	"github.com/matst80/slask-storefront/pkg/catalog"
	"github.com/matst80/slask-storefront/pkg/types"
	"github.com/rs/zerolog/log"
)

const catalogFile = "catalog.json"
const gzippedCatalogFile = "catalog.json.gz"
const settingsFile = "settings.json"

// LoadCatalog reads the product catalog from the data folder. A gzipped
// catalog wins over a plain one; with neither present the embedded catalog
// is used.
func (d *DiskStorage) LoadCatalog() (*catalog.Catalog, error) {
	var products []types.Product
	err := d.LoadGzippedJson(&products, gzippedCatalogFile)
	if errors.Is(err, fs.ErrNotExist) {
		err = d.LoadJson(&products, catalogFile)
	}
	if errors.Is(err, fs.ErrNotExist) {
		log.Info().Str("folder", d.RootFolder).Msg("no catalog on disk, using embedded catalog")
		return catalog.Default()
	}
	if err != nil {
		return nil, err
	}
	log.Info().Int("products", len(products)).Str("folder", d.RootFolder).Msg("loaded catalog")
	return catalog.New(products)
}

func (d *DiskStorage) SaveCatalog(c *catalog.Catalog) error {
	return d.SaveGzippedJson(c.All(), gzippedCatalogFile)
}

// LoadSettings fills settings from disk. A missing file leaves settings
// untouched.
func (d *DiskStorage) LoadSettings(settings *types.Settings) error {
	settings.Lock()
	defer settings.Unlock()
	err := d.LoadJson(settings, settingsFile)
	if errors.Is(err, fs.ErrNotExist) {
		log.Debug().Msg("no settings file, keeping defaults")
		return nil
	}
	return err
}

func (d *DiskStorage) SaveSettings(settings *types.Settings) error {
	settings.RLock()
	defer settings.RUnlock()
	return d.SaveJson(settings, settingsFile)
}

func create(name string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(name), 0o755); err != nil {
		return nil, err
	}
	return os.Create(name)
}

func (p *DiskStorage) SaveGzippedJson(data any, filename string) error {
	fileName, tmpFileName := p.GetFileName(filename)

	file, err := create(tmpFileName)
	if err != nil {
		return err
	}

	zipWriter := gzip.NewWriter(file)
	err = sonic.ConfigDefault.NewEncoder(zipWriter).Encode(data)
	if closeErr := zipWriter.Close(); err == nil {
		err = closeErr
	}
	if closeErr := file.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		os.Remove(tmpFileName)
		return err
	}

	if err = os.Rename(tmpFileName, fileName); err != nil {
		return err
	}
	log.Debug().Str("file", fileName).Msg("saved file")
	return nil
}

func (p *DiskStorage) LoadGzippedJson(data any, filename string) error {
	name, _ := p.GetFileName(filename)
	file, err := os.Open(name)
	if err != nil {
		return err
	}
	defer file.Close()

	zipReader, err := gzip.NewReader(file)
	if err != nil {
		return err
	}
	defer zipReader.Close()

	err = sonic.ConfigDefault.NewDecoder(zipReader).Decode(data)
	if err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

func (p *DiskStorage) SaveJson(data any, name string) error {
	fileName, tmpFileName := p.GetFileName(name)

	file, err := create(tmpFileName)
	if err != nil {
		return err
	}

	err = sonic.ConfigDefault.NewEncoder(file).Encode(data)
	if closeErr := file.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		os.Remove(tmpFileName)
		return err
	}

	if err = os.Rename(tmpFileName, fileName); err != nil {
		return err
	}
	log.Debug().Str("file", fileName).Msg("saved file")
	return nil
}

func (p *DiskStorage) LoadJson(data any, filename string) error {
	name, _ := p.GetFileName(filename)
	file, err := os.Open(name)
	if err != nil {
		return err
	}
	defer file.Close()

	err = sonic.ConfigDefault.NewDecoder(file).Decode(data)
	if err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

package main

import (
	"os"

	"github.com/matst80/slask-storefront/pkg/catalog"
	"github.com/matst80/slask-storefront/pkg/common"
	"github.com/matst80/slask-storefront/pkg/storage"
	"github.com/matst80/slask-storefront/pkg/types"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	configFile string
	dataDir    string
	verbose    bool
	jsonLogs   bool
)

var rootCmd = &cobra.Command{
	Use:   "storefront",
	Short: "Faceted filter and sort storefront",
	Long: `Serve or browse an electronics catalog with faceted filters,
price range narrowing and sorting.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		common.InitLogger(cmd.ErrOrStderr(), !jsonLogs, verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "yaml config file")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "folder with catalog and settings (overrides config)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&jsonLogs, "json-logs", false, "log json instead of console output")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(browseCmd)
	rootCmd.AddCommand(categoriesCmd)
	rootCmd.AddCommand(publishSettingsCmd)
	rootCmd.AddCommand(seedCmd)
}

type app struct {
	config   common.Config
	storage  *storage.DiskStorage
	catalog  *catalog.Catalog
	settings *types.Settings
}

// loadApp reads config, catalog and settings. Settings from the data folder
// are applied first so the config file can override them.
func loadApp() (*app, error) {
	cfg, err := common.LoadConfig(configFile)
	if err != nil {
		return nil, err
	}
	if dataDir != "" {
		cfg.DataDir = dataDir
	}
	diskStorage := storage.NewDiskStorage(cfg.DataDir)
	c, err := diskStorage.LoadCatalog()
	if err != nil {
		return nil, err
	}
	settings := types.DefaultSettings()
	if err = diskStorage.LoadSettings(settings); err != nil {
		log.Warn().Err(err).Msg("could not load settings from file")
	}
	if err = cfg.ApplySettings(settings); err != nil {
		return nil, err
	}
	return &app{
		config:   cfg,
		storage:  diskStorage,
		catalog:  c,
		settings: settings,
	}, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

package main

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Write the loaded catalog and effective settings to the data folder",
	Long: `Seed writes the catalog currently in use (the embedded one when the data
folder is empty) as gzipped json, together with the effective settings, so
they can be edited and served from disk.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := loadApp()
		if err != nil {
			return err
		}
		if err = a.storage.SaveCatalog(a.catalog); err != nil {
			return err
		}
		if err = a.storage.SaveSettings(a.settings); err != nil {
			return err
		}
		log.Info().Str("folder", a.storage.RootFolder).Str("fingerprint", a.catalog.Fingerprint()).Msg("data folder seeded")
		fmt.Fprintf(cmd.OutOrStdout(), "wrote %d products to %s\n", a.catalog.Len(), a.storage.RootFolder)
		return nil
	},
}

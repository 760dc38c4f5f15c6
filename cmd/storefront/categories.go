package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "List categories with product counts",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := loadApp()
		if err != nil {
			return err
		}
		for _, c := range a.catalog.Categories() {
			fmt.Fprintf(cmd.OutOrStdout(), "%-12s %-12s %d\n", c.Category, c.Label, c.Count)
		}
		return nil
	},
}

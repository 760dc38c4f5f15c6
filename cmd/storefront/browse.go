package main

import (
	"fmt"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/matst80/slask-storefront/pkg/render"
	"github.com/matst80/slask-storefront/pkg/server"
	"github.com/matst80/slask-storefront/pkg/storefront"
	"github.com/matst80/slask-storefront/pkg/types"
	"github.com/spf13/cobra"
)

var browseFlags = struct {
	filters server.FilterRequest
	min     int
	max     int
	width   int
	json    bool
}{}

var browseCmd = &cobra.Command{
	Use:   "browse [category]",
	Short: "Render a filtered category page in the terminal",
	Long: `Render a category page with the given filters applied.

Example:
  storefront browse laptops --brand Dell --ram 16GB --sort price-low --layout list`,
	Args: cobra.MaximumNArgs(1),
	RunE: runBrowse,
}

func init() {
	f := browseCmd.Flags()
	f.StringSliceVar(&browseFlags.filters.Brand, "brand", nil, "brand to include, repeatable")
	f.StringSliceVar(&browseFlags.filters.Category, "category", nil, "category to include when browsing all products")
	f.StringSliceVar(&browseFlags.filters.Processor, "processor", nil, "processor to include")
	f.StringSliceVar(&browseFlags.filters.Ram, "ram", nil, "ram size to include")
	f.StringSliceVar(&browseFlags.filters.Storage, "storage", nil, "storage size to include")
	f.IntVar(&browseFlags.min, "min", -1, "minimum price in minor units")
	f.IntVar(&browseFlags.max, "max", -1, "maximum price in minor units")
	f.StringVar((*string)(&browseFlags.filters.Sort), "sort", "", "sort key: "+sortKeys())
	f.StringVar((*string)(&browseFlags.filters.Layout), "layout", "grid", "grid or list")
	f.IntVar(&browseFlags.width, "width", 120, "terminal width")
	f.BoolVar(&browseFlags.json, "json", false, "print the view as json")
}

func sortKeys() string {
	keys := make([]string, len(types.SortKeys))
	for i, k := range types.SortKeys {
		keys[i] = string(k)
	}
	return strings.Join(keys, ", ")
}

func browseRequest() *server.FilterRequest {
	fr := browseFlags.filters
	if browseFlags.min >= 0 {
		fr.Min = &browseFlags.min
	}
	if browseFlags.max >= 0 {
		fr.Max = &browseFlags.max
	}
	return &fr
}

func runBrowse(cmd *cobra.Command, args []string) error {
	a, err := loadApp()
	if err != nil {
		return err
	}
	var category types.Category
	if len(args) == 1 && args[0] != "all" {
		if category, err = types.ParseCategory(args[0]); err != nil {
			return err
		}
	}

	fr := browseRequest()
	page, err := storefront.New(a.catalog, a.settings, nil).NewPage(category, storefront.WithLayout(fr.GetLayout()))
	if err != nil {
		return err
	}
	defer page.Close()
	if err = fr.Apply(page.Store); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if browseFlags.json {
		return sonic.ConfigDefault.NewEncoder(out).Encode(page.View())
	}
	_, err = fmt.Fprint(out, render.NewRenderer(browseFlags.width).Render(page.View()))
	return err
}

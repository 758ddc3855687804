package main

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/phanxgames/drapery"
)

type catalogOptions struct {
	jsonOutput bool
}

func newCatalogCmd(root *rootFlags) *cobra.Command {
	opts := &catalogOptions{}
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "List the colors, designs and sizes on offer",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd, root, nil)
			if err != nil {
				return err
			}
			cat, err := loadCatalog(cfg)
			if err != nil {
				return err
			}
			if opts.jsonOutput {
				return renderCatalogJSON(cmd, cat)
			}
			return renderCatalogTable(cmd, cat)
		},
	}
	cmd.Flags().BoolVar(&opts.jsonOutput, "json", false, "Output in JSON format")
	return cmd
}

type catalogColorJSON struct {
	ID          string  `json:"id"`
	Label       string  `json:"label"`
	Hex         string  `json:"hex"`
	TintOpacity float64 `json:"tint_opacity"`
}

type catalogDesignJSON struct {
	ID       string `json:"id"`
	Label    string `json:"label"`
	Subtitle string `json:"subtitle"`
	Pattern  string `json:"pattern,omitempty"`
}

type catalogSizeJSON struct {
	ID             string  `json:"id"`
	Label          string  `json:"label"`
	Description    string  `json:"description"`
	WidthFraction  float64 `json:"width_fraction"`
	HeightFraction float64 `json:"height_fraction"`
}

type catalogJSON struct {
	Colors  []catalogColorJSON  `json:"colors"`
	Designs []catalogDesignJSON `json:"designs"`
	Sizes   []catalogSizeJSON   `json:"sizes"`
	Default string              `json:"default"`
}

func renderCatalogJSON(cmd *cobra.Command, cat *drapery.Catalog) error {
	var out catalogJSON
	for _, c := range cat.Colors() {
		out.Colors = append(out.Colors, catalogColorJSON{ID: c.ID, Label: c.Label, Hex: c.Hex, TintOpacity: drapery.TintOpacity(c)})
	}
	for _, d := range cat.Designs() {
		j := catalogDesignJSON{ID: d.ID, Label: d.Label, Subtitle: d.Subtitle}
		if d.HasPattern() {
			j.Pattern = string(d.Pattern.Kind)
		}
		out.Designs = append(out.Designs, j)
	}
	for _, s := range cat.Sizes() {
		out.Sizes = append(out.Sizes, catalogSizeJSON{
			ID: s.ID, Label: s.Label, Description: s.Description,
			WidthFraction: s.WidthFraction, HeightFraction: s.HeightFraction,
		})
	}
	out.Default = cat.DefaultSelection().Summary()

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func renderCatalogTable(cmd *cobra.Command, cat *drapery.Catalog) error {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)

	fmt.Fprintln(w, "COLOR\tLABEL\tHEX\tTINT")
	for _, c := range cat.Colors() {
		fmt.Fprintf(w, "%s\t%s\t%s\t%.2f\n", c.ID, c.Label, c.Hex, drapery.TintOpacity(c))
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "DESIGN\tLABEL\tSUBTITLE\tPATTERN")
	for _, d := range cat.Designs() {
		kind := "-"
		if d.HasPattern() {
			kind = string(d.Pattern.Kind)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", d.ID, d.Label, d.Subtitle, kind)
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "SIZE\tLABEL\tDESCRIPTION\tFABRIC")
	for _, s := range cat.Sizes() {
		fmt.Fprintf(w, "%s\t%s\t%s\t%.0f%% x %.0f%%\n", s.ID, s.Label, s.Description, s.WidthFraction*100, s.HeightFraction*100)
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "default: %s\n", cat.DefaultSelection().Summary())
	return w.Flush()
}

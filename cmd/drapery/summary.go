package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/phanxgames/drapery"
)

type summaryOptions struct {
	color  string
	design string
	size   string
}

func newSummaryCmd(root *rootFlags) *cobra.Command {
	opts := &summaryOptions{}
	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Print the order summary for a configuration",
		Long: "Applies the given choices to a fresh selection, starting from the catalog defaults,\n" +
			"and prints the line the order call to action receives.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd, root, nil)
			if err != nil {
				return err
			}
			cat, err := loadCatalog(cfg)
			if err != nil {
				return err
			}
			store := drapery.NewStore(cat)
			steps := []struct {
				category, id string
			}{
				{drapery.CategoryColor, opts.color},
				{drapery.CategoryDesign, opts.design},
				{drapery.CategorySize, opts.size},
			}
			for _, st := range steps {
				if st.id == "" {
					continue
				}
				if err := store.Select(st.category, st.id); err != nil {
					return fmt.Errorf("summary: %w", err)
				}
			}
			fmt.Fprintln(cmd.OutOrStdout(), store.Summary())
			return nil
		},
	}
	cmd.Flags().StringVar(&opts.color, "color", "", "Color id")
	cmd.Flags().StringVar(&opts.design, "design", "", "Design id")
	cmd.Flags().StringVar(&opts.size, "size", "", "Size id")
	return cmd
}

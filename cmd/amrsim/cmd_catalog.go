package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"amrsim/internal/catalog"
	"amrsim/internal/population"
)

func newCatalogCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "catalog",
		Short: "List the bacteria, drug and vaccine catalogs",
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			printList := func(title string, names []string) {
				fmt.Fprintf(out, "%s (%d):\n", title, len(names))
				for i, n := range names {
					fmt.Fprintf(out, "  %2d  %s\n", i, n)
				}
			}
			printList("bacteria", catalog.Bacteria())
			printList("drugs", catalog.Drugs())
			printList("vaccines", catalog.Vaccines())

			dims := make([]string, 0, population.NumDimensions)
			for d := population.Dimension(0); d < population.NumDimensions; d++ {
				dims = append(dims, d.String())
			}
			fmt.Fprintf(out, "resistance dimensions: %s\n", strings.Join(dims, ", "))
		},
	}
}

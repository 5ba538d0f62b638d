package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"amrsim/internal/config"
)

func newParamsCmd() *cobra.Command {
	var cfgDir string
	cmd := &cobra.Command{
		Use:   "params",
		Short: "Print the loaded parameter table",
		RunE: func(cmd *cobra.Command, args []string) error {
			params, _, err := config.LoadAll(cfgDir)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, k := range params.Keys() {
				v, _ := params.Get(k)
				fmt.Fprintf(out, "%-55s %g\n", k, v)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&cfgDir, "config", "assets", "config dir holding parameters.yaml")
	return cmd
}

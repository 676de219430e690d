package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"foxcap/internal/stream"
)

func newStreamCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "stream <series> <episode-number>",
		Short: "Print the stream URL recorded for an episode",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			number, err := strconv.Atoi(args[1])
			if err != nil || number < 1 {
				return fmt.Errorf("invalid episode number %q", args[1])
			}
			loaded, err := ctx.loadCatalog(cmd.Context())
			if err != nil {
				return err
			}
			resolved, err := stream.Lookup(cmd.Context(), stream.CatalogResolver{}, loaded, args[0], number)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), resolved.String())
			return nil
		},
	}
}

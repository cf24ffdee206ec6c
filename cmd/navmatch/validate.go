package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vitalvas/navmatch/routefile"
)

func newValidateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "validate FILE...",
		Short: "Check route files without matching anything",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			failed := 0
			for _, path := range args {
				f, err := routefile.Load(path, a.newMatcher())
				if err != nil {
					failed++
					a.logger.Error("invalid route file", "file", path, "error", err)
					fmt.Fprintf(cmd.OutOrStdout(), "FAIL %s: %v\n", path, err)
					continue
				}
				fmt.Fprintf(cmd.OutOrStdout(), "ok   %s (%d routes)\n", path, len(f.Routes))
			}

			if failed > 0 {
				return errors.New("validation failed")
			}
			return nil
		},
	}
}

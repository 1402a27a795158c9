package main

import (
	"fmt"

	"islandtracker/internal/config"

	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	var a *app
	root := &cobra.Command{
		Use:           "islandtracker",
		Short:         "Local-first client for the turnip price service",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(cmd.Context())
			if err != nil {
				return err
			}
			a, err = newApp(cmd.Context(), cfg, cmd.OutOrStdout())
			return err
		},
		PersistentPostRunE: func(*cobra.Command, []string) error {
			if a == nil {
				return nil
			}
			return a.Close()
		},
	}
	current := func() *app { return a }
	root.AddCommand(
		newProfileCmd(current),
		newWeekCmd(current),
		newPricesCmd(current),
		newFriendsCmd(current),
	)
	return root
}

// argKey is the single public key argument of the friend write commands.
func argKey(args []string) (string, error) {
	if len(args) != 1 || args[0] == "" {
		return "", fmt.Errorf("expected exactly one public key")
	}
	return args[0], nil
}

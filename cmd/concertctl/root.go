package main

import (
	"github.com/spf13/cobra"
)

func newRootCommand(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:           "concertctl",
		Short:         "Browse concerts and manage bookings",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init(cmd.Context(), cmd)
		},
	}
	root.PersistentFlags().StringVar(&a.apiURL, "api-url", "", "API base URL (overrides API_BASE_URL)")

	root.AddCommand(
		newLoginCommand(a),
		newRegisterCommand(a),
		newLogoutCommand(a),
		newMeCommand(a),
		newEventsCommand(a),
		newReserveCommand(a),
		newCancelCommand(a),
		newHistoryCommand(a),
		newStatsCommand(a),
	)
	return root
}

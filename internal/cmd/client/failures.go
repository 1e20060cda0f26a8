package client

import (
	"encoding/json"
	"fmt"

	wxclient "github.com/rhurkes/wx-storage/pkg/client"
	"github.com/rhurkes/wx-storage/pkg/wire"
	"github.com/spf13/cobra"
)

// NewFailuresCommand constructs the `failures` command group and subcommands.
func NewFailuresCommand(endpoint EndpointFunc) *cobra.Command {
	failuresCmd := &cobra.Command{Use: "failures", Short: "Fetch failure operations"}
	failuresCmd.AddCommand(
		newFailuresPutCommand(endpoint),
		newFailuresListCommand(endpoint),
	)
	return failuresCmd
}

// newFailuresPutCommand constructs the `failures put` subcommand.
func newFailuresPutCommand(endpoint EndpointFunc) *cobra.Command {
	putCmd := &cobra.Command{
		Use:   "put",
		Short: "Record a fetch failure",
		RunE: func(cmd *cobra.Command, _ []string) error {
			source, _ := cmd.Flags().GetString("source")
			reason, _ := cmd.Flags().GetString("reason")

			return withClient(cmd.Context(), endpoint, func(c *wxclient.Client) error {
				if err := c.PutFetchFailure(wire.FetchFailure{Source: source, Reason: reason}); err != nil {
					return err
				}
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "status:", "OK")
				return nil
			})
		},
	}
	putCmd.Flags().String("source", "", "Upstream source that failed")
	putCmd.Flags().String("reason", "", "Failure reason")
	return putCmd
}

// newFailuresListCommand constructs the `failures list` subcommand.
func newFailuresListCommand(endpoint EndpointFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List recent fetch failures, oldest first, one JSON object per line",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withClient(cmd.Context(), endpoint, func(c *wxclient.Client) error {
				ffs, err := c.FetchFailures()
				if err != nil {
					return err
				}

				enc := json.NewEncoder(cmd.OutOrStdout())
				for _, ff := range ffs {
					_ = enc.Encode(viewFailure(ff))
				}
				return nil
			})
		},
	}
}

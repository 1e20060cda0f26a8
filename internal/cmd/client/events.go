package client

import (
	"encoding/json"
	"fmt"

	wxclient "github.com/rhurkes/wx-storage/pkg/client"
	"github.com/rhurkes/wx-storage/pkg/wire"
	"github.com/spf13/cobra"
)

// NewEventsCommand constructs the `events` command group and subcommands.
func NewEventsCommand(endpoint EndpointFunc) *cobra.Command {
	eventsCmd := &cobra.Command{Use: "events", Short: "Event operations"}
	eventsCmd.AddCommand(
		newEventsPutCommand(endpoint),
		newEventsListCommand(endpoint),
	)
	return eventsCmd
}

// newEventsPutCommand constructs the `events put` subcommand.
func newEventsPutCommand(endpoint EndpointFunc) *cobra.Command {
	putCmd := &cobra.Command{
		Use:   "put",
		Short: "Ingest an event",
		RunE: func(cmd *cobra.Command, _ []string) error {
			typ, _ := cmd.Flags().GetString("type")
			data, _ := cmd.Flags().GetString("data")
			eventTS, _ := cmd.Flags().GetUint64("event-ts")

			return withClient(cmd.Context(), endpoint, func(c *wxclient.Client) error {
				stamp, err := c.PutEvent(wire.Event{EventTS: eventTS, EventType: typ, Data: data})
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "ingest_ts:", stamp)
				return nil
			})
		},
	}
	putCmd.Flags().String("type", "", "Event type")
	putCmd.Flags().String("data", "", "Event payload")
	putCmd.Flags().Uint64("event-ts", 0, "Source event time in unix micros (0 = unset)")
	return putCmd
}

// newEventsListCommand constructs the `events list` subcommand.
func newEventsListCommand(endpoint EndpointFunc) *cobra.Command {
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List events, oldest first, one JSON object per line",
		RunE: func(cmd *cobra.Command, _ []string) error {
			all, _ := cmd.Flags().GetBool("all")
			afterSet := cmd.Flags().Changed("after")
			after, _ := cmd.Flags().GetUint64("after")
			if all && afterSet {
				return fmt.Errorf("--all and --after are mutually exclusive")
			}

			return withClient(cmd.Context(), endpoint, func(c *wxclient.Client) error {
				var (
					evs []wire.Event
					err error
				)
				switch {
				case all:
					evs, err = c.AllEvents()
				case afterSet:
					evs, err = c.EventsAfter(after)
				default:
					evs, err = c.Events()
				}
				if err != nil {
					return err
				}

				enc := json.NewEncoder(cmd.OutOrStdout())
				for _, ev := range evs {
					_ = enc.Encode(viewEvent(ev))
				}
				return nil
			})
		},
	}
	listCmd.Flags().Bool("all", false, "Ignore the retention window")
	listCmd.Flags().Uint64("after", 0, "Resume after this ingest timestamp (unix micros)")
	return listCmd
}

package client

import (
	"fmt"

	wxclient "github.com/rhurkes/wx-storage/pkg/client"
	"github.com/spf13/cobra"
)

// NewKVCommand constructs the `kv` command group and subcommands.
func NewKVCommand(endpoint EndpointFunc) *cobra.Command {
	kvCmd := &cobra.Command{Use: "kv", Short: "Key/value operations"}
	kvCmd.AddCommand(
		newKVPutCommand(endpoint),
		newKVGetCommand(endpoint),
	)
	return kvCmd
}

// newKVPutCommand constructs the `kv put` subcommand.
func newKVPutCommand(endpoint EndpointFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "put <key> <value>",
		Short: "Store a value under a key",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(cmd.Context(), endpoint, func(c *wxclient.Client) error {
				if _, err := c.Put(args[0], []byte(args[1])); err != nil {
					return err
				}
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "status:", "OK")
				return nil
			})
		},
	}
}

// newKVGetCommand constructs the `kv get` subcommand.
func newKVGetCommand(endpoint EndpointFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "get <key>",
		Short: "Fetch the value stored under a key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(cmd.Context(), endpoint, func(c *wxclient.Client) error {
				val, err := c.Get(args[0])
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), string(val))
				return nil
			})
		},
	}
}

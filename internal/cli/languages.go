package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/toplangs/pkg/usage"
)

// languagesOpts holds the flags of the languages command.
type languagesOpts struct {
	client  clientOpts
	top     int
	ignore  []string
	jsonOut bool
}

// languagesCommand prints the aggregated language usage without rendering.
func (c *CLI) languagesCommand() *cobra.Command {
	var opts languagesOpts

	cmd := &cobra.Command{
		Use:   "languages",
		Short: "Print the aggregated language usage of your repositories",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			client, err := c.newClient(opts.client)
			if err != nil {
				return err
			}

			prog := newProgress(logger)
			spinner := newSpinnerWithContext(ctx, "Fetching repositories...")
			spinner.Start()
			u, err := c.newRunner(client).Fetch(ctx)
			spinner.Stop()
			if err != nil {
				return err
			}
			prog.done(fmt.Sprintf("Aggregated %d languages", len(u)))

			top := opts.top
			if top <= 0 {
				top = len(u)
			}
			entries := usage.Rank(u, top, usage.NewSet(opts.ignore...))

			if opts.jsonOut {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(entries)
			}
			fmt.Fprintln(cmd.OutOrStdout(), rankingTable(entries, u.Total()))
			printDetail("%s across %d languages", formatBytes(u.Total()), len(u))
			return nil
		},
	}

	opts.client.register(cmd)
	cmd.Flags().IntVar(&opts.top, "top", 0, "only print the largest N languages (0 prints all)")
	cmd.Flags().StringSliceVar(&opts.ignore, "ignore", nil, "languages to leave out")
	cmd.Flags().BoolVar(&opts.jsonOut, "json", false, "print JSON instead of a table")

	return cmd
}

// whoamiCommand prints the login the token belongs to.
func (c *CLI) whoamiCommand() *cobra.Command {
	var opts clientOpts

	cmd := &cobra.Command{
		Use:   "whoami",
		Short: "Print the GitHub login of the token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := c.newClient(opts)
			if err != nil {
				return err
			}
			login, err := client.Login(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), login)
			return nil
		},
	}

	opts.register(cmd)
	return cmd
}

package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"go.trai.ch/modcache/internal/app"
	"go.trai.ch/modcache/internal/core/domain"
	"go.trai.ch/zerr"
)

func (c *CLI) newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run <program> <export> [args...]",
		Short: "Call an exported function, compiling the program only on a cache miss",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			noCache, _ := cmd.Flags().GetBool("no-cache")
			stats, _ := cmd.Flags().GetBool("stats")

			callArgs, err := parseArgs(args[2:])
			if err != nil {
				return err
			}

			res, err := c.app.Run(cmd.Context(), args[0], args[1], callArgs, app.RunOptions{
				NoCache: noCache,
			})
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintln(cmd.OutOrStdout(), res.Value)
			if stats {
				source := "compiled"
				if res.CacheHit {
					source = "cache"
				}
				_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "module: %s\ngas:    %d\n", source, res.GasUsed)
			}
			return nil
		},
	}
	cmd.Flags().BoolP("no-cache", "n", false, "Bypass the module cache and always compile")
	cmd.Flags().BoolP("stats", "s", false, "Print cache and gas statistics to stderr")
	return cmd
}

func parseArgs(args []string) ([]int64, error) {
	values := make([]int64, 0, len(args))
	for _, arg := range args {
		v, err := strconv.ParseInt(arg, 0, 64)
		if err != nil {
			return nil, zerr.With(zerr.Wrap(domain.ErrInvalidArgument, ""), "arg", arg)
		}
		values = append(values, v)
	}
	return values, nil
}

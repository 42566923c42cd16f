package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (c *CLI) newChecksumCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "checksum <program>",
		Short: "Print the cache key of a program",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			checksum, err := c.app.Checksum(args[0])
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), checksum.Hex())
			return nil
		},
	}
}

func (c *CLI) newStoreCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "store <program>",
		Short: "Compile a program and store the module in the cache",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := c.app.Store(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, "%s stored %s %s\n",
				checkMark(out), res.Checksum.Hex(), dim(out, "("+formatSize(res.Size)+")"))
			return nil
		},
	}
}

func (c *CLI) newLoadCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "load <checksum>",
		Short: "Load a module from the cache and describe it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := c.app.Load(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, "checksum: %s\n", res.Checksum.Hex())
			_, _ = fmt.Fprintf(out, "size:     %s\n", formatSize(res.Size))
			_, _ = fmt.Fprintf(out, "exports:  %s\n", joinOrNone(res.Exports))
			return nil
		},
	}
}

func (c *CLI) newRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "rm <checksum>",
		Aliases: []string{"remove"},
		Short:   "Remove a module from the cache",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			existed, err := c.app.Remove(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if existed {
				_, _ = fmt.Fprintf(out, "%s removed %s\n", checkMark(out), args[0])
			} else {
				_, _ = fmt.Fprintf(out, "not cached %s\n", args[0])
			}
			return nil
		},
	}
}

func (c *CLI) newWarmCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "warm <program>...",
		Short: "Compile and store several programs concurrently",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			results, err := c.app.Warm(cmd.Context(), args)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, res := range results {
				_, _ = fmt.Fprintf(out, "%s %s  %s %s\n",
					checkMark(out), res.Checksum.Hex(), res.Path, dim(out, "("+formatSize(res.Size)+")"))
			}
			return nil
		},
	}
}

func (c *CLI) newStatCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stat",
		Short: "Show cache location, entry count and size",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			stats, err := c.app.Stat(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, "path:    %s\n", stats.BasePath)
			_, _ = fmt.Fprintf(out, "version: %s\n", stats.Version)
			_, _ = fmt.Fprintf(out, "entries: %d\n", stats.Entries)
			_, _ = fmt.Fprintf(out, "size:    %s\n", formatSize(stats.TotalSize))
			_, _ = fmt.Fprintf(out, "stale:   %s\n", joinOrNone(stats.Stale))
			return nil
		},
	}
}

func (c *CLI) newPruneCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "prune",
		Short: "Delete cache partitions written by other engine builds",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			removed, err := c.app.Prune(cmd.Context())
			out := cmd.OutOrStdout()
			for _, name := range removed {
				_, _ = fmt.Fprintf(out, "%s removed %s\n", checkMark(out), name)
			}
			if err != nil {
				return err
			}
			if len(removed) == 0 {
				_, _ = fmt.Fprintln(out, "nothing to prune")
			}
			return nil
		},
	}
}

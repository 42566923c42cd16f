package commands

import (
	"io"
	"strings"

	"github.com/dustin/go-humanize"
	"go.trai.ch/modcache/internal/ui/output"
	"go.trai.ch/modcache/internal/ui/style"
)

func checkMark(w io.Writer) string {
	return output.Colorize(output.New(w), style.Check, string(style.Green))
}

func dim(w io.Writer, s string) string {
	return output.Colorize(output.New(w), s, string(style.Slate))
}

//nolint:gosec // Sizes are never negative.
func formatSize(size int64) string {
	return humanize.IBytes(uint64(size))
}

func joinOrNone(items []string) string {
	if len(items) == 0 {
		return "none"
	}
	return strings.Join(items, ", ")
}

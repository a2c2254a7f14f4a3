package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/meigma/flume"
)

var joinCmd = &cobra.Command{
	Use:   "join <dst> <part>...",
	Short: "Concatenate part files into one stream",
	Long: `Join streams the given part files, in order, into dst. Use "-" to
write to stdout.

Parts are loaded lazily, one at a time, so memory use is bounded by the
largest part. Empty parts are skipped.

Examples:
  flume join whole.bin part-00 part-01 part-02
  flume join - chunk-*.dat > whole.dat`,
	Args: cobra.MinimumNArgs(2),
	RunE: runJoin,
}

func init() {
	rootCmd.AddCommand(joinCmd)
}

func runJoin(_ *cobra.Command, args []string) error {
	dstPath, parts := args[0], args[1:]
	logger := newLogger()

	dst, err := openDest(dstPath)
	if err != nil {
		return err
	}
	defer dst.Close()

	// The part sequence is pulled one file at a time. A read failure ends
	// the sequence; the error surfaces after the copy returns.
	var readErr error
	i := 0
	next := func() ([]byte, bool) {
		if readErr != nil || i >= len(parts) {
			return nil, false
		}
		part := parts[i]
		i++

		data, err := os.ReadFile(part) //nolint:gosec // G304: part is a user-provided CLI argument
		if err != nil {
			readErr = err
			return nil, false
		}
		logger.Debug("loaded part", "part", part, "size", len(data))
		return data, true
	}

	start := time.Now()
	written, err := flume.CopyUntil(dst, flume.NewChunkReader(next), nil)
	if err == nil {
		err = readErr
	}
	if err == nil {
		err = dst.Close()
	}
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "Joined %d parts (%s) in %s\n",
		len(parts), humanize.IBytes(uint64(written)), time.Since(start).Round(time.Millisecond))
	return nil
}

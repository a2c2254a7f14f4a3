package cli

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/meigma/flume"
	"github.com/meigma/flume/internal/progress"
)

var (
	cpMaxBytes   string
	cpTimeout    time.Duration
	cpBufferSize string
	cpCompress   string
)

var cpCmd = &cobra.Command{
	Use:   "cp <src> <dst>",
	Short: "Copy a stream with an optional stop condition",
	Long: `Cp copies src to dst until the source is exhausted, a byte limit is
reached, or a timeout expires. Use "-" for stdin or stdout.

The stop condition is checked between buffer-sized rounds, so a byte
limit may overshoot by up to one buffer. Pick --buffer-size accordingly
when a tight cutoff matters.

Examples:
  flume cp big.log excerpt.log --max-bytes 4MiB
  flume cp - sample.bin --timeout 5s < /dev/urandom
  flume cp data.tar data.tar.zst --compress zstd`,
	Args: cobra.ExactArgs(2),
	RunE: runCp,
}

func init() {
	cpCmd.Flags().StringVar(&cpMaxBytes, "max-bytes", "", "Stop after at least this many bytes (e.g. 4MiB)")
	cpCmd.Flags().DurationVar(&cpTimeout, "timeout", 0, "Stop after this duration")
	cpCmd.Flags().StringVar(&cpBufferSize, "buffer-size", "", "Scratch buffer size (e.g. 8KiB)")
	cpCmd.Flags().StringVar(&cpCompress, "compress", "none", "Compress output: none, gzip, or zstd")
	rootCmd.AddCommand(cpCmd)
}

func runCp(_ *cobra.Command, args []string) error {
	srcPath, dstPath := args[0], args[1]
	logger := newLogger()

	maxBytes, err := parseSize(cpMaxBytes)
	if err != nil {
		return fmt.Errorf("invalid --max-bytes: %w", err)
	}

	buf, err := copyBuffer()
	if err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()

	src, total, err := openSource(srcPath)
	if err != nil {
		return err
	}
	defer src.Close()

	dst, err := openDest(dstPath)
	if err != nil {
		return err
	}
	defer dst.Close()

	sink, closeSink, err := compressSink(dst)
	if err != nil {
		return err
	}

	callback, finish := newCopyProgress("Copying")
	reader := progress.NewReader(src, "cp", total, callback)
	counter := progress.NewWriter(sink)

	var deadline time.Time
	if cpTimeout > 0 {
		deadline = time.Now().Add(cpTimeout)
	}

	var stop flume.StopFunc
	if maxBytes > 0 || cpTimeout > 0 {
		stop = func(io.Writer, io.Reader) bool {
			if ctx.Err() != nil {
				return true
			}
			if maxBytes > 0 && counter.Count() >= maxBytes {
				return true
			}
			return !deadline.IsZero() && time.Now().After(deadline)
		}
	} else {
		stop = func(io.Writer, io.Reader) bool { return ctx.Err() != nil }
	}

	start := time.Now()
	written, err := flume.CopyUntilBuffer(counter, reader, buf, stop)
	finish()
	if err == nil {
		err = closeSink()
	}
	if err == nil {
		err = ctx.Err()
	}
	if err != nil {
		return err
	}

	elapsed := time.Since(start)
	logger.Debug("copy finished", "written", written, "elapsed", elapsed)
	fmt.Fprintf(os.Stderr, "Copied %s in %s\n",
		humanize.IBytes(uint64(written)), elapsed.Round(time.Millisecond))
	return nil
}

// openSource opens path for reading. "-" means stdin.
// The second return value is the expected size, or -1 if unknown.
func openSource(path string) (io.ReadCloser, int64, error) {
	if path == "-" {
		return io.NopCloser(os.Stdin), -1, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, 0, err
	}

	total := int64(-1)
	if info, err := f.Stat(); err == nil && info.Mode().IsRegular() {
		total = info.Size()
	}
	return f, total, nil
}

// openDest opens path for writing. "-" means stdout.
func openDest(path string) (io.WriteCloser, error) {
	if path == "-" {
		return nopWriteCloser{os.Stdout}, nil
	}
	return os.Create(path) //nolint:gosec // G304: path is a user-provided CLI argument
}

// compressSink wraps dst according to --compress. The returned close
// function flushes the compressor; it does not close dst itself.
func compressSink(dst io.Writer) (io.Writer, func() error, error) {
	switch cpCompress {
	case "", "none":
		return dst, func() error { return nil }, nil
	case "gzip":
		zw := gzip.NewWriter(dst)
		return zw, zw.Close, nil
	case "zstd":
		zw, err := zstd.NewWriter(dst)
		if err != nil {
			return nil, nil, err
		}
		return zw, zw.Close, nil
	default:
		return nil, nil, fmt.Errorf("unknown compression %q (want none, gzip, or zstd)", cpCompress)
	}
}

// copyBuffer allocates the scratch buffer from the --buffer-size flag,
// falling back to the configured default.
func copyBuffer() ([]byte, error) {
	size := cpBufferSize
	if size == "" {
		size = viper.GetString("copy.buffer-size")
	}

	n, err := parseSize(size)
	if err != nil {
		return nil, fmt.Errorf("invalid buffer size: %w", err)
	}
	if n <= 0 {
		return nil, nil // library default
	}
	return make([]byte, n), nil
}

// parseSize parses a humanized byte size. Empty means zero.
func parseSize(s string) (int64, error) {
	if s == "" {
		return 0, nil
	}
	n, err := humanize.ParseBytes(s)
	if err != nil {
		return 0, err
	}
	return int64(n), nil
}

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }

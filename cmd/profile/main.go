//go:build profiling
// +build profiling

package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"runtime/pprof"
	"runtime/trace"
	"strings"
	"time"

	"github.com/felixge/fgprof"
	"github.com/grafana/pyroscope-go"

	"github.com/meigma/flume"
)

type profileKind string

const (
	profileCPU   profileKind = "cpu"
	profileFG    profileKind = "fgprof"
	profileTrace profileKind = "trace"
	profileNone  profileKind = "none"
)

const (
	modeCopy  = "copy"
	modeChunk = "chunk"
	modeBoth  = "both"
)

func main() {
	var (
		mode      = flag.String("mode", "copy", "mode: copy, chunk, or both")
		totalSize = flag.Int64("bytes", 256<<20, "bytes to stream per iteration")
		bufSize   = flag.Int("buffer", flume.DefaultBufferSize, "copy scratch buffer size")
		chunkSize = flag.Int("chunk-size", 4096, "chunk size for chunk mode")
		repeat    = flag.Int("repeat", 1, "number of iterations")
		profile   = flag.String("profile", "cpu", "profile type: cpu, fgprof, trace, none")
		outDir    = flag.String("out", "profiles", "output directory for profiles")
		label     = flag.String("label", "", "label suffix for profile files")
		pyroAddr  = flag.String("pyroscope", "", "Pyroscope server URL (enables streaming, disables local profiles)")
	)
	flag.Parse()

	runID := time.Now().UTC().Format("20060102T150405Z")

	modeValue := strings.ToLower(*mode)
	if modeValue != modeCopy && modeValue != modeChunk && modeValue != modeBoth {
		log.Fatalf("invalid mode %q (expected %s, %s, or %s)", *mode, modeCopy, modeChunk, modeBoth)
	}

	profileKindValue := profileKind(strings.ToLower(*profile))
	if !isValidProfile(profileKindValue) {
		log.Fatalf("invalid profile %q (expected cpu, fgprof, trace, none)", *profile)
	}
	if *repeat < 1 {
		log.Fatalf("repeat must be >= 1")
	}

	// When Pyroscope is enabled, stream profiles instead of writing locally
	var pyroProfiler *pyroscope.Profiler
	if *pyroAddr != "" {
		profiler, err := pyroscope.Start(pyroscope.Config{
			ApplicationName:   "flume-profile",
			ServerAddress:     *pyroAddr,
			BasicAuthUser:     os.Getenv("PYROSCOPE_BASIC_AUTH_USER"),
			BasicAuthPassword: os.Getenv("PYROSCOPE_BASIC_AUTH_PASSWORD"),
			// Use a short upload rate since profiling runs are brief
			UploadRate: 5 * time.Second,
			Logger:     pyroscope.StandardLogger,
			Tags: map[string]string{
				"mode":   modeValue,
				"run_id": runID,
			},
			ProfileTypes: []pyroscope.ProfileType{
				pyroscope.ProfileCPU,
				pyroscope.ProfileAllocObjects,
				pyroscope.ProfileAllocSpace,
				pyroscope.ProfileInuseObjects,
				pyroscope.ProfileInuseSpace,
			},
		})
		if err != nil {
			log.Fatalf("start pyroscope: %v", err)
		}
		pyroProfiler = profiler
		log.Printf("streaming profiles to %s", *pyroAddr)
	}

	labelParts := []string{modeValue}
	if *label != "" {
		labelParts = append(labelParts, *label)
	}
	labelParts = append(labelParts, runID)
	labelValue := strings.Join(labelParts, "_")

	var stopProfile func() error
	if *pyroAddr == "" {
		if err := os.MkdirAll(*outDir, 0o755); err != nil {
			log.Fatalf("create profile output dir: %v", err)
		}
		var err error
		stopProfile, err = startProfile(profileKindValue, *outDir, labelValue)
		if err != nil {
			log.Fatalf("start profile: %v", err)
		}
	}

	for i := range *repeat {
		if *repeat > 1 {
			log.Printf("iteration %d/%d", i+1, *repeat)
		}
		if modeValue == modeCopy || modeValue == modeBoth {
			start := time.Now()
			written := runCopy(*totalSize, *bufSize)
			log.Printf("copy complete: %d bytes in %s", written, time.Since(start))
		}
		if modeValue == modeChunk || modeValue == modeBoth {
			start := time.Now()
			written := runChunk(*totalSize, *bufSize, *chunkSize)
			log.Printf("chunk complete: %d bytes in %s", written, time.Since(start))
		}
	}

	// Stop profiling - either Pyroscope or local
	if pyroProfiler != nil {
		if err := pyroProfiler.Stop(); err != nil {
			log.Fatalf("stop pyroscope: %v", err)
		}
		log.Printf("pyroscope profiling stopped")
	} else {
		if stopErr := stopProfile(); stopErr != nil {
			log.Fatalf("stop profile: %v", stopErr)
		}
		if err := writeHeapProfile(*outDir, labelValue); err != nil {
			log.Fatalf("write heap profile: %v", err)
		}
	}
}

// zeroReader is an infinite source of zero bytes.
type zeroReader struct{}

func (zeroReader) Read(p []byte) (int, error) {
	clear(p)
	return len(p), nil
}

// countWriter discards its input, counting bytes.
type countWriter struct {
	n int64
}

func (w *countWriter) Write(p []byte) (int, error) {
	w.n += int64(len(p))
	return len(p), nil
}

// runCopy drives CopyUntil over an infinite source up to limit bytes.
func runCopy(limit int64, bufSize int) int64 {
	sink := &countWriter{}
	_, err := flume.CopyUntilBuffer(sink, zeroReader{}, make([]byte, bufSize), func(io.Writer, io.Reader) bool {
		return sink.n >= limit
	})
	if err != nil {
		log.Fatalf("copy: %v", err)
	}
	return sink.n
}

// runChunk drives CopyUntil over a chunk-sequence reader.
func runChunk(limit int64, bufSize, chunkSize int) int64 {
	chunk := make([]byte, chunkSize)
	var produced int64
	next := func() ([]byte, bool) {
		if produced >= limit {
			return nil, false
		}
		produced += int64(len(chunk))
		return chunk, true
	}

	sink := &countWriter{}
	_, err := flume.CopyUntilBuffer(sink, flume.NewChunkReader(next), make([]byte, bufSize), nil)
	if err != nil {
		log.Fatalf("chunk copy: %v", err)
	}
	return sink.n
}

func isValidProfile(kind profileKind) bool {
	switch kind {
	case profileCPU, profileFG, profileTrace, profileNone:
		return true
	default:
		return false
	}
}

func startProfile(kind profileKind, outDir, label string) (func() error, error) {
	switch kind {
	case profileCPU:
		path := filepath.Join(outDir, "cpu_"+label+".pprof")
		f, err := os.Create(path)
		if err != nil {
			return nil, err
		}
		if err := pprof.StartCPUProfile(f); err != nil {
			_ = f.Close()
			return nil, err
		}
		return func() error {
			pprof.StopCPUProfile()
			return f.Close()
		}, nil
	case profileFG:
		path := filepath.Join(outDir, "fgprof_"+label+".pprof")
		f, err := os.Create(path)
		if err != nil {
			return nil, err
		}
		stop := fgprof.Start(f, fgprof.FormatPprof)
		return func() error {
			stopErr := stop()
			closeErr := f.Close()
			return errors.Join(stopErr, closeErr)
		}, nil
	case profileTrace:
		path := filepath.Join(outDir, "trace_"+label+".out")
		f, err := os.Create(path)
		if err != nil {
			return nil, err
		}
		if err := trace.Start(f); err != nil {
			_ = f.Close()
			return nil, err
		}
		return func() error {
			trace.Stop()
			return f.Close()
		}, nil
	case profileNone:
		return func() error { return nil }, nil
	default:
		return nil, fmt.Errorf("unknown profile kind %q", kind)
	}
}

func writeHeapProfile(outDir, label string) error {
	runtime.GC()
	path := filepath.Join(outDir, "heap_"+label+".pprof")
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return pprof.WriteHeapProfile(f)
}

// Command gdbmicat reads a GDB/MI output stream from a file or stdin and
// prints one line per parsed record: its kind, its native projection, and
// (with --verbose) a pretty-printed dump. It's the debugging/inspection
// counterpart to the mi package, in the same spirit as sqldef's own
// cmd/*def front-ends over the schema/database packages.
package main

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/jessevdk/go-flags"
	"github.com/k0kubun/pp/v3"
	"github.com/mattn/go-isatty"
	"golang.org/x/term"

	"github.com/armon/circbuf"

	"github.com/go-gdbmi/gdbmi/internal/config"
	"github.com/go-gdbmi/gdbmi/internal/logging"
	"github.com/go-gdbmi/gdbmi/mi"
)

var version string

type cliOptions struct {
	File    string `short:"f" long:"file" description:"Read the GDB/MI stream from this file instead of stdin" value-name:"path"`
	Config  string `long:"config" description:"YAML config file: terminator, unknown_escape_policy, max_buffered_bytes, log_file, log_level" value-name:"path"`
	Verbose bool   `long:"verbose" description:"Pretty-print each record's full native projection"`
	Stats   bool   `long:"stats" description:"Print a byte/record summary to stderr on exit"`
	NoColor bool   `long:"no-color" description:"Disable colorized kind tags even on a TTY"`
	Version bool   `long:"version" description:"Show this version"`
}

func parseOptions(args []string) (cliOptions, []string) {
	var opts cliOptions
	parser := flags.NewParser(&opts, flags.Default)
	parser.Usage = "[options]"
	rest, err := parser.ParseArgs(args)
	if err != nil {
		os.Exit(1)
	}
	if opts.Version {
		fmt.Println(version)
		os.Exit(0)
	}
	return opts, rest
}

func kindColor(kind mi.RecordKind, disabled bool) *color.Color {
	if disabled {
		return color.New()
	}
	switch kind {
	case mi.KindStream:
		return color.New(color.FgCyan)
	case mi.KindAsync:
		return color.New(color.FgYellow)
	case mi.KindResult:
		return color.New(color.FgGreen)
	case mi.KindTermination:
		return color.New(color.FgMagenta)
	default:
		return color.New()
	}
}

func main() {
	opts, _ := parseOptions(os.Args[1:])

	cfg, err := config.Load(opts.Config)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	logging.Init(logging.Options{File: cfg.LogFile, Level: cfg.LogLevel})

	miOpts, err := cfg.MIOptions()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	var in io.Reader = os.Stdin
	if opts.File != "" {
		f, err := os.Open(opts.File)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		defer f.Close()
		in = f
	}

	colorDisabled := opts.NoColor || !term.IsTerminal(int(os.Stdout.Fd())) || !isatty.IsTerminal(os.Stdout.Fd())
	pp.ColoringEnabled = !colorDisabled

	// A bounded ring of the most recently seen raw bytes, purely for
	// diagnostics attached to a parse error report. It never backs the
	// Framer's own pending-line buffer: circbuf silently overwrites the
	// oldest bytes once full, which the Framer's conservation guarantee
	// cannot tolerate.
	recent, _ := circbuf.NewBuffer(4096)

	framer := mi.NewFramer(miOpts)
	reader := bufio.NewReaderSize(in, 64*1024)

	var totalBytes, totalRecords, totalErrors int

	processChunk := func(chunk []byte) {
		_, _ = recent.Write(chunk)
		for {
			rec, err := framer.Parse(chunk)
			chunk = nil
			if err != nil {
				totalErrors++
				slog.Error("parse error", "error", err, "recent", recent.String())
				if !framer.MoreToParse() {
					return
				}
				continue
			}
			if rec == nil {
				return
			}
			totalRecords++
			printRecord(rec, opts.Verbose, colorDisabled)
			if !framer.MoreToParse() {
				return
			}
		}
	}

	buf := make([]byte, 32*1024)
	for {
		n, err := reader.Read(buf)
		if n > 0 {
			totalBytes += n
			processChunk(buf[:n])
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}

	if opts.Stats {
		fmt.Fprintf(os.Stderr, "%s read, %d records, %d parse errors\n",
			humanize.Bytes(uint64(totalBytes)), totalRecords, totalErrors)
	}
}

func printRecord(rec mi.Record, verbose, colorDisabled bool) {
	tag := kindColor(rec.Kind(), colorDisabled).Sprint(rec.Kind().String())
	if verbose {
		fmt.Printf("%s %s\n", tag, pp.Sprint(rec.AsNative()))
		return
	}
	fmt.Printf("%s %v\n", tag, rec.AsNative())
}

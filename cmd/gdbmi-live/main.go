// Command gdbmi-live spawns a real GDB process under --interpreter=mi2,
// feeds its stdout through the mi package, and prints the parsed records as
// they arrive. It exists to exercise the parser against an actual debugger
// rather than fixtures, and optionally serves Prometheus metrics about the
// session while it runs.
package main

import (
	"bufio"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/exec"

	"github.com/creack/pty"
	"github.com/google/uuid"
	"github.com/jessevdk/go-flags"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/go-gdbmi/gdbmi/internal/config"
	"github.com/go-gdbmi/gdbmi/internal/logging"
	"github.com/go-gdbmi/gdbmi/internal/metrics"
	"github.com/go-gdbmi/gdbmi/mi"
)

type cliOptions struct {
	GDB         string `long:"gdb" description:"gdb binary to spawn" default:"gdb"`
	Inferior    string `long:"inferior" description:"Program for gdb to debug" value-name:"path"`
	Config      string `long:"config" description:"YAML config file" value-name:"path"`
	MetricsAddr string `long:"metrics-addr" description:"Serve Prometheus metrics on this address, e.g. :9091; empty disables it" value-name:"addr"`
}

func main() {
	var opts cliOptions
	parser := flags.NewParser(&opts, flags.Default)
	if _, err := parser.ParseArgs(os.Args[1:]); err != nil {
		os.Exit(1)
	}

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

	sessionID := uuid.New().String()
	logger := slog.With("session", sessionID)

	var recorder *metrics.Recorder
	if opts.MetricsAddr != "" {
		reg := prometheus.NewRegistry()
		recorder = metrics.NewRecorder(reg)
		go serveMetrics(opts.MetricsAddr, reg, logger)
	}

	args := []string{"--interpreter=mi2", "--quiet"}
	if opts.Inferior != "" {
		args = append(args, opts.Inferior)
	}

	cmd := exec.Command(opts.GDB, args...)
	ptmx, err := pty.Start(cmd)
	if err != nil {
		logger.Error("failed to start gdb under a pty", "error", err)
		os.Exit(1)
	}
	defer ptmx.Close()

	logger.Info("gdb session started", "gdb", opts.GDB)

	framer := mi.NewFramer(miOpts)
	reader := bufio.NewReaderSize(ptmx, 32*1024)
	buf := make([]byte, 4096)

	for {
		n, readErr := reader.Read(buf)
		if n > 0 {
			chunk := buf[:n]
			for {
				rec, err := framer.Parse(chunk)
				chunk = nil
				if recorder != nil {
					recorder.SetBufferedBytes(framer.BufferedBytes())
				}
				if err != nil {
					logger.Warn("parse error", "error", err)
					if recorder != nil {
						recorder.ObserveParseError()
					}
					if !framer.MoreToParse() {
						break
					}
					continue
				}
				if rec == nil {
					break
				}
				if recorder != nil {
					recorder.ObserveRecordKind(rec.Kind().String())
				}
				fmt.Printf("[%s] %s %v\n", sessionID, rec.Kind(), rec.AsNative())
				if !framer.MoreToParse() {
					break
				}
			}
		}
		if readErr != nil {
			logger.Info("gdb session ended", "error", readErr)
			break
		}
	}

	_ = cmd.Wait()
}

func serveMetrics(addr string, reg *prometheus.Registry, logger *slog.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	logger.Info("serving metrics", "addr", addr)
	if err := http.ListenAndServe(addr, mux); err != nil {
		logger.Error("metrics server stopped", "error", err)
	}
}

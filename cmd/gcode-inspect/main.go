// gcode-inspect derives structural print metadata from G-code files:
// pre-print and post-print line ranges, purge-line detection, planarity,
// and first/subsequent layer heights.
//
// Usage:
//
//	gcode-inspect [options] file.gcode [file2.gcode ...]
//
// Options:
//
//	-config string   Config file path (default: discovered in cwd)
//	-serve           Run the analysis API server instead of exiting
//	-addr string     Override the server listen address
//	-history string  Override the history database path ("" disables)
//	-json            Print reports as JSON
//	-loglevel string Log level: debug, info, warn, error
//
// Examples:
//
//	# Analyze one file
//	gcode-inspect benchy.gcode
//
//	# Analyze and keep serving the API afterwards
//	gcode-inspect -serve -addr :7126 benchy.gcode
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"gcode-inspect/pkg/analysis"
	"gcode-inspect/pkg/api"
	"gcode-inspect/pkg/config"
	"gcode-inspect/pkg/gcode"
	"gcode-inspect/pkg/history"
	"gcode-inspect/pkg/log"
)

const version = "0.3.0"

func main() {
	configPath := flag.String("config", "", "Config file path")
	serve := flag.Bool("serve", false, "Run the analysis API server")
	addr := flag.String("addr", "", "Server listen address (overrides config)")
	historyPath := flag.String("history", "", "History database path (overrides config)")
	asJSON := flag.Bool("json", false, "Print reports as JSON")
	logLevel := flag.String("loglevel", "", "Log level: debug, info, warn, error")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	if *addr != "" {
		cfg.Server.Addr = *addr
	}
	if *historyPath != "" {
		cfg.Server.HistoryDB = *historyPath
	}
	if *logLevel != "" {
		cfg.Log.Level = *logLevel
	}

	logger := log.New("gcode-inspect")
	logger.SetLevel(log.ParseLevel(cfg.Log.Level))
	logger.SetFormat(log.ParseFormat(cfg.Log.Format))
	logger.SetColorize(stderrIsTerminal() && cfg.Log.Format != "json")
	log.SetDefault(logger)

	if flag.NArg() == 0 && !*serve {
		fmt.Fprintf(os.Stderr, "Error: no input files\n")
		flag.Usage()
		os.Exit(1)
	}

	tol := cfg.Tolerances()

	var store *history.Store
	if cfg.Server.HistoryDB != "" {
		store, err = history.Open(cfg.Server.HistoryDB)
		if err != nil {
			logger.Errorf("opening history database: %v", err)
			os.Exit(1)
		}
		defer store.Close()
	}

	failed := false
	for _, path := range flag.Args() {
		if err := analyzeFile(path, tol, store, *asJSON, logger); err != nil {
			logger.Errorf("%s: %v", path, err)
			failed = true
		}
	}

	if *serve {
		runServer(cfg, tol, store, logger)
	}

	if failed {
		os.Exit(1)
	}
}

// analyzeFile parses and analyzes one file and prints its report to stdout.
func analyzeFile(path string, tol analysis.Tolerances, store *history.Store, asJSON bool, logger *log.Logger) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	model, err := gcode.Parse(f)
	if err != nil {
		return err
	}

	rep, err := analysis.Analyze(model, tol)
	if err != nil {
		return err
	}

	if store != nil {
		if _, err := store.RecordAnalysis(path, rep); err != nil {
			logger.Warnf("recording %s to history: %v", path, err)
		}
	}

	if asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(rep)
	}
	printReport(path, rep)
	return nil
}

// printReport renders a human-readable report.
func printReport(path string, rep analysis.Report) {
	fmt.Printf("%s\n", path)
	fmt.Printf("  lines:        %d\n", rep.Lines)
	fmt.Printf("  pre-print:    %s\n", rep.PrePrint)
	fmt.Printf("  post-print:   %s\n", rep.PostPrint)
	fmt.Printf("  planar:       %v\n", rep.Planar)
	fmt.Printf("  first layer:  %s mm\n", rep.FirstLayerHeight)
	fmt.Printf("  layer height: %s mm\n", rep.LayerHeight)
	fmt.Printf("  shapes:       %d\n", len(rep.Shapes))
}

// runServer starts the API server and blocks until SIGINT/SIGTERM.
func runServer(cfg *config.Config, tol analysis.Tolerances, store *history.Store, logger *log.Logger) {
	server := api.New(api.Config{
		Addr:       cfg.Server.Addr,
		Tolerances: tol,
		Store:      store,
		Logger:     logger.WithPrefix("api"),
		Version:    version,
	})

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		logger.Infof("received %v, shutting down", sig)
		if err := server.Stop(); err != nil {
			logger.Warnf("server stop: %v", err)
		}
	case err := <-errCh:
		if err != nil {
			logger.Errorf("server: %v", err)
			os.Exit(1)
		}
	}
}

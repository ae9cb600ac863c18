package main

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/avrhm/m3usift/internal/aggregate"
	"github.com/avrhm/m3usift/internal/checker"
	"github.com/avrhm/m3usift/internal/config"
	"github.com/avrhm/m3usift/internal/fetch"
	"github.com/avrhm/m3usift/internal/io"
	"github.com/avrhm/m3usift/internal/playlist"
	"github.com/avrhm/m3usift/internal/prober"
	"github.com/avrhm/m3usift/internal/report"
	"github.com/avrhm/m3usift/internal/sanitize"
	"github.com/avrhm/m3usift/internal/types"
)

type Config struct {
	ConfigFile   string
	Source       string
	Dir          string
	Out          string
	Workers      int
	Rate         int
	ProbeTimeout time.Duration
	Deadline     time.Duration
	Strip        string
	Insecure     bool
	Verbose      bool
}

func main() {
	// A .env next to the binary can pre-seed the M3USIFT_* defaults.
	_ = godotenv.Load()

	cfg := &Config{}

	flag.StringVar(&cfg.ConfigFile, "config", envOr("M3USIFT_CONFIG", ""), "Optional YAML config file")
	flag.StringVar(&cfg.Source, "source", envOr("M3USIFT_SOURCE", fetch.DefaultSourceURL), "Listing page to scrape playlist links from")
	flag.StringVar(&cfg.Dir, "dir", envOr("M3USIFT_DIR", ""), "Local directory of .m3u files (skips the fetch stage)")
	flag.StringVar(&cfg.Out, "out", envOr("M3USIFT_OUT", "processed"), "Output directory for the partitioned playlists")
	flag.IntVar(&cfg.Workers, "workers", envOrInt("M3USIFT_WORKERS", 20), "Number of concurrent probes")
	flag.IntVar(&cfg.Rate, "rate", envOrInt("M3USIFT_RATE", 0), "Max probes per second (0 = unlimited)")
	flag.DurationVar(&cfg.ProbeTimeout, "probe-timeout", envOrDuration("M3USIFT_PROBE_TIMEOUT", 5*time.Second), "Timeout per stream probe")
	flag.DurationVar(&cfg.Deadline, "deadline", envOrDuration("M3USIFT_DEADLINE", 0), "Global deadline for the whole run (0 = none)")
	flag.StringVar(&cfg.Strip, "strip", envOr("M3USIFT_STRIP", ""), "Symbol characters to strip from names (default: all symbols)")
	flag.BoolVar(&cfg.Insecure, "insecure", false, "Ignore TLS certificate errors")
	flag.BoolVar(&cfg.Verbose, "verbose", false, "Log every probe outcome")

	flag.Parse()

	if cfg.ConfigFile != "" {
		file, err := config.Load(cfg.ConfigFile)
		if err != nil {
			log.Fatalf("Configuration error: %v", err)
		}
		mergeConfig(cfg, file)
	}

	if err := validateConfig(cfg); err != nil {
		log.Fatalf("Configuration error: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		fmt.Println("\n[!] Received interrupt signal, shutting down gracefully...")
		cancel()
	}()

	if err := run(ctx, cfg); err != nil {
		log.Fatalf("Run failed: %v", err)
	}
}

// mergeConfig applies config file values underneath flags given on the
// command line.
func mergeConfig(cfg *Config, file *config.File) {
	set := make(map[string]bool)
	flag.Visit(func(f *flag.Flag) { set[f.Name] = true })

	if file.Source != "" && !set["source"] {
		cfg.Source = file.Source
	}
	if file.Dir != "" && !set["dir"] {
		cfg.Dir = file.Dir
	}
	if file.Out != "" && !set["out"] {
		cfg.Out = file.Out
	}
	if file.Workers > 0 && !set["workers"] {
		cfg.Workers = file.Workers
	}
	if file.Rate > 0 && !set["rate"] {
		cfg.Rate = file.Rate
	}
	if file.ProbeTimeoutDuration() > 0 && !set["probe-timeout"] {
		cfg.ProbeTimeout = file.ProbeTimeoutDuration()
	}
	if file.DeadlineDuration() > 0 && !set["deadline"] {
		cfg.Deadline = file.DeadlineDuration()
	}
	if file.Strip != "" && !set["strip"] {
		cfg.Strip = file.Strip
	}
	if file.Insecure && !set["insecure"] {
		cfg.Insecure = true
	}
	if file.Verbose && !set["verbose"] {
		cfg.Verbose = true
	}
}

func validateConfig(cfg *Config) error {
	if cfg.Source == "" && cfg.Dir == "" {
		return fmt.Errorf("either a source URL or a local directory is required")
	}
	if cfg.Out == "" {
		return fmt.Errorf("output directory is required")
	}
	if cfg.Workers <= 0 {
		return fmt.Errorf("workers must be positive")
	}
	if cfg.Rate < 0 {
		return fmt.Errorf("rate must not be negative")
	}
	if cfg.ProbeTimeout <= 0 {
		return fmt.Errorf("probe-timeout must be positive")
	}
	return nil
}

func run(ctx context.Context, cfg *Config) error {
	clean := sanitize.New(cfg.Strip)
	stats := report.NewStats()

	entries, err := collectEntries(ctx, cfg, clean, stats)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		return fmt.Errorf("no playlist entries parsed")
	}

	fmt.Printf("[+] Loaded:\n")
	fmt.Printf("    • %d entries\n", len(entries))
	fmt.Printf("    • %d malformed lines skipped\n", stats.Skipped())

	runCtx := ctx
	if cfg.Deadline > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, cfg.Deadline)
		defer cancel()
	}

	checkConfig := checker.Config{
		Workers: cfg.Workers,
		Rate:    cfg.Rate,
		Prober: prober.New(prober.Config{
			Timeout:  cfg.ProbeTimeout,
			Insecure: cfg.Insecure,
			MaxConns: cfg.Workers,
		}),
		Stats:   stats,
		Verbose: cfg.Verbose,
	}

	fmt.Printf("[+] Probing %d streams with %d workers...\n", len(entries), cfg.Workers)

	var progress *report.Progress
	if !cfg.Verbose {
		progress = report.NewProgress(len(entries), stats)
	}
	results := checker.Run(runCtx, checkConfig, entries)
	if progress != nil {
		progress.Close()
	}

	buckets := aggregate.Partition(results)
	if err := aggregate.Verify(results, buckets); err != nil {
		return err
	}

	if err := io.WriteBuckets(cfg.Out, buckets); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}

	report.WriteConsoleSummary(buckets, stats)
	fmt.Printf("\n[+] Results written to %s\n", cfg.Out)

	return nil
}

// collectEntries gathers the full ordered entry list, either from
// local playlist files or by scraping the listing page and downloading
// every linked playlist. A playlist that cannot be downloaded or
// parsed is reported and skipped; the run continues with the rest.
func collectEntries(ctx context.Context, cfg *Config, clean *sanitize.Sanitizer, stats *report.Stats) ([]types.PlaylistEntry, error) {
	type rawPlaylist struct {
		name string
		data []byte
	}
	var raw []rawPlaylist

	if cfg.Dir != "" {
		playlists, err := io.ListPlaylists(cfg.Dir)
		if err != nil {
			return nil, fmt.Errorf("loading local playlists: %w", err)
		}
		for _, p := range playlists {
			data, err := io.ReadPlaylist(p.Path)
			if err != nil {
				fmt.Printf("[!] Skipping %s: %v\n", p.Path, err)
				continue
			}
			raw = append(raw, rawPlaylist{name: clean.Clean(p.Name), data: data})
		}
	} else {
		client := fetch.NewClient(10*time.Second, cfg.Insecure)

		fmt.Printf("[+] Fetching listing page %s\n", cfg.Source)
		page, err := client.Get(ctx, cfg.Source)
		if err != nil {
			return nil, fmt.Errorf("fetching listing page: %w", err)
		}

		sources := fetch.ExtractSources(page, clean)
		if len(sources) == 0 {
			return nil, fmt.Errorf("no playlist links found on %s", cfg.Source)
		}
		fmt.Printf("[+] Found %d playlist links\n", len(sources))

		for _, s := range sources {
			data, err := client.Get(ctx, s.URL)
			if err != nil {
				fmt.Printf("[!] Skipping playlist %q: %v\n", s.Name, err)
				continue
			}
			raw = append(raw, rawPlaylist{name: s.Name, data: data})
		}
	}

	var entries []types.PlaylistEntry
	for _, p := range raw {
		parser := playlist.NewParser(clean, p.name)
		res, err := parser.Parse(bytes.NewReader(p.data))
		if err != nil {
			fmt.Printf("[!] Skipping playlist %q: %v\n", p.name, err)
			continue
		}
		stats.AddParsed(len(res.Entries))
		stats.AddSkipped(res.Skipped)
		entries = append(entries, res.Entries...)
	}

	return entries, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envOrInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envOrDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

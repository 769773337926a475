// Package main is the Platoo CLI entry point.
package main

import (
	"bufio"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/worldjourney/platoo/internal/cli"
	"github.com/worldjourney/platoo/internal/config"
	"github.com/worldjourney/platoo/internal/correct"
	"github.com/worldjourney/platoo/internal/gazetteer"
	"github.com/worldjourney/platoo/internal/models"
	"github.com/worldjourney/platoo/internal/rank"
	"github.com/worldjourney/platoo/internal/remote"
	"github.com/worldjourney/platoo/internal/server"
	"github.com/worldjourney/platoo/internal/storage"
	"github.com/worldjourney/platoo/internal/suggest"
	"github.com/worldjourney/platoo/pkg/utils"
)

var version = "dev"

const defaultConfigPath = "/usr/local/etc/platoo/config.yaml"

// loadConfig loads config from path. When path is the default, it first looks
// for config.yaml in the current directory (for development); if that exists
// it is used, so that "platoo server" from the project dir uses the project's
// config. Returns the config and the path that was actually loaded.
func loadConfig(path string) (*config.Config, string, error) {
	if path == defaultConfigPath {
		if cwd, cwdErr := os.Getwd(); cwdErr == nil {
			fallback := filepath.Join(cwd, "config.yaml")
			if _, statErr := os.Stat(fallback); statErr == nil {
				cfg, loadErr := config.Load(fallback)
				if loadErr != nil {
					return nil, "", loadErr
				}
				return cfg, fallback, nil
			}
		}
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, "", err
	}
	return cfg, path, nil
}

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}
	command := os.Args[1]
	switch command {
	case "server":
		runServer()
	case "correct":
		runCorrect()
	case "resolve":
		runResolve()
	case "suggest":
		runSuggest()
	case "seed":
		runSeed()
	case "status":
		runStatus()
	case "version", "--version", "-v":
		fmt.Printf("platoo version %s\n", version)
	case "help", "--help", "-h":
		printUsage()
	default:
		fmt.Printf("Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Print(`Usage: platoo <command> [flags]

Commands:
  server    Start the HTTP API server
  correct   Correct place-name typos in a query
  resolve   Resolve a query to a single place
  suggest   Show ranked suggestions for a query
  seed      Load a gazetteer YAML file into the place database
  status    Show a running server's status
  version   Print the version
  help      Print this help
`)
}

// components bundles everything a command needs to match and rank queries.
type components struct {
	Provider  *gazetteer.Provider
	Pipeline  *correct.Pipeline
	Ranker    *rank.Ranker
	Suggester *suggest.Service
	Store     *storage.PlaceStore
}

// Close releases held resources.
func (c *components) Close() {
	if c.Suggester != nil {
		c.Suggester.Close()
	}
	if c.Store != nil {
		_ = c.Store.Close()
	}
}

// initializeComponents builds the matching stack from config: the gazetteer
// snapshot (file entries plus any places persisted from remote lookups), the
// correction pipeline, the ranker, and the suggestion service.
func initializeComponents(cfg *config.Config, logger *zap.Logger) (*components, error) {
	entries, err := gazetteer.LoadFile(cfg.Gazetteer.Path)
	if err != nil {
		return nil, err
	}

	var store *storage.PlaceStore
	if cfg.Storage.DatabasePath != "" {
		store, err = storage.NewPlaceStore(cfg.Storage.DatabasePath)
		if err != nil {
			return nil, err
		}
		stored, listErr := store.List(context.Background())
		if listErr != nil {
			_ = store.Close()
			return nil, listErr
		}
		entries = append(entries, stored...)
	}

	provider := gazetteer.NewProvider(gazetteer.NewSnapshot(entries, logger), logger)

	matchOpts := correct.Options{
		MaxDistance:       cfg.Matching.MaxDistance,
		SequenceWeight:    cfg.Matching.SequenceWeight,
		ContainmentWeight: cfg.Matching.ContainmentWeight,
		LongThreshold:     cfg.Matching.LongThreshold,
		ShortThreshold:    cfg.Matching.ShortThreshold,
		LongTokenRunes:    cfg.Matching.LongTokenRunes,
	}
	pipeline := correct.NewPipeline(matchOpts, nil, logger)

	rankOpts := rank.Options{
		MaxDistance:       cfg.Matching.MaxDistance,
		SequenceWeight:    cfg.Matching.SequenceWeight,
		ContainmentWeight: cfg.Matching.ContainmentWeight,
		LongThreshold:     cfg.Matching.LongThreshold,
		ShortThreshold:    cfg.Matching.ShortThreshold,
		LongTokenRunes:    cfg.Matching.LongTokenRunes,
		GuardLead:         rank.ClampGuardLead(cfg.Matching.GuardLead),
		PopularityWeight:  cfg.Matching.PopularityWeight,
		Limit:             cfg.Suggest.DefaultLimit,
	}
	ranker := rank.NewRanker(rankOpts, logger)

	var remoteClient remote.Client
	if cfg.Remote.BaseURL != "" {
		remoteClient = remote.NewHTTPClient(
			cfg.Remote.BaseURL,
			cfg.Remote.APIKey,
			time.Duration(cfg.Remote.TimeoutMs)*time.Millisecond,
			logger,
		)
	}
	suggestOpts := suggest.Options{
		Debounce:      time.Duration(cfg.Suggest.DebounceMs) * time.Millisecond,
		RemoteTimeout: time.Duration(cfg.Suggest.RemoteTimeoutMs) * time.Millisecond,
		DefaultLimit:  cfg.Suggest.DefaultLimit,
		MaxLimit:      cfg.Suggest.MaxLimit,
	}
	suggester := suggest.NewService(provider, ranker, remoteClient, suggestOpts, logger)

	return &components{
		Provider:  provider,
		Pipeline:  pipeline,
		Ranker:    ranker,
		Suggester: suggester,
		Store:     store,
	}, nil
}

func runServer() {
	fs := flag.NewFlagSet("server", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	debug := fs.Bool("debug", false, "enable debug logging (match scoring, reloads, etc.)")
	_ = fs.Parse(os.Args[2:])

	cfg, resolvedConfigPath, err := loadConfig(*configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}
	debugMode := cfg.Debug || *debug
	logger, err := utils.NewLogger(debugMode)
	if err != nil {
		fmt.Printf("Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("config loaded",
		zap.String("config_path", resolvedConfigPath),
		zap.Bool("debug", debugMode),
	)

	comps, err := initializeComponents(cfg, logger)
	if err != nil {
		logger.Fatal("Failed to initialize components", zap.Error(err))
	}
	defer comps.Close()

	watchCtx, watchCancel := context.WithCancel(context.Background())
	defer watchCancel()
	if cfg.Gazetteer.WatchOrDefault() {
		if err := comps.Provider.WatchFile(watchCtx, cfg.Gazetteer.Path); err != nil {
			logger.Fatal("Failed to watch gazetteer file", zap.Error(err))
		}
	}

	srv := server.NewServer(
		comps.Provider,
		comps.Pipeline,
		comps.Ranker,
		comps.Suggester,
		comps.Store,
		&cfg.Server,
		logger,
	)
	go func() {
		if err := srv.Start(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server failed", zap.Error(err))
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	logger.Info("Shutting down...")
	watchCancel()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Stop(ctx)
}

// buildQuery joins all positional args with spaces so multi-word queries work
// the same with or without shell quoting.
func buildQuery(args []string) string {
	return strings.TrimSpace(strings.Join(args, " "))
}

// argsReorder moves any flags (and their values) that appear after the query
// to the front of the slice so that flag.Parse() sees them. Go's flag package
// stops at the first non-flag argument.
func argsReorder(args []string) []string {
	for i, a := range args {
		if len(a) > 0 && a[0] == '-' {
			if i == 0 {
				return args
			}
			reordered := make([]string, 0, len(args))
			reordered = append(reordered, args[i:]...)
			reordered = append(reordered, args[:i]...)
			return reordered
		}
	}
	return args
}

func parseOutputFormat(raw string) cli.OutputFormat {
	switch raw {
	case "json":
		return cli.OutputJSON
	case "text":
		return cli.OutputText
	default:
		fmt.Printf("Unknown output format %q; use text or json\n", raw)
		os.Exit(1)
		return cli.OutputText
	}
}

// localComponents loads config and builds the matching stack for one-shot
// commands that run without a server.
func localComponents(configPath string) (*config.Config, *components, *zap.Logger) {
	cfg, _, err := loadConfig(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	logger, err := utils.NewLogger(cfg.Debug)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	comps, err := initializeComponents(cfg, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}
	return cfg, comps, logger
}

func runCorrect() {
	args := argsReorder(os.Args[2:])
	fs := flag.NewFlagSet("correct", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	outputFormat := fs.String("output", "text", "output format: text or json")
	_ = fs.Parse(args)

	query := buildQuery(fs.Args())
	if query == "" {
		fmt.Fprintln(os.Stderr, "Usage: platoo correct [flags] <query>")
		os.Exit(1)
	}
	format := parseOutputFormat(*outputFormat)

	_, comps, logger := localComponents(*configPath)
	defer logger.Sync()
	defer comps.Close()

	result := comps.Pipeline.Correct(query, comps.Provider.Snapshot())
	if err := cli.WriteCorrection(os.Stdout, result, format); err != nil {
		fmt.Fprintf(os.Stderr, "Output failed: %v\n", err)
		os.Exit(1)
	}
}

func runResolve() {
	args := argsReorder(os.Args[2:])
	fs := flag.NewFlagSet("resolve", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	outputFormat := fs.String("output", "text", "output format: text or json")
	lead := fs.Float64("lead", 0, "score lead required to resolve without asking (0 = config default)")
	_ = fs.Parse(args)

	query := buildQuery(fs.Args())
	if query == "" {
		fmt.Fprintln(os.Stderr, "Usage: platoo resolve [flags] <query>")
		os.Exit(1)
	}
	format := parseOutputFormat(*outputFormat)

	_, comps, logger := localComponents(*configPath)
	defer logger.Sync()
	defer comps.Close()

	snap := comps.Provider.Snapshot()
	corrected := comps.Pipeline.Correct(query, snap)
	var resolution *models.Resolution
	if *lead > 0 {
		resolution = comps.Ranker.ResolveWithLead(corrected.Corrected, snap, *lead)
	} else {
		resolution = comps.Ranker.Resolve(corrected.Corrected, snap)
	}
	if corrected.Changed() && format == cli.OutputText {
		fmt.Printf("Corrected: %s\n", corrected.Corrected)
	}
	if err := cli.WriteResolution(os.Stdout, resolution, format); err != nil {
		fmt.Fprintf(os.Stderr, "Output failed: %v\n", err)
		os.Exit(1)
	}
}

func runSuggest() {
	args := argsReorder(os.Args[2:])
	fs := flag.NewFlagSet("suggest", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	outputFormat := fs.String("output", "text", "output format: text or json")
	limit := fs.Int("limit", 0, "number of suggestions (0 = config default)")
	interactive := fs.Bool("i", false, "interactive mode: read queries from stdin, one per line")
	_ = fs.Parse(args)

	query := buildQuery(fs.Args())
	if query == "" && !*interactive {
		fmt.Fprintln(os.Stderr, "Usage: platoo suggest [flags] <query>")
		os.Exit(1)
	}
	format := parseOutputFormat(*outputFormat)

	_, comps, logger := localComponents(*configPath)
	defer logger.Sync()
	defer comps.Close()

	if *interactive {
		done := make(chan struct{})
		go func() {
			defer close(done)
			for res := range comps.Suggester.Results() {
				_ = cli.WriteSuggestions(os.Stdout, &res, format)
			}
		}()
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			q := strings.TrimSpace(scanner.Text())
			if q == "" {
				continue
			}
			comps.Suggester.Query(q, *limit)
		}
		// Let the final debounced query settle before closing.
		time.Sleep(time.Second)
		comps.Suggester.Close()
		<-done
		return
	}

	res := comps.Suggester.Search(context.Background(), query, *limit)
	if err := cli.WriteSuggestions(os.Stdout, &res, format); err != nil {
		fmt.Fprintf(os.Stderr, "Output failed: %v\n", err)
		os.Exit(1)
	}
}

func runSeed() {
	fs := flag.NewFlagSet("seed", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	file := fs.String("file", "", "gazetteer YAML file to load (default: configured gazetteer path)")
	_ = fs.Parse(os.Args[2:])

	cfg, _, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	source := *file
	if source == "" {
		source = cfg.Gazetteer.Path
	}
	entries, err := gazetteer.LoadFile(source)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load gazetteer: %v\n", err)
		os.Exit(1)
	}

	store, err := storage.NewPlaceStore(cfg.Storage.DatabasePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open place database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if err := store.UpsertAll(context.Background(), entries); err != nil {
		fmt.Fprintf(os.Stderr, "Seeding failed: %v\n", err)
		os.Exit(1)
	}
	count, err := store.Count(context.Background())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to count places: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Seeded %d places from %s (%d total in database)\n", len(entries), source, count)
}

func runStatus() {
	fs := flag.NewFlagSet("status", flag.ExitOnError)
	serverURL := fs.String("server", "http://localhost:8089", "server URL")
	_ = fs.Parse(os.Args[2:])

	resp, err := http.Get(*serverURL + "/api/v1/status")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Status request failed: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		fmt.Fprintf(os.Stderr, "Server returned %d: %s\n", resp.StatusCode, string(b))
		os.Exit(1)
	}
	var status map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&status); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to decode response: %v\n", err)
		os.Exit(1)
	}
	out, _ := json.MarshalIndent(status, "", "  ")
	fmt.Println(string(out))
}

package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/dshills/tokensplit/internal/config"
	"github.com/dshills/tokensplit/internal/mcp"
	"github.com/dshills/tokensplit/internal/rowpacker"
	"github.com/dshills/tokensplit/internal/segment"
	"github.com/dshills/tokensplit/internal/splitter"
	"github.com/dshills/tokensplit/internal/storage"
	"github.com/dshills/tokensplit/internal/token"
	"github.com/dshills/tokensplit/pkg/types"
)

var (
	version   = "dev"
	buildTime = "unknown"
)

func main() {
	// Log to stderr; stdout carries results (and the MCP protocol in
	// serve mode).
	log.SetOutput(os.Stderr)

	if err := newRootCmd().Execute(); err != nil {
		os.Exit(exitCode(err))
	}
}

// exitCode translates domain errors into distinct exit codes.
func exitCode(err error) int {
	switch {
	case errors.Is(err, types.ErrInvalidBudget):
		return 2
	case errors.Is(err, types.ErrInputNotFound):
		return 3
	case errors.Is(err, types.ErrMissingHeader):
		return 4
	case errors.Is(err, types.ErrUnsupportedMultiline):
		return 5
	case errors.Is(err, types.ErrTokenization):
		return 6
	default:
		return 1
	}
}

type rootFlags struct {
	configPath string
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}

	root := &cobra.Command{
		Use:     "tokensplit",
		Short:   "Split text and CSV files into token-bounded parts",
		Version: fmt.Sprintf("%s (built %s)", version, buildTime),
		CompletionOptions: cobra.CompletionOptions{
			HiddenDefaultCmd: true,
		},
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVar(&flags.configPath, "config", "", "config file (default ~/.tokensplit/config.yaml)")

	root.AddCommand(
		newTextCmd(flags),
		newCSVCmd(flags),
		newCountCmd(flags),
		newRunsCmd(flags),
		newServeCmd(),
	)
	return root
}

type splitFlags struct {
	budget   int
	strategy string
	model    string
	approx   bool
	outDir   string
	baseName string
}

func (f *splitFlags) register(cmd *cobra.Command) {
	cmd.Flags().IntVarP(&f.budget, "budget", "b", 0, "maximum tokens per part")
	cmd.Flags().StringVarP(&f.model, "model", "m", "", "model hint for exact token counting")
	cmd.Flags().BoolVar(&f.approx, "approx", false, "force the approximate counting formula")
	cmd.Flags().StringVarP(&f.outDir, "out", "o", "", "output directory (default alongside the source)")
	cmd.Flags().StringVar(&f.baseName, "base", "", "base name for part files (default source file stem)")
}

func newTextCmd(root *rootFlags) *cobra.Command {
	flags := &splitFlags{}

	cmd := &cobra.Command{
		Use:   "text <file>",
		Short: "Split a text file into token-bounded chunks",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(root.configPath)
			if err != nil {
				return err
			}

			opts := splitOptions(flags, cfg, args[0])
			opts.Mode = segment.Mode(pickString(flags.strategy, cfg.Strategy))

			return runSplit(cmd.Context(), args[0], opts, cfg, splitter.SplitFile)
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&flags.strategy, "strategy", "s", "", "segmentation strategy: paragraph, sentence, or line")
	return cmd
}

func newCSVCmd(root *rootFlags) *cobra.Command {
	flags := &splitFlags{}
	var (
		countMode string
		delimiter string
		quote     string
	)

	cmd := &cobra.Command{
		Use:   "csv <file>",
		Short: "Split a delimited file into header-carrying, token-bounded parts",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(root.configPath)
			if err != nil {
				return err
			}

			opts := splitOptions(flags, cfg, args[0])
			opts.CountMode = rowpacker.CountMode(pickString(countMode, cfg.CountMode))

			dialect := rowpacker.DefaultDialect()
			if d := pickString(delimiter, cfg.Delimiter); d != "" {
				runes := []rune(d)
				if len(runes) != 1 {
					return fmt.Errorf("delimiter must be a single character, got %q", d)
				}
				dialect.Delimiter = runes[0]
			}
			if quote != "" {
				runes := []rune(quote)
				if len(runes) != 1 {
					return fmt.Errorf("quote must be a single character, got %q", quote)
				}
				dialect.Quote = runes[0]
			}
			opts.Dialect = dialect

			// The csv command always takes the tabular path, whatever
			// the source extension.
			return runSplit(cmd.Context(), args[0], opts, cfg, splitter.SplitCSVFile)
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVar(&countMode, "count-mode", "", "row counting mode: line or cells")
	cmd.Flags().StringVarP(&delimiter, "delimiter", "d", "", "field delimiter (default ,)")
	cmd.Flags().StringVarP(&quote, "quote", "q", "", `quote character (default ")`)
	return cmd
}

func newCountCmd(root *rootFlags) *cobra.Command {
	var (
		model  string
		approx bool
	)

	cmd := &cobra.Command{
		Use:   "count <file>",
		Short: "Count tokens in a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(root.configPath)
			if err != nil {
				return err
			}

			data, err := os.ReadFile(args[0])
			if err != nil {
				if os.IsNotExist(err) {
					return fmt.Errorf("%w: %s", types.ErrInputNotFound, args[0])
				}
				return err
			}

			counter := token.NewCounter(token.Config{
				ModelHint:        pickString(model, os.Getenv("TOKENSPLIT_MODEL"), cfg.Model),
				ForceApproximate: approx,
			})
			defer func() { _ = counter.Close() }()

			n, err := counter.Count(string(data))
			if err != nil {
				return err
			}

			fmt.Printf("%d tokens (%s)\n", n, counter.Name())
			return nil
		},
	}

	cmd.Flags().StringVarP(&model, "model", "m", "", "model hint for exact token counting")
	cmd.Flags().BoolVar(&approx, "approx", false, "force the approximate counting formula")
	return cmd
}

func newRunsCmd(root *rootFlags) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "runs",
		Short: "List recent split runs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(root.configPath)
			if err != nil {
				return err
			}

			store, err := openStore(cfg)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			runs, err := store.ListRuns(cmd.Context(), limit)
			if err != nil {
				return err
			}
			if len(runs) == 0 {
				fmt.Println("no runs recorded")
				return nil
			}

			for _, run := range runs {
				fmt.Printf("%s  %-8s %-9s budget=%-6d parts=%-4d tokens=%-8d %s\n",
					run.CreatedAt.Format("2006-01-02 15:04:05"),
					run.Kind, run.Strategy, run.Budget, run.Parts,
					run.TotalTokens, run.Source)
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "maximum number of runs to show")
	return cmd
}

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the MCP server on stdio",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			log.Printf("tokensplit MCP server v%s starting...", version)
			log.Printf("Build Mode: %s, SQLite Driver: %s", storage.BuildMode, storage.DriverName)

			dbPath := os.Getenv("TOKENSPLIT_DB_PATH")
			if dbPath == "" {
				dbPath = mcp.DefaultDBPath
			}

			server, err := mcp.NewServer(dbPath)
			if err != nil {
				return fmt.Errorf("failed to create MCP server: %w", err)
			}

			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()

			sigChan := make(chan os.Signal, 1)
			signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

			errChan := make(chan error, 1)
			go func() {
				log.Println("MCP server ready, listening on stdio...")
				errChan <- server.Serve(ctx)
			}()

			select {
			case sig := <-sigChan:
				log.Printf("Received signal %v, shutting down gracefully...", sig)
				cancel()
				return nil
			case err := <-errChan:
				return err
			}
		},
	}
}

// splitOptions assembles splitter options from flags layered over the
// environment and config.
func splitOptions(flags *splitFlags, cfg config.Config, source string) splitter.Options {
	budget := flags.budget
	if budget == 0 {
		budget = cfg.Budget
	}

	outDir := pickString(flags.outDir, cfg.OutDir)
	if outDir == "" {
		outDir = filepath.Dir(source)
	}

	return splitter.Options{
		Budget:   budget,
		OutDir:   outDir,
		BaseName: flags.baseName,
		Token: token.Config{
			ModelHint:        pickString(flags.model, os.Getenv("TOKENSPLIT_MODEL"), cfg.Model),
			ForceApproximate: flags.approx,
		},
	}
}

// runSplit performs the split, reports to stdout, and records the run.
func runSplit(ctx context.Context, path string, opts splitter.Options, cfg config.Config,
	split func(context.Context, string, splitter.Options) (*types.Result, error)) error {
	started := time.Now()
	result, err := split(ctx, path, opts)
	if err != nil {
		return err
	}

	fmt.Printf("%s: %d part(s), %d tokens total (budget %d)\n",
		path, result.Count(), result.TotalTokens(), result.Budget)
	for i, file := range result.Files {
		fmt.Printf("  %s  (%d tokens)\n", file, result.TokenCounts[i])
	}

	recordRun(ctx, cfg, result, time.Since(started))
	return nil
}

// recordRun appends the run to the manifest. Bookkeeping failures are
// logged, never fatal: the split already succeeded.
func recordRun(ctx context.Context, cfg config.Config, result *types.Result, elapsed time.Duration) {
	store, err := openStore(cfg)
	if err != nil {
		log.Printf("warning: run manifest unavailable: %v", err)
		return
	}
	defer func() { _ = store.Close() }()

	run := &storage.Run{
		Source:      result.Source,
		Kind:        result.Kind,
		Strategy:    result.Strategy,
		Budget:      result.Budget,
		Parts:       result.Count(),
		TotalTokens: result.TotalTokens(),
		Duration:    elapsed,
	}
	if err := store.RecordRun(ctx, run); err != nil {
		log.Printf("warning: failed to record run: %v", err)
	}
}

// openStore opens the run manifest at the configured location.
func openStore(cfg config.Config) (storage.Store, error) {
	dbPath := os.Getenv("TOKENSPLIT_DB_PATH")
	if dbPath == "" {
		dbPath = cfg.DBPath
	}
	if dbPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		dbPath = filepath.Join(home, ".tokensplit")
	}
	if err := os.MkdirAll(dbPath, 0755); err != nil {
		return nil, err
	}
	return storage.NewSQLiteStore(filepath.Join(dbPath, "tokensplit.db"))
}

// pickString returns the first non-empty string.
func pickString(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

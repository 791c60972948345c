package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/frederic-klein/pip-safe/internal/config"
	"github.com/frederic-klein/pip-safe/internal/index"
	"github.com/frederic-klein/pip-safe/internal/metadata"
	"github.com/frederic-klein/pip-safe/internal/pip"
	"github.com/frederic-klein/pip-safe/internal/resolver"
	"github.com/frederic-klein/pip-safe/internal/review"
	"github.com/frederic-klein/pip-safe/internal/wrapper"
)

var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := execute(ctx, os.Args[1:])
	stop()
	os.Exit(code)
}

func execute(ctx context.Context, args []string) int {
	exitCode := 0
	rootCmd := &cobra.Command{
		Use:   "pip-safe [pip arguments...]",
		Short: "Review what pip install would fetch before it runs",
		Long: "pip-safe wraps pip. For install commands it resolves the version each requirement would get, " +
			"shows its summary, author, documentation and homepage, and runs pip only after confirmation. " +
			"Every other command is passed to pip unchanged.",
		Args:               cobra.ArbitraryArgs,
		DisableFlagParsing: true,
		SilenceUsage:       true,
		SilenceErrors:      true,
		RunE: func(cmd *cobra.Command, args []string) error {
			code, err := run(cmd.Context(), args)
			exitCode = code
			return err
		},
	}
	rootCmd.SetArgs(args)

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "pip-safe: %v\n", err)
		if exitCode == 0 {
			exitCode = 1
		}
	}
	return exitCode
}

func run(ctx context.Context, args []string) (int, error) {
	path := config.Path(os.Getenv)
	cfg, err := config.Load(path, os.Getenv)
	if err != nil {
		return 1, fmt.Errorf("loading config: %w", err)
	}

	level := slog.LevelWarn
	if cfg.Verbose {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	runner := pip.NewRunner(cfg.Python)
	client := index.NewClient(cfg.IndexURL, "pip-safe/"+version, cfg.Timeout)
	log.Debug("starting", "config", path, "python", cfg.Python, "index", client.BaseURL(), "metadata", cfg.MetadataSource)

	w := wrapper.New(wrapper.Options{
		Pip:      runner,
		Resolver: resolver.NewResolver(client, log),
		Fetcher:  newFetcher(ctx, cfg, client, runner, log),
		In:       os.Stdin,
		Out:      os.Stdout,
		Styled:   review.ColorTerminal(os.Stdout),
		Log:      log,
	})
	return w.Run(ctx, args)
}

// newFetcher picks the metadata source. The pip report needs pip 22.2 or
// later; older installs fall back to the index.
func newFetcher(ctx context.Context, cfg config.Config, client *index.Client, runner *pip.Runner, log *slog.Logger) metadata.Fetcher {
	if cfg.MetadataSource != metadata.SourceReport {
		return metadata.NewIndexFetcher(client)
	}

	v, err := runner.Version(ctx)
	if err != nil {
		log.Warn("cannot determine pip version, reading metadata from the index", "err", err)
		return metadata.NewIndexFetcher(client)
	}
	if !pip.SupportsReport(v) {
		log.Warn("pip is too old for install reports, reading metadata from the index", "pip", v.String())
		return metadata.NewIndexFetcher(client)
	}
	return metadata.NewReportFetcher(runner)
}

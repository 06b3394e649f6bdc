package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/spf13/cobra"

	"rcopy/internal/config"
	"rcopy/internal/engine"
	"rcopy/internal/event"
	"rcopy/internal/stats"
	"rcopy/internal/ui"
)

var version = "dev"

func main() {
	os.Exit(run())
}

func run() int {
	var (
		offsetPath   string
		chunkSizeStr string
		buffer       int
		quiet        bool
		verbose      bool
		noSpinner    bool
		showVersion  bool
	)

	rootCmd := &cobra.Command{
		Use:   "rcopy [flags] <source> <destination>",
		Short: "Resumable chunked file copy with checkpointed progress",
		Long: `rcopy copies one file to another in fixed-size chunks, persisting the
committed byte offset to a side file after every chunk. An interrupted copy
continues from the last completed chunk instead of restarting.`,
		Args: func(cmd *cobra.Command, args []string) error {
			if showVersion {
				return nil
			}
			return cobra.ExactArgs(2)(cmd, args)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if showVersion {
				fmt.Fprintf(os.Stdout, "rcopy %s\n", version)
				return nil
			}

			src, dst := args[0], args[1]

			// Load optional config file.
			cfg, err := config.Load()
			if err != nil {
				slog.Warn("failed to load config", "error", err)
			}
			applyConfigDefaults(cmd, cfg.Defaults, &chunkSizeStr, &buffer, &quiet, &noSpinner)

			chunkSize, err := config.ParseSize(chunkSizeStr)
			if err != nil {
				return fmt.Errorf("invalid --chunk-size: %w", err)
			}

			// Configure logging.
			logLevel := slog.LevelWarn
			if verbose {
				logLevel = slog.LevelDebug
			} else if !quiet {
				logLevel = slog.LevelInfo
			}
			logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
				Level: logLevel,
			}))
			slog.SetDefault(logger)

			// Set up context with signal handling.
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			collector := stats.NewCollector()
			events := make(chan event.Event, 64)

			copier, err := engine.NewCopier(engine.Job{
				Source:         src,
				Dest:           dst,
				CheckpointPath: offsetPath,
				ChunkSize:      chunkSize,
				MaxBuffered:    buffer,
			}, engine.Options{
				Stats:  collector,
				Events: events,
			})
			if err != nil {
				return err // validation failure, before any file I/O
			}

			presenter := ui.NewPresenter(ui.Config{
				Writer:    os.Stdout,
				ErrWriter: os.Stderr,
				Stats:     collector,
				Dest:      dst,
				IsTTY:     ui.IsTTY(os.Stderr.Fd()),
				Quiet:     quiet,
				NoSpinner: noSpinner,
			})

			// Presenter in background, engine in foreground.
			var presenterErr error
			var presenterWg sync.WaitGroup
			presenterWg.Add(1)
			go func() {
				defer presenterWg.Done()
				presenterErr = presenter.Run(events)
			}()

			result := copier.Run(ctx)
			stop()
			close(events)
			presenterWg.Wait()
			if presenterErr != nil {
				fmt.Fprintf(os.Stderr, "presenter: %v\n", presenterErr)
			}

			elapsed := ui.FormatDuration(result.Elapsed)

			switch result.State {
			case engine.StateAlreadyComplete:
				if !quiet {
					fmt.Fprintf(os.Stderr, "already complete (checkpoint at %s), %s\n",
						stats.FormatBytes(result.Resumed), elapsed)
				}
				return nil

			case engine.StateCompleted:
				if !quiet {
					fmt.Fprintln(os.Stderr, presenter.Summary())
				}
				return nil

			case engine.StateCancelled:
				if !quiet {
					fmt.Fprintf(os.Stderr, "cancelled after %s, %s committed; rerun to resume\n",
						elapsed, stats.FormatBytes(result.Resumed+result.BytesCommitted))
				}
				return nil

			default:
				slog.Error("copy failed", "error", result.Err, "elapsed", elapsed)
				if errors.Is(result.Err, engine.ErrValidation) {
					return &exitError{code: 2}
				}
				return &exitError{code: 1}
			}
		},
	}

	rootCmd.Flags().BoolVar(&showVersion, "version", false, "print version and exit")
	rootCmd.Flags().
		StringVar(&offsetPath, "offset", "", "checkpoint file path (default: <destination>.offset)")
	rootCmd.Flags().
		StringVar(&chunkSizeStr, "chunk-size", "10M", "chunk size in bytes (e.g. 1M, 64K; minimum 1024)")
	rootCmd.Flags().
		IntVar(&buffer, "buffer", engine.DefaultMaxBuffered, "maximum in-flight chunks per pipeline queue")
	rootCmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "suppress all output except errors")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.Flags().BoolVar(&noSpinner, "no-spinner", false, "disable the progress spinner")

	if err := rootCmd.Execute(); err != nil {
		if exitErr, ok := err.(*exitError); ok {
			return exitErr.code
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 2
	}

	return 0
}

// applyConfigDefaults applies config file defaults for flags not explicitly
// set on the CLI.
func applyConfigDefaults(
	cmd *cobra.Command,
	defaults config.DefaultsConfig,
	chunkSizeStr *string,
	buffer *int,
	quiet *bool,
	noSpinner *bool,
) {
	if !cmd.Flags().Changed("chunk-size") && defaults.ChunkSize != nil {
		*chunkSizeStr = *defaults.ChunkSize
	}
	if !cmd.Flags().Changed("buffer") && defaults.Buffer != nil {
		*buffer = *defaults.Buffer
	}
	if !cmd.Flags().Changed("quiet") && defaults.Quiet != nil {
		*quiet = *defaults.Quiet
	}
	if !cmd.Flags().Changed("no-spinner") && defaults.NoSpinner != nil {
		*noSpinner = *defaults.NoSpinner
	}
}

type exitError struct {
	code int
}

func (e *exitError) Error() string {
	return fmt.Sprintf("exit code %d", e.code)
}

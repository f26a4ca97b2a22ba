package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/archer884/roll-report/internal/aggregate"
	"github.com/archer884/roll-report/internal/model"
)

const version = "0.1.0"

type exitCodeError struct {
	code int
	err  error
}

func (e exitCodeError) Error() string {
	if e.err == nil {
		return "command failed"
	}
	return e.err.Error()
}

func (e exitCodeError) Unwrap() error {
	return e.err
}

func (e exitCodeError) ExitCode() int {
	if e.code <= 0 {
		return 1
	}
	return e.code
}

func newRootCmd() *cobra.Command {
	var jsonOutput bool
	var watch bool
	var poll bool
	var interval time.Duration

	cmd := &cobra.Command{
		Use:     "roll-report <path>",
		Short:   "Average entry values grouped by their max key",
		Version: version,
		Args: func(cmd *cobra.Command, args []string) error {
			if err := cobra.ExactArgs(1)(cmd, args); err != nil {
				return exitCodeError{code: 2, err: err}
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if watch && interval <= 0 {
				return exitCodeError{code: 2, err: fmt.Errorf("interval must be > 0 in watch mode")}
			}

			path := args[0]
			stdout := cmd.OutOrStdout()
			stderr := cmd.ErrOrStderr()

			baseline := statStamp(path)
			report, err := aggregate.FromFile(path)
			if err != nil {
				return err
			}
			if err := writeReport(stdout, report, jsonOutput); err != nil {
				return err
			}

			if !watch {
				return nil
			}

			fmt.Fprintf(stderr, "watching: interval=%s path=%s\n", interval.String(), path)
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			onChange := func() {
				next, err := aggregate.FromFile(path)
				if err != nil {
					fmt.Fprintf(stderr, "watch build error: %v\n", err)
					return
				}
				if err := writeReport(stdout, next, jsonOutput); err != nil {
					fmt.Fprintf(stderr, "watch output error: %v\n", err)
				}
			}

			if !poll {
				err := watchWithFSNotify(ctx, path, interval, onChange)
				if err == nil {
					fmt.Fprintln(stderr, "watch: stopped")
					return nil
				}
				fmt.Fprintf(stderr, "watch backend fallback to polling: %v\n", err)
			}

			watchWithPolling(ctx, path, baseline, interval, onChange)
			fmt.Fprintln(stderr, "watch: stopped")
			return nil
		},
	}

	cmd.SilenceUsage = true
	cmd.SilenceErrors = true
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "emit the report as JSON")
	cmd.Flags().BoolVar(&watch, "watch", false, "rerun the report whenever the input file changes")
	cmd.Flags().BoolVar(&poll, "poll", false, "force polling watch mode instead of fsnotify")
	cmd.Flags().DurationVar(&interval, "interval", 2*time.Second, "debounce/poll interval for watch mode")
	return cmd
}

func run(args []string, stdout, stderr io.Writer) error {
	return runContext(context.Background(), args, stdout, stderr)
}

func runContext(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	if args == nil {
		// cobra falls back to os.Args when given nil
		args = []string{}
	}
	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	return cmd.ExecuteContext(ctx)
}

func writeReport(w io.Writer, report model.Report, jsonOutput bool) error {
	if jsonOutput {
		return emitJSON(w, report)
	}
	for _, group := range report.Groups {
		if _, err := fmt.Fprintf(w, "%d: %.3f\n", group.Max, group.Mean); err != nil {
			return err
		}
	}
	return nil
}

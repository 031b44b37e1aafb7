package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	mirror "github.com/itsjohncs/sync-external-contributions"
	"github.com/itsjohncs/sync-external-contributions/cmd"
)

func main() {
	cmd.OrPanic(newRootCmd().Execute())
}

type rootCmd struct {
	*cobra.Command

	prune    bool
	logLevel string
}

func newRootCmd() *rootCmd {
	c := &rootCmd{
		Command: &cobra.Command{
			Use:   "sync-external-contributions config-file",
			Short: "mirror commits from source repos into a sync repo as empty placeholder commits",
			Args:  cobra.ExactArgs(1),
		},
	}

	c.Flags().BoolVar(&c.prune, "prune", c.prune, "offer to remove mirrors of commits gone from every source")
	c.PersistentFlags().StringVar(&c.logLevel, "log-level", "info", "log level: debug, info, warn, or error")

	c.Run = func(_ *cobra.Command, args []string) {
		c.runSync(args[0])
	}

	c.AddCommand(newPlanCmd(c.runPlan).Command)

	return c
}

func (c *rootCmd) runSync(configPath string) {
	setupLogger(c.logLevel)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	config := cmd.GetOrPanic(mirror.ParseConfigYAML(cmd.GetOrPanic(os.ReadFile(configPath))))

	opts := mirror.Options{}
	if c.prune {
		opts.Policy = mirror.RemovalConfirm
		opts.Confirm = mirror.LineConfirm(os.Stdin, os.Stdout)
	}

	cmd.GetOrPanic(mirror.Sync(ctx, config, opts))
}

func setupLogger(level string) {
	l := slog.LevelInfo
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		l = slog.LevelDebug
	case "warn", "warning":
		l = slog.LevelWarn
	case "error":
		l = slog.LevelError
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: l}))
	slog.SetDefault(logger)
	mirror.SetLogger(logger)
}

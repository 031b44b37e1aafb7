package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	mirror "github.com/itsjohncs/sync-external-contributions"
	"github.com/itsjohncs/sync-external-contributions/cmd"
)

type planCmd struct {
	*cobra.Command
}

func newPlanCmd(torun func(*cobra.Command, []string)) *planCmd {
	r := &planCmd{
		Command: &cobra.Command{
			Use:   "plan config-file",
			Short: "show what a sync would create and remove, without touching anything",
			Args:  cobra.ExactArgs(1),
		},
	}

	r.Run = torun

	return r
}

func (c *rootCmd) runPlan(_ *cobra.Command, args []string) {
	setupLogger(c.logLevel)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	config := cmd.GetOrPanic(mirror.ParseConfigYAML(cmd.GetOrPanic(os.ReadFile(args[0]))))

	result := cmd.GetOrPanic(mirror.Sync(ctx, config, mirror.Options{DryRun: true}))

	if result.Plan.Empty() {
		fmt.Println("sync repo is up to date")
		return
	}

	for _, m := range result.Plan.ToCreate {
		fmt.Printf("create  %s\n", m.Summary())
	}
	for _, m := range result.Plan.ToRemove {
		fmt.Printf("remove  %s\n", m.Summary())
	}
}

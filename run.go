package mirror

import (
	"context"
	"fmt"
	"time"

	"github.com/go-git/go-git/v5"
)

// RemovalPolicy selects how a run treats orphaned mirror commits, mirrors
// whose original commit is gone from every configured source.
type RemovalPolicy int

const (
	// RemovalAbort refuses to run while orphaned mirrors exist. Nothing is
	// mutated, not even the pending creations; the operator has to deal
	// with the orphans deliberately.
	RemovalAbort RemovalPolicy = iota
	// RemovalConfirm hands the orphans to the run's ConfirmFunc and
	// rewrites them out of the sync repo history on approval. Declining
	// ends the run cleanly with no mutation at all.
	RemovalConfirm
)

// Options tunes a [Sync] run. The zero value reads, reconciles, creates
// missing mirrors, and aborts on orphans.
type Options struct {
	// Policy picks the orphaned-mirror behavior.
	Policy RemovalPolicy
	// Confirm is consulted before any removal under [RemovalConfirm].
	Confirm ConfirmFunc
	// DryRun stops after reconciliation and reports the untouched plan.
	DryRun bool
	// LockTimeout bounds the wait for the sync repo lock. Zero fails
	// immediately when another run holds it.
	LockTimeout time.Duration
}

// Result reports what a [Sync] run did.
type Result struct {
	// Plan is the reconciliation outcome the run acted on.
	Plan *Plan
	// Created counts mirror commits recorded in the sync repo.
	Created int
	// Removed counts mirror commits rewritten out of the sync repo.
	Removed int
	// Declined is set when the confirm function answered no. The run ends
	// successfully without touching anything.
	Declined bool
}

// Sync runs the pipeline once: read every source repository, read the sync
// repository, reconcile, and record what changed. Sources are read one
// after another, and the advisory lock keeps a second run off the same sync
// repository for the whole pipeline.
//
// Removals happen before creations, so new mirrors land on the rewritten
// history.
func Sync(ctx context.Context, cfg *Config, opts Options) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if opts.Policy == RemovalConfirm && opts.Confirm == nil && !opts.DryRun {
		return nil, ErrNoConfirmFunc
	}

	syncrepo, err := git.PlainOpen(cfg.SyncRepo)
	if err != nil {
		return nil, fmt.Errorf("failed to open sync repo %s: %w", cfg.SyncRepo, err)
	}

	lock, err := AcquireLock(LockPath(cfg.SyncRepo), opts.LockTimeout)
	if err != nil {
		return nil, err
	}
	defer lock.Release()

	emails := NewEmailSet(cfg.IncludeEmails...)

	source := make([]*Commit, 0)
	for _, p := range cfg.Projects {
		repo, err := git.PlainOpen(p.GitRoot)
		if err != nil {
			return nil, fmt.Errorf("failed to open source %s at %s: %w", p.ID, p.GitRoot, err)
		}

		commits, err := ReadSourceCommits(ctx, repo, p.ID, emails)
		if err != nil {
			return nil, err
		}
		source = append(source, commits...)
	}

	synced, err := ReadSyncedCommits(ctx, syncrepo)
	if err != nil {
		return nil, err
	}

	plan, err := Reconcile(source, synced)
	if err != nil {
		return nil, err
	}

	result := &Result{Plan: plan}

	if opts.DryRun {
		return result, nil
	}

	if len(plan.ToRemove) > 0 {
		switch opts.Policy {
		case RemovalConfirm:
			ok, err := opts.Confirm(plan.ToRemove)
			if err != nil {
				return nil, fmt.Errorf("failed to confirm removal: %w", err)
			}
			if !ok {
				logger.Info("removal declined, leaving sync repo untouched")
				result.Declined = true

				return result, nil
			}

			if err := RemoveCommits(ctx, syncrepo, plan.ToRemove); err != nil {
				return nil, err
			}
			result.Removed = len(plan.ToRemove)

		default:
			return nil, fmt.Errorf("%w: %d found, rerun with removal enabled to prune them", ErrOrphanedMirrors, len(plan.ToRemove))
		}
	}

	created, err := CreateCommits(ctx, syncrepo, plan.ToCreate)
	if err != nil {
		return nil, err
	}
	result.Created = len(created)

	logger.Info("sync complete", "created", result.Created, "removed", result.Removed)

	return result, nil
}

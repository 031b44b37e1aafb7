package mirror

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
)

// ReadSyncedCommits reconstructs the set of managed mirror commits from the
// history reachable from HEAD of the sync repository. Commits whose subject
// does not parse as a mirror subject are not managed by this tool and are
// skipped. The records carry each mirror commit's own hash in SyncSHA.
//
// A sync repository with no commit yet yields an empty result. That is the
// normal state before the first run.
func ReadSyncedCommits(ctx context.Context, repo *git.Repository) ([]*Commit, error) {
	head, err := repo.Head()
	if errors.Is(err, plumbing.ErrReferenceNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to resolve head of sync repo: %w", err)
	}

	iter, err := repo.Log(&git.LogOptions{From: head.Hash()})
	if err != nil {
		return nil, fmt.Errorf("failed to list commits of sync repo: %w", err)
	}
	defer iter.Close()

	result := make([]*Commit, 0)

	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		c, err := iter.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read commit from sync repo: %w", err)
		}

		project, sha, ok := ParseMirrorSubject(subjectLine(c.Message))
		if !ok {
			logger.Debug("skipping unmanaged commit", "hash", c.Hash)
			continue
		}

		result = append(result, &Commit{
			Project:   project,
			SHA:       sha,
			Timestamp: c.Author.When,
			SyncSHA:   c.Hash,
		})
	}

	logger.Debug("scanned sync repo", "mirrors", len(result))

	return result, nil
}

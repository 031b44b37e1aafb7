package mirror

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/go-git/go-git/v5"
)

// ReadSourceCommits lists every commit reachable from HEAD of a source
// repository whose author email is in emails, in the order the log walk
// yields them. The records carry projectID and leave SyncSHA zero.
//
// A source repository whose HEAD does not resolve is an error rather than an
// empty result: a missing or broken source points at an environment problem,
// and the run must stop before deciding any mirror is orphaned.
func ReadSourceCommits(ctx context.Context, repo *git.Repository, projectID string, emails EmailSet) ([]*Commit, error) {
	head, err := repo.Head()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve head of source %s: %w", projectID, err)
	}

	iter, err := repo.Log(&git.LogOptions{From: head.Hash()})
	if err != nil {
		return nil, fmt.Errorf("failed to list commits of source %s: %w", projectID, err)
	}
	defer iter.Close()

	result := make([]*Commit, 0)
	total := 0

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
			return nil, fmt.Errorf("failed to read commit from source %s: %w", projectID, err)
		}

		total++

		if _, included := emails[c.Author.Email]; !included {
			continue
		}

		result = append(result, &Commit{
			Project:   projectID,
			SHA:       c.Hash.String(),
			Timestamp: c.Author.When,
		})
	}

	logger.Debug("scanned source", "project", projectID, "commits", total, "matched", len(result))

	return result, nil
}

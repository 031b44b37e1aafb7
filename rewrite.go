package mirror

import (
	"context"
	"fmt"
	"slices"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// RemoveCommits rewrites the history of the sync repository so the mirror
// commits in commits disappear, replaying everything after each dropped
// commit onto its first parent. Commits whose ancestry is untouched keep
// their identity. Rebuilt commits keep tree, author, committer, and message;
// a rewritten commit cannot keep its GPG signature, so signatures are
// dropped. Merge topology survives, with a dropped commit replaced by its
// first parent in any parent list that named it.
//
// New objects are written first and the branch reference moves once at the
// end, so an interrupted run never leaves a half-rewritten branch behind.
//
// Every entry must carry the SyncSHA of a mirror commit read back from this
// repository. A target missing from the reachable history is
// [ErrMirrorNotInHistory].
func RemoveCommits(ctx context.Context, repo *git.Repository, commits []*Commit) error {
	if len(commits) == 0 {
		return nil
	}

	targets := make(HashSet, len(commits))
	for _, m := range commits {
		if m.SyncSHA.IsZero() {
			return fmt.Errorf("%w: %s carries no sync repo hash", ErrMirrorNotInHistory, m)
		}
		targets[m.SyncSHA] = empty{}
	}

	branch, tip, err := currentBranch(repo)
	if err != nil {
		return err
	}
	if tip == nil {
		return fmt.Errorf("%w: sync repo has no commits", ErrMirrorNotInHistory)
	}

	path, err := historyPath(ctx, tip)
	if err != nil {
		return fmt.Errorf("failed to walk sync repo history: %w", err)
	}

	// origtonew maps every visited commit to its replacement. A dropped
	// commit maps to its already-mapped first parent, and a dropped root
	// maps to the zero hash, meaning it vanishes without replacement.
	origtonew := make(map[plumbing.Hash]plumbing.Hash, len(path))
	found := 0
	n := len(path)

	for i, c := range path {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if _, drop := targets[c.Hash]; drop {
			found++

			replacement := plumbing.ZeroHash
			if c.NumParents() > 0 {
				replacement = mappedHash(origtonew, c.ParentHashes[0])
			}
			origtonew[c.Hash] = replacement

			logger.Info("dropping mirror commit", "id", i, "total", n, "commit", c.Hash, "onto", replacement)
			continue
		}

		newparents := remapParents(origtonew, c.ParentHashes)

		if slices.Equal(newparents, c.ParentHashes) {
			origtonew[c.Hash] = c.Hash
			continue
		}

		newcommit := &object.Commit{
			Author:       c.Author,
			Committer:    c.Committer,
			Message:      c.Message,
			TreeHash:     c.TreeHash,
			ParentHashes: newparents,
		}

		if err := saveCommit(newcommit, repo.Storer); err != nil {
			return fmt.Errorf("failed to rewrite commit %s: %w", c.Hash, err)
		}

		origtonew[c.Hash] = newcommit.Hash
		logger.Debug("rewrote commit", "id", i, "total", n, "commit", c.Hash, "newcommit", newcommit.Hash)
	}

	if found != len(targets) {
		return fmt.Errorf("%w: only %d of %d targets reachable from %s", ErrMirrorNotInHistory, found, len(targets), branch)
	}

	newhead := mappedHash(origtonew, tip.Hash)
	if newhead.IsZero() {
		logger.Warn("sync repo history is empty after removal", "branch", branch)
		if err := repo.Storer.RemoveReference(branch); err != nil {
			return fmt.Errorf("failed to remove %s: %w", branch, err)
		}

		return nil
	}

	if err := repo.Storer.SetReference(plumbing.NewHashReference(branch, newhead)); err != nil {
		return fmt.Errorf("failed to move %s to %s: %w", branch, newhead, err)
	}

	return nil
}

// mappedHash follows origtonew, falling back to the hash itself for commits
// the walk left untouched.
func mappedHash(origtonew map[plumbing.Hash]plumbing.Hash, h plumbing.Hash) plumbing.Hash {
	if v, found := origtonew[h]; found {
		return v
	}

	return h
}

// remapParents rewrites a parent list through origtonew, dropping parents
// that vanished and keeping only the first occurrence of duplicates, order
// preserved.
func remapParents(origtonew map[plumbing.Hash]plumbing.Hash, parents []plumbing.Hash) []plumbing.Hash {
	result := make([]plumbing.Hash, 0, len(parents))
	seen := make(map[plumbing.Hash]empty, len(parents))

	for _, p := range parents {
		np := mappedHash(origtonew, p)
		if np.IsZero() {
			continue
		}
		if _, found := seen[np]; found {
			continue
		}

		seen[np] = empty{}
		result = append(result, np)
	}

	return result
}

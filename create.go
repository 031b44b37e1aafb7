package mirror

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// CreateCommits records one empty mirror commit in the sync repository for
// every entry of commits, in slice order. Each mirror carries the source
// commit's timestamp as both author and committer date and the mirror
// subject as its whole message. The branch reference advances after every
// commit, so an interrupted run leaves only whole mirrors behind for the
// next run to count.
//
// Author and committer identity come from the repository's git config;
// [ErrNoUserIdentity] is returned when user.name or user.email is missing.
// On an unborn branch the first mirror becomes a root commit holding the
// canonical empty tree. Afterwards every mirror reuses its parent's tree,
// which is what keeps the commits empty.
func CreateCommits(ctx context.Context, repo *git.Repository, commits []*Commit) ([]plumbing.Hash, error) {
	if len(commits) == 0 {
		return nil, nil
	}

	who, err := identity(repo)
	if err != nil {
		return nil, err
	}

	branch, tip, err := currentBranch(repo)
	if err != nil {
		return nil, err
	}

	var parenthashes []plumbing.Hash
	var treehash plumbing.Hash

	if tip == nil {
		treehash, err = saveEmptyTree(repo.Storer)
		if err != nil {
			return nil, err
		}
	} else {
		treehash = tip.TreeHash
		parenthashes = []plumbing.Hash{tip.Hash}
	}

	created := make([]plumbing.Hash, 0, len(commits))
	n := len(commits)

	for i, m := range commits {
		select {
		case <-ctx.Done():
			return created, ctx.Err()
		default:
		}

		sig := object.Signature{
			Name:  who.Name,
			Email: who.Email,
			When:  m.Timestamp,
		}

		newcommit := &object.Commit{
			TreeHash:     treehash,
			ParentHashes: parenthashes,
			Author:       sig,
			Committer:    sig,
			Message:      m.Subject() + "\n",
		}

		if err := saveCommit(newcommit, repo.Storer); err != nil {
			return created, fmt.Errorf("failed to create mirror for %s: %w", m, err)
		}

		if err := repo.Storer.SetReference(plumbing.NewHashReference(branch, newcommit.Hash)); err != nil {
			return created, fmt.Errorf("failed to advance %s: %w", branch, err)
		}

		logger.Info("created mirror commit",
			"id", i,
			"total", n,
			"project", m.Project,
			"sha", m.SHA,
			"date", m.Timestamp.Format(time.RFC3339),
			"mirror", newcommit.Hash)

		created = append(created, newcommit.Hash)
		parenthashes = []plumbing.Hash{newcommit.Hash}
	}

	return created, nil
}

type userIdentity struct {
	Name  string
	Email string
}

// identity resolves user.name and user.email for the repository, merging
// local, global, and system config the way git itself does.
func identity(repo *git.Repository) (userIdentity, error) {
	cfg, err := repo.ConfigScoped(config.SystemScope)
	if err != nil {
		return userIdentity{}, fmt.Errorf("failed to load git config: %w", err)
	}

	if cfg.User.Name == "" || cfg.User.Email == "" {
		return userIdentity{}, ErrNoUserIdentity
	}

	return userIdentity{Name: cfg.User.Name, Email: cfg.User.Email}, nil
}

// currentBranch resolves the reference that mutations apply to and the
// commit it points at. The reference is the branch HEAD names, or HEAD
// itself when detached. tip is nil on an unborn branch.
func currentBranch(repo *git.Repository) (plumbing.ReferenceName, *object.Commit, error) {
	head, err := repo.Head()
	if errors.Is(err, plumbing.ErrReferenceNotFound) {
		ref, err := repo.Storer.Reference(plumbing.HEAD)
		if err != nil {
			return "", nil, fmt.Errorf("failed to read HEAD: %w", err)
		}
		if ref.Type() != plumbing.SymbolicReference {
			return "", nil, fmt.Errorf("HEAD of sync repo is neither born nor symbolic")
		}

		return ref.Target(), nil, nil
	}
	if err != nil {
		return "", nil, fmt.Errorf("failed to resolve head of sync repo: %w", err)
	}

	tip, err := object.GetCommit(repo.Storer, head.Hash())
	if err != nil {
		return "", nil, fmt.Errorf("failed to read head commit %s: %w", head.Hash(), err)
	}

	return head.Name(), tip, nil
}

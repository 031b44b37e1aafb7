package mirror

import (
	"fmt"

	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/plumbing/storer"
)

// saveCommit encodes the commit into s and sets its Hash field to the hash
// the storer assigned.
func saveCommit(c *object.Commit, s storer.EncodedObjectStorer) error {
	obj := s.NewEncodedObject()
	if err := c.Encode(obj); err != nil {
		return fmt.Errorf("failed to encode commit: %w", err)
	}

	h, err := s.SetEncodedObject(obj)
	if err != nil {
		return fmt.Errorf("failed to store commit: %w", err)
	}

	c.Hash = h

	return nil
}

// saveEmptyTree stores the canonical empty tree object, the tree of a mirror
// commit created on an unborn branch.
func saveEmptyTree(s storer.EncodedObjectStorer) (plumbing.Hash, error) {
	obj := s.NewEncodedObject()
	if err := (&object.Tree{}).Encode(obj); err != nil {
		return plumbing.ZeroHash, fmt.Errorf("failed to encode empty tree: %w", err)
	}

	h, err := s.SetEncodedObject(obj)
	if err != nil {
		return plumbing.ZeroHash, fmt.Errorf("failed to store empty tree: %w", err)
	}

	return h, nil
}

package mirror

import (
	"cmp"
	"fmt"
	"slices"
	"time"

	"github.com/go-git/go-git/v5/plumbing"
)

// Commit is the unit of reconciliation: one qualifying commit in a source
// repository, or the placeholder commit mirroring it in the sync repository.
type Commit struct {
	// Project is the configured identifier of the owning source project.
	Project string
	// SHA is the hex hash of the original commit in its source repository.
	SHA string
	// Timestamp is the author timestamp of the original commit, second
	// precision, retaining its UTC offset.
	Timestamp time.Time
	// SyncSHA is the hash of the mirror commit itself in the sync
	// repository. It is zero for commits read from a source repository and
	// takes no part in equality.
	SyncSHA plumbing.Hash
}

// Key identifies a [Commit] for set operations. A commit read from a source
// repository and the mirror commit recording it produce the same Key, which
// is how already-synced commits are recognized.
//
// Timestamps compare as instants at second precision, so the same moment
// expressed under two different UTC offsets yields the same Key.
type Key struct {
	Project string
	SHA     string
	Unix    int64
}

// Key returns the reconciliation key of the commit.
func (c *Commit) Key() Key {
	return Key{
		Project: c.Project,
		SHA:     c.SHA,
		Unix:    c.Timestamp.Unix(),
	}
}

// Subject returns the subject line a mirror commit for c carries.
func (c *Commit) Subject() string {
	return MirrorSubject(c.Project, c.SHA)
}

func (c *Commit) String() string {
	return fmt.Sprintf("%s:%s (%s)", c.Project, c.SHA, c.Timestamp.Format(time.RFC3339))
}

// Summary returns a one-line human readable description of the commit for
// prompts and plan listings, led by the mirror commit's short hash when the
// record came from the sync repository.
func (c *Commit) Summary() string {
	if c.SyncSHA.IsZero() {
		return fmt.Sprintf("%s (%s)", c.Subject(), c.Timestamp.Format(time.RFC3339))
	}

	return fmt.Sprintf("%s %s (%s)", c.SyncSHA.String()[:7], c.Subject(), c.Timestamp.Format(time.RFC3339))
}

// commitSet is the lookup from [Key] to the full record. Insertion keeps the
// first record seen for a key, the way repeated set insertion drops
// duplicates.
type commitSet struct {
	byKey map[Key]*Commit
}

func newCommitSet(commits ...*Commit) *commitSet {
	s := &commitSet{byKey: make(map[Key]*Commit, len(commits))}
	s.add(commits...)

	return s
}

func (s *commitSet) add(commits ...*Commit) {
	for _, c := range commits {
		if c == nil {
			continue
		}

		k := c.Key()
		if _, found := s.byKey[k]; found {
			continue
		}
		s.byKey[k] = c
	}
}

func (s *commitSet) has(k Key) bool {
	_, found := s.byKey[k]
	return found
}

func (s *commitSet) len() int {
	return len(s.byKey)
}

// shas collects the distinct original shas present in the set.
func (s *commitSet) shas() map[string]empty {
	result := make(map[string]empty, len(s.byKey))
	for k := range s.byKey {
		result[k.SHA] = empty{}
	}

	return result
}

// minus returns the commits of s whose keys are absent from other, oldest
// first and then by project and sha, so a run mutates in a deterministic
// order.
func (s *commitSet) minus(other *commitSet) []*Commit {
	result := make([]*Commit, 0)
	for k, c := range s.byKey {
		if !other.has(k) {
			result = append(result, c)
		}
	}

	sortCommits(result)

	return result
}

func sortCommits(commits []*Commit) {
	slices.SortFunc(commits, func(a, b *Commit) int {
		if r := cmp.Compare(a.Timestamp.Unix(), b.Timestamp.Unix()); r != 0 {
			return r
		}
		if r := cmp.Compare(a.Project, b.Project); r != 0 {
			return r
		}

		return cmp.Compare(a.SHA, b.SHA)
	})
}

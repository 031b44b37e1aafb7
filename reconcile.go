package mirror

import (
	"fmt"
	"maps"
	"slices"
	"strings"
)

// Plan is the outcome of reconciling source commits against the mirrors
// already recorded in the sync repository.
type Plan struct {
	// ToCreate holds source commits with no mirror yet, oldest first.
	ToCreate []*Commit
	// ToRemove holds mirror commits whose original commit is gone from
	// every configured source, oldest first. Each carries its SyncSHA.
	ToRemove []*Commit
}

// Empty reports whether the plan calls for no mutation at all.
func (p *Plan) Empty() bool {
	return len(p.ToCreate) == 0 && len(p.ToRemove) == 0
}

// Reconcile computes the set difference between source commits and synced
// mirror commits in both directions. Records compare by [Key], so the source
// and sync sides of an already-mirrored commit collapse into one.
//
// Before returning, Reconcile checks that the shas scheduled for creation
// are exactly the source shas absent from the sync repository. A divergence
// means two projects produced the same sha, or a mirror subject no longer
// matches the commit it was written for. Both are corruption, reported as
// [ErrSHACollision] before anything is mutated.
func Reconcile(source, synced []*Commit) (*Plan, error) {
	sourceSet := newCommitSet(source...)
	syncedSet := newCommitSet(synced...)

	plan := &Plan{
		ToCreate: sourceSet.minus(syncedSet),
		ToRemove: syncedSet.minus(sourceSet),
	}

	if err := checkShaIdentity(plan.ToCreate, sourceSet, syncedSet); err != nil {
		return nil, err
	}

	logger.Info("reconciled",
		"source", sourceSet.len(),
		"synced", syncedSet.len(),
		"create", len(plan.ToCreate),
		"remove", len(plan.ToRemove))

	return plan, nil
}

// checkShaIdentity asserts that the shas of toCreate equal the sha-level set
// difference of source minus synced.
func checkShaIdentity(toCreate []*Commit, source, synced *commitSet) error {
	want := source.shas()
	for sha := range synced.shas() {
		delete(want, sha)
	}

	got := make(map[string]empty, len(toCreate))
	for _, c := range toCreate {
		got[c.SHA] = empty{}
	}

	if maps.Equal(got, want) {
		return nil
	}

	return fmt.Errorf("%w: diverging shas %s", ErrSHACollision, strings.Join(divergingShas(got, want), ", "))
}

func divergingShas(got, want map[string]empty) []string {
	diff := make([]string, 0)
	for sha := range got {
		if _, found := want[sha]; !found {
			diff = append(diff, sha)
		}
	}
	for sha := range want {
		if _, found := got[sha]; !found {
			diff = append(diff, sha)
		}
	}

	slices.Sort(diff)

	return diff
}

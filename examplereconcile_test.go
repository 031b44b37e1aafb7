package mirror_test

import (
	"fmt"
	"log"
	"time"

	"github.com/go-git/go-git/v5/plumbing"

	mirror "github.com/itsjohncs/sync-external-contributions"
)

// Example reconciling two source projects against a sync repository that
// holds one current mirror and one orphaned mirror.
func ExampleReconcile() {
	source := []*mirror.Commit{
		{Project: "alpha", SHA: "93a9266c", Timestamp: time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC)},
		{Project: "beta", SHA: "5cfe1370", Timestamp: time.Date(2024, 3, 2, 18, 0, 0, 0, time.UTC)},
	}
	synced := []*mirror.Commit{
		{
			Project: "alpha",
			SHA:     "93a9266c",
			// Same instant as the source record, written down in
			// another UTC offset.
			Timestamp: time.Date(2024, 3, 1, 11, 30, 0, 0, time.FixedZone("", 2*3600)),
			SyncSHA:   plumbing.NewHash("4e5a24e63e82e029e2a9e2dd4b6cbeae388e30ab"),
		},
		{
			Project:   "alpha",
			SHA:       "00c0ffee",
			Timestamp: time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
			SyncSHA:   plumbing.NewHash("af387245bd05f7ba973c9e1e25b1cca2eefef7a1"),
		},
	}

	plan, err := mirror.Reconcile(source, synced)
	if err != nil {
		log.Panic(err)
	}

	for _, c := range plan.ToCreate {
		fmt.Println("create:", c.Subject())
	}
	for _, c := range plan.ToRemove {
		fmt.Println("remove:", c.Subject())
	}

	// Output:
	// create: Synced from beta:5cfe1370
	// remove: Synced from alpha:00c0ffee
}

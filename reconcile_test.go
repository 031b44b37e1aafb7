package mirror

import (
	"errors"
	"testing"

	"github.com/go-git/go-git/v5/plumbing"
	"github.com/google/go-cmp/cmp"
)

func TestReconcile_upToDate(t *testing.T) {
	source := []*Commit{
		{Project: "alpha", SHA: "aa01", Timestamp: ts("2024-01-01T10:00:00+02:00")},
		{Project: "beta", SHA: "bb02", Timestamp: ts("2024-01-02T00:00:00Z")},
	}
	synced := []*Commit{
		{Project: "beta", SHA: "bb02", Timestamp: ts("2024-01-02T00:00:00Z"), SyncSHA: plumbing.NewHash("4e5a24e63e82e029e2a9e2dd4b6cbeae388e30ab")},
		{Project: "alpha", SHA: "aa01", Timestamp: ts("2024-01-01T08:00:00Z"), SyncSHA: plumbing.NewHash("af387245bd05f7ba973c9e1e25b1cca2eefef7a1")},
	}

	plan, err := Reconcile(source, synced)
	if err != nil {
		t.Fatal(err)
	}

	if !plan.Empty() {
		t.Fatalf("want empty plan, got %+v", plan)
	}
}

func TestReconcile_splitsBothWays(t *testing.T) {
	shared := &Commit{Project: "alpha", SHA: "aa01", Timestamp: ts("2024-01-01T00:00:00Z")}
	fresh := &Commit{Project: "alpha", SHA: "aa02", Timestamp: ts("2024-01-02T00:00:00Z")}
	orphan := &Commit{
		Project:   "beta",
		SHA:       "bb01",
		Timestamp: ts("2023-12-31T00:00:00Z"),
		SyncSHA:   plumbing.NewHash("af387245bd05f7ba973c9e1e25b1cca2eefef7a1"),
	}
	sharedMirror := &Commit{
		Project:   "alpha",
		SHA:       "aa01",
		Timestamp: ts("2024-01-01T00:00:00Z"),
		SyncSHA:   plumbing.NewHash("4e5a24e63e82e029e2a9e2dd4b6cbeae388e30ab"),
	}

	plan, err := Reconcile([]*Commit{shared, fresh}, []*Commit{orphan, sharedMirror})
	if err != nil {
		t.Fatal(err)
	}

	if diff := cmp.Diff([]*Commit{fresh}, plan.ToCreate); diff != "" {
		t.Fatalf("to create mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]*Commit{orphan}, plan.ToRemove); diff != "" {
		t.Fatalf("to remove mismatch (-want +got):\n%s", diff)
	}
	if plan.ToRemove[0].SyncSHA.IsZero() {
		t.Fatal("want orphan to keep its sync repo hash")
	}
}

func TestReconcile_createOrderIsChronological(t *testing.T) {
	source := []*Commit{
		{Project: "beta", SHA: "bb03", Timestamp: ts("2024-01-03T00:00:00Z")},
		{Project: "alpha", SHA: "aa01", Timestamp: ts("2024-01-01T00:00:00Z")},
		{Project: "alpha", SHA: "aa02", Timestamp: ts("2024-01-02T00:00:00Z")},
	}

	plan, err := Reconcile(source, nil)
	if err != nil {
		t.Fatal(err)
	}

	var got []string
	for _, c := range plan.ToCreate {
		got = append(got, c.SHA)
	}

	if diff := cmp.Diff([]string{"aa01", "aa02", "bb03"}, got); diff != "" {
		t.Fatalf("order mismatch (-want +got):\n%s", diff)
	}
}

func TestReconcile_shaCollisionAcrossProjects(t *testing.T) {
	source := []*Commit{
		{Project: "alpha", SHA: "aa01", Timestamp: ts("2024-01-01T00:00:00Z")},
		{Project: "beta", SHA: "aa01", Timestamp: ts("2024-01-02T00:00:00Z")},
	}
	synced := []*Commit{
		{Project: "alpha", SHA: "aa01", Timestamp: ts("2024-01-01T00:00:00Z"), SyncSHA: plumbing.NewHash("4e5a24e63e82e029e2a9e2dd4b6cbeae388e30ab")},
	}

	_, err := Reconcile(source, synced)
	if !errors.Is(err, ErrSHACollision) {
		t.Fatalf("want ErrSHACollision, got: %v", err)
	}
}

func TestReconcile_timestampDriftIsCorruption(t *testing.T) {
	source := []*Commit{
		{Project: "alpha", SHA: "aa01", Timestamp: ts("2024-01-01T00:00:00Z")},
	}
	synced := []*Commit{
		{Project: "alpha", SHA: "aa01", Timestamp: ts("2024-01-01T00:00:05Z"), SyncSHA: plumbing.NewHash("4e5a24e63e82e029e2a9e2dd4b6cbeae388e30ab")},
	}

	_, err := Reconcile(source, synced)
	if !errors.Is(err, ErrSHACollision) {
		t.Fatalf("want ErrSHACollision, got: %v", err)
	}
}

func TestReconcile_bootstrapFromNothing(t *testing.T) {
	source := []*Commit{
		{Project: "alpha", SHA: "aa01", Timestamp: ts("2024-01-01T00:00:00Z")},
	}

	plan, err := Reconcile(source, nil)
	if err != nil {
		t.Fatal(err)
	}

	if len(plan.ToCreate) != 1 || len(plan.ToRemove) != 0 {
		t.Fatalf("want 1 creation and no removals, got %+v", plan)
	}
}

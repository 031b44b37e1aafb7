package mirror

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-git/go-git/v5"
	"go.etcd.io/bbolt"
)

const (
	LOCK_FILE_NAME     = "sync-contributions.lock"
	LOCK_HOLDER_BUCKET = "holder"
)

// Lock is an advisory cross-process lock on a sync repository. Two runs
// mutating the same sync repo at once would interleave reads and reference
// updates, so the second run fails fast instead.
//
// The lock is a bbolt database opened exclusively. The file lock bbolt
// takes is the mutual exclusion; the database itself only records who held
// it last. No reconciliation state lives here, the sync repository's
// history stays the single source of truth.
type Lock struct {
	db *bbolt.DB
}

// LockPath returns the lock file location for a sync repository: inside the
// .git directory when there is one, next to the repository content for a
// bare repo.
func LockPath(syncRepo string) string {
	gitdir := filepath.Join(syncRepo, git.GitDirName)
	if info, err := os.Stat(gitdir); err == nil && info.IsDir() {
		return filepath.Join(gitdir, LOCK_FILE_NAME)
	}

	return filepath.Join(syncRepo, LOCK_FILE_NAME)
}

// AcquireLock takes the advisory lock at path, waiting at most timeout for
// a concurrent holder to let go. A zero timeout fails immediately. A held
// lock surfaces as [ErrSyncRepoBusy].
func AcquireLock(path string, timeout time.Duration) (*Lock, error) {
	// bbolt reads a zero timeout as wait-forever.
	if timeout <= 0 {
		timeout = time.Millisecond
	}

	db, err := bbolt.Open(path, 0o600, &bbolt.Options{Timeout: timeout})
	if errors.Is(err, bbolt.ErrTimeout) {
		return nil, fmt.Errorf("%w: %s", ErrSyncRepoBusy, path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open lock file %s: %w", path, err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists([]byte(LOCK_HOLDER_BUCKET))
		if err != nil {
			return err
		}

		return b.Put([]byte("last"), []byte(fmt.Sprintf("pid %d", os.Getpid())))
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to mark lock file %s: %w", path, err)
	}

	logger.Debug("acquired sync repo lock", "path", path)

	return &Lock{db: db}, nil
}

// Release lets go of the lock. The file stays behind for the next run.
func (l *Lock) Release() error {
	if l == nil || l.db == nil {
		return nil
	}

	return l.db.Close()
}

// errors

package mirror

import "errors"

var (
	ErrNoSyncRepo         = errors.New("no sync repo configured")
	ErrEmptyProjectID     = errors.New("empty project id")
	ErrInvalidProjectID   = errors.New("invalid project id")
	ErrDuplicateProjectID = errors.New("duplicate project id")
	ErrEmptyGitRoot       = errors.New("empty git root")
	ErrSHACollision       = errors.New("sha collision or corrupted mirror data")
	ErrOrphanedMirrors    = errors.New("sync repo holds mirrors of commits gone from every source")
	ErrNoUserIdentity     = errors.New("user identity not configured for sync repo")
	ErrMirrorNotInHistory = errors.New("mirror commit not found in sync repo history")
	ErrSyncRepoBusy       = errors.New("another run holds the sync repo lock")
	ErrNoConfirmFunc      = errors.New("removal confirmation requires a confirm function")
)

// mirror keeps a sync git repository in step with the commits authored in a
// set of source repositories. Every qualifying source commit is represented by
// one empty placeholder commit in the sync repository, carrying the original
// author timestamp and a subject line encoding the source project and sha, so
// a unified contribution timeline can be published without exposing any
// source content.
//
// See [Sync] for the full pipeline, and [ReadSourceCommits], [ReadSyncedCommits],
// [Reconcile], [CreateCommits] and [RemoveCommits] for the individual steps.
package mirror

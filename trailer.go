package mirror

import (
	"fmt"
	"regexp"
	"strings"
)

// mirrorSubjectRE matches the subject line of a managed mirror commit. The
// sync repository may hold ordinary commits too; anything that does not
// match is simply not managed by this tool.
var mirrorSubjectRE = regexp.MustCompile(`^Synced from (\w+):([0-9a-f]+)$`)

// MirrorSubject formats the subject line that encodes a source commit in its
// mirror commit. The format is a round-trip contract: subjects written by
// [CreateCommits] are recognized by [ReadSyncedCommits] on later runs.
func MirrorSubject(project, sha string) string {
	return fmt.Sprintf("Synced from %s:%s", project, sha)
}

// ParseMirrorSubject extracts the project id and original sha from a mirror
// commit subject. ok is false for subjects this tool does not manage.
func ParseMirrorSubject(subject string) (project string, sha string, ok bool) {
	m := mirrorSubjectRE.FindStringSubmatch(subject)
	if m == nil {
		return "", "", false
	}

	return m[1], m[2], true
}

// subjectLine returns the first line of a commit message.
func subjectLine(message string) string {
	subject, _, _ := strings.Cut(message, "\n")
	return strings.TrimRight(subject, "\r")
}

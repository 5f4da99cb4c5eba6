package generator

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/thecloudstation/imagegen/pkg/project"
)

var (
	invalidRepoChars = regexp.MustCompile(`[^a-z0-9._-]+`)
	invalidTagChars  = regexp.MustCompile(`[^A-Za-z0-9._-]+`)
)

// FormatImageName expands the placeholders of an image name format:
//
//	%g  last segment of the groupId
//	%a  artifactId
//	%v  version
//	%l  "latest" for snapshots, the version otherwise
//	%t  "snapshot-<timestamp>" for snapshots, the version otherwise
//	%%  a literal percent sign
//
// Unknown placeholders are kept verbatim.
func FormatImageName(format string, p *project.Project, now time.Time) string {
	if p == nil {
		p = &project.Project{}
	}

	var b strings.Builder
	for i := 0; i < len(format); i++ {
		c := format[i]
		if c != '%' || i+1 == len(format) {
			b.WriteByte(c)
			continue
		}

		i++
		switch format[i] {
		case 'g':
			b.WriteString(sanitizeRepo(lastSegment(p.GroupID)))
		case 'a':
			b.WriteString(sanitizeRepo(p.ArtifactID))
		case 'v':
			b.WriteString(sanitizeTag(p.Version))
		case 'l':
			if p.IsSnapshot() {
				b.WriteString(LatestTag)
			} else {
				b.WriteString(sanitizeTag(p.Version))
			}
		case 't':
			if p.IsSnapshot() {
				b.WriteString(snapshotTag(now))
			} else {
				b.WriteString(sanitizeTag(p.Version))
			}
		case '%':
			b.WriteByte('%')
		default:
			b.WriteByte('%')
			b.WriteByte(format[i])
		}
	}
	return b.String()
}

// snapshotTag formats a timestamp like "snapshot-170515-143012-0042"
func snapshotTag(now time.Time) string {
	return fmt.Sprintf("snapshot-%s-%04d", now.Format("060102-150405"), now.Nanosecond()/int(time.Millisecond))
}

func lastSegment(groupID string) string {
	if i := strings.LastIndex(groupID, "."); i >= 0 {
		return groupID[i+1:]
	}
	return groupID
}

// sanitizeRepo makes a string usable as an image repository component
func sanitizeRepo(s string) string {
	s = invalidRepoChars.ReplaceAllString(strings.ToLower(s), "-")
	return strings.Trim(s, "-.")
}

// sanitizeTag makes a string usable as an image tag
func sanitizeTag(s string) string {
	s = invalidTagChars.ReplaceAllString(s, "-")
	if len(s) > 128 {
		s = s[:128]
	}
	return s
}

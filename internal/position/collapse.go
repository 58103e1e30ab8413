package position

import (
	"regexp"
	"strings"
)

var (
	wordRe     = regexp.MustCompile(`[\p{L}\p{N}_]+`)
	slashGapRe = regexp.MustCompile(`^\s*/\s*$`)
	spaceGapRe = regexp.MustCompile(`^\s+$`)
)

func collapseSlashRepeats(s string) string { return collapseRepeats(s, slashGapRe) }

func collapseSpaceRepeats(s string) string { return collapseRepeats(s, spaceGapRe) }

// collapseRepeats replaces a word immediately repeated one or more times,
// with only a gap matching sep in between, by a single occurrence.
// "Go/Go" with a slash gap becomes "Go".
func collapseRepeats(s string, sep *regexp.Regexp) string {
	locs := wordRe.FindAllStringIndex(s, -1)
	if len(locs) < 2 {
		return s
	}

	var b strings.Builder
	written := 0
	for i := 0; i < len(locs); {
		word := s[locs[i][0]:locs[i][1]]
		j := i
		for j+1 < len(locs) &&
			s[locs[j+1][0]:locs[j+1][1]] == word &&
			sep.MatchString(s[locs[j][1]:locs[j+1][0]]) {
			j++
		}
		if j > i {
			b.WriteString(s[written:locs[i][1]])
			written = locs[j][1]
		}
		i = j + 1
	}
	if written == 0 {
		return s
	}
	b.WriteString(s[written:])
	return b.String()
}

// Package ranking orders scored candidates into the final shortlist.
package ranking

import (
	"slices"
	"strings"

	"github.com/spigell/resume-screener/internal/screening"
)

// Rank returns a new slice ordered by final score, highest first. At equal score failed
// resumes go last, then names compare case-insensitively with empty names after named
// candidates; anything still tied keeps its input order. The input slice is not modified.
func Rank(candidates []*screening.Candidate) []*screening.Candidate {
	ranked := slices.Clone(candidates)
	slices.SortStableFunc(ranked, Compare)
	return ranked
}

// Compare is the ordering used by Rank.
func Compare(a, b *screening.Candidate) int {
	if sa, sb := a.FinalScore(), b.FinalScore(); sa != sb {
		if sa > sb {
			return -1
		}
		return 1
	}

	if fa, fb := a.ParseStatus == screening.ParseFailed, b.ParseStatus == screening.ParseFailed; fa != fb {
		if fb {
			return -1
		}
		return 1
	}

	na := strings.ToLower(strings.TrimSpace(a.Name))
	nb := strings.ToLower(strings.TrimSpace(b.Name))
	switch {
	case na == nb:
		return 0
	case na == "":
		return 1
	case nb == "":
		return -1
	default:
		return strings.Compare(na, nb)
	}
}

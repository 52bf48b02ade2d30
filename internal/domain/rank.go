package domain

import (
	"sort"
	"strings"
)

const (
	// Scoring weights
	scoreExactMatch     = 100.0
	scorePrefixMatch    = 75.0
	scoreSubstringMatch = 50.0
	scoreFuzzyMatch     = 25.0

	// Position bonus (earlier substring hits rank higher)
	scorePositionBonus = 10.0

	// Matching the URL host is worth less than matching the label
	scoreHostWeight = 0.5
)

// Candidate pairs a bookmark with its match score for a query.
type Candidate struct {
	Bookmark Bookmark
	Score    float64
}

// ScoreBookmark scores a bookmark against a free-form query.
// Every whitespace-separated query fragment must contribute, so
// "docker hub" does not match a bookmark that only mentions docker.
func ScoreBookmark(query string, b Bookmark) float64 {
	fragments := strings.Fields(strings.ToLower(strings.TrimSpace(query)))
	if len(fragments) == 0 {
		return 0.0
	}

	label := strings.ToLower(b.Label)
	host := strings.ToLower(urlHost(b.URL))

	var total float64
	for _, frag := range fragments {
		labelScore := scoreFragment(frag, label, true)
		// No fuzzy tier for hosts: character-set similarity over a
		// long hostname matches almost anything.
		hostScore := scoreFragment(frag, host, false) * scoreHostWeight
		best := labelScore
		if hostScore > best {
			best = hostScore
		}
		if best == 0.0 {
			return 0.0
		}
		total += best
	}
	return total
}

// RankBookmarks returns the bookmarks matching query, best first.
// Ordering among equal scores follows the input order.
func RankBookmarks(query string, bookmarks []Bookmark) []Candidate {
	candidates := make([]Candidate, 0, len(bookmarks))
	for _, b := range bookmarks {
		score := ScoreBookmark(query, b)
		if score == 0.0 {
			continue
		}
		candidates = append(candidates, Candidate{Bookmark: b, Score: score})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Score > candidates[j].Score
	})
	return candidates
}

// scoreFragment scores a single query fragment against a target string.
func scoreFragment(frag, target string, allowFuzzy bool) float64 {
	if frag == "" || target == "" {
		return 0.0
	}

	if frag == target {
		return scoreExactMatch
	}

	if strings.HasPrefix(target, frag) {
		return scorePrefixMatch
	}

	if idx := strings.Index(target, frag); idx >= 0 {
		// Earlier hits score higher.
		bonus := scorePositionBonus * (1.0 - float64(idx)/float64(len(target)))
		return scoreSubstringMatch + bonus
	}

	if allowFuzzy {
		sim := similarity(frag, target)
		if sim > 0.5 {
			return scoreFuzzyMatch * sim
		}
	}

	return 0.0
}

// similarity is the ratio of fragment characters present in the target.
func similarity(frag, target string) float64 {
	matches := 0
	for _, c := range frag {
		if strings.ContainsRune(target, c) {
			matches++
		}
	}
	return float64(matches) / float64(len(frag))
}

func urlHost(raw string) string {
	rest := raw
	if idx := strings.Index(rest, "://"); idx >= 0 {
		rest = rest[idx+3:]
	}
	if idx := strings.IndexAny(rest, "/?#"); idx >= 0 {
		rest = rest[:idx]
	}
	return rest
}

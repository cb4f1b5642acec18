package catalog

import (
	"strings"

	"github.com/Ybranco/soprema-reconquest/internal/model"
	"github.com/Ybranco/soprema-reconquest/internal/textutil"
)

// FindBestMatch scores a candidate product name against every catalog entry
// and returns the best match. The catalog is loaded lazily on first call;
// when neither source can be read the load error is returned.
//
// The scoring stack is deliberate and threshold-tuned: edit-distance base,
// +10 when a brand keyword is present, a floor of 90 on substring
// containment, a floor at the token-overlap score when at least two tokens
// are shared, then a final +15 keyword boost (capped at 100) when the best
// score is already plausible (>= 70). Only the final boost is capped.
func (c *Catalog) FindBestMatch(candidateName string) (model.MatchResult, error) {
	if err := c.Load(); err != nil {
		return model.MatchResult{}, err
	}

	candidate := textutil.NormalizeName(candidateName)

	for _, e := range c.entries {
		if candidate != "" && e.Normalized == candidate {
			return model.MatchResult{
				Matched:        true,
				Confidence:     100,
				MatchedProduct: e.Name,
				Method:         model.MatchMethodExact,
			}, nil
		}
	}

	keyword := findKeyword(candidate)
	candidateTokens := textutil.Tokens(candidate)

	best := 0
	bestName := ""
	for _, e := range c.entries {
		score := textutil.Similarity(candidate, e.Normalized)
		if keyword != "" {
			score += 10
		}
		if contains(candidate, e.Normalized) && score < 90 {
			score = 90
		}
		if overlap, shared := tokenOverlap(candidateTokens, e.Tokens); shared >= 2 && score < overlap {
			score = overlap
		}
		if score > best {
			best = score
			bestName = e.Name
		}
	}

	if keyword != "" && best >= 70 {
		best += 15
		if best > 100 {
			best = 100
		}
	}

	result := model.MatchResult{
		Matched:        best >= model.MatchThreshold,
		Confidence:     best,
		MatchedProduct: bestName,
		Method:         model.MatchMethodFuzzy,
		KeywordFound:   keyword,
	}
	if best == 100 {
		result.Method = model.MatchMethodExact
	}
	return result, nil
}

// contains reports whether either non-empty string contains the other.
func contains(a, b string) bool {
	if a == "" || b == "" {
		return false
	}
	return strings.Contains(a, b) || strings.Contains(b, a)
}

// tokenOverlap returns the overlap score and the number of shared tokens.
func tokenOverlap(a, b []string) (int, int) {
	if len(a) == 0 || len(b) == 0 {
		return 0, 0
	}

	set := make(map[string]bool, len(a))
	for _, t := range a {
		set[t] = true
	}
	shared := 0
	for _, t := range b {
		if set[t] {
			shared++
			delete(set, t)
		}
	}

	longest := len(a)
	if len(b) > longest {
		longest = len(b)
	}
	score := float64(shared) / float64(longest) * 100
	return int(score + 0.5), shared
}

package model

// MatchMethod indicates how a catalog match was obtained.
type MatchMethod string

const (
	// MatchMethodExact means the normalized names were identical.
	MatchMethodExact MatchMethod = "exact"
	// MatchMethodFuzzy means the match came from the similarity composite.
	MatchMethodFuzzy MatchMethod = "fuzzy"
)

// MatchThreshold is the minimum confidence for a catalog match to count.
const MatchThreshold = 85

// MatchResult is the outcome of matching a candidate name against the catalog.
type MatchResult struct {
	MatchedProduct string
	Method         MatchMethod
	KeywordFound   string
	Confidence     int
	Matched        bool
}

// Package model defines the core domain types shared across the pipeline.
package model

// ProductType identifies which side of the market a product line belongs to.
type ProductType string

const (
	// ProductTypeSoprema marks a line as a host-brand product.
	ProductTypeSoprema ProductType = "soprema"
	// ProductTypeCompetitor marks a line as a competitor product.
	ProductTypeCompetitor ProductType = "competitor"
)

// InvoiceLine represents a single extracted invoice line.
//
// The upstream extractor emits both a type string and boolean flags; both are
// preserved because either signal alone may be missing on real extractions.
type InvoiceLine struct {
	Designation  string
	Reference    string
	Brand        string
	Type         ProductType
	TotalPrice   float64
	IsSoprema    bool
	IsCompetitor bool

	// Verification is attached by the product verifier; nil until verified.
	Verification *VerificationDetails
}

// SopremaFlagged reports whether the line carries either host-brand signal.
func (l InvoiceLine) SopremaFlagged() bool {
	return l.Type == ProductTypeSoprema || l.IsSoprema
}

// CompetitorFlagged reports whether the line carries either competitor signal.
func (l InvoiceLine) CompetitorFlagged() bool {
	return l.Type == ProductTypeCompetitor || l.IsCompetitor
}

// VerificationDetails records the outcome of catalog verification for a line.
type VerificationDetails struct {
	MatchedName            string
	OriginalClassification string
	Method                 MatchMethod
	KeywordFound           string
	Confidence             int
	Reclassified           bool
	Verified               bool
	LowConfidence          bool
	SuggestedReview        bool
}

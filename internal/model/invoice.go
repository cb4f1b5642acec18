package model

// Client identifies the customer an invoice was issued to.
type Client struct {
	Name    string
	Address string
}

// Invoice is one extracted supplier invoice.
//
// TotalAmount is the amount declared on the document; it is never trusted for
// analysis. TotalProductsOnly is recomputed by the line filter from retained
// product lines.
type Invoice struct {
	ID                string
	Number            string
	Client            Client
	Supplier          string
	Products          []InvoiceLine
	TotalAmount       float64
	TotalProductsOnly float64

	// Filtering and Verification are audit blocks attached by the pipeline.
	Filtering    *FilteringStats
	Verification *VerificationSummary
}

// RemovedLine is a line excluded by the filter, kept for audit display.
type RemovedLine struct {
	Line     InvoiceLine
	Category LineCategory
}

// FilteringStats summarizes what the line filter removed from an invoice.
type FilteringStats struct {
	RemovedLines         []RemovedLine
	OriginalProductCount int
	FilteredProductCount int
}

// VerificationSummary summarizes a catalog verification pass over an invoice.
type VerificationSummary struct {
	TotalProducts         int
	ReclassifiedCount     int
	SopremaTotal          float64
	CompetitorTotal       float64
	VerificationCompleted bool
}

package model

import "time"

// UnknownCustomer is the sentinel name used when no invoice carries a client.
const UnknownCustomer = "Client inconnu"

// CustomerSummary is the per-customer competitive exposure built by the
// aggregator. TotalAmount covers every product line; SopremaAmount and
// CompetitorAmount only the lines carrying the corresponding flag.
type CustomerSummary struct {
	Name             string
	InvoiceCount     int
	TotalAmount      float64
	SopremaAmount    float64
	CompetitorAmount float64
}

// AnalysisRun is a persisted snapshot of one aggregation run.
type AnalysisRun struct {
	RunAt               time.Time
	Customers           []CustomerSummary
	Eligible            map[string]bool
	ID                  int64
	MinCompetitorAmount float64
}

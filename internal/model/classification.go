package model

// LineCategory names the kind of non-product charge a line was classified as.
type LineCategory string

const (
	// CategoryTransport covers freight, packaging and delivery charges.
	CategoryTransport LineCategory = "transport"
	// CategoryServices covers labor, installation and training lines.
	CategoryServices LineCategory = "services"
	// CategoryTaxes covers taxes and eco-contribution lines.
	CategoryTaxes LineCategory = "taxes"
	// CategoryDiscounts covers rebates and credit notes.
	CategoryDiscounts LineCategory = "discounts"
	// CategoryFees covers administrative fees not caught by other rules.
	CategoryFees LineCategory = "fees"
	// CategoryProductException marks a genuine product whose name collides
	// with a non-product keyword.
	CategoryProductException LineCategory = "product_exception"
)

// ClassificationResult is the outcome of classifying one invoice line.
//
// IsProduct is always decided; Category is empty for ordinary products and
// equals CategoryProductException only when IsProduct is true.
type ClassificationResult struct {
	Category  LineCategory
	Reason    string
	IsProduct bool
}

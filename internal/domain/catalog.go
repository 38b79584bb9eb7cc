package domain

import "github.com/shopspring/decimal"

// CatalogItem label and suggested price of an extra service.
// Loaded from configuration, never hard-coded.
type CatalogItem struct {
	Service        ServiceKey
	Label          string
	SuggestedPrice decimal.Decimal
}

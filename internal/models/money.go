package models

import "github.com/shopspring/decimal"

func init() {
	// Amounts are rendered as JSON numbers to keep the wire contract numeric.
	decimal.MarshalJSONWithoutQuotes = true
}

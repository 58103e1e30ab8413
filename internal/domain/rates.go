package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// LocalCurrency is the currency every rate is expressed against.
const LocalCurrency = "UZS"

// ExchangeRate is the price of one unit of Currency in LocalCurrency.
type ExchangeRate struct {
	Currency string
	Rate     decimal.Decimal
}

// RateTable is the set of daily rates published for one date.
type RateTable struct {
	Date  time.Time
	Rates map[string]decimal.Decimal
}

// NewRateTable builds a table from a list of rates.
func NewRateTable(date time.Time, rates []ExchangeRate) RateTable {
	t := RateTable{Date: DateOnly(date), Rates: make(map[string]decimal.Decimal, len(rates))}
	for _, r := range rates {
		t.Rates[r.Currency] = r.Rate
	}
	return t
}

// Rate returns the rate for a currency code.
func (t RateTable) Rate(ccy string) (decimal.Decimal, bool) {
	r, ok := t.Rates[ccy]
	return r, ok
}

// List returns the rates in no particular order.
func (t RateTable) List() []ExchangeRate {
	out := make([]ExchangeRate, 0, len(t.Rates))
	for ccy, r := range t.Rates {
		out = append(out, ExchangeRate{Currency: ccy, Rate: r})
	}
	return out
}

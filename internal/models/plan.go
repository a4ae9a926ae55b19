package models

import "github.com/shopspring/decimal"

// Plan is one pricing tier of the subscription page
type Plan struct {
	Name        string          `json:"name"`
	Price       decimal.Decimal `json:"price"`
	Currency    string          `json:"currency"`
	Period      string          `json:"period"`
	Description string          `json:"description"`
	Features    []string        `json:"features"`
	Limitations []string        `json:"limitations"`
	ButtonText  string          `json:"buttonText"`
	Popular     bool            `json:"popular"`
}

// IsFree reports whether the plan costs nothing
func (p *Plan) IsFree() bool {
	return p.Price.IsZero()
}

// AnnualPrice returns twelve monthly payments
func (p *Plan) AnnualPrice() decimal.Decimal {
	return p.Price.Mul(decimal.NewFromInt(12))
}

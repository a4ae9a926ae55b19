package service

import (
	"github.com/shopspring/decimal"
	"github.com/yourusername/futurologia/internal/models"
)

const (
	planCurrency = "BRL"
	planPeriod   = "month"
)

// DefaultPlans returns the subscription tiers, cheapest first
func DefaultPlans() []models.Plan {
	return []models.Plan{
		{
			Name:        "Free",
			Price:       decimal.RequireFromString("0.00"),
			Currency:    planCurrency,
			Period:      planPeriod,
			Description: "For newcomers who want to try the analysis engine",
			Features: []string{
				"3 analyses per day",
				"Basic probabilities",
				"Limited statistics",
				"Email support",
			},
			Limitations: []string{
				"No head-to-head history",
				"No PDF reports",
				"No custom alerts",
			},
			ButtonText: "Start for free",
		},
		{
			Name:        "Premium",
			Price:       decimal.RequireFromString("29.90"),
			Currency:    planCurrency,
			Period:      planPeriod,
			Description: "For serious bettors",
			Features: []string{
				"Unlimited analyses",
				"Advanced probability model",
				"Full head-to-head history",
				"PDF reports",
				"Real-time alerts",
				"Detailed statistics",
				"Priority support",
			},
			Limitations: []string{},
			ButtonText:  "Subscribe to Premium",
			Popular:     true,
		},
		{
			Name:        "Pro",
			Price:       decimal.RequireFromString("99.90"),
			Currency:    planCurrency,
			Period:      planPeriod,
			Description: "For professionals and tipsters",
			Features: []string{
				"Everything in Premium",
				"Integration API",
				"Custom reports",
				"Multi-league analysis",
				"One-on-one consulting",
				"Early access to new features",
				"24/7 support",
				"White-label dashboard",
			},
			Limitations: []string{},
			ButtonText:  "Subscribe to Pro",
		},
	}
}

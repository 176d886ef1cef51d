package prompt

import (
	"testing"

	"github.com/retainworks/retainbot/src/retention/types"
	"github.com/stretchr/testify/assert"
)

func TestDiscountPercent(t *testing.T) {
	assert.Equal(t, 5, DiscountPercent(types.LoyaltyStandard))
	assert.Equal(t, 10, DiscountPercent(types.LoyaltySilver))
	assert.Equal(t, 15, DiscountPercent(types.LoyaltyGold))
	assert.Equal(t, 20, DiscountPercent(types.LoyaltyPlatinum))
	assert.Equal(t, 5, DiscountPercent(""), "unknown tiers fall back to the base discount")
}

func TestRetentionPrompt(t *testing.T) {
	text := Retention(RetentionInput{
		Customer: &types.CustomerRecord{
			CustomerID:        "CUST005",
			Name:              "Alex",
			Email:             "alex@example.com",
			LoyaltyLevel:      types.LoyaltyGold,
			PreferredCategory: "Apparel",
			PurchaseHistory: []types.PurchaseEntry{
				{Style: "AN209", Quantity: 1, Amount: 29.99, Status: "Ordered"},
			},
		},
		Product: &types.ProductRecord{
			Style:       "AN209",
			Category:    "Apparel",
			Description: "A classic navy top",
			Price:       29.99,
			Color:       "navy",
		},
		Stats:     types.StyleStats{TotalCount: 40, StatusCounts: map[string]int{"Delivered": 38}},
		Complaint: "the fit is too tight",
		Similar: []types.ProductRecord{
			{Style: "AN100", Price: 24.99, Description: "A relaxed white shirt"},
		},
	})

	assert.Contains(t, text, "Alex")
	assert.Contains(t, text, "alex@example.com")
	assert.Contains(t, text, "AN209")
	assert.Contains(t, text, "the fit is too tight")
	assert.Contains(t, text, "total orders 40")
	assert.Contains(t, text, "15%")
	assert.Contains(t, text, "AN100")
	assert.Contains(t, text, "preferred category: Apparel")
}

func TestSystemPromptNamesTheComplaintTool(t *testing.T) {
	assert.Contains(t, System, "handle_complaint")
}

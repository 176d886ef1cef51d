package tools

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/retainworks/retainbot/src/ai/core"
	"github.com/retainworks/retainbot/src/retention/types"
	"github.com/retainworks/retainbot/src/store"
)

// PurchaseTool records a mock purchase on the customer record so the bot can
// close an upsell inside the conversation.
type PurchaseTool struct {
	docs store.Store
}

func NewPurchaseTool(docs store.Store) *PurchaseTool {
	return &PurchaseTool{docs: docs}
}

func (t *PurchaseTool) Name() string { return "mock_purchase" }

func (t *PurchaseTool) Schema() core.ToolSchema {
	return core.ToolSchema{
		Name:        t.Name(),
		Description: "Places a mock order of a product style for the customer and updates their purchase history.",
		Parameters: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"customer_id": map[string]any{
					"type":        "string",
					"description": "The unique ID of the purchasing customer.",
				},
				"style": map[string]any{
					"type":        "string",
					"description": "The style code of the product to order.",
				},
				"quantity": map[string]any{
					"type":        "integer",
					"description": "Number of units to order (default 1).",
				},
			},
			"required": []string{"customer_id", "style"},
		},
	}
}

func (t *PurchaseTool) Invoke(ctx context.Context, args map[string]any) (string, error) {
	customerID := stringArg(args, "customer_id")
	style := stringArg(args, "style")
	quantity := intArg(args, "quantity", 1)
	if quantity < 1 {
		quantity = 1
	}

	var cust types.CustomerRecord
	err := t.docs.Get(ctx, store.CustomersBucket, customerID, &cust)
	if errors.Is(err, store.ErrNotFound) {
		return fmt.Sprintf("Customer %s not found.", customerID), nil
	}
	if err != nil {
		return "", err
	}

	var prod types.ProductRecord
	err = t.docs.Get(ctx, store.ProductsBucket, style, &prod)
	if errors.Is(err, store.ErrNotFound) {
		return fmt.Sprintf("Product style %s not found.", style), nil
	}
	if err != nil {
		return "", err
	}

	today := time.Now().Format("2006-01-02")
	amount := prod.Price * float64(quantity)
	cust.PurchaseHistory = append(cust.PurchaseHistory, types.PurchaseEntry{
		Style:        style,
		PurchaseDate: today,
		Quantity:     quantity,
		Amount:       amount,
		Status:       "Ordered",
	})
	cust.TotalSpent += amount
	cust.NumPurchases++
	cust.LastPurchaseDate = today

	if err := t.docs.Upsert(ctx, store.CustomersBucket, customerID, &cust); err != nil {
		return "", err
	}
	return fmt.Sprintf("Order placed: %d x %s for %s, total $%.2f.", quantity, style, cust.Name, amount), nil
}

package tools

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/retainworks/retainbot/src/ai/core"
	"github.com/retainworks/retainbot/src/retention/prompt"
	"github.com/retainworks/retainbot/src/retention/salescache"
	"github.com/retainworks/retainbot/src/retention/types"
	"github.com/retainworks/retainbot/src/store"
)

// ComplaintTool processes a cancellation or complaint: it gathers the
// customer, product, purchase and sales data, then asks the model for a
// persuasive retention message. The nested model call is a plain completion
// with no tools attached.
type ComplaintTool struct {
	docs  store.Store
	stats *salescache.Cache
	ai    core.Client
}

func NewComplaintTool(docs store.Store, stats *salescache.Cache, ai core.Client) *ComplaintTool {
	return &ComplaintTool{docs: docs, stats: stats, ai: ai}
}

func (t *ComplaintTool) Name() string { return "handle_complaint" }

func (t *ComplaintTool) Schema() core.ToolSchema {
	return core.ToolSchema{
		Name:        t.Name(),
		Description: "Processes a cancellation request or complaint by generating a persuasive message to retain the order, using customer, product and sales data.",
		Parameters: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"customer_id": map[string]any{
					"type":        "string",
					"description": "The unique ID of the customer requesting cancellation.",
				},
				"style": map[string]any{
					"type":        "string",
					"description": "The style code of the product they wish to cancel.",
				},
				"complaint": map[string]any{
					"type":        "string",
					"description": "The customer's complaint, if any. Omit at the start of a conversation.",
				},
			},
			"required": []string{"customer_id", "style"},
		},
	}
}

func (t *ComplaintTool) Invoke(ctx context.Context, args map[string]any) (string, error) {
	customerID := stringArg(args, "customer_id")
	style := stringArg(args, "style")
	complaint := stringArg(args, "complaint")

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

	if !hasPurchase(cust, style) {
		return fmt.Sprintf("No purchase of %s found for customer %s.", style, customerID), nil
	}

	stats, err := t.stats.StyleStats(ctx, style)
	if err != nil {
		return "", err
	}

	similar, err := SimilarProducts(ctx, t.docs, prod.Category, style, similarLimit)
	if err != nil {
		// Suggestions are optional; the message still goes out without them.
		log.Printf("complaint: similar products for %s: %v", style, err)
		similar = nil
	}

	retention := prompt.Retention(prompt.RetentionInput{
		Customer:  &cust,
		Product:   &prod,
		Stats:     stats,
		Complaint: complaint,
		Similar:   similar,
	})

	completion, err := t.ai.Complete(ctx, []core.Message{
		{Role: types.RoleUser, Content: retention},
	}, nil)
	if err != nil {
		return "", fmt.Errorf("generate retention message: %w", err)
	}
	return fmt.Sprintf("Generated message to send to %s:\n\n%s", cust.Email, completion.Content), nil
}

func hasPurchase(cust types.CustomerRecord, style string) bool {
	for _, p := range cust.PurchaseHistory {
		if p.Style == style {
			return true
		}
	}
	return false
}

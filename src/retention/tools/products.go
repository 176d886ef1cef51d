package tools

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/retainworks/retainbot/src/ai/core"
	"github.com/retainworks/retainbot/src/retention/types"
	"github.com/retainworks/retainbot/src/store"
)

const similarLimit = 5

// SimilarProductsTool suggests products from the same category as a style.
type SimilarProductsTool struct {
	docs store.Store
}

func NewSimilarProductsTool(docs store.Store) *SimilarProductsTool {
	return &SimilarProductsTool{docs: docs}
}

func (t *SimilarProductsTool) Name() string { return "get_similar_products" }

func (t *SimilarProductsTool) Schema() core.ToolSchema {
	return core.ToolSchema{
		Name:        t.Name(),
		Description: "Lists products in the same category as the given style, excluding the style itself, to suggest alternatives.",
		Parameters: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"style": map[string]any{
					"type":        "string",
					"description": "The style code of the product to find alternatives for.",
				},
			},
			"required": []string{"style"},
		},
	}
}

func (t *SimilarProductsTool) Invoke(ctx context.Context, args map[string]any) (string, error) {
	style := stringArg(args, "style")

	var prod types.ProductRecord
	err := t.docs.Get(ctx, store.ProductsBucket, style, &prod)
	if errors.Is(err, store.ErrNotFound) {
		return fmt.Sprintf("Product style %s not found.", style), nil
	}
	if err != nil {
		return "", err
	}

	similar, err := SimilarProducts(ctx, t.docs, prod.Category, style, similarLimit)
	if err != nil {
		return "", err
	}
	if len(similar) == 0 {
		return fmt.Sprintf("No other products found in category %s.", prod.Category), nil
	}
	body, err := json.Marshal(similar)
	if err != nil {
		return "", err
	}
	return string(body), nil
}

// SimilarProducts runs the category query and decodes the hits. Shared with
// the complaint tool, which folds suggestions into its prompt.
func SimilarProducts(ctx context.Context, docs store.Store, category, excludeStyle string, limit int) ([]types.ProductRecord, error) {
	raw, err := docs.Query(ctx, store.ProductsBucket, "category", category, excludeStyle, limit)
	if err != nil {
		return nil, err
	}
	out := make([]types.ProductRecord, 0, len(raw))
	for _, body := range raw {
		var p types.ProductRecord
		if err := json.Unmarshal(body, &p); err != nil {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

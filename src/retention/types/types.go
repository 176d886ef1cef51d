package types

import "time"

// Roles for conversation turns.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleTool      = "tool"
)

// Loyalty tiers, in ascending order of discount.
const (
	LoyaltyStandard = "Standard"
	LoyaltySilver   = "Silver"
	LoyaltyGold     = "Gold"
	LoyaltyPlatinum = "Platinum"
)

// Turn is one message in a customer conversation. Turns are append-only.
type Turn struct {
	ID         string    `json:"id"`
	Role       string    `json:"role"`
	Content    string    `json:"content"`
	Timestamp  time.Time `json:"timestamp"`
	ToolCallID string    `json:"tool_call_id,omitempty"`
}

// PurchaseEntry is one line of a customer's purchase history.
type PurchaseEntry struct {
	Style        string  `json:"style"`
	PurchaseDate string  `json:"purchase_date"`
	Quantity     int     `json:"quantity"`
	Amount       float64 `json:"amount"`
	Status       string  `json:"status"`
}

// CustomerRecord is the customer document, keyed by CustomerID. It owns the
// conversation history; records are created lazily on first interaction.
type CustomerRecord struct {
	CustomerID          string          `json:"customer_id"`
	Name                string          `json:"name"`
	Email               string          `json:"email"`
	LoyaltyLevel        string          `json:"loyalty_level"`
	PreferredCategory   string          `json:"preferred_category"`
	PurchaseHistory     []PurchaseEntry `json:"purchase_history"`
	TotalSpent          float64         `json:"total_spent"`
	NumPurchases        int             `json:"num_purchases"`
	LastPurchaseDate    string          `json:"last_purchase_date"`
	ConversationHistory []Turn          `json:"conversation_history"`
}

// ProductRecord is a product document, keyed by Style. Category-specific
// attributes beyond the common set ride along in Attributes.
type ProductRecord struct {
	Style       string            `json:"style"`
	Category    string            `json:"category"`
	Description string            `json:"description"`
	Price       float64           `json:"price"`
	Material    string            `json:"material,omitempty"`
	Color       string            `json:"color,omitempty"`
	Fit         string            `json:"fit,omitempty"`
	Occasion    string            `json:"occasion,omitempty"`
	Attributes  map[string]string `json:"attributes,omitempty"`
}

// StyleStats is the per-style slice of the sales statistics document.
type StyleStats struct {
	TotalCount   int            `json:"total_count"`
	StatusCounts map[string]int `json:"status_counts"`
}

// SalesStats is the cached sales statistics document.
type SalesStats struct {
	TotalSales       float64               `json:"total_sales"`
	AverageSales     float64               `json:"average_sales"`
	MinSales         float64               `json:"min_sales"`
	MaxSales         float64               `json:"max_sales"`
	EntryCount       int                   `json:"entry_count"`
	StyleStatusCount map[string]StyleStats `json:"style_status_counts"`
}

// ForStyle returns the stats for one style; a missing style yields zero
// stats rather than an error.
func (s *SalesStats) ForStyle(style string) StyleStats {
	if s == nil || s.StyleStatusCount == nil {
		return StyleStats{StatusCounts: map[string]int{}}
	}
	st, ok := s.StyleStatusCount[style]
	if !ok {
		return StyleStats{StatusCounts: map[string]int{}}
	}
	if st.StatusCounts == nil {
		st.StatusCounts = map[string]int{}
	}
	return st
}

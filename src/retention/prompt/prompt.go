// Package prompt holds the wording sent to the model: the chatbot persona
// and the retention-email prompt assembled from store data.
package prompt

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/retainworks/retainbot/src/retention/types"
)

// System is the persona for the conversation loop. It names the
// handle_complaint tool so the model knows to invoke it on cancellations.
const System = "You are the best Sales AI this side of the Mississippi. " +
	"Your task is to convince people not to cancel and to buy as much as possible. " +
	"You have access to the 'handle_complaint' tool, which processes cancellation requests and generates persuasive messages. " +
	"When a user requests to cancel an order, use the 'handle_complaint' tool with the provided customer_id and style. " +
	"If no complaint is present on the request it means the chat is just starting, so fill it with a note that the conversation " +
	"has just begun and we must ask why the customer is unhappy with the product. " +
	"Do not generate a text description of the tool call; invoke the tool directly. " +
	"This is a chatbot talking directly to the customer, so keep replies clean and short without unnecessary details. " +
	"Check previous messages to avoid repeating yourself or asking the same question twice, " +
	"and use them as reference to keep a coherent conversation with the user."

// DiscountPercent maps a loyalty tier to the discount the bot may offer.
func DiscountPercent(loyalty string) int {
	switch loyalty {
	case types.LoyaltyPlatinum:
		return 20
	case types.LoyaltyGold:
		return 15
	case types.LoyaltySilver:
		return 10
	default:
		return 5
	}
}

// RetentionInput collects everything the retention prompt needs.
type RetentionInput struct {
	Customer  *types.CustomerRecord
	Product   *types.ProductRecord
	Stats     types.StyleStats
	Complaint string
	Similar   []types.ProductRecord
}

// Retention builds the persuasive-email prompt for a cancellation or
// complaint about one purchased style.
func Retention(in RetentionInput) string {
	cust, prod := in.Customer, in.Product

	history, _ := json.Marshal(cust.PurchaseHistory)
	statuses, _ := json.Marshal(in.Stats.StatusCounts)

	var b strings.Builder
	fmt.Fprintf(&b, "Customer %s (email: %s, loyalty: %s) wants to cancel their purchase of style %s: %s (price: $%.2f",
		cust.Name, cust.Email, cust.LoyaltyLevel, prod.Style, prod.Description, prod.Price)
	if prod.Color != "" {
		fmt.Fprintf(&b, ", color: %s", prod.Color)
	}
	if prod.Fit != "" {
		fmt.Fprintf(&b, ", fit: %s", prod.Fit)
	}
	if prod.Occasion != "" {
		fmt.Fprintf(&b, ", occasion: %s", prod.Occasion)
	}
	b.WriteString("). ")

	if in.Complaint != "" {
		fmt.Fprintf(&b, "Their complaint: %s. ", in.Complaint)
	}
	fmt.Fprintf(&b, "Their purchase history: %s. ", history)
	fmt.Fprintf(&b, "Sales stats for this style: total orders %d, with statuses %s. ", in.Stats.TotalCount, statuses)

	if len(in.Similar) > 0 {
		b.WriteString("Similar products they might like instead: ")
		for i, p := range in.Similar {
			if i > 0 {
				b.WriteString("; ")
			}
			fmt.Fprintf(&b, "%s ($%.2f, %s)", p.Style, p.Price, p.Description)
		}
		b.WriteString(". ")
	}

	fmt.Fprintf(&b, "Generate a polite, persuasive email message to convince them not to cancel. "+
		"Suggest alternatives from similar categories if possible, based on their history and preferences "+
		"(preferred category: %s). You may offer up to a %d%% discount or free shipping given their loyalty level. "+
		"Mention that their feedback is valuable and that you would like to keep them as a customer. "+
		"Emphasize the benefits of the product they purchased, such as quality, style, and suitability for their needs. "+
		"Also, mention that they can return the product if they are not satisfied, but you hope they will reconsider "+
		"and give it a chance. Use a friendly and professional tone and make a very verbose response.",
		cust.PreferredCategory, DiscountPercent(cust.LoyaltyLevel))

	return b.String()
}

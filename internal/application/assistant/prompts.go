package assistant

import "strings"

func sentences(parts ...string) string { return strings.Join(parts, " ") }

var (
	intentPrompt = sentences(
		"You convert inventory chat requests to safe query intent.",
		"Return strict JSON object with key intent only.",
		"Allowed actions: list_items, count_low_stock, group_by_category, group_by_supplier.",
		"Allowed filter keys: q, category, status, maxQuantity, location, supplier, lowStockOnly, sortBy, sortDir.",
		"Never output SQL or markdown.",
	)

	nlSearchPrompt = sentences(
		"You convert natural language into inventory filters.",
		"Return JSON object with key filters only.",
		"Allowed keys: q, category, status, maxQuantity, location, supplier, sortBy, sortDir.",
		"No extra keys.",
	)

	restockPrompt = sentences(
		"You are an inventory planner.",
		"Return strict JSON object with key suggestions.",
		"suggestions must be an array of {item_id, reason, recommended_order_qty, urgency}.",
		"urgency must be low|medium|high.",
		"Never include markdown.",
	)

	draftsPrompt = sentences(
		"You are a purchasing assistant for enterprise inventory teams.",
		"Return strict JSON object with key drafts.",
		"Each draft must have supplier, subject, body, and items.",
		"Each item must include sku, name, qty_to_order, reason.",
		"Do not include markdown.",
	)
)

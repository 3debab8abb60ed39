package mcp

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

var filterProperties = map[string]interface{}{
	"category": map[string]interface{}{
		"type":        "string",
		"description": "Only listings in this category (exact match)",
	},
	"group_id": map[string]interface{}{
		"type":        "string",
		"description": "Only listings in this group (exact match)",
	},
}

func withFilters(props map[string]interface{}) map[string]interface{} {
	for k, v := range filterProperties {
		props[k] = v
	}
	return props
}

// ToolDefinitions contains all available MCP tools
var ToolDefinitions = []Tool{
	{
		Name:        "arrange_listings",
		Description: "Arrange stored listings into grid tiles (or a sorted list) using a scoring policy and sort mode. Returns sizes and row/col/span positions for each listing.",
		InputSchema: map[string]interface{}{
			"type": "object",
			"properties": withFilters(map[string]interface{}{
				"policy": map[string]interface{}{
					"type":        "string",
					"enum":        []string{"engagement-weighted", "badge-weighted"},
					"description": "Scoring policy (default: from config)",
				},
				"sort_mode": map[string]interface{}{
					"type":        "string",
					"enum":        []string{"default", "trending", "chronological", "recently-listed", "by-category"},
					"description": "Sort mode (default: from config)",
				},
				"badge": map[string]interface{}{
					"type":        "string",
					"description": "Only listings with a badge whose label contains this text (case-insensitive)",
				},
				"tag": map[string]interface{}{
					"type":        "string",
					"description": "Only listings carrying this tag (case-insensitive)",
				},
				"min_tiled_items": map[string]interface{}{
					"type":        "integer",
					"description": "Smallest collection that is tiled; smaller ones come back as a ranked list (0 always tiles)",
				},
				"now": map[string]interface{}{
					"type":        "string",
					"description": "Reference time for age-based badges and scores (default: current time)",
				},
			}),
		},
	},
	{
		Name:        "explain_listing",
		Description: "Show how a listing is scored under each policy, clause by clause, with its badges and earned size.",
		InputSchema: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"id": map[string]interface{}{
					"type":        "string",
					"description": "Listing ID",
				},
				"now": map[string]interface{}{
					"type":        "string",
					"description": "Reference time (default: current time)",
				},
			},
			"required": []string{"id"},
		},
	},
	{
		Name:        "list_listings",
		Description: "List stored listings, oldest first, with optional filters.",
		InputSchema: map[string]interface{}{
			"type": "object",
			"properties": withFilters(map[string]interface{}{
				"since_days": map[string]interface{}{
					"type":        "integer",
					"description": "Only listings created in the last N days",
				},
				"limit": map[string]interface{}{
					"type":        "integer",
					"description": "Maximum number of results to return (default: 50)",
				},
			}),
		},
	},
}

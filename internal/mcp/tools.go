package mcp

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

var interestsSchema = map[string]interface{}{
	"type":        "array",
	"items":       map[string]interface{}{"type": "string"},
	"description": "Interest tags, e.g. [\"机器学习\", \"算法\"]. A comma-separated string is also accepted.",
}

var seedSchema = map[string]interface{}{
	"type":        "integer",
	"minimum":     0,
	"description": "Optional seed for reproducible results",
}

// ToolDefinitions contains all available MCP tools
var ToolDefinitions = []Tool{
	{
		Name:        "recommend",
		Description: "Rank courses, practice resources, job postings and advisors against the user's interests, optionally mixing in popular GitHub repositories. Returns at most max_items results with scores and match reasons.",
		InputSchema: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"interests": interestsSchema,
				"max_items": map[string]interface{}{
					"type":        "integer",
					"description": "Maximum number of results (default: 12)",
				},
				"include_repos": map[string]interface{}{
					"type":        "boolean",
					"description": "Also sample popular GitHub repositories for the interests (default: false)",
				},
				"seed": seedSchema,
				"weights": map[string]interface{}{
					"type":        "object",
					"description": "Partial scoring weight overrides, keyed like the [weights] config section. Values must be non-negative.",
				},
			},
			"required": []string{"interests"},
		},
	},
	{
		Name:        "random_repos",
		Description: "Sample popular GitHub repositories for the interests, weighted by stars so popular projects are likely but not guaranteed.",
		InputSchema: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"interests": interestsSchema,
				"seed":      seedSchema,
			},
			"required": []string{"interests"},
		},
	},
	{
		Name:        "match_careers",
		Description: "Match career directions to interests. Careers restricted to other cities are excluded. When nothing matches, fallback suggestions are returned with fallback=true.",
		InputSchema: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"interests": interestsSchema,
				"location": map[string]interface{}{
					"type":        "string",
					"description": "Preferred city, or 全国 for anywhere (default from config)",
				},
				"prioritize_strategic": map[string]interface{}{
					"type":        "boolean",
					"description": "Boost careers in strategic national fields (default: false)",
				},
				"hide_disliked": map[string]interface{}{
					"type":        "boolean",
					"description": "Skip careers with more dislikes than likes (default from config)",
				},
			},
		},
	},
	{
		Name:        "career_feedback",
		Description: "Record that the user likes or dislikes a career from the career table. Returns the career's updated like/dislike counts, which match_careers reports with each career.",
		InputSchema: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"career": map[string]interface{}{
					"type":        "string",
					"description": "Exact career name, as returned by match_careers",
				},
				"feedback": map[string]interface{}{
					"type":        "string",
					"enum":        []string{"like", "dislike"},
					"description": "The vote to record",
				},
			},
			"required": []string{"career", "feedback"},
		},
	},
	{
		Name:        "list_plans",
		Description: "List saved learning plans, newest first.",
		InputSchema: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"limit": map[string]interface{}{
					"type":        "integer",
					"description": "Maximum number of plans to return (default: 20)",
				},
			},
		},
	},
	{
		Name:        "get_plan",
		Description: "Get a saved learning plan with its items.",
		InputSchema: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"id": map[string]interface{}{
					"type":        "string",
					"description": "Plan ID or a unique prefix of it",
				},
			},
			"required": []string{"id"},
		},
	},
}

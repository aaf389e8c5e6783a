package verify

import "github.com/abhisek/mathwhiz/internal/llm"

// VerificationSchema defines the JSON schema for addition verification responses.
var VerificationSchema = &llm.Schema{
	Name:        "addition-verification",
	Description: "Judgment of a learner's sum for a two-number addition problem",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"isCorrect": map[string]any{
				"type":        "boolean",
				"description": "Whether the user provided sum is correct.",
			},
			"correctSum": map[string]any{
				"type":        "integer",
				"description": "The correct sum of the two numbers.",
			},
			"explanation": map[string]any{
				"type":        "string",
				"description": "A step-by-step explanation of how to arrive at the correct sum.",
			},
		},
		"required":             []any{"isCorrect", "correctSum", "explanation"},
		"additionalProperties": false,
	},
}

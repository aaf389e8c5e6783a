package verify

import (
	"bytes"
	"fmt"
	"text/template"

	"github.com/abhisek/mathwhiz/internal/llm"
)

const systemPrompt = `You are an AI assistant that verifies whether a learner correctly added two numbers.

Instructions:
- Decide whether the learner's sum is correct and set isCorrect to true or false.
- Always return correctSum, the true sum of the two numbers.
- If the learner is wrong, give a short step-by-step explanation of how to arrive at the correct sum, written for a child.
- If the learner is right, keep the explanation to one encouraging sentence.
- Respond only with the requested JSON object.`

var userTemplate = template.Must(template.New("verify").Parse(`The two numbers to add are: {{.Num1}} and {{.Num2}}.
The learner's sum is: {{.UserSum}}.

Determine if the learner's sum is correct. If it is not, provide the correct sum and a step-by-step explanation of how to arrive at it.`))

// BuildRequest renders the LLM request for an attempt. The request depends
// only on a and cfg.
func BuildRequest(a Attempt, cfg Config) (llm.Request, error) {
	var buf bytes.Buffer
	if err := userTemplate.Execute(&buf, a); err != nil {
		return llm.Request{}, fmt.Errorf("build verification prompt: %w", err)
	}
	return llm.Request{
		System:      systemPrompt,
		Messages:    []llm.Message{llm.UserMessage(buf.String())},
		Schema:      VerificationSchema,
		MaxTokens:   cfg.MaxTokens,
		Temperature: cfg.Temperature,
	}, nil
}

// Package recommend wraps the external food-recommendation model. The call
// is read-only with respect to the rest of the system: a failure here never
// touches menu, cart, order or account state.
package recommend

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/tmc/langchaingo/llms"
)

// Generator produces free-text food recommendations from a serialized
// order history and the customer's dietary preferences.
type Generator interface {
	Generate(ctx context.Context, orderHistory, dietaryPreferences string) (string, error)
}

const promptTemplate = `You are a food recommendation expert. You will generate personalized food recommendations based on the user's past order history and dietary preferences.

Order History: %s
Dietary Preferences: %s

Based on this information, what food items would you recommend to the user? Return the recommendations as a list, one item per line.`

// LLMGenerator calls a langchaingo model with a bounded timeout.
type LLMGenerator struct {
	model   llms.Model
	timeout time.Duration
}

func NewLLMGenerator(model llms.Model) *LLMGenerator {
	return &LLMGenerator{model: model, timeout: 30 * time.Second}
}

func (g *LLMGenerator) Generate(ctx context.Context, orderHistory, dietaryPreferences string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()
	prompt := fmt.Sprintf(promptTemplate, orderHistory, dietaryPreferences)
	out, err := llms.GenerateFromSinglePrompt(ctx, g.model, prompt)
	if err != nil {
		return "", fmt.Errorf("recommendation model: %w", err)
	}
	return out, nil
}

// ParseLines splits model output into clean recommendation lines: leading
// "-" or "*" bullet markers are stripped and blank lines dropped.
func ParseLines(text string) []string {
	var out []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		line = strings.TrimPrefix(line, "- ")
		line = strings.TrimPrefix(line, "* ")
		line = strings.TrimSpace(line)
		if line != "" {
			out = append(out, line)
		}
	}
	return out
}

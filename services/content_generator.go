package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"event-system/utils"
)

// ContentGenerator produces text content from a prompt and structured
// context. Used for the payment-completion email body; treated as an opaque
// text-producing collaborator.
type ContentGenerator interface {
	Generate(ctx context.Context, prompt string, data map[string]any) (string, error)
}

// TemplateGenerator is the local fallback: a fixed template filled from the
// context map. It never fails.
type TemplateGenerator struct{}

func NewTemplateGenerator() *TemplateGenerator {
	return &TemplateGenerator{}
}

func (g *TemplateGenerator) Generate(_ context.Context, _ string, data map[string]any) (string, error) {
	return fmt.Sprintf(
		"Hello %v,\n\nWe have received your payment of %v for %v. Your registration is fully confirmed.\n\nSee you at the event!",
		data["payer_name"], data["amount"], data["event_name"],
	), nil
}

// HTTPGenerator calls an external text-generation endpoint behind a circuit
// breaker. Any failure falls back to the local template so a "paid" email
// always gets a body.
type HTTPGenerator struct {
	endpoint string
	client   *http.Client
	breaker  *utils.CircuitBreaker
	fallback ContentGenerator
}

func NewHTTPGenerator(endpoint string, timeout time.Duration) *HTTPGenerator {
	return &HTTPGenerator{
		endpoint: endpoint,
		client:   &http.Client{Timeout: timeout},
		breaker:  utils.NewCircuitBreaker("content-generator"),
		fallback: NewTemplateGenerator(),
	}
}

func (g *HTTPGenerator) Generate(ctx context.Context, prompt string, data map[string]any) (string, error) {
	result, err := g.breaker.Execute(ctx, func() (any, error) {
		text, err := g.call(ctx, prompt, data)
		return text, err
	})
	if err != nil {
		log.Printf("Content generator unavailable, using template fallback: %v", err)
		return g.fallback.Generate(ctx, prompt, data)
	}

	text, _ := result.(string)
	if text == "" {
		return g.fallback.Generate(ctx, prompt, data)
	}
	return text, nil
}

func (g *HTTPGenerator) call(ctx context.Context, prompt string, data map[string]any) (string, error) {
	body, err := json.Marshal(map[string]any{
		"prompt":  prompt,
		"context": data,
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("content generator returned status %d", resp.StatusCode)
	}

	var out struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", err
	}

	return out.Text, nil
}

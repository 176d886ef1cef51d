// Command ai-smoketest sends one live completion through each requested
// provider so operators can verify keys and connectivity before deploying.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	aicore "github.com/retainworks/retainbot/src/ai/core"
	_ "github.com/retainworks/retainbot/src/ai/providers"
)

var (
	providersFlag = flag.String("providers", "grok", "Comma-separated provider list or 'all'")
	modelFlag     = flag.String("model", "", "Override model name")
	promptFlag    = flag.String("prompt", defaultPrompt, "User prompt to send")
	timeoutFlag   = flag.Duration("timeout", 45*time.Second, "Per-provider timeout")
	tempFlag      = flag.Float64("temp", 0.2, "Completion temperature")
	maxLenFlag    = flag.Int("max-bytes", 1200, "Maximum bytes of output to print per response (0=unlimited)")
)

var allProviders = []string{"grok", "openai"}

const defaultPrompt = "In two sentences, reassure a customer who is unhappy with a recent clothing order."

func main() {
	log.SetFlags(0)
	flag.Parse()

	providers := resolveProviders(*providersFlag)
	if len(providers) == 0 {
		log.Fatal("no providers specified")
	}

	failures := 0
	for _, provider := range providers {
		if err := runProvider(provider); err != nil {
			log.Printf("[%s] ERROR: %v", provider, err)
			failures++
		}
	}
	if failures > 0 {
		os.Exit(1)
	}
}

func runProvider(provider string) error {
	client, err := aicore.NewClient(aicore.FactoryConfig{
		Provider:    provider,
		Model:       *modelFlag,
		Temperature: *tempFlag,
		HTTPTimeout: *timeoutFlag,
		GrokKey:     os.Getenv("XAI_API_KEY"),
		OpenAIKey:   os.Getenv("OPENAI_API_KEY"),
	})
	if err != nil {
		return fmt.Errorf("client init: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeoutFlag)
	defer cancel()

	start := time.Now()
	completion, err := client.Complete(ctx, []aicore.Message{
		{Role: "user", Content: *promptFlag},
	}, nil)
	if err != nil {
		return err
	}
	fmt.Printf("=== %s ===\nok (%.1fs)\n%s\n", provider, time.Since(start).Seconds(),
		truncate(completion.Content, *maxLenFlag))
	return nil
}

func resolveProviders(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	if strings.EqualFold(raw, "all") {
		return append([]string{}, allProviders...)
	}
	parts := strings.FieldsFunc(raw, func(r rune) bool {
		return r == ',' || r == ' ' || r == ';'
	})
	var out []string
	seen := map[string]struct{}{}
	for _, p := range parts {
		p = strings.ToLower(strings.TrimSpace(p))
		if p == "" {
			continue
		}
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		out = append(out, p)
	}
	return out
}

func truncate(text string, limit int) string {
	if limit <= 0 || len(text) <= limit {
		return strings.TrimSpace(text)
	}
	return strings.TrimSpace(text[:limit]) + "...(truncated)"
}

// Package nlu provides LLM-backed intent classification and free-text responses.
// This file contains the unified OpenAI-compatible implementation of intent
// classification, used for Groq and Cerebras via a custom base URL.
package nlu

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

// openaiClassifier classifies intents using an OpenAI-compatible chat API
// with function calling. It implements the Classifier interface.
type openaiClassifier struct {
	client     openai.Client
	model      string
	tools      []openai.ChatCompletionToolUnionParam
	systemInst string
	provider   Provider
}

// newOpenAIClassifier creates a classifier for an OpenAI-compatible provider.
// Returns nil if apiKey is empty (classification disabled).
func newOpenAIClassifier(_ context.Context, provider Provider, apiKey, model string) (*openaiClassifier, error) {
	if apiKey == "" {
		return nil, nil //nolint:nilnil // Intentional: classifier disabled when no API key
	}

	baseURL, ok := ProviderEndpoint[provider]
	if !ok {
		return nil, fmt.Errorf("unsupported OpenAI-compatible provider: %s", provider)
	}

	if model == "" {
		switch provider {
		case ProviderGroq:
			model = DefaultGroqIntentModels[0]
		case ProviderCerebras:
			model = DefaultCerebrasIntentModels[0]
		default:
			return nil, fmt.Errorf("no default model for provider: %s", provider)
		}
	}

	client := openai.NewClient(
		option.WithBaseURL(baseURL),
		option.WithAPIKey(apiKey),
	)

	return &openaiClassifier{
		client:     client,
		model:      model,
		tools:      buildOpenAITools(),
		systemInst: ClassifierSystemPrompt,
		provider:   provider,
	}, nil
}

// buildOpenAITools converts the intent catalog to OpenAI v3 tool format.
// JSON Schema types are lowercase per Draft 2020-12.
func buildOpenAITools() []openai.ChatCompletionToolUnionParam {
	fns := IntentFunctions()
	result := make([]openai.ChatCompletionToolUnionParam, 0, len(fns))

	for _, fn := range fns {
		properties := make(map[string]any, len(fn.Params))
		for _, name := range fn.Params {
			properties[name] = map[string]string{
				"type":        "string",
				"description": entityDescriptions[name],
			}
		}

		tool := openai.ChatCompletionFunctionTool(openai.FunctionDefinitionParam{
			Name:        fn.Name,
			Description: openai.String(fn.Description),
			Parameters: openai.FunctionParameters{
				"type":       "object",
				"properties": properties,
			},
		})
		result = append(result, tool)
	}

	return result
}

// Classify analyzes the user input and returns the detected intent.
// Tool choice is required mode, forcing the model to call a function.
func (c *openaiClassifier) Classify(ctx context.Context, text string) (*Classification, error) {
	if c == nil {
		return nil, errors.New("classifier is nil")
	}

	params := openai.ChatCompletionNewParams{
		Model: c.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(c.systemInst),
			openai.UserMessage(text),
		},
		Tools: c.tools,
		ToolChoice: openai.ChatCompletionToolChoiceOptionUnionParam{
			OfAuto: openai.String(string(openai.ChatCompletionToolChoiceOptionAutoRequired)),
		},
		Temperature: openai.Float(0.1), // Low temperature for consistent classification
		MaxTokens:   openai.Int(256),
	}

	start := time.Now()
	resp, err := c.client.Chat.Completions.New(ctx, params)
	duration := time.Since(start)

	if err != nil {
		slog.WarnContext(ctx, "intent classification API call failed",
			"provider", c.provider,
			"model", c.model,
			"input_length", len(text),
			"duration_ms", duration.Milliseconds(),
			"error", err)
		// Surface the HTTP status when the SDK provides one so the
		// retry/fallback classifier can act on it.
		var apierr *openai.Error
		if errors.As(err, &apierr) {
			return nil, WrapError(fmt.Errorf("chat completion failed: %w", err), c.provider, apierr.StatusCode)
		}
		return nil, fmt.Errorf("chat completion failed: %w", err)
	}

	classification, parseErr := c.parseResult(resp)

	if parseErr == nil && resp.Usage.TotalTokens > 0 {
		slog.DebugContext(ctx, "intent classification completed",
			"provider", c.provider,
			"model", c.model,
			"input_tokens", resp.Usage.PromptTokens,
			"output_tokens", resp.Usage.CompletionTokens,
			"total_tokens", resp.Usage.TotalTokens,
			"duration_ms", duration.Milliseconds(),
			"intent", classification.Intent)
	}

	return classification, parseErr
}

// parseResult extracts the tool call from the completion response.
func (c *openaiClassifier) parseResult(resp *openai.ChatCompletion) (*Classification, error) {
	if resp == nil || len(resp.Choices) == 0 {
		return nil, errors.New("empty response from model")
	}

	choice := resp.Choices[0]
	if len(choice.Message.ToolCalls) == 0 {
		// Required mode should always produce a tool call.
		return nil, errors.New("no tool call in response (expected with required mode)")
	}

	tc := choice.Message.ToolCalls[0]
	if tc.Type != "function" {
		return nil, fmt.Errorf("unexpected tool type: %s", tc.Type)
	}

	var args map[string]any
	if tc.Function.Arguments != "" {
		if err := json.Unmarshal([]byte(tc.Function.Arguments), &args); err != nil {
			return nil, fmt.Errorf("failed to parse function arguments: %w", err)
		}
	}

	return classificationFromCall(tc.Function.Name, args)
}

// IsEnabled returns true if the classifier is properly initialized.
func (c *openaiClassifier) IsEnabled() bool {
	return c != nil
}

// Provider returns the provider type for this classifier.
func (c *openaiClassifier) Provider() Provider {
	if c == nil {
		return ""
	}
	return c.provider
}

// Close releases resources held by the classifier.
// Safe to call on nil receiver.
func (c *openaiClassifier) Close() error {
	// openai-go client doesn't require cleanup
	return nil
}

// Package nlu provides LLM-backed intent classification and free-text responses.
// This file contains the Gemini implementation of intent classification.
package nlu

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"google.golang.org/genai"
)

// geminiClassifier classifies intents using Gemini function calling.
// It implements the Classifier interface.
type geminiClassifier struct {
	client     *genai.Client
	model      string
	tools      []*genai.Tool
	systemInst string
}

// newGeminiClassifier creates a new Gemini-based classifier.
// Returns nil if apiKey is empty (classification disabled).
func newGeminiClassifier(ctx context.Context, apiKey, model string) (*geminiClassifier, error) {
	if apiKey == "" {
		return nil, nil //nolint:nilnil // Intentional: classifier disabled when no API key
	}

	if model == "" {
		model = DefaultGeminiIntentModels[0]
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: apiKey,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}

	return &geminiClassifier{
		client: client,
		model:  model,
		tools: []*genai.Tool{{
			FunctionDeclarations: buildGeminiDeclarations(),
		}},
		systemInst: ClassifierSystemPrompt,
	}, nil
}

// buildGeminiDeclarations converts the intent catalog to Gemini function
// declarations. Parameters stay optional at the schema level; the dialogue
// manager asks for anything the user left out.
func buildGeminiDeclarations() []*genai.FunctionDeclaration {
	fns := IntentFunctions()
	decls := make([]*genai.FunctionDeclaration, 0, len(fns))

	for _, fn := range fns {
		decl := &genai.FunctionDeclaration{
			Name:        fn.Name,
			Description: fn.Description,
		}
		if len(fn.Params) > 0 {
			props := make(map[string]*genai.Schema, len(fn.Params))
			for _, name := range fn.Params {
				props[name] = &genai.Schema{
					Type:        genai.TypeString,
					Description: entityDescriptions[name],
				}
			}
			decl.Parameters = &genai.Schema{
				Type:       genai.TypeObject,
				Properties: props,
			}
		}
		decls = append(decls, decl)
	}

	return decls
}

// Classify analyzes the user input and returns the detected intent.
// The model runs in ANY mode so every message resolves to a function call.
func (c *geminiClassifier) Classify(ctx context.Context, text string) (*Classification, error) {
	if c == nil {
		return nil, errors.New("classifier is nil")
	}

	config := &genai.GenerateContentConfig{
		Tools:             c.tools,
		SystemInstruction: genai.NewContentFromText(c.systemInst, genai.RoleUser),
		ToolConfig: &genai.ToolConfig{
			FunctionCallingConfig: &genai.FunctionCallingConfig{
				Mode: genai.FunctionCallingConfigModeAny, // Force function calling
			},
		},
		Temperature:     genai.Ptr[float32](0.1), // Low temperature for consistent classification
		MaxOutputTokens: 256,
	}

	start := time.Now()
	result, err := c.client.Models.GenerateContent(ctx, c.model, genai.Text(text), config)
	duration := time.Since(start)

	if err != nil {
		slog.WarnContext(ctx, "intent classification API call failed",
			"provider", "gemini",
			"model", c.model,
			"input_length", len(text),
			"duration_ms", duration.Milliseconds(),
			"error", err)
		return nil, fmt.Errorf("generate content failed: %w", err)
	}

	classification, parseErr := c.parseResult(result)

	if parseErr == nil && result.UsageMetadata != nil {
		slog.DebugContext(ctx, "intent classification completed",
			"provider", "gemini",
			"model", c.model,
			"input_tokens", result.UsageMetadata.PromptTokenCount,
			"output_tokens", result.UsageMetadata.CandidatesTokenCount,
			"total_tokens", result.UsageMetadata.TotalTokenCount,
			"duration_ms", duration.Milliseconds(),
			"intent", classification.Intent)
	}

	return classification, parseErr
}

// parseResult extracts the function call from the generation result.
func (c *geminiClassifier) parseResult(result *genai.GenerateContentResponse) (*Classification, error) {
	if result == nil || len(result.Candidates) == 0 {
		return nil, errors.New("empty response from model")
	}

	candidate := result.Candidates[0]
	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return nil, errors.New("no content in response")
	}

	for _, part := range candidate.Content.Parts {
		if part.FunctionCall != nil {
			return classificationFromCall(part.FunctionCall.Name, part.FunctionCall.Args)
		}
	}

	// In ANY mode the model should always return a function call.
	return nil, errors.New("no function call in response (expected with ANY mode)")
}

// classificationFromCall maps a model function call onto a Classification.
// Shared with the OpenAI-compatible classifier, which decodes its JSON
// arguments into the same map shape.
func classificationFromCall(funcName string, args map[string]any) (*Classification, error) {
	if !IsKnownIntent(funcName) || funcName == IntentUnknown {
		return nil, fmt.Errorf("unknown function: %s", funcName)
	}

	entities := make(map[string]string)
	for _, key := range intentParams[funcName] {
		value, exists := args[key]
		if !exists {
			// Not provided by the model; dialogue manager prompts for it.
			continue
		}
		strVal, ok := value.(string)
		if !ok {
			return nil, fmt.Errorf("parameter %q for function %q is not a string (got %T)", key, funcName, value)
		}
		if strVal != "" {
			entities[key] = strVal
		}
	}

	return &Classification{
		Intent:   funcName,
		Entities: entities,
	}, nil
}

// IsEnabled returns true if the classifier is properly initialized.
func (c *geminiClassifier) IsEnabled() bool {
	return c != nil && c.client != nil
}

// Provider returns the provider type for this classifier.
func (c *geminiClassifier) Provider() Provider {
	return ProviderGemini
}

// Close releases resources held by the classifier.
// Safe to call on nil receiver.
func (c *geminiClassifier) Close() error {
	if c == nil {
		return nil
	}
	// genai.Client does not require explicit cleanup in the current SDK version
	return nil
}

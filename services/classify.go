package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"barangay_portal_go/config"
	"barangay_portal_go/models"

	"github.com/openai/openai-go/v2"
	"github.com/openai/openai-go/v2/option"
)

const classifySystemPrompt = `Based on the following details given by the user, determine the priority level of the case.
Your response should be ONLY a single word. The priority levels are: Low, Medium, High, Urgent.`

// DefaultPriority is assigned when classification fails. Filing never blocks
// on the AI call; a failed call files the case at medium priority and records
// an unsuccessful activity row.
const DefaultPriority = models.PriorityMedium

// CaseDetails is what the classifier sees about a newly filed case.
type CaseDetails struct {
	Subject         string
	Description     string
	Category        string
	AreaDescription string
	Location        string
}

func (d CaseDetails) prompt() string {
	return fmt.Sprintf(`Determine the priority level for the following case details:
Subject: %s
Description: %s
Category: %s
Area Description: %s
Location: %s`, d.Subject, d.Description, d.Category, d.AreaDescription, d.Location)
}

// ClassifierService assigns case priorities through an OpenAI-compatible
// chat-completions endpoint.
type ClassifierService struct {
	client openai.Client
	model  string
	// enabled is false when no API key is configured; every call then
	// falls through to the default priority.
	enabled bool
}

func NewClassifierService(cfg *config.Config) *ClassifierService {
	return &ClassifierService{
		client: openai.NewClient(
			option.WithAPIKey(cfg.AIAPIKey),
			option.WithBaseURL(cfg.AIBaseURL),
		),
		model:   cfg.AIClassifyModel,
		enabled: cfg.AIAPIKey != "",
	}
}

// ErrClassifierDisabled means no AI credentials are configured.
var ErrClassifierDisabled = errors.New("classifier is not configured")

// ClassifyPriority returns one of low, medium, high, urgent for the case.
func (s *ClassifierService) ClassifyPriority(ctx context.Context, details CaseDetails) (string, error) {
	if !s.enabled {
		return "", ErrClassifierDisabled
	}

	ctx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()

	completion, err := s.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: s.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(classifySystemPrompt),
			openai.UserMessage(details.prompt()),
		},
	})
	if err != nil {
		return "", fmt.Errorf("classification request failed: %w", err)
	}
	if len(completion.Choices) == 0 {
		return "", errors.New("empty classification response")
	}

	priority, err := parsePriority(completion.Choices[0].Message.Content)
	if err != nil {
		return "", err
	}
	return priority, nil
}

// PriorityFor classifies the case, falling back to DefaultPriority on any
// failure. The error is returned alongside so callers can log it.
func (s *ClassifierService) PriorityFor(ctx context.Context, details CaseDetails) (string, error) {
	priority, err := s.ClassifyPriority(ctx, details)
	if err != nil {
		log.Printf("[CLASSIFY] falling back to %s: %v", DefaultPriority, err)
		return DefaultPriority, err
	}
	return priority, nil
}

// parsePriority normalizes the model output to a known priority value.
func parsePriority(raw string) (string, error) {
	normalized := strings.ToLower(strings.TrimSpace(raw))
	normalized = strings.Trim(normalized, ".!\"'")
	switch normalized {
	case models.PriorityLow, models.PriorityMedium, models.PriorityHigh, models.PriorityUrgent:
		return normalized, nil
	}
	return "", fmt.Errorf("unrecognized priority %q", raw)
}

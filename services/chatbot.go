package services

import (
	"context"
	"strings"
	"time"

	"barangay_portal_go/config"

	"github.com/openai/openai-go/v2"
	"github.com/openai/openai-go/v2/option"
)

const chatbotSystemPrompt = `You are a helpful Barangay Portal assistant. Provide concise, helpful responses about barangay services.
Keep responses under 50 words. Focus on directing users to specific features or providing brief information.
Available features: File Complaint, Request Assistance, My Complaints, My Assistance, Profile, Notifications.`

// maxPromptLength caps what is sent to the model; longer questions are truncated.
const maxPromptLength = 100

// ChatbotService answers resident questions. Simple keyword queries are
// answered from canned responses without an API call; everything else goes to
// the model, with the canned responses as the failure fallback.
type ChatbotService struct {
	client  openai.Client
	model   string
	enabled bool
}

func NewChatbotService(cfg *config.Config) *ChatbotService {
	return &ChatbotService{
		client: openai.NewClient(
			option.WithAPIKey(cfg.AIAPIKey),
			option.WithBaseURL(cfg.AIBaseURL),
		),
		model:   cfg.AIChatModel,
		enabled: cfg.AIAPIKey != "",
	}
}

// Reply produces the assistant's answer to a resident prompt.
func (s *ChatbotService) Reply(ctx context.Context, prompt string) string {
	prompt = truncatePrompt(prompt)

	if isSimpleQuery(prompt) || !s.enabled {
		return fallbackResponse(prompt)
	}

	ctx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()

	completion, err := s.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: s.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(chatbotSystemPrompt),
			openai.UserMessage(prompt),
		},
		MaxTokens:   openai.Int(100),
		Temperature: openai.Float(0.3),
	})
	if err != nil || len(completion.Choices) == 0 {
		return fallbackResponse(prompt)
	}

	reply := strings.TrimSpace(completion.Choices[0].Message.Content)
	if reply == "" {
		return fallbackResponse(prompt)
	}
	return reply
}

func truncatePrompt(prompt string) string {
	if len(prompt) > maxPromptLength {
		return prompt[:maxPromptLength] + "..."
	}
	return prompt
}

func containsAny(s string, words []string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}

// isSimpleQuery reports whether the canned responses can answer the prompt.
func isSimpleQuery(prompt string) bool {
	return containsAny(strings.ToLower(prompt), []string{
		"hello", "hi", "hey", "thanks", "thank",
		"complaint", "assistance", "status", "profile",
		"notification", "help", "support",
	})
}

// fallbackResponse answers common queries without an API call.
func fallbackResponse(prompt string) string {
	p := strings.ToLower(prompt)

	switch {
	case containsAny(p, []string{"complaint", "report", "problem"}):
		return "Use 'File Complaint' in the sidebar to report issues or concerns."
	case containsAny(p, []string{"assistance", "help", "support"}):
		return "Go to 'Request Assistance' to submit your assistance request."
	case containsAny(p, []string{"status", "track", "check"}):
		return "Check 'My Complaints' and 'My Assistance' for status updates."
	case containsAny(p, []string{"profile", "account", "update"}):
		return "Visit your 'Profile' section to update your information."
	case containsAny(p, []string{"notification", "alert"}):
		return "Check the 'Notifications' section for updates and alerts."
	case containsAny(p, []string{"hello", "hi", "hey"}):
		return "Hello! I can help you navigate the Barangay Portal. What do you need?"
	case containsAny(p, []string{"thank", "thanks"}):
		return "You're welcome! Let me know if you need more help."
	default:
		return "I can help with complaints, assistance requests, status tracking, and navigation. What do you need?"
	}
}

package assistant

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"

	"velour/models"
)

const systemPrompt = "You are the booking assistant for a private chauffeur service. " +
	"Answer questions about the fleet, pricing and the three-step booking form. Keep replies short."

// llmGenerator calls an OpenAI-compatible chat completions endpoint when an
// API key is configured. Any failure defers to the rule generator.
type llmGenerator struct{}

func (g *llmGenerator) Available() bool {
	return os.Getenv("ASSISTANT_API_KEY") != ""
}

type llmMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type llmRequest struct {
	Model    string       `json:"model"`
	Messages []llmMessage `json:"messages"`
}

type llmResponse struct {
	Choices []struct {
		Message llmMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

var llmClient = &http.Client{Timeout: 15 * time.Second}

func (g *llmGenerator) Generate(req models.ChatRequest) (models.ChatReply, error) {
	api := os.Getenv("ASSISTANT_API_URL")
	if api == "" {
		api = "https://api.openai.com/v1/chat/completions"
	}
	model := os.Getenv("ASSISTANT_MODEL")
	if model == "" {
		model = "gpt-4o-mini"
	}

	ctxNote, _ := json.Marshal(req.Context)
	messages := []llmMessage{
		{Role: "system", Content: systemPrompt + " Current booking context: " + string(ctxNote)},
	}
	for _, turn := range req.History {
		role := "user"
		if turn.Role == "assistant" {
			role = "assistant"
		}
		messages = append(messages, llmMessage{Role: role, Content: turn.Text})
	}
	messages = append(messages, llmMessage{Role: "user", Content: req.Message})

	body, err := json.Marshal(llmRequest{Model: model, Messages: messages})
	if err != nil {
		return models.ChatReply{}, err
	}

	httpReq, err := http.NewRequest(http.MethodPost, api, bytes.NewReader(body))
	if err != nil {
		return models.ChatReply{}, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+os.Getenv("ASSISTANT_API_KEY"))

	resp, err := llmClient.Do(httpReq)
	if err != nil {
		return models.ChatReply{}, err
	}
	defer resp.Body.Close()

	var out llmResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return models.ChatReply{}, err
	}
	if out.Error != nil {
		return models.ChatReply{}, fmt.Errorf("assistant api: %s", out.Error.Message)
	}
	if len(out.Choices) == 0 || out.Choices[0].Message.Content == "" {
		return models.ChatReply{}, fmt.Errorf("assistant api returned no choices")
	}

	return models.ChatReply{Reply: out.Choices[0].Message.Content}, nil
}

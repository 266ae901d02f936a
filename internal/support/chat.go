// Package support relays the live-support chat to a hosted generative model.
// It only carries request/response; conversation state lives in the widget.
package support

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/pathshare/pathshare/internal/config"
	"github.com/pathshare/pathshare/internal/logger"
	"go.uber.org/zap"
)

const systemInstruction = "You are PathShare Support. Help users understand how PathShare reduces traffic and pollution by sharing empty seats. Be friendly, concise, and professional. Provide clear instructions on how to use the app, verify identities, and handle payments."

// Greeting opens every support conversation.
const Greeting = "Hi! I'm your PathShare AI Assistant. How can I help you travel better today?"

// FallbackReply is shown when the model call fails or returns nothing.
const FallbackReply = "I'm sorry, I couldn't process that. Please try again."

// Message is one chat bubble.
type Message struct {
	ID     string
	Text   string
	IsUser bool
}

// NewMessage creates a message with a fresh id.
func NewMessage(text string, isUser bool) Message {
	return Message{ID: uuid.NewString(), Text: text, IsUser: isUser}
}

// Chat relays a conversation to the generativelanguage REST API.
type Chat struct {
	client  *http.Client
	baseURL string
	model   string
	apiKey  string
}

// NewChat creates a support chat relay from the configuration.
func NewChat(cfg *config.SupportConfig) *Chat {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	return &Chat{
		client:  &http.Client{Timeout: timeout},
		baseURL: cfg.BaseURL,
		model:   cfg.Model,
		apiKey:  cfg.APIKey,
	}
}

type generatePart struct {
	Text string `json:"text"`
}

type generateContent struct {
	Role  string         `json:"role,omitempty"`
	Parts []generatePart `json:"parts"`
}

type generateRequest struct {
	SystemInstruction *generateContent  `json:"systemInstruction,omitempty"`
	Contents          []generateContent `json:"contents"`
}

type generateResponse struct {
	Candidates []struct {
		Content generateContent `json:"content"`
	} `json:"candidates"`
}

// Send relays the conversation so far plus the new user message and returns
// the model's reply.
func (c *Chat) Send(ctx context.Context, history []Message, userText string) (string, error) {
	reqBody := generateRequest{
		SystemInstruction: &generateContent{Parts: []generatePart{{Text: systemInstruction}}},
	}

	for _, m := range history {
		role := "model"
		if m.IsUser {
			role = "user"
		}
		reqBody.Contents = append(reqBody.Contents, generateContent{
			Role:  role,
			Parts: []generatePart{{Text: m.Text}},
		})
	}
	reqBody.Contents = append(reqBody.Contents, generateContent{
		Role:  "user",
		Parts: []generatePart{{Text: userText}},
	})

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}

	endpoint := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s", c.baseURL, c.model, c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("support chat request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read support chat response: %w", err)
	}

	if resp.StatusCode >= 400 {
		logger.Warn("support chat call failed", zap.Int("status", resp.StatusCode))
		return "", fmt.Errorf("support chat request failed: status %d", resp.StatusCode)
	}

	var result generateResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return "", fmt.Errorf("failed to decode support chat response: %w", err)
	}

	if len(result.Candidates) == 0 || len(result.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("support chat returned no candidates")
	}
	return result.Candidates[0].Content.Parts[0].Text, nil
}

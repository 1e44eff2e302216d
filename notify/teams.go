package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// DefaultGraphBaseURL is the endpoint for channel posts when none is
// configured.
const DefaultGraphBaseURL = "https://graph.microsoft.com/v1.0"

// TeamsClient posts run summaries to Teams, either into a channel through
// the messaging API or through an incoming webhook.
type TeamsClient struct {
	BaseURL    string
	Token      string
	HTTPClient *http.Client
}

// NewTeamsClient creates a Teams client with sane defaults.
func NewTeamsClient(token string) *TeamsClient {
	return &TeamsClient{
		BaseURL:    DefaultGraphBaseURL,
		Token:      token,
		HTTPClient: &http.Client{Timeout: 30 * time.Second},
	}
}

type channelMessage struct {
	Body struct {
		ContentType string `json:"contentType"`
		Content     string `json:"content"`
	} `json:"body"`
}

// PostToChannel posts msg into the given team channel.
func (c *TeamsClient) PostToChannel(ctx context.Context, teamID, channelID string, msg Message) error {
	var payload channelMessage
	payload.Body.ContentType = "html"
	payload.Body.Content = fmt.Sprintf("<h3>%s</h3>%s", msg.Subject, msg.Body)

	url := fmt.Sprintf("%s/teams/%s/channels/%s/messages", c.BaseURL, teamID, channelID)
	return c.post(ctx, url, payload, true)
}

type webhookCard struct {
	Type    string `json:"@type"`
	Context string `json:"@context"`
	Summary string `json:"summary"`
	Title   string `json:"title"`
	Text    string `json:"text"`
}

// PostWebhook posts msg to an incoming webhook URI.
func (c *TeamsClient) PostWebhook(ctx context.Context, webhookURL string, msg Message) error {
	card := webhookCard{
		Type:    "MessageCard",
		Context: "http://schema.org/extensions",
		Summary: msg.Subject,
		Title:   msg.Subject,
		Text:    msg.Body,
	}
	return c.post(ctx, webhookURL, card, false)
}

func (c *TeamsClient) post(ctx context.Context, url string, payload any, authenticated bool) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode Teams payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create Teams request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if authenticated && c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}

	client := c.HTTPClient
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to post to Teams: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("Teams rejected the message: %s: %s", resp.Status, bytes.TrimSpace(detail))
	}
	return nil
}

package slack

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/brunovl/leadbridge/internal/entity"
)

const DefaultBaseURL = "https://slack.com"

type Client struct {
	baseURL string
	token   string
	channel string
	http    *http.Client
}

func NewClient(token, channel, baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL: baseURL,
		token:   token,
		channel: channel,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

// NotifyLead posts the new-lead block message to the configured channel.
// Slack reports failures inside a 200 body, so the ok flag is the real
// status.
func (c *Client) NotifyLead(ctx context.Context, lead entity.Lead) error {
	platform := strings.ToUpper(orDefault(lead.Platform, "META"))

	payload := postMessageRequest{
		Channel: c.channel,
		Text:    fmt.Sprintf("New %s Lead: %s", platform, orDefault(lead.FullName, "Unknown")),
		Blocks: []block{
			{
				Type: "header",
				Text: &textObject{Type: "plain_text", Text: fmt.Sprintf("🔔 New %s Lead", platform)},
			},
			{
				Type: "section",
				Fields: []textObject{
					{Type: "mrkdwn", Text: "*Name:*\n" + orDefault(lead.FullName, "N/A")},
					{Type: "mrkdwn", Text: "*Company:*\n" + orDefault(lead.CompanyName, "N/A")},
					{Type: "mrkdwn", Text: "*Phone:*\n" + orDefault(lead.Phone, "N/A")},
					{Type: "mrkdwn", Text: "*Email:*\n" + orDefault(lead.Email, "N/A")},
				},
			},
			{
				Type: "section",
				Fields: []textObject{
					{Type: "mrkdwn", Text: "*Campaign:*\n" + orDefault(lead.CampaignName, "N/A")},
					{Type: "mrkdwn", Text: "*Ad Set:*\n" + orDefault(lead.AdsetName, "N/A")},
				},
			},
			{
				Type: "context",
				Elements: []textObject{
					{Type: "mrkdwn", Text: fmt.Sprintf("Lead ID: %s | %s", lead.ID, lead.CreatedTime)},
				},
			},
		},
	}

	jsonBody, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal slack message: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+"/api/chat.postMessage", bytes.NewBuffer(jsonBody))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("slack request: %w", err)
	}
	defer resp.Body.Close()

	var result postMessageResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return fmt.Errorf("slack decode: %w", err)
	}
	if !result.OK {
		return fmt.Errorf("slack error: %s", result.Error)
	}
	return nil
}

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}

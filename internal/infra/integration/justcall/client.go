package justcall

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/brunovl/leadbridge/internal/entity"
	"github.com/brunovl/leadbridge/internal/fetch"
)

const DefaultBaseURL = "https://api.justcall.io"

// PerPage is the page size used for call listings.
const PerPage = 100

type Client struct {
	baseURL string
	auth    string
	http    *http.Client
}

func NewClient(apiKey, apiSecret, baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	creds := base64.StdEncoding.EncodeToString([]byte(apiKey + ":" + apiSecret))
	return &Client{
		baseURL: baseURL,
		auth:    "Basic " + creds,
		http:    &http.Client{Timeout: 30 * time.Second},
	}
}

// ListCalls fetches one page of the v2 calls listing, newest first. A 429
// response comes back wrapped in fetch.ErrRateLimited so the paginator
// retries the same page.
func (c *Client) ListCalls(ctx context.Context, page int) (fetch.Page[entity.Call], error) {
	url := fmt.Sprintf("%s/v2/calls?per_page=%d&page=%d", c.baseURL, PerPage, page)

	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return fetch.Page[entity.Call]{}, err
	}
	c.setHeaders(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return fetch.Page[entity.Call]{}, fmt.Errorf("justcall request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		return fetch.Page[entity.Call]{}, fmt.Errorf("justcall page %d: %w", page, fetch.ErrRateLimited)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(resp.Body)
		return fetch.Page[entity.Call]{}, fmt.Errorf("justcall rejected (status %d): %s", resp.StatusCode, string(body))
	}

	var payload listCallsResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return fetch.Page[entity.Call]{}, fmt.Errorf("justcall decode: %w", err)
	}

	out := fetch.Page[entity.Call]{
		Items:      make([]entity.Call, 0, len(payload.Data)),
		HasMore:    payload.NextPageLink != "",
		TotalCount: -1,
	}
	if payload.TotalCount != nil {
		out.TotalCount = *payload.TotalCount
	}
	for _, rec := range payload.Data {
		out.Items = append(out.Items, rec.toEntity())
	}
	return out, nil
}

// AddToCampaign enrolls a contact in the autodialer campaign. The phone is
// forced into E.164 form.
func (c *Client) AddToCampaign(ctx context.Context, campaignID, name, email, phone string) error {
	if !strings.HasPrefix(phone, "+") {
		phone = "+" + phone
	}

	payload := addContactRequest{
		CampaignID: campaignID,
		Name:       name,
		Email:      email,
		Phone:      phone,
	}
	jsonBody, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal contact: %w", err)
	}

	url := c.baseURL + "/v1/autodialer/campaign/contacts/add"
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(jsonBody))
	if err != nil {
		return err
	}
	c.setHeaders(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("justcall request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("justcall campaign add rejected (status %d): %s", resp.StatusCode, string(body))
	}
	return nil
}

func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("Authorization", c.auth)
	req.Header.Set("Content-Type", "application/json")
}

package meta

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"time"

	"github.com/brunovl/leadbridge/internal/entity"
)

const DefaultBaseURL = "https://graph.facebook.com/v19.0"

// leadFields is the field list requested for every lead, including the
// campaign/adset/ad metadata.
const leadFields = "id,created_time,ad_id,ad_name,adset_id,adset_name,campaign_id,campaign_name,platform,field_data"

type Client struct {
	baseURL     string
	accessToken string
	http        *http.Client
}

func NewClient(accessToken, baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL:     baseURL,
		accessToken: accessToken,
		http:        &http.Client{Timeout: 30 * time.Second},
	}
}

// FetchLead loads a single lead by its leadgen id and flattens field_data
// into the entity's dynamic fields.
func (c *Client) FetchLead(ctx context.Context, leadgenID string) (entity.Lead, error) {
	endpoint := fmt.Sprintf("%s/%s?access_token=%s&fields=%s",
		c.baseURL, url.PathEscape(leadgenID), url.QueryEscape(c.accessToken), url.QueryEscape(leadFields))

	var raw leadResponse
	if err := c.getJSON(ctx, endpoint, &raw); err != nil {
		return entity.Lead{}, fmt.Errorf("fetch lead %s: %w", leadgenID, err)
	}
	return raw.toEntity(), nil
}

// ListFormLeads fetches every lead of one form. The Graph API paginates
// with an opaque paging.next URL, so only the first request carries
// parameters.
func (c *Client) ListFormLeads(ctx context.Context, formID string) ([]entity.Lead, error) {
	next := fmt.Sprintf("%s/%s/leads?access_token=%s&fields=%s&limit=100",
		c.baseURL, url.PathEscape(formID), url.QueryEscape(c.accessToken), url.QueryEscape(leadFields))

	var leads []entity.Lead
	for next != "" {
		var page listLeadsResponse
		if err := c.getJSON(ctx, next, &page); err != nil {
			return nil, fmt.Errorf("list leads for form %s: %w", formID, err)
		}
		for _, raw := range page.Data {
			leads = append(leads, raw.toEntity())
		}
		log.Printf("[%s] fetched %d leads so far", formID, len(leads))
		next = page.Paging.Next
	}
	return leads, nil
}

func (c *Client) getJSON(ctx context.Context, endpoint string, out any) error {
	req, err := http.NewRequestWithContext(ctx, "GET", endpoint, nil)
	if err != nil {
		return err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("graph request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("graph rejected (status %d): %s", resp.StatusCode, string(body))
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("graph decode: %w", err)
	}
	return nil
}

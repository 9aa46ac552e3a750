// Package sheets is a thin client for the Google Sheets values REST API.
// It is the primary implementation of the row store the sync use cases
// write to.
package sheets

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"time"
)

const DefaultBaseURL = "https://sheets.googleapis.com"

// BatchSize caps one append request; larger row sets are chunked.
const BatchSize = 500

type Client struct {
	baseURL       string
	spreadsheetID string
	token         string
	http          *http.Client
}

func NewClient(token, spreadsheetID, baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL:       baseURL,
		spreadsheetID: spreadsheetID,
		token:         token,
		http:          &http.Client{Timeout: 30 * time.Second},
	}
}

// GetRange reads a rectangular range. Cells come back as strings regardless
// of what the sheet holds.
func (c *Client) GetRange(ctx context.Context, rng string) ([][]string, error) {
	var payload valuesResponse
	err := c.do(ctx, "GET", c.valuesURL(rng, ""), nil, &payload)
	if err != nil {
		return nil, fmt.Errorf("get range %s: %w", rng, err)
	}

	rows := make([][]string, 0, len(payload.Values))
	for _, raw := range payload.Values {
		row := make([]string, len(raw))
		for i, cell := range raw {
			row[i] = fmt.Sprint(cell)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// Clear empties the range without touching formatting.
func (c *Client) Clear(ctx context.Context, rng string) error {
	if err := c.do(ctx, "POST", c.valuesURL(rng, ":clear"), nil, nil); err != nil {
		return fmt.Errorf("clear range %s: %w", rng, err)
	}
	return nil
}

// Update overwrites the range starting at its top-left cell.
func (c *Client) Update(ctx context.Context, rng string, values [][]string) error {
	endpoint := c.valuesURL(rng, "") + "?valueInputOption=RAW"
	body := valuesRequest{Values: values}
	if err := c.do(ctx, "PUT", endpoint, body, nil); err != nil {
		return fmt.Errorf("update range %s: %w", rng, err)
	}
	return nil
}

// Append inserts rows after the last data row of the range, preserving
// input order, in chunks of at most BatchSize rows.
func (c *Client) Append(ctx context.Context, rng string, rows [][]string) error {
	endpoint := c.valuesURL(rng, ":append") + "?valueInputOption=RAW&insertDataOption=INSERT_ROWS"

	batch := 0
	for i := 0; i < len(rows); i += BatchSize {
		batch++
		end := i + BatchSize
		if end > len(rows) {
			end = len(rows)
		}

		body := valuesRequest{Values: rows[i:end]}
		if err := c.do(ctx, "POST", endpoint, body, nil); err != nil {
			return fmt.Errorf("append to %s (batch %d): %w", rng, batch, err)
		}
		log.Printf("wrote batch %d: rows %d-%d", batch, i+1, end)
	}
	return nil
}

// EnsureSheet creates the named tab when the spreadsheet does not have it
// yet.
func (c *Client) EnsureSheet(ctx context.Context, title string) error {
	endpoint := fmt.Sprintf("%s/v4/spreadsheets/%s?fields=sheets.properties.title", c.baseURL, c.spreadsheetID)

	var meta spreadsheetResponse
	if err := c.do(ctx, "GET", endpoint, nil, &meta); err != nil {
		return fmt.Errorf("read spreadsheet meta: %w", err)
	}
	for _, sheet := range meta.Sheets {
		if sheet.Properties.Title == title {
			return nil
		}
	}

	body := batchUpdateRequest{
		Requests: []batchUpdateEntry{
			{AddSheet: &addSheetRequest{Properties: sheetProperties{Title: title}}},
		},
	}
	endpoint = fmt.Sprintf("%s/v4/spreadsheets/%s:batchUpdate", c.baseURL, c.spreadsheetID)
	if err := c.do(ctx, "POST", endpoint, body, nil); err != nil {
		return fmt.Errorf("add sheet %q: %w", title, err)
	}
	log.Printf("created sheet tab: %s", title)
	return nil
}

func (c *Client) valuesURL(rng, verb string) string {
	return fmt.Sprintf("%s/v4/spreadsheets/%s/values/%s%s", c.baseURL, c.spreadsheetID, url.PathEscape(rng), verb)
}

func (c *Client) do(ctx context.Context, method, endpoint string, in, out any) error {
	var body io.Reader
	if in != nil {
		jsonBody, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		body = bytes.NewBuffer(jsonBody)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("sheets request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("sheets rejected (status %d): %s", resp.StatusCode, string(raw))
	}
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("sheets decode: %w", err)
		}
	}
	return nil
}

package sheets

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetRangeStringifiesCells(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v4/spreadsheets/sheet-1/values/Sheet1!A:J", r.URL.Path)
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		fmt.Fprint(w, `{"values": [["Timestamp", "Lead ID"], ["2026-02-01", 12345]]}`)
	}))
	defer srv.Close()

	client := NewClient("tok", "sheet-1", srv.URL)
	rows, err := client.GetRange(context.Background(), "Sheet1!A:J")

	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"2026-02-01", "12345"}, rows[1], "numeric cells read back as strings")
}

func TestGetRangeEmptySheet(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"range": "Sheet1!A1:J1000"}`)
	}))
	defer srv.Close()

	client := NewClient("tok", "sheet-1", srv.URL)
	rows, err := client.GetRange(context.Background(), "Sheet1!A:J")

	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestAppendChunksAtBatchSize(t *testing.T) {
	var batches []int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.True(t, strings.HasSuffix(r.URL.Path, ":append"))
		assert.Equal(t, "RAW", r.URL.Query().Get("valueInputOption"))
		assert.Equal(t, "INSERT_ROWS", r.URL.Query().Get("insertDataOption"))

		var body valuesRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		batches = append(batches, len(body.Values))
		fmt.Fprint(w, `{}`)
	}))
	defer srv.Close()

	rows := make([][]string, 1201)
	for i := range rows {
		rows[i] = []string{fmt.Sprint(i)}
	}

	client := NewClient("tok", "sheet-1", srv.URL)
	err := client.Append(context.Background(), "Raw Call Dump!A2", rows)

	require.NoError(t, err)
	assert.Equal(t, []int{500, 500, 201}, batches)
}

func TestEnsureSheetSkipsExistingTab(t *testing.T) {
	batchUpdates := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, ":batchUpdate") {
			batchUpdates++
			fmt.Fprint(w, `{}`)
			return
		}
		fmt.Fprint(w, `{"sheets": [{"properties": {"title": "Call Analysis"}}]}`)
	}))
	defer srv.Close()

	client := NewClient("tok", "sheet-1", srv.URL)
	require.NoError(t, client.EnsureSheet(context.Background(), "Call Analysis"))
	assert.Zero(t, batchUpdates)
}

func TestEnsureSheetCreatesMissingTab(t *testing.T) {
	var created string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, ":batchUpdate") {
			var body batchUpdateRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			require.Len(t, body.Requests, 1)
			created = body.Requests[0].AddSheet.Properties.Title
			fmt.Fprint(w, `{}`)
			return
		}
		fmt.Fprint(w, `{"sheets": [{"properties": {"title": "Sheet1"}}]}`)
	}))
	defer srv.Close()

	client := NewClient("tok", "sheet-1", srv.URL)
	require.NoError(t, client.EnsureSheet(context.Background(), "Raw Call Dump"))
	assert.Equal(t, "Raw Call Dump", created)
}

func TestClearPropagatesAPIErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error": {"status": "PERMISSION_DENIED"}}`, http.StatusForbidden)
	}))
	defer srv.Close()

	client := NewClient("tok", "sheet-1", srv.URL)
	err := client.Clear(context.Background(), "Sheet1!A:J")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 403")
}

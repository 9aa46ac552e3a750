package handlers

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brunovl/leadbridge/internal/entity"
)

type fakeLeadFetcher struct {
	lead entity.Lead
	err  error
	ids  []string
}

func (f *fakeLeadFetcher) FetchLead(ctx context.Context, leadgenID string) (entity.Lead, error) {
	f.ids = append(f.ids, leadgenID)
	return f.lead, f.err
}

type fakeProducer struct {
	published []entity.Lead
	err       error
}

func (f *fakeProducer) PublishLead(ctx context.Context, lead entity.Lead) error {
	f.published = append(f.published, lead)
	return f.err
}

func sign(secret string, body []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return "sha256=" + hex.EncodeToString(mac.Sum(nil))
}

const leadgenBody = `{
	"object": "page",
	"entry": [{
		"id": "page-1",
		"changes": [{
			"field": "leadgen",
			"value": {"leadgen_id": "lg-42", "form_id": "f-1", "page_id": "page-1"}
		}]
	}]
}`

func TestHandleVerify(t *testing.T) {
	h := NewWebhookHandler("secret", "my-token", nil, nil)

	t.Run("echoes challenge on valid token", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/webhook?hub.mode=subscribe&hub.verify_token=my-token&hub.challenge=12345", nil)
		rec := httptest.NewRecorder()

		h.HandleVerify(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "12345", rec.Body.String())
	})

	t.Run("rejects wrong token", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/webhook?hub.mode=subscribe&hub.verify_token=wrong&hub.challenge=12345", nil)
		rec := httptest.NewRecorder()

		h.HandleVerify(rec, req)

		assert.Equal(t, http.StatusForbidden, rec.Code)
	})
}

func TestHandleLeadgen(t *testing.T) {
	lead := entity.Lead{ID: "lg-42", FullName: "Jane Doe", Phone: "+15551234567", Platform: "Facebook"}

	t.Run("fetches and queues the lead", func(t *testing.T) {
		fetcher := &fakeLeadFetcher{lead: lead}
		producer := &fakeProducer{}
		h := NewWebhookHandler("secret", "tok", fetcher, producer)

		req := httptest.NewRequest("POST", "/webhook", strings.NewReader(leadgenBody))
		req.Header.Set("X-Hub-Signature-256", sign("secret", []byte(leadgenBody)))
		rec := httptest.NewRecorder()

		h.Handle(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, []string{"lg-42"}, fetcher.ids)
		require.Len(t, producer.published, 1)
		assert.Equal(t, "Jane Doe", producer.published[0].FullName)
	})

	t.Run("rejects invalid signature", func(t *testing.T) {
		fetcher := &fakeLeadFetcher{lead: lead}
		producer := &fakeProducer{}
		h := NewWebhookHandler("secret", "tok", fetcher, producer)

		req := httptest.NewRequest("POST", "/webhook", strings.NewReader(leadgenBody))
		req.Header.Set("X-Hub-Signature-256", "sha256="+strings.Repeat("0", 64))
		rec := httptest.NewRecorder()

		h.Handle(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Empty(t, fetcher.ids)
		assert.Empty(t, producer.published)
	})

	t.Run("rejects missing signature", func(t *testing.T) {
		h := NewWebhookHandler("secret", "tok", &fakeLeadFetcher{}, &fakeProducer{})

		req := httptest.NewRequest("POST", "/webhook", strings.NewReader(leadgenBody))
		rec := httptest.NewRecorder()

		h.Handle(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("ignores non-leadgen changes", func(t *testing.T) {
		body := `{"object":"page","entry":[{"id":"p","changes":[{"field":"feed","value":{}}]}]}`
		fetcher := &fakeLeadFetcher{lead: lead}
		h := NewWebhookHandler("secret", "tok", fetcher, &fakeProducer{})

		req := httptest.NewRequest("POST", "/webhook", strings.NewReader(body))
		req.Header.Set("X-Hub-Signature-256", sign("secret", []byte(body)))
		rec := httptest.NewRecorder()

		h.Handle(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Empty(t, fetcher.ids)
	})

	t.Run("still returns 200 when fetch fails", func(t *testing.T) {
		fetcher := &fakeLeadFetcher{err: assert.AnError}
		producer := &fakeProducer{}
		h := NewWebhookHandler("secret", "tok", fetcher, producer)

		req := httptest.NewRequest("POST", "/webhook", strings.NewReader(leadgenBody))
		req.Header.Set("X-Hub-Signature-256", sign("secret", []byte(leadgenBody)))
		rec := httptest.NewRecorder()

		h.Handle(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Empty(t, producer.published)
	})
}

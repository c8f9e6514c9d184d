package testutil

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"remate/internal/domain"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
)

// Envelope is the decoded success or error body.
type Envelope struct {
	Status   string          `json:"status"`
	Message  string          `json:"message"`
	Data     json.RawMessage `json:"data"`
	Metadata json.RawMessage `json:"metadata"`
	Error    struct {
		Message    string                 `json:"message"`
		StatusCode int                    `json:"statusCode"`
		Details    map[string]interface{} `json:"details"`
	} `json:"error"`
}

// Decode unmarshals the data member into dst.
func (e Envelope) Decode(t testing.TB, dst interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(e.Data, dst))
}

// Page rebuilds a paged list from its data and metadata members.
func Page[T any](t testing.TB, e Envelope) domain.Page[T] {
	t.Helper()
	var p domain.Page[T]
	require.NoError(t, json.Unmarshal(e.Data, &p.Items))
	require.NoError(t, json.Unmarshal(e.Metadata, &p))
	return p
}

// Do sends a request with an optional JSON body and decodes the envelope.
func Do(t testing.TB, app *fiber.App, method, path string, body interface{}) (int, Envelope) {
	t.Helper()
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var env Envelope
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &env), string(raw))
	}
	return resp.StatusCode, env
}

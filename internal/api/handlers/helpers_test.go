package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/aaravmahajanofficial/shophub-storefront/internal/utils/response"
	"github.com/stretchr/testify/require"
)

func jsonBody(t *testing.T, v any) *bytes.Reader {
	t.Helper()

	raw, err := json.Marshal(v)
	require.NoError(t, err)

	return bytes.NewReader(raw)
}

// decodeResponse unwraps the response envelope and decodes Data into data when given.
func decodeResponse(t *testing.T, rr *httptest.ResponseRecorder, data any) *response.APIResponse {
	t.Helper()

	var resp response.APIResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))

	if data != nil && resp.Data != nil {
		// Marshall the Data from map[string]interface{} to bytes
		raw, err := json.Marshal(resp.Data)
		require.NoError(t, err)
		require.NoError(t, json.Unmarshal(raw, data))
	}

	return &resp
}

func findCookie(rr *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, c := range rr.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}

	return nil
}

package testutil

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"testing"
	"time"
)

// HTTPGetJSON sends a GET request to the catalog and decodes the JSON body into out.
func HTTPGetJSON(t testing.TB, baseURL, path string, out any) {
	t.Helper()
	status, body := HTTPDo(t, http.MethodGet, baseURL+path, nil)
	if status < 200 || status >= 300 {
		t.Fatalf("unexpected status %d for GET %s: %s", status, path, string(body))
	}
	if err := json.Unmarshal(body, out); err != nil {
		t.Fatalf("decode %s response: %v", path, err)
	}
}

// HTTPDo executes an HTTP request with a raw JSON payload and returns the
// status code and body without judging the status.
func HTTPDo(t testing.TB, method, url string, payload []byte) (int, []byte) {
	t.Helper()
	ctx := Context(t, 2*time.Second)
	req, err := http.NewRequestWithContext(ctx, method, url, bytes.NewReader(payload))
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("http request: %v", err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read response: %v", err)
	}
	return resp.StatusCode, body
}

// DecodeJSON unmarshals a recorded request body into a generic value.
func DecodeJSON(t testing.TB, body []byte) any {
	t.Helper()
	var out any
	if err := json.Unmarshal(body, &out); err != nil {
		t.Fatalf("decode body %q: %v", string(body), err)
	}
	return out
}

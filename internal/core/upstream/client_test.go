package upstream

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func testClient(metadataURL, audioURL string) *Client {
	return &Client{
		APIKey:       "test-key",
		MetadataURL:  metadataURL,
		MetadataHost: "metadata.example",
		AudioURL:     audioURL,
		AudioHost:    "audio.example",
		HTTPClient:   http.DefaultClient,
	}
}

func TestFetchRaw(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s; want POST", r.Method)
		}
		if got := r.Header.Get("x-rapidapi-key"); got != "test-key" {
			t.Errorf("x-rapidapi-key = %q", got)
		}
		if got := r.Header.Get("x-rapidapi-host"); got != "metadata.example" {
			t.Errorf("x-rapidapi-host = %q", got)
		}
		if err := r.ParseForm(); err != nil {
			t.Fatal(err)
		}
		if got := r.PostForm.Get("query"); got != "https://youtu.be/abc" {
			t.Errorf("query = %q", got)
		}
		w.Write([]byte(`{"videoId": "abc", "title": "hello"}`))
	}))
	defer srv.Close()

	c := testClient(srv.URL, "")
	raw, err := c.FetchRaw(context.Background(), "https://youtu.be/abc")
	if err != nil {
		t.Fatalf("FetchRaw: %v", err)
	}

	m, ok := raw.(map[string]any)
	if !ok {
		t.Fatalf("raw = %T; want map", raw)
	}
	if m["videoId"] != "abc" {
		t.Errorf("videoId = %v", m["videoId"])
	}
}

func TestFetchRawUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte("rate limited"))
	}))
	defer srv.Close()

	c := testClient(srv.URL, "")
	_, err := c.FetchRaw(context.Background(), "https://youtu.be/abc")

	var se *StatusError
	if !errors.As(err, &se) {
		t.Fatalf("err = %v; want *StatusError", err)
	}
	if se.StatusCode != http.StatusTooManyRequests {
		t.Errorf("StatusCode = %d", se.StatusCode)
	}
	if se.Body != "rate limited" {
		t.Errorf("Body = %q", se.Body)
	}
}

func TestFetchRawMalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>not json</html>"))
	}))
	defer srv.Close()

	c := testClient(srv.URL, "")
	if _, err := c.FetchRaw(context.Background(), "u"); err == nil {
		t.Error("FetchRaw accepted a non-JSON body")
	}
}

func TestFetchRawNotConfigured(t *testing.T) {
	c := testClient("http://unused.example", "")
	c.APIKey = ""

	_, err := c.FetchRaw(context.Background(), "u")
	if !errors.Is(err, ErrNotConfigured) {
		t.Errorf("err = %v; want ErrNotConfigured", err)
	}
}

func TestAudioContinuation(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if got := q.Get("audio_id"); got != "aud1" {
			t.Errorf("audio_id = %q", got)
		}
		if got := q.Get("continuation_token"); got != "tok" {
			t.Errorf("continuation_token = %q", got)
		}
		w.Write([]byte(`{"streams": [1, 2], "continuation_token": "next"}`))
	}))
	defer srv.Close()

	c := testClient("", srv.URL)
	body, err := c.AudioContinuation(context.Background(), "aud1", "tok")
	if err != nil {
		t.Fatalf("AudioContinuation: %v", err)
	}
	if string(body) != `{"streams": [1, 2], "continuation_token": "next"}` {
		t.Errorf("body relayed with changes: %s", body)
	}
}

func TestAudioContinuationOmitsEmptyToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, present := r.URL.Query()["continuation_token"]; present {
			t.Error("empty continuation_token should not be sent")
		}
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	c := testClient("", srv.URL)
	if _, err := c.AudioContinuation(context.Background(), "aud1", ""); err != nil {
		t.Fatalf("AudioContinuation: %v", err)
	}
}

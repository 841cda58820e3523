package codeforces

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func newTestClient(handler http.HandlerFunc) (*Client, *httptest.Server) {
	server := httptest.NewServer(handler)
	return &Client{baseURL: server.URL, httpClient: server.Client()}, server
}

func TestContests(t *testing.T) {
	var gotURL string
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		gotURL = r.URL.String()
		w.Write([]byte(`{"status":"OK","result":[{"id":1900,"name":"Codeforces Round"}]}`))
	})
	defer server.Close()

	payload, err := client.Contests(context.Background())
	if err != nil {
		t.Fatalf("Contests failed: %v", err)
	}
	if gotURL != "/contest.list?gym=false" {
		t.Errorf("Unexpected upstream URL %q", gotURL)
	}
	if !strings.Contains(string(payload), `"id":1900`) {
		t.Errorf("Expected payload passed through verbatim, got %s", payload)
	}
}

func TestUserInfo(t *testing.T) {
	var gotURL string
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		gotURL = r.URL.String()
		w.Write([]byte(`{"status":"OK","result":[{"handle":"tourist"}]}`))
	})
	defer server.Close()

	payload, err := client.UserInfo(context.Background(), "tourist")
	if err != nil {
		t.Fatalf("UserInfo failed: %v", err)
	}
	if gotURL != "/user.info?handles=tourist" {
		t.Errorf("Unexpected upstream URL %q", gotURL)
	}
	if !strings.Contains(string(payload), "tourist") {
		t.Errorf("Expected payload passed through verbatim, got %s", payload)
	}
}

func TestUserInfoEscapesHandle(t *testing.T) {
	var gotRaw string
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		gotRaw = r.URL.RawQuery
		w.Write([]byte(`{"status":"FAILED","comment":"handles: User not found"}`))
	})
	defer server.Close()

	payload, err := client.UserInfo(context.Background(), "a b&c")
	if err != nil {
		t.Fatalf("UserInfo failed: %v", err)
	}
	if gotRaw != "handles=a+b%26c" {
		t.Errorf("Expected escaped handle in query, got %q", gotRaw)
	}
	// Upstream failure payloads pass through too.
	if !strings.Contains(string(payload), "FAILED") {
		t.Errorf("Expected FAILED payload passed through, got %s", payload)
	}
}

func TestNonJSONResponse(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("<html>bad gateway</html>"))
	})
	defer server.Close()

	_, err := client.Contests(context.Background())
	if err == nil {
		t.Error("Expected error for non-JSON upstream response")
	}
}

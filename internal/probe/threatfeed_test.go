package probe

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/khanhnv2901/scope-intel/internal/intel"
)

func TestThreatFeedProbe_NoAPIKey(t *testing.T) {
	p := &ThreatFeedProbe{}

	rec := &intel.Record{Domain: "example.com"}
	p.Collect(context.Background(), "example.com", rec)

	data := rec.ShodanData
	if data == nil {
		t.Fatal("Expected shodan_data section to be populated")
	}
	if data.Error != "Shodan API key not provided" {
		t.Errorf("Expected not-configured error, got %q", data.Error)
	}
	if data.Subdomains == nil || data.Tags == nil || data.Data == nil {
		t.Error("Expected empty slices, not nil, without an API key")
	}
}

func TestThreatFeedProbe_ParsesResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("key") != "test-key" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"subdomains": ["www", "mail"],
			"tags": ["cloud"],
			"data": [{"subdomain": "www", "type": "A", "value": "93.184.216.34"}]
		}`))
	}))
	defer server.Close()

	p := &ThreatFeedProbe{
		APIKey:  "test-key",
		Timeout: 2 * time.Second,
		BaseURL: server.URL + "/dns/domain/",
	}

	rec := &intel.Record{Domain: "example.com"}
	p.Collect(context.Background(), "example.com", rec)

	data := rec.ShodanData
	if data.Error != "" {
		t.Fatalf("Unexpected error: %s", data.Error)
	}
	if len(data.Subdomains) != 2 || data.Subdomains[0] != "www" {
		t.Errorf("Unexpected subdomains: %v", data.Subdomains)
	}
	if len(data.Tags) != 1 || data.Tags[0] != "cloud" {
		t.Errorf("Unexpected tags: %v", data.Tags)
	}
	if len(data.Data) != 1 || data.Data[0]["type"] != "A" {
		t.Errorf("Unexpected raw data: %v", data.Data)
	}
}

func TestThreatFeedProbe_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	p := &ThreatFeedProbe{
		APIKey:  "test-key",
		Timeout: 2 * time.Second,
		BaseURL: server.URL + "/dns/domain/",
	}

	rec := &intel.Record{Domain: "example.com"}
	p.Collect(context.Background(), "example.com", rec)

	if rec.ShodanData.Error != "Shodan API error: 404" {
		t.Errorf("Expected status error, got %q", rec.ShodanData.Error)
	}
}

func TestThreatFeedProbe_InvalidJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json"))
	}))
	defer server.Close()

	p := &ThreatFeedProbe{
		APIKey:  "test-key",
		Timeout: 2 * time.Second,
		BaseURL: server.URL + "/dns/domain/",
	}

	rec := &intel.Record{Domain: "example.com"}
	p.Collect(context.Background(), "example.com", rec)

	if rec.ShodanData.Error == "" {
		t.Error("Expected a decode error for invalid JSON")
	}
}

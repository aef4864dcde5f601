package console

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestClient_ErrorIncludesStatusAndBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "monitor offline", http.StatusBadGateway)
	}))
	defer srv.Close()

	client := NewClient(srv.URL+"/", time.Second)
	_, err := client.JammingStatus(context.Background())
	if err == nil {
		t.Fatal("JammingStatus() error = nil, want error")
	}
	if !strings.Contains(err.Error(), "502") || !strings.Contains(err.Error(), "monitor offline") {
		t.Errorf("error %q missing status or body", err)
	}
}

func TestClient_RequestShape(t *testing.T) {
	var gotMethod, gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod, gotPath = r.Method, r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"success"}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, 0)
	ack, err := client.StartMonitoring(context.Background())
	if err != nil {
		t.Fatalf("StartMonitoring() error = %v", err)
	}
	if gotMethod != http.MethodPost || gotPath != "/api/security/start-monitoring" {
		t.Errorf("request = %s %s, want POST /api/security/start-monitoring", gotMethod, gotPath)
	}
	if ack.Status != "success" {
		t.Errorf("ack.Status = %q, want success", ack.Status)
	}
}

package disco

import (
	"context"
	"net/http"
	"testing"
)

func TestNoAuth_NewRequest(t *testing.T) {
	req, err := NoAuth{}.NewRequest(context.Background(), http.MethodGet, "https://example.com/x")
	if err != nil {
		t.Fatalf("NewRequest: %v", err)
	}
	if req.Method != http.MethodGet {
		t.Errorf("method = %q, want GET", req.Method)
	}
	if got := req.Header.Get("Authorization"); got != "" {
		t.Errorf("Authorization = %q, want empty", got)
	}
}

func TestStaticToken_NewRequest(t *testing.T) {
	auth := StaticToken("sekrit")
	req, err := auth.NewRequest(context.Background(), http.MethodPost, "https://example.com/x")
	if err != nil {
		t.Fatalf("NewRequest: %v", err)
	}
	if got := req.Header.Get("Authorization"); got != "Bearer sekrit" {
		t.Errorf("Authorization = %q, want Bearer sekrit", got)
	}
}

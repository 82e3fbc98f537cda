package disco

import (
	"strings"
	"testing"
)

func TestParseTemplate_Names(t *testing.T) {
	tmpl, err := ParseTemplate("users/{userId}/posts/{postId}")
	if err != nil {
		t.Fatalf("ParseTemplate: %v", err)
	}
	names := tmpl.Names()
	if len(names) != 2 || names[0] != "userId" || names[1] != "postId" {
		t.Errorf("Names() = %v, want [userId postId]", names)
	}
}

func TestParseTemplate_NoPlaceholders(t *testing.T) {
	tmpl, err := ParseTemplate("users/recent")
	if err != nil {
		t.Fatalf("ParseTemplate: %v", err)
	}
	if len(tmpl.Names()) != 0 {
		t.Errorf("Names() = %v, want empty", tmpl.Names())
	}
	got, err := tmpl.Expand(nil)
	if err != nil {
		t.Fatalf("Expand: %v", err)
	}
	if got != "users/recent" {
		t.Errorf("Expand() = %q, want users/recent", got)
	}
}

func TestParseTemplate_Errors(t *testing.T) {
	tests := []struct {
		name string
		path string
	}{
		{"unterminated", "items/{id"},
		{"empty placeholder", "items/{}"},
		{"unmatched close", "items/id}"},
		{"nested open", "items/{a{b}"},
		{"slash in placeholder", "items/{a/b}"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseTemplate(tt.path)
			if err == nil {
				t.Fatalf("ParseTemplate(%q) succeeded, want error", tt.path)
			}
			reqErr, ok := AsError(err)
			if !ok || reqErr.Code != CodeInvalidTemplate {
				t.Errorf("error = %v, want code %s", err, CodeInvalidTemplate)
			}
		})
	}
}

func TestTemplate_Expand(t *testing.T) {
	tmpl, err := ParseTemplate("/items/{id}")
	if err != nil {
		t.Fatalf("ParseTemplate: %v", err)
	}
	got, err := tmpl.Expand(map[string]string{"id": "42"})
	if err != nil {
		t.Fatalf("Expand: %v", err)
	}
	if got != "/items/42" {
		t.Errorf("Expand() = %q, want /items/42", got)
	}
}

func TestTemplate_ExpandEscapes(t *testing.T) {
	tmpl, err := ParseTemplate("items/{id}")
	if err != nil {
		t.Fatalf("ParseTemplate: %v", err)
	}
	got, err := tmpl.Expand(map[string]string{"id": "a/b c"})
	if err != nil {
		t.Fatalf("Expand: %v", err)
	}
	if strings.Contains(got, "/b") {
		t.Errorf("Expand() = %q, substituted value must be path-escaped", got)
	}
	if got != "items/a%2Fb%20c" {
		t.Errorf("Expand() = %q, want items/a%%2Fb%%20c", got)
	}
}

func TestTemplate_ExpandUnresolved(t *testing.T) {
	tmpl, err := ParseTemplate("users/{userId}/posts/{postId}")
	if err != nil {
		t.Fatalf("ParseTemplate: %v", err)
	}
	_, err = tmpl.Expand(map[string]string{"userId": "1"})
	if err == nil {
		t.Fatal("Expand succeeded with unresolved placeholder, want error")
	}
	reqErr, ok := AsError(err)
	if !ok {
		t.Fatalf("error = %v, want *Error", err)
	}
	if reqErr.Code != CodeMissingParameter {
		t.Errorf("code = %s, want %s", reqErr.Code, CodeMissingParameter)
	}
	if len(reqErr.Params) != 1 || reqErr.Params[0] != "postId" {
		t.Errorf("params = %v, want [postId]", reqErr.Params)
	}
}

package googletranslate

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestClientTranslate(t *testing.T) {
	var query map[string]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		values := r.URL.Query()
		query = map[string]string{
			"client": values.Get("client"),
			"sl":     values.Get("sl"),
			"tl":     values.Get("tl"),
			"dt":     values.Get("dt"),
			"q":      values.Get("q"),
		}
		_, _ = w.Write([]byte(`[[["Bonjour le monde","Hello world",null,null,10]],null,"en"]`))
	}))
	defer server.Close()

	client := NewClient(WithBaseURL(server.URL))
	got, err := client.Translate(context.Background(), "Hello world", "", "fr")
	if err != nil {
		t.Fatalf("Translate returned error: %v", err)
	}
	if got != "Bonjour le monde" {
		t.Fatalf("unexpected translation %q", got)
	}
	want := map[string]string{"client": "gtx", "sl": "auto", "tl": "fr", "dt": "t", "q": "Hello world"}
	for key, value := range want {
		if query[key] != value {
			t.Fatalf("query %s = %q, want %q", key, query[key], value)
		}
	}
}

func TestClientTranslatePassesExplicitSource(t *testing.T) {
	var source string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		source = r.URL.Query().Get("sl")
		_, _ = w.Write([]byte(`[[["Hallo","Hello",null,null,1]]]`))
	}))
	defer server.Close()

	if _, err := NewClient(WithBaseURL(server.URL)).Translate(context.Background(), "Hello", "en", "de"); err != nil {
		t.Fatalf("Translate returned error: %v", err)
	}
	if source != "en" {
		t.Fatalf("expected sl=en, got %q", source)
	}
}

func TestClientTranslateHTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	}))
	defer server.Close()

	_, err := NewClient(WithBaseURL(server.URL)).Translate(context.Background(), "Hello", "", "de")
	var statusErr *StatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("expected StatusError, got %v", err)
	}
	if statusErr.StatusCode != http.StatusTooManyRequests || statusErr.Body != "quota exceeded" {
		t.Fatalf("unexpected status error: %+v", statusErr)
	}
}

func TestClientTranslateTimeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer server.Close()

	client := NewClient(WithBaseURL(server.URL), WithTimeout(50*time.Millisecond))
	if _, err := client.Translate(context.Background(), "Hello", "", "de"); err == nil {
		t.Fatal("expected timeout error")
	}
}

func TestClientTranslateRejectsEmptyInput(t *testing.T) {
	client := NewClient()
	if _, err := client.Translate(context.Background(), "  ", "", "de"); err == nil {
		t.Fatal("expected error for blank text")
	}
	if _, err := client.Translate(context.Background(), "Hello", "", ""); err == nil {
		t.Fatal("expected error for missing target")
	}
}

func TestParseResponse(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		want    string
		wantErr bool
	}{
		{name: "single segment", body: `[[["Hola","Hello",null,null,1]],null,"en"]`, want: "Hola"},
		{name: "multiple segments", body: `[[["Hola. ","Hello. ",null,null,1],["Adiós","Bye",null,null,1]],null,"en"]`, want: "Hola. Adiós"},
		{name: "skips non-string segment", body: `[[[null,"x"],["ok","y"]]]`, want: "ok"},
		{name: "not json", body: `<html>`, wantErr: true},
		{name: "empty array", body: `[]`, wantErr: true},
		{name: "no segments", body: `[null]`, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseResponse([]byte(tt.body))
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %q", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseResponse returned error: %v", err)
			}
			if got != tt.want {
				t.Fatalf("got %q want %q", got, tt.want)
			}
		})
	}
}

package doi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"
)

func newTestValidator(handler http.HandlerFunc) (*Validator, *httptest.Server) {
	srv := httptest.NewServer(handler)
	v := NewValidator(2 * time.Second)
	v.BaseURL = srv.URL
	return v, srv
}

func TestValidateKnownDOI(t *testing.T) {
	v, srv := newTestValidator(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasPrefix(r.URL.Path, "/works/") {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		w.Write([]byte(`{"message":{"title":["Gravitational Waves"],"author":[{"given":"B.","family":"Abbott"}],"publisher":"APS"}}`))
	})
	defer srv.Close()

	res := v.Validate(context.Background(), "10.1103/PhysRevLett.116.061102")
	if !res.Valid {
		t.Fatalf("Valid = false, want true (error: %s)", res.Error)
	}
	if res.Title == nil || *res.Title != "Gravitational Waves" {
		t.Errorf("Title = %v, want Gravitational Waves", res.Title)
	}
	if len(res.Authors) != 1 || res.Authors[0] != "B. Abbott" {
		t.Errorf("Authors = %v, want [B. Abbott]", res.Authors)
	}
	if res.Publisher == nil || *res.Publisher != "APS" {
		t.Errorf("Publisher = %v, want APS", res.Publisher)
	}
}

func TestValidateNotFound(t *testing.T) {
	v, srv := newTestValidator(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	defer srv.Close()

	res := v.Validate(context.Background(), "10.9999/does-not-exist")
	if res.Valid {
		t.Error("Valid = true for 404, want false")
	}
	if res.Error == "" {
		t.Error("expected an error description")
	}
}

func TestValidateCachesResults(t *testing.T) {
	var hits int32
	v, srv := newTestValidator(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		w.Write([]byte(`{"message":{"title":["Cached"]}}`))
	})
	defer srv.Close()

	v.Validate(context.Background(), "10.1234/cached")
	v.Validate(context.Background(), "10.1234/cached")

	if got := atomic.LoadInt32(&hits); got != 1 {
		t.Errorf("upstream hit %d times, want 1", got)
	}
}

func TestValidateNetworkFailureIsInvalid(t *testing.T) {
	v := NewValidator(200 * time.Millisecond)
	v.BaseURL = "http://127.0.0.1:1"

	res := v.Validate(context.Background(), "10.1234/unreachable")
	if res.Valid {
		t.Error("Valid = true on network failure, want false")
	}
}

func TestExtractAndValidate(t *testing.T) {
	v, srv := newTestValidator(func(w http.ResponseWriter, r *http.Request) {
		if strings.Contains(r.URL.Path, "10.1000/bad") {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Write([]byte(`{"message":{}}`))
	})
	defer srv.Close()

	text := "first 10.1000/bad then 10.2000/good in the body"

	got := v.ExtractAndValidate(context.Background(), text, true)
	if got == nil || *got != "10.2000/good" {
		t.Errorf("ExtractAndValidate = %v, want 10.2000/good", got)
	}

	// Without validation the first candidate wins.
	got = v.ExtractAndValidate(context.Background(), text, false)
	if got == nil || *got != "10.1000/bad" {
		t.Errorf("ExtractAndValidate(validate=false) = %v, want 10.1000/bad", got)
	}

	if got := v.ExtractAndValidate(context.Background(), "no identifiers", true); got != nil {
		t.Errorf("ExtractAndValidate on plain text = %q, want nil", *got)
	}
}

func TestExtractAndValidateFallsBackWhenAllInvalid(t *testing.T) {
	v, srv := newTestValidator(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})
	defer srv.Close()

	got := v.ExtractAndValidate(context.Background(), "see 10.1000/offline here", true)
	if got == nil || *got != "10.1000/offline" {
		t.Errorf("ExtractAndValidate during outage = %v, want lexical candidate", got)
	}
}

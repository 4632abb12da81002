package listsync

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
)

func TestHTTPFetcher_FetchPage_SuccessAndQuery(t *testing.T) {
	t.Parallel()

	var gotPath string
	var gotQuery url.Values
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.Query()
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"data": {
			"items": [{"id": "a1", "firstName": "Juan", "lastName": "Pérez", "fullName": "Juan Pérez", "dni": "12345678", "age": 50, "usdAnnualFee": 15}],
			"page": 2, "limit": 5, "totalItems": 11, "hasPrev": true, "hasNext": true
		}}`))
	}))
	t.Cleanup(srv.Close)

	f := &HTTPFetcher{BaseURL: srv.URL + "/"}
	got, err := f.FetchPage(context.Background(), 2, 5, "  123  ")
	if err != nil {
		t.Fatalf("FetchPage: %v", err)
	}

	if gotPath != "/affiliates" {
		t.Errorf("path=%q, want /affiliates", gotPath)
	}
	if p := gotQuery.Get("page"); p != "2" {
		t.Errorf("page=%q, want 2", p)
	}
	if l := gotQuery.Get("limit"); l != "5" {
		t.Errorf("limit=%q, want 5", l)
	}
	if d := gotQuery.Get("filterByDni"); d != "123" {
		t.Errorf("filterByDni=%q, want trimmed 123", d)
	}

	if got.Page != 2 || got.Limit != 5 || got.TotalItems != 11 || !got.HasPrev || !got.HasNext {
		t.Fatalf("page meta=%+v", got)
	}
	if len(got.Items) != 1 || got.Items[0].FullName != "Juan Pérez" || got.Items[0].USDAnnualFee != 15 {
		t.Fatalf("items=%+v", got.Items)
	}
}

func TestHTTPFetcher_FetchPage_OmitsBlankFilter(t *testing.T) {
	t.Parallel()

	var gotQuery url.Values
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		w.Write([]byte(`{"data": {"items": [], "page": 1, "limit": 10, "totalItems": 0, "hasPrev": false, "hasNext": false}}`))
	}))
	t.Cleanup(srv.Close)

	f := &HTTPFetcher{BaseURL: srv.URL}
	if _, err := f.FetchPage(context.Background(), 1, 10, "   "); err != nil {
		t.Fatalf("FetchPage: %v", err)
	}

	if _, present := gotQuery["filterByDni"]; present {
		t.Fatalf("filterByDni sent for blank filter: %v", gotQuery)
	}
}

func TestHTTPFetcher_FetchPage_ErrorBodies(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		status  int
		body    string
		wantErr string
	}{
		{
			name:    "string message",
			status:  http.StatusConflict,
			body:    `{"message": "DNI already exists", "error": "Conflict", "statusCode": 409}`,
			wantErr: "request failed with status 409: DNI already exists",
		},
		{
			name:    "array message",
			status:  http.StatusBadRequest,
			body:    `{"message": ["firstName should not be empty", "dni should not be empty"], "error": "Bad Request", "statusCode": 400}`,
			wantErr: "request failed with status 400: firstName should not be empty; dni should not be empty",
		},
		{
			name:    "non-json body",
			status:  http.StatusBadGateway,
			body:    "upstream exploded",
			wantErr: "request failed with status 502",
		},
		{
			name:    "empty array message",
			status:  http.StatusBadRequest,
			body:    `{"message": []}`,
			wantErr: "request failed with status 400",
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				w.Write([]byte(tc.body))
			}))
			t.Cleanup(srv.Close)

			f := &HTTPFetcher{BaseURL: srv.URL}
			_, err := f.FetchPage(context.Background(), 1, 10, "")
			if err == nil {
				t.Fatal("expected error")
			}
			if err.Error() != tc.wantErr {
				t.Fatalf("err=%q, want %q", err.Error(), tc.wantErr)
			}
		})
	}
}

func TestHTTPFetcher_FetchPage_ContextCancel(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	t.Cleanup(srv.Close)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	f := &HTTPFetcher{BaseURL: srv.URL}
	_, err := f.FetchPage(ctx, 1, 10, "")
	if err == nil || !strings.Contains(err.Error(), "context canceled") {
		t.Fatalf("err=%v, want context canceled", err)
	}
}

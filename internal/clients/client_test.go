package clients

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"go.trai.ch/zerr"
)

func TestParseBaseURL_DefaultsAndNormalizes(t *testing.T) {
	u, err := parseBaseURL("")
	if err != nil {
		t.Fatalf("parseBaseURL returned error: %v", err)
	}
	if u.Scheme != "http" {
		t.Fatalf("scheme = %q, want http", u.Scheme)
	}
	if u.Host != defaultBaseURL {
		t.Fatalf("host = %q, want %q", u.Host, defaultBaseURL)
	}

	u, err = parseBaseURL("https://crm.example.com:8443/app?x=1#frag")
	if err != nil {
		t.Fatalf("parseBaseURL returned error: %v", err)
	}
	if u.Path != "" || u.RawQuery != "" || u.Fragment != "" || u.Scheme != "https" {
		t.Fatalf("url not normalized: %q", u.String())
	}

	if _, err := parseBaseURL("http://"); err == nil {
		t.Fatalf("parseBaseURL accepted a URL without host")
	}
}

func TestClient_ListClientsEncodesQuery(t *testing.T) {
	t.Parallel()

	var gotQuery url.Values
	var gotAuth, gotUserAgent string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		gotAuth = r.Header.Get("Authorization")
		gotUserAgent = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":[{"id":"7","name":"Ada","status":"active"}],"total":41,"page":2,"per_page":20}`))
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL, WithToken(" secret "))
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	t.Cleanup(cancel)

	page, err := c.ListClients(ctx, ListQuery{
		Query:   "ada",
		Page:    2,
		PerPage: 20,
		Sort:    "name",
		Order:   "DESC",
		Filters: map[string]string{"status": "active", "page": "99", "owner": ""},
	})
	if err != nil {
		t.Fatalf("ListClients returned error: %v", err)
	}
	if len(page.Data) != 1 || page.Data[0].ID != "7" {
		t.Fatalf("ListClients data = %#v, want one row id=7", page.Data)
	}
	if page.TotalPages != 3 || !page.HasNext || !page.HasPrevious {
		t.Fatalf("paging = %+v, want 3 pages with next and previous", page)
	}

	if gotQuery.Get("q") != "ada" ||
		gotQuery.Get("page") != "2" ||
		gotQuery.Get("per_page") != "20" ||
		gotQuery.Get("sort") != "name" ||
		gotQuery.Get("order") != "desc" ||
		gotQuery.Get("status") != "active" {
		t.Fatalf("query = %v, want params encoded", gotQuery)
	}
	if gotQuery.Has("owner") {
		t.Fatalf("query = %v, empty filters should be dropped", gotQuery)
	}
	if gotAuth != "Bearer secret" {
		t.Fatalf("Authorization = %q, want bearer token", gotAuth)
	}
	if !strings.HasPrefix(gotUserAgent, "clientdesk/") {
		t.Fatalf("User-Agent = %q, want clientdesk/*", gotUserAgent)
	}
}

func TestClient_GetClient(t *testing.T) {
	t.Parallel()

	created := time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/clients/42":
			_ = json.NewEncoder(w).Encode(Record{
				Summary:   Summary{ID: "42", Name: "Grace", Company: "Navy"},
				Tags:      []string{"vip"},
				CreatedAt: created,
			})
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}

	rec, err := c.GetClient(context.Background(), "42")
	if err != nil {
		t.Fatalf("GetClient returned error: %v", err)
	}
	if rec.Name != "Grace" || rec.Company != "Navy" || !rec.CreatedAt.Equal(created) {
		t.Fatalf("GetClient = %#v, want Grace at Navy", rec)
	}

	_, err = c.GetClient(context.Background(), "missing")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("GetClient error = %v, want ErrNotFound", err)
	}
	var zerrErr *zerr.Error
	if !errors.As(err, &zerrErr) || zerrErr.Metadata()["id"] != "missing" {
		t.Fatalf("GetClient error metadata missing id: %v", err)
	}

	if _, err := c.GetClient(context.Background(), "  "); !errors.Is(err, ErrMissingID) {
		t.Fatalf("GetClient(blank) error = %v, want ErrMissingID", err)
	}
}

func TestClient_HTTPErrorAndDecodeError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/clients":
			http.Error(w, "nope", http.StatusInternalServerError)
		case "/api/clients/1":
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte("{not-json"))
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}

	_, err = c.ListClients(context.Background(), ListQuery{})
	if err == nil || !strings.Contains(err.Error(), "returned status 500") {
		t.Fatalf("ListClients error = %v, want status 500 error", err)
	}
	if !errors.Is(err, ErrStatus) || StatusCode(err) != http.StatusInternalServerError {
		t.Fatalf("ListClients error = %v, want ErrStatus with code 500", err)
	}

	_, err = c.GetClient(context.Background(), "1")
	if err == nil || !strings.Contains(err.Error(), "decode response") || !errors.Is(err, ErrDecode) {
		t.Fatalf("GetClient error = %v, want decode response error", err)
	}
	var decodeErr *zerr.Error
	if !errors.As(err, &decodeErr) {
		t.Fatalf("decode error %T is not a zerr error", err)
	}
	if reqURL, _ := decodeErr.Metadata()["url"].(string); !strings.HasSuffix(reqURL, "/api/clients/1") {
		t.Fatalf("decode error metadata = %v, want request url", err)
	}
}

func TestClient_CoalescesIdenticalRequests(t *testing.T) {
	t.Parallel()

	var hits atomic.Int32
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		<-release
		_, _ = w.Write([]byte(`{"data":[],"total":0,"page":1,"per_page":20}`))
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}

	const callers = 4
	var wg sync.WaitGroup
	errs := make(chan error, callers)
	for range callers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := c.ListClients(context.Background(), ListQuery{Page: 1, PerPage: 20})
			errs <- err
		}()
	}

	// Give every caller time to join the in-flight request.
	deadline := time.Now().Add(2 * time.Second)
	for hits.Load() == 0 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()
	close(errs)

	for err := range errs {
		if err != nil {
			t.Fatalf("ListClients returned error: %v", err)
		}
	}
	if got := hits.Load(); got != 1 {
		t.Fatalf("server hits = %d, want 1", got)
	}
}

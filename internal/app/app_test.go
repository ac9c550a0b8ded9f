package app

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/clientdesk/clientdesk/internal/clients"
	"github.com/clientdesk/clientdesk/internal/config"
	"github.com/clientdesk/clientdesk/internal/listdetail"
	"github.com/clientdesk/clientdesk/internal/prefs"
)

func TestOpenLogger_WritesJSONLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "clientdesk.log")

	logger, closeLog, err := OpenLogger(path, "DEBUG")
	if err != nil {
		t.Fatalf("OpenLogger returned error: %v", err)
	}
	logger.Debug().Str("k", "v").Msg("hello")
	if err := closeLog(); err != nil {
		t.Fatalf("close: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	var line map[string]any
	if err := json.Unmarshal([]byte(strings.TrimSpace(string(data))), &line); err != nil {
		t.Fatalf("log line is not JSON: %v (%q)", err, data)
	}
	if line["message"] != "hello" || line["k"] != "v" || line["level"] != "debug" {
		t.Fatalf("log line = %v, want debug hello k=v", line)
	}
}

func TestOpenLogger_BadLevel(t *testing.T) {
	if _, _, err := OpenLogger(filepath.Join(t.TempDir(), "x.log"), "loud"); err == nil {
		t.Fatalf("OpenLogger returned nil error for unknown level")
	}
}

func TestNewClientContext_ServesClientsFromAPI(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/clients":
			gotQuery = r.URL.RawQuery
			_ = json.NewEncoder(w).Encode(map[string]any{
				"data":     []clients.Summary{{ID: "7", Name: "Ada"}},
				"total":    1,
				"page":     1,
				"per_page": 50,
			})
		case "/api/clients/7":
			_ = json.NewEncoder(w).Encode(clients.Record{Summary: clients.Summary{ID: "7", Name: "Ada"}})
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)

	cfg := config.Default()
	cfg.APIURL = srv.URL

	client, err := NewClient(cfg, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	saved := prefs.Prefs{PerPage: 50, SortField: "name", SortDir: "desc"}
	lc := NewClientContext(cfg, client, saved.Apply(cfg.ListDefaults()), nil)
	t.Cleanup(lc.Close)
	lc.Mount(context.Background())

	snap := lc.Snapshot()
	if snap.ListError != "" {
		t.Fatalf("ListError = %q", snap.ListError)
	}
	if snap.Params.PerPage != 50 || snap.Params.SortField != "name" || snap.Params.SortDirection != listdetail.SortDesc {
		t.Fatalf("params = %+v, want prefs applied", snap.Params)
	}
	for _, want := range []string{"per_page=50", "sort=name", "order=desc"} {
		if !strings.Contains(gotQuery, want) {
			t.Fatalf("query %q missing %q", gotQuery, want)
		}
	}
	if len(snap.Items()) != 1 || snap.Items()[0].Name != "Ada" {
		t.Fatalf("items = %+v, want Ada", snap.Items())
	}

	lc.SelectItem("7")
	snap = lc.Snapshot()
	if !snap.HasDetail() || snap.Detail.Title != "Ada" {
		t.Fatalf("detail = %+v, want Ada", snap.Detail)
	}
}

package mcp

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/vijay-prabhu/listgrid/internal/config"
	"github.com/vijay-prabhu/listgrid/internal/database"
	"github.com/vijay-prabhu/listgrid/internal/listing"
)

var now = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func setupServer(t *testing.T) *Server {
	t.Helper()

	db, err := database.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	items := []listing.Item{
		{ID: "hot", Title: "Rooftop cinema", Category: "film", EngagementCount: 600, IsPromoted: true,
			PromotionLevel: listing.PromotionPriority, CreatedAt: now.Add(-24 * time.Hour)},
		{ID: "quiet", Title: "Pottery class", Category: "craft", EngagementCount: 5, CreatedAt: now.Add(-30 * 24 * time.Hour)},
		{ID: "mid", Title: "Harbour walk", Category: "tour", EngagementCount: 120, CreatedAt: now.Add(-5 * 24 * time.Hour)},
	}
	if _, err := db.ImportListings(context.Background(), items); err != nil {
		t.Fatalf("failed to seed listings: %v", err)
	}

	s := New(db, config.Default(), "test")
	s.now = func() time.Time { return now }
	return s
}

// call sends requests through Serve and returns the decoded responses
func call(t *testing.T, s *Server, requests ...string) []jsonRPCResponse {
	t.Helper()

	var out bytes.Buffer
	in := strings.NewReader(strings.Join(requests, "\n") + "\n")
	if err := s.Serve(context.Background(), in, &out); err != nil {
		t.Fatalf("Serve() error: %v", err)
	}

	var responses []jsonRPCResponse
	scanner := bufio.NewScanner(&out)
	scanner.Buffer(make([]byte, 1024*1024), 1024*1024)
	for scanner.Scan() {
		var resp jsonRPCResponse
		if err := json.Unmarshal(scanner.Bytes(), &resp); err != nil {
			t.Fatalf("invalid response %q: %v", scanner.Text(), err)
		}
		responses = append(responses, resp)
	}
	return responses
}

// toolText extracts the text content of a tools/call result
func toolText(t *testing.T, resp jsonRPCResponse) (string, bool) {
	t.Helper()

	data, err := json.Marshal(resp.Result)
	if err != nil {
		t.Fatalf("failed to re-encode result: %v", err)
	}
	var result callToolResult
	if err := json.Unmarshal(data, &result); err != nil {
		t.Fatalf("unexpected tool result %s: %v", data, err)
	}
	if len(result.Content) != 1 {
		t.Fatalf("expected one content item, got %d", len(result.Content))
	}
	return result.Content[0].Text, result.IsError
}

func TestServe_Protocol(t *testing.T) {
	s := setupServer(t)

	responses := call(t, s,
		`{"jsonrpc":"2.0","id":1,"method":"initialize","params":{}}`,
		`{"jsonrpc":"2.0","method":"initialized"}`,
		`{"jsonrpc":"2.0","id":2,"method":"tools/list"}`,
		`{"jsonrpc":"2.0","id":3,"method":"bogus"}`,
		`not json`,
	)

	if len(responses) != 4 {
		t.Fatalf("expected 4 responses (notification has none), got %d", len(responses))
	}

	if responses[0].Error != nil {
		t.Errorf("initialize failed: %+v", responses[0].Error)
	}

	data, _ := json.Marshal(responses[1].Result)
	for _, name := range []string{"arrange_listings", "explain_listing", "list_listings"} {
		if !strings.Contains(string(data), name) {
			t.Errorf("tools/list missing %s", name)
		}
	}

	if responses[2].Error == nil || responses[2].Error.Code != -32601 {
		t.Errorf("expected method not found, got %+v", responses[2].Error)
	}
	if responses[3].Error == nil || responses[3].Error.Code != -32700 {
		t.Errorf("expected parse error, got %+v", responses[3].Error)
	}
}

func TestArrangeListings(t *testing.T) {
	s := setupServer(t)

	tests := []struct {
		name      string
		args      string
		layout    string
		firstID   string
		count     int
		wantError bool
	}{
		{"default grid", `{"min_tiled_items":0}`, "grid", "hot", 3, false},
		{"falls back to a list below the tiling minimum", `{"min_tiled_items":5}`, "list", "hot", 3, false},
		{"category filter", `{"category":"tour","min_tiled_items":0}`, "grid", "mid", 1, false},
		{"chronological", `{"sort_mode":"chronological"}`, "list", "quiet", 3, false},
		{"unknown policy", `{"policy":"random"}`, "", "", 0, true},
	}

	for i, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := `{"jsonrpc":"2.0","id":` + strconv.Itoa(i+1) +
				`,"method":"tools/call","params":{"name":"arrange_listings","arguments":` + tt.args + `}}`
			responses := call(t, s, req)
			if len(responses) != 1 {
				t.Fatalf("expected 1 response, got %d", len(responses))
			}

			text, isError := toolText(t, responses[0])
			if isError != tt.wantError {
				t.Fatalf("isError = %v, want %v (%s)", isError, tt.wantError, text)
			}
			if tt.wantError {
				return
			}

			var result struct {
				Layout string `json:"layout"`
				Tiles  []struct {
					Item listing.Item `json:"item"`
				} `json:"tiles"`
				Items []struct {
					Item listing.Item `json:"item"`
				} `json:"items"`
			}
			if err := json.Unmarshal([]byte(text), &result); err != nil {
				t.Fatalf("invalid arrange result: %v", err)
			}

			if result.Layout != tt.layout {
				t.Errorf("layout = %s, want %s", result.Layout, tt.layout)
			}
			var ids []string
			for _, tile := range result.Tiles {
				ids = append(ids, tile.Item.ID)
			}
			for _, e := range result.Items {
				ids = append(ids, e.Item.ID)
			}
			if len(ids) != tt.count || ids[0] != tt.firstID {
				t.Errorf("ids = %v, want %d starting with %s", ids, tt.count, tt.firstID)
			}
		})
	}
}

func TestExplainListing(t *testing.T) {
	s := setupServer(t)

	responses := call(t, s,
		`{"jsonrpc":"2.0","id":1,"method":"tools/call","params":{"name":"explain_listing","arguments":{"id":"hot"}}}`,
		`{"jsonrpc":"2.0","id":2,"method":"tools/call","params":{"name":"explain_listing","arguments":{"id":"missing"}}}`,
	)

	text, isError := toolText(t, responses[0])
	if isError {
		t.Fatalf("explain_listing failed: %s", text)
	}
	var report struct {
		Policies []struct {
			Policy string  `json:"policy"`
			Score  float64 `json:"score"`
			Size   string  `json:"size"`
		} `json:"policies"`
	}
	if err := json.Unmarshal([]byte(text), &report); err != nil {
		t.Fatalf("invalid report: %v", err)
	}
	if len(report.Policies) != 2 || report.Policies[0].Score != 105 || report.Policies[1].Score != 820 {
		t.Errorf("unexpected report: %+v", report)
	}

	text, isError = toolText(t, responses[1])
	if !isError || !strings.Contains(text, "listing not found") {
		t.Errorf("expected not found error, got %q", text)
	}
}

func TestListListings(t *testing.T) {
	s := setupServer(t)

	responses := call(t, s,
		`{"jsonrpc":"2.0","id":1,"method":"tools/call","params":{"name":"list_listings","arguments":{"since_days":7}}}`,
	)

	text, isError := toolText(t, responses[0])
	if isError {
		t.Fatalf("list_listings failed: %s", text)
	}
	var items []listing.Item
	if err := json.Unmarshal([]byte(text), &items); err != nil {
		t.Fatalf("invalid listings: %v", err)
	}
	if len(items) != 2 || items[0].ID != "mid" || items[1].ID != "hot" {
		t.Errorf("unexpected listings: %+v", items)
	}
}

func TestReadResources(t *testing.T) {
	s := setupServer(t)

	responses := call(t, s,
		`{"jsonrpc":"2.0","id":1,"method":"resources/list"}`,
		`{"jsonrpc":"2.0","id":2,"method":"resources/read","params":{"uri":"listgrid://template"}}`,
		`{"jsonrpc":"2.0","id":3,"method":"resources/read","params":{"uri":"listgrid://policies"}}`,
		`{"jsonrpc":"2.0","id":4,"method":"resources/read","params":{"uri":"listgrid://nope"}}`,
	)
	if len(responses) != 4 {
		t.Fatalf("expected 4 responses, got %d", len(responses))
	}

	contents := func(resp jsonRPCResponse) string {
		data, _ := json.Marshal(resp.Result)
		var r readResourceResult
		if err := json.Unmarshal(data, &r); err != nil || len(r.Contents) != 1 {
			t.Fatalf("unexpected resource result: %s", data)
		}
		return r.Contents[0].Text
	}

	var tmpl templateInfo
	if err := json.Unmarshal([]byte(contents(responses[1])), &tmpl); err != nil {
		t.Fatalf("invalid template resource: %v", err)
	}
	if tmpl.Columns != 4 || tmpl.Rows != 5 || len(tmpl.Slots) != 10 {
		t.Errorf("template = %d cols, %d rows, %d slots", tmpl.Columns, tmpl.Rows, len(tmpl.Slots))
	}

	policies := contents(responses[2])
	for _, want := range []string{`"active": "badge-weighted"`, "engagement-weighted", "Editor's Pick"} {
		if !strings.Contains(policies, want) {
			t.Errorf("policies resource missing %q:\n%s", want, policies)
		}
	}

	if responses[3].Error == nil {
		t.Error("expected error for unknown resource")
	}
}

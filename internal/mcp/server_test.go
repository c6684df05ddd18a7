package mcp

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	mcpgo "github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tactyo/tactyo/internal/api"
	"github.com/tactyo/tactyo/internal/state"
)

// newTestServer backs the MCP server with an httptest API stub.
func newTestServer(t *testing.T, routes map[string]string) *Server {
	t.Helper()
	mux := http.NewServeMux()
	for pattern, body := range routes {
		mux.HandleFunc(pattern, func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(body))
		})
	}
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return NewServer(api.NewClient(srv.URL, state.NewMemoryStore(), nil))
}

func callToolReq(name string, args map[string]any) mcpgo.CallToolRequest {
	return mcpgo.CallToolRequest{
		Params: mcpgo.CallToolParams{
			Name:      name,
			Arguments: args,
		},
	}
}

func resultText(t *testing.T, result *mcpgo.CallToolResult) string {
	t.Helper()
	var b strings.Builder
	for _, c := range result.Content {
		tc, ok := c.(mcpgo.TextContent)
		if ok {
			b.WriteString(tc.Text)
		}
	}
	return b.String()
}

func TestMCPServerRegistersTools(t *testing.T) {
	srv := newTestServer(t, nil)
	require.NotNil(t, srv.MCPServer())
}

func TestHandleListProjects(t *testing.T) {
	srv := newTestServer(t, map[string]string{
		"GET /api/projects": `[{"id":1,"owner_login":"acme","project_number":3,"name":"Core"}]`,
	})

	result, err := srv.handleListProjects(context.Background(), callToolReq("tactyo_list_projects", nil))
	require.NoError(t, err)
	assert.False(t, result.IsError)
	assert.Contains(t, resultText(t, result), "Core")
}

func TestHandleListProjectsError(t *testing.T) {
	srv := newTestServer(t, nil) // no routes: 404 from the mux

	result, err := srv.handleListProjects(context.Background(), callToolReq("tactyo_list_projects", nil))
	require.NoError(t, err, "handler should not return Go error; should wrap in result")
	assert.True(t, result.IsError)
}

func TestHandleListItemsClassifies(t *testing.T) {
	srv := newTestServer(t, map[string]string{
		"GET /api/projects/current/items": `[
			{"id":1,"item_node_id":"n1","title":"Big initiative","field_values":{"Type":"Epic","Epic":"Nebula"}},
			{"id":2,"item_node_id":"n2","title":"Fix login","content_type":"Issue","status":"In Progress"}
		]`,
	})

	result, err := srv.handleListItems(context.Background(), callToolReq("tactyo_list_items", nil))
	require.NoError(t, err)
	assert.False(t, result.IsError)

	text := resultText(t, result)
	assert.Contains(t, text, "Épico")
	assert.Contains(t, text, "Nebula")
	assert.Contains(t, text, "Fix login")
}

func TestHandleBoardOrdersColumns(t *testing.T) {
	srv := newTestServer(t, map[string]string{
		"GET /api/projects/current":       `{"id":1,"owner_login":"acme","project_number":3,"status_columns":["Backlog","Done"]}`,
		"GET /api/projects/current/items": `[{"id":1,"item_node_id":"n1","title":"QA pass","status":"QA"}]`,
	})

	result, err := srv.handleBoard(context.Background(), callToolReq("tactyo_board", nil))
	require.NoError(t, err)
	assert.False(t, result.IsError)

	text := resultText(t, result)
	assert.Contains(t, text, "Sem etapa")
	idxQA := strings.Index(text, `"title":"QA"`)
	idxDone := strings.Index(text, `"title":"Done"`)
	require.GreaterOrEqual(t, idxQA, 0)
	require.GreaterOrEqual(t, idxDone, 0)
	assert.Less(t, idxQA, idxDone, "observed column comes before Done")
}

func TestHandleHierarchyCounts(t *testing.T) {
	srv := newTestServer(t, map[string]string{
		"GET /api/projects/current/hierarchy": `{
			"epics":[{"epic_option_id":"o1","epic_name":"Nebula","items":[
				{"id":1,"item_node_id":"n1","title":"Story A","item_type":"story","children":[
					{"id":2,"item_node_id":"n2","title":"Task B","item_type":"task"}
				]}
			]}],
			"orphans":[{"id":3,"item_node_id":"n3","title":"Loose end"}]
		}`,
	})

	result, err := srv.handleHierarchy(context.Background(), callToolReq("tactyo_hierarchy", nil))
	require.NoError(t, err)
	assert.False(t, result.IsError)

	text := resultText(t, result)
	assert.Contains(t, text, `"story":1`)
	assert.Contains(t, text, `"task":1`)
	assert.Contains(t, text, `"undefined":1`)
}

func TestHandleListRequestsPassesStatusFilter(t *testing.T) {
	var gotQuery string
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/requests", func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		_, _ = w.Write([]byte(`[{"id":"cr1","title":"Add SSO","priority":"high","status":"pending"}]`))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	s := NewServer(api.NewClient(srv.URL, state.NewMemoryStore(), nil))

	result, err := s.handleListRequests(context.Background(), callToolReq("tactyo_list_requests", map[string]any{"status": "pending"}))
	require.NoError(t, err)
	assert.False(t, result.IsError)
	assert.Equal(t, "status=pending", gotQuery)
	assert.Contains(t, resultText(t, result), "Add SSO")
}

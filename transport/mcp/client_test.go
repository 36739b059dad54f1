package mcp

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/Jarrettsmao/Hot-Potato-Online/game/room"
	"github.com/Jarrettsmao/Hot-Potato-Online/game/service"
)

func TestNewClient(t *testing.T) {
	baseURL := "http://localhost:8080"
	client := NewClient(baseURL)

	if client == nil {
		t.Fatal("Expected client to be created")
	}
	if client.baseURL != baseURL {
		t.Errorf("Expected baseURL %s, got %s", baseURL, client.baseURL)
	}
	if client.httpClient == nil {
		t.Error("Expected HTTP client to be initialized")
	}
	if client.mcpServer == nil {
		t.Error("Expected MCP server to be initialized")
	}
}

func textContent(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	if result == nil || len(result.Content) == 0 {
		t.Fatal("Expected result with content")
	}
	text, ok := result.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatal("Expected text content in result")
	}
	return text.Text
}

func toolRequest(name string, args map[string]interface{}) mcp.CallToolRequest {
	if args == nil {
		args = map[string]interface{}{}
	}
	return mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name:      name,
			Arguments: args,
		},
	}
}

func TestClient_apiCall(t *testing.T) {
	t.Run("decodes a response", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
		}))
		defer srv.Close()

		client := NewClient(srv.URL)
		var response map[string]string
		if err := client.apiCall("/api/health", &response); err != nil {
			t.Fatalf("apiCall failed: %v", err)
		}
		if response["status"] != "ok" {
			t.Errorf("Expected status ok, got %v", response["status"])
		}
	})

	t.Run("unreachable server", func(t *testing.T) {
		client := NewClient("http://invalid-url-that-does-not-exist:9999")
		if err := client.apiCall("/api/health", nil); err == nil {
			t.Error("Expected error for unreachable server")
		}
	})

	t.Run("surfaces the API error text", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
			json.NewEncoder(w).Encode(map[string]string{"error": "room not found"})
		}))
		defer srv.Close()

		client := NewClient(srv.URL)
		err := client.apiCall("/api/rooms/NOPE", nil)
		if err == nil || err.Error() != "room not found" {
			t.Errorf("Expected 'room not found', got %v", err)
		}
	})
}

func TestClient_handleListRooms(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/rooms" {
			t.Errorf("Expected GET /api/rooms, got %s %s", r.Method, r.URL.Path)
		}
		resp := map[string]interface{}{
			"count": 1,
			"rooms": []room.Snapshot{{
				RoomID:     "ABC123",
				Phase:      room.PhaseLobby,
				Players:    []room.Player{{ID: "p1", Name: "Ann", Connected: true, IsHost: true}},
				MaxPlayers: 4,
				HostID:     "p1",
			}},
		}
		json.NewEncoder(w).Encode(resp)
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	result, err := client.handleListRooms(context.Background(), toolRequest("list_rooms", nil))
	if err != nil {
		t.Fatalf("handleListRooms failed: %v", err)
	}

	text := textContent(t, result)
	if !strings.Contains(text, "Active Rooms (1)") {
		t.Errorf("Expected room count in output, got: %s", text)
	}
	if !strings.Contains(text, "ABC123 (lobby, 1/4 players)") {
		t.Errorf("Expected room line in output, got: %s", text)
	}
}

func TestClient_handleGetRoom(t *testing.T) {
	t.Run("renders the snapshot", func(t *testing.T) {
		holder := "p2"
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/api/rooms/ABC123" {
				t.Errorf("Expected GET /api/rooms/ABC123, got %s %s", r.Method, r.URL.Path)
			}
			json.NewEncoder(w).Encode(room.Snapshot{
				RoomID: "ABC123",
				Phase:  room.PhasePlaying,
				Players: []room.Player{
					{ID: "p1", Name: "Ann", Connected: true, IsHost: true},
					{ID: "p2", Name: "Bo", Connected: false},
				},
				PotatoHolderID: &holder,
				MaxPlayers:     4,
				HostID:         "p1",
			})
		}))
		defer srv.Close()

		client := NewClient(srv.URL)
		result, err := client.handleGetRoom(context.Background(),
			toolRequest("get_room", map[string]interface{}{"room_id": "ABC123"}))
		if err != nil {
			t.Fatalf("handleGetRoom failed: %v", err)
		}

		text := textContent(t, result)
		for _, field := range []string{
			"Room ABC123",
			"Phase: playing",
			"Ann [host]",
			"Bo [potato] [disconnected]",
		} {
			if !strings.Contains(text, field) {
				t.Errorf("Expected '%s' in output, got: %s", field, text)
			}
		}
	})

	t.Run("missing room_id", func(t *testing.T) {
		client := NewClient("http://localhost:8080")
		result, err := client.handleGetRoom(context.Background(), toolRequest("get_room", nil))
		if err != nil {
			t.Fatalf("handleGetRoom failed: %v", err)
		}
		if !result.IsError {
			t.Error("Expected error result for missing room_id")
		}
	})

	t.Run("unknown room", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
			json.NewEncoder(w).Encode(map[string]string{"error": "room not found"})
		}))
		defer srv.Close()

		client := NewClient(srv.URL)
		result, err := client.handleGetRoom(context.Background(),
			toolRequest("get_room", map[string]interface{}{"room_id": "NOPE"}))
		if err != nil {
			t.Fatalf("handleGetRoom failed: %v", err)
		}
		if !result.IsError {
			t.Error("Expected error result for unknown room")
		}
	})
}

func TestClient_handleServerStats(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/stats" {
			t.Errorf("Expected GET /api/stats, got %s %s", r.Method, r.URL.Path)
		}
		json.NewEncoder(w).Encode(service.Stats{Rooms: 3, PlayingRooms: 1, Players: 7, Connections: 6})
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	result, err := client.handleServerStats(context.Background(), toolRequest("server_stats", nil))
	if err != nil {
		t.Fatalf("handleServerStats failed: %v", err)
	}

	text := textContent(t, result)
	if !strings.Contains(text, "Rooms: 3 (1 playing)") || !strings.Contains(text, "Players: 7") {
		t.Errorf("Unexpected stats output: %s", text)
	}
}

func TestClient_handleGameInstructions(t *testing.T) {
	client := NewClient("http://localhost:8080")
	result, err := client.handleGameInstructions(context.Background(), toolRequest("game_instructions", nil))
	if err != nil {
		t.Fatalf("handleGameInstructions failed: %v", err)
	}

	text := textContent(t, result)
	for _, field := range []string{"JOIN_ROOM", "PASS_POTATO", "GAME_ENDED"} {
		if !strings.Contains(text, field) {
			t.Errorf("Expected '%s' in instructions", field)
		}
	}
}

func TestFormatRoom(t *testing.T) {
	snap := &room.Snapshot{
		RoomID: "XYZ789",
		Phase:  room.PhaseLobby,
		Players: []room.Player{
			{ID: "p1", Name: "Ann", Connected: true, IsHost: true},
		},
		MaxPlayers: 4,
		HostID:     "p1",
	}

	result := formatRoom(snap)
	for _, field := range []string{"Room XYZ789", "Phase: lobby", "Players (1/4)", "Ann [host]"} {
		if !strings.Contains(result, field) {
			t.Errorf("Expected '%s' in formatted output, got: %s", field, result)
		}
	}
	if strings.Contains(result, "Round ends") {
		t.Error("Expected no deadline line without an end time")
	}
}

package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/Jarrettsmao/Hot-Potato-Online/game/room"
	"github.com/Jarrettsmao/Hot-Potato-Online/game/service"
)

// Client is a thin MCP client that proxies to the REST API. The exposed
// tools are read-only: an agent can watch rooms but cannot join, start,
// or pass — those stay WebSocket-only.
type Client struct {
	baseURL    string
	httpClient *http.Client
	mcpServer  *server.MCPServer
}

// NewClient creates a new MCP client that calls the REST API.
func NewClient(baseURL string) *Client {
	c := &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}

	c.initMCPServer()
	return c
}

// initMCPServer initializes the MCP server with all tools.
func (c *Client) initMCPServer() {
	c.mcpServer = server.NewMCPServer(
		"Hot Potato Online",
		"1.0.0",
		server.WithToolCapabilities(true),
		server.WithInstructions(`Hot Potato Online - MCP Interface

This is a thin client that proxies read-only requests to the REST API server.

GAME OVERVIEW:
Players join a named room over WebSocket. The host starts a round, the potato
is handed between players, and whoever holds it when the randomized deadline
expires loses the round.

AVAILABLE TOOLS:
- list_rooms: List all active rooms
- get_room: Get one room's full snapshot
- server_stats: Room/player/connection counts
- game_instructions: The game rules and wire protocol

These tools observe the server; they cannot mutate rooms. Joining and playing
happen over the WebSocket protocol described by game_instructions.`),
	)

	c.registerTools()
}

// registerTools registers all MCP tools.
func (c *Client) registerTools() {
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_rooms",
		Description: "List all active game rooms",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleListRooms)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "get_room",
		Description: "Get the full snapshot of a specific room",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"room_id": map[string]interface{}{
					"type":        "string",
					"description": "Room ID to retrieve",
				},
			},
			Required: []string{"room_id"},
		},
	}, c.handleGetRoom)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "server_stats",
		Description: "Get room, player and connection counts",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleServerStats)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "game_instructions",
		Description: "Get the game rules and the WebSocket wire protocol",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleGameInstructions)
}

// GetMCPServer returns the underlying MCP server for serving.
func (c *Client) GetMCPServer() *server.MCPServer {
	return c.mcpServer
}

// apiCall performs a GET against the REST API and decodes the response.
func (c *Client) apiCall(path string, result interface{}) error {
	req, err := http.NewRequest(http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var errResp map[string]string
		json.NewDecoder(resp.Body).Decode(&errResp)
		if msg, ok := errResp["error"]; ok {
			return fmt.Errorf("%s", msg)
		}
		return fmt.Errorf("API error: %d", resp.StatusCode)
	}

	if result != nil {
		return json.NewDecoder(resp.Body).Decode(result)
	}
	return nil
}

// Tool handlers

func (c *Client) handleListRooms(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var response struct {
		Count int             `json:"count"`
		Rooms []room.Snapshot `json:"rooms"`
	}

	if err := c.apiCall("/api/rooms", &response); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Active Rooms (%d):\n\n", response.Count)
	for _, snap := range response.Rooms {
		fmt.Fprintf(&b, "- %s (%s, %d/%d players)\n",
			snap.RoomID, snap.Phase, len(snap.Players), snap.MaxPlayers)
	}
	return mcp.NewToolResultText(b.String()), nil
}

func (c *Client) handleGetRoom(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, _ := request.Params.Arguments.(map[string]interface{})
	roomID, _ := args["room_id"].(string)
	if roomID == "" {
		return mcp.NewToolResultError("room_id is required"), nil
	}

	var snap room.Snapshot
	if err := c.apiCall("/api/rooms/"+roomID, &snap); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatRoom(&snap)), nil
}

func (c *Client) handleServerStats(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var stats service.Stats
	if err := c.apiCall("/api/stats", &stats); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("Rooms: %d (%d playing)\nPlayers: %d\nConnections: %d\n",
		stats.Rooms, stats.PlayingRooms, stats.Players, stats.Connections)
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleGameInstructions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(gameInstructions), nil
}

// formatRoom renders a snapshot for tool output.
func formatRoom(snap *room.Snapshot) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Room %s\n", snap.RoomID)
	fmt.Fprintf(&b, "Phase: %s\n", snap.Phase)
	fmt.Fprintf(&b, "Players (%d/%d):\n", len(snap.Players), snap.MaxPlayers)
	for _, p := range snap.Players {
		marks := ""
		if p.IsHost {
			marks += " [host]"
		}
		if snap.PotatoHolderID != nil && *snap.PotatoHolderID == p.ID {
			marks += " [potato]"
		}
		if !p.Connected {
			marks += " [disconnected]"
		}
		fmt.Fprintf(&b, "- %s%s\n", p.Name, marks)
	}
	if snap.EndTime != nil {
		deadline := time.UnixMilli(*snap.EndTime)
		fmt.Fprintf(&b, "Round ends: %s (in %s)\n",
			deadline.Format("15:04:05.000"), time.Until(deadline).Round(time.Millisecond))
	}
	return b.String()
}

const gameInstructions = `HOT POTATO - RULES AND PROTOCOL

Rules:
- Players join a named room (up to 4 players by default); first joiner hosts.
- The host starts a round with at least 2 players in the room.
- A random player gets the potato; a hidden deadline is drawn between 10 and
  30 seconds. Passing never changes the deadline.
- The holder passes the potato to any current room member.
- When the deadline expires, the current holder loses and the round ends.
- The host can reset an ended room to play again.

WebSocket protocol (JSON, one document per frame, "type" discriminant):
  client -> server: JOIN_ROOM {roomId, playerName}, LEAVE_ROOM,
                    START_GAME, PASS_POTATO {targetPlayerId}, PLAY_AGAIN
  server -> client: JOIN_SUCCESS, LEAVE_SUCCESS, ROOM_UPDATE,
                    HOST_TRANSFERRED, GAME_STARTED, POTATO_PASSED,
                    GAME_ENDED, ERROR

Every room-wide message carries a full room snapshot: roomId, ordered
players (id, name, connected, isHost), phase, potatoHolderId, endTime
(Unix ms), maxPlayers, hostId.`

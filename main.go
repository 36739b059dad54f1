// Command Hot-Potato-Online starts the Hot Potato game server.
//
// It supports two modes:
//  1. "server" (default) – runs the HTTP server exposing the REST API,
//     the WebSocket endpoint, and an /mcp HTTP endpoint
//  2. "mcp-stdio" – runs an MCP stdio server and spins up an internal
//     HTTP API if none is available
//
// Flags control host/port, an optional tunables file, debug logging, and
// optional ngrok tunneling for easy external access during development.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/urfave/cli/v3"
	"golang.ngrok.com/ngrok"
	ngrokConfig "golang.ngrok.com/ngrok/config"

	"github.com/Jarrettsmao/Hot-Potato-Online/api"
	"github.com/Jarrettsmao/Hot-Potato-Online/game/config"
	"github.com/Jarrettsmao/Hot-Potato-Online/game/room"
	"github.com/Jarrettsmao/Hot-Potato-Online/game/service"
	"github.com/Jarrettsmao/Hot-Potato-Online/transport/mcp"
	"github.com/Jarrettsmao/Hot-Potato-Online/transport/websocket"
)

const (
	Version = "1.0.0"
	AppName = "Hot Potato Online Server"
)

func main() {
	// Load .env file if it exists (ignore error if not found)
	if err := godotenv.Load(); err != nil {
		if !os.IsNotExist(err) {
			log.Printf("Warning: Error loading .env file: %v", err)
		}
	}

	cmd := &cli.Command{
		Name:    "hot-potato-server",
		Usage:   AppName,
		Version: Version,
		Commands: []*cli.Command{
			serverCommand(),
			mcpCommand(),
		},
		DefaultCommand: "server",
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatalf("%v", err)
	}
}

func serverCommand() *cli.Command {
	return &cli.Command{
		Name:  "server",
		Usage: "Run the HTTP server with WebSocket, REST API, and MCP endpoint",
		Flags: append(commonFlags(),
			&cli.BoolFlag{Name: "ngrok", Usage: "Enable ngrok tunnel"},
			&cli.StringFlag{Name: "ngrok-auth", Usage: "Ngrok auth token (or use NGROK_AUTHTOKEN env var)"},
			&cli.StringFlag{Name: "ngrok-domain", Usage: "Custom ngrok domain (optional)"},
		),
		Action: runServer,
	}
}

func mcpCommand() *cli.Command {
	return &cli.Command{
		Name:    "mcp-stdio",
		Aliases: []string{"stdio-mcp", "mcp"},
		Usage:   "Run the MCP stdio server, starting an internal HTTP API if none is available",
		Flags:   commonFlags(),
		Action:  runStdioMCP,
	}
}

func commonFlags() []cli.Flag {
	return []cli.Flag{
		&cli.IntFlag{Name: "port", Value: 8080, Usage: "HTTP server port"},
		&cli.StringFlag{Name: "host", Value: "localhost", Usage: "HTTP server host"},
		&cli.StringFlag{Name: "config", Usage: "Path to a JSON tunables file (optional)"},
		&cli.BoolFlag{Name: "debug", Usage: "Enable debug logging"},
	}
}

// initialize wires the stores, the engine, and the WebSocket hub.
func initialize(cmd *cli.Command) (*service.Service, *websocket.Hub, error) {
	if cmd.Bool("debug") {
		log.SetFlags(log.LstdFlags | log.Lshortfile)
	} else {
		log.SetFlags(log.LstdFlags)
	}

	cfg := config.Default()
	if path := cmd.String("config"); path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
		log.Printf("Loaded tunables from %s", path)
	}

	svc := service.New(cfg, room.NewStore(), service.NewRegistry())
	hub := websocket.NewHub(svc)
	go hub.Run()

	return svc, hub, nil
}

// runServer starts the HTTP server with the REST API, WebSocket hub, and
// an /mcp proxy endpoint. If ngrok is enabled (via flag or environment),
// it also provisions a public tunnel.
func runServer(ctx context.Context, cmd *cli.Command) error {
	log.Printf("Starting %s v%s", AppName, Version)

	svc, hub, err := initialize(cmd)
	if err != nil {
		return err
	}

	// The elimination timer runs for the life of the server.
	sweepCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	go svc.RunSweeper(sweepCtx)

	apiServer := api.NewServer(svc, hub)
	addr := fmt.Sprintf("%s:%d", cmd.String("host"), int(cmd.Int("port")))
	mcpClient := mcp.NewClient(fmt.Sprintf("http://%s", addr))

	mainRouter := http.NewServeMux()
	mainRouter.Handle("/", apiServer)
	mainRouter.HandleFunc("/mcp", mcpHTTPHandler(mcpClient))

	httpServer := &http.Server{
		Addr:         addr,
		Handler:      mainRouter,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()

		log.Printf("HTTP server listening on %s", addr)
		log.Printf("REST API: http://%s/api", addr)
		log.Printf("WebSocket: ws://%s/ws", addr)
		log.Printf("MCP endpoint: http://%s/mcp", addr)

		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("HTTP server failed: %v", err)
		}
	}()

	if ngrokEnabled(cmd) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			runNgrokTunnel(sweepCtx, cmd, mainRouter)
		}()
	}

	sig := <-stop
	log.Printf("Received signal: %v. Shutting down...", sig)
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("HTTP server shutdown error: %v", err)
	}

	wg.Wait()
	log.Println("Server stopped")
	return nil
}

// mcpHTTPHandler proxies POSTed MCP messages to the in-process MCP server.
func mcpHTTPHandler(mcpClient *mcp.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		body, err := io.ReadAll(r.Body)
		if err != nil {
			http.Error(w, "Failed to read request", http.StatusBadRequest)
			return
		}
		defer r.Body.Close()

		response := mcpClient.GetMCPServer().HandleMessage(r.Context(), body)

		w.Header().Set("Content-Type", "application/json")
		responseData, err := json.Marshal(response)
		if err != nil {
			http.Error(w, "Failed to marshal response", http.StatusInternalServerError)
			return
		}
		w.Write(responseData)
	}
}

func ngrokEnabled(cmd *cli.Command) bool {
	if cmd.Bool("ngrok") {
		return true
	}
	env := os.Getenv("NGROK_ENABLED")
	return env == "true" || env == "1"
}

// runNgrokTunnel provisions a public tunnel and serves the router
// through it until ctx is cancelled.
func runNgrokTunnel(ctx context.Context, cmd *cli.Command, handler http.Handler) {
	authToken := cmd.String("ngrok-auth")
	if authToken == "" {
		authToken = os.Getenv("NGROK_AUTHTOKEN")
	}
	if authToken == "" {
		log.Println("WARNING: Ngrok enabled but no auth token provided (use --ngrok-auth or NGROK_AUTHTOKEN)")
		return
	}

	log.Println("Starting ngrok tunnel...")

	var tunnel ngrokConfig.Tunnel
	domain := cmd.String("ngrok-domain")
	if domain == "" {
		domain = os.Getenv("NGROK_DOMAIN")
	}
	if domain != "" {
		tunnel = ngrokConfig.HTTPEndpoint(ngrokConfig.WithDomain(domain))
		log.Printf("Using custom ngrok domain: %s", domain)
	} else {
		tunnel = ngrokConfig.HTTPEndpoint()
	}

	tun, err := ngrok.Listen(ctx, tunnel, ngrok.WithAuthtoken(authToken))
	if err != nil {
		log.Printf("Failed to start ngrok tunnel: %v", err)
		return
	}
	defer func() {
		if err := tun.Close(); err != nil {
			log.Printf("Failed to close ngrok tunnel: %v", err)
		}
	}()

	log.Printf("🚀 Ngrok tunnel established: %s", tun.URL())
	log.Printf("  WebSocket (ngrok): %s/ws", tun.URL())
	log.Printf("  REST API (ngrok): %s/api", tun.URL())

	if err := http.Serve(tun, handler); err != nil && err != http.ErrServerClosed {
		log.Printf("Ngrok server error: %v", err)
	}
	log.Println("Ngrok tunnel closed")
}

// runStdioMCP runs an MCP stdio server. It tries to reuse an external API
// at http://localhost:8080; if unavailable, it starts a minimal internal
// HTTP API bound to a random loopback port and targets that.
func runStdioMCP(ctx context.Context, cmd *cli.Command) error {
	externalURL := fmt.Sprintf("http://%s:%d", cmd.String("host"), int(cmd.Int("port")))
	log.Printf("Checking for external API server at %s...", externalURL)

	baseURL := ""
	testClient := &http.Client{Timeout: 2 * time.Second}
	resp, err := testClient.Get(externalURL + "/api/health")
	if err == nil && resp.StatusCode < 500 {
		resp.Body.Close()
		log.Printf("External API server found at %s, using it for MCP", externalURL)
		baseURL = externalURL
	} else {
		log.Printf("No external API server found, starting internal HTTP server")

		svc, hub, err := initialize(cmd)
		if err != nil {
			return err
		}

		sweepCtx, cancel := context.WithCancel(ctx)
		defer cancel()
		go svc.RunSweeper(sweepCtx)

		listener, err := net.Listen("tcp", "127.0.0.1:0")
		if err != nil {
			return fmt.Errorf("failed to get available port: %w", err)
		}

		internalAddr := listener.Addr().String()
		log.Printf("Starting internal HTTP server on %s for MCP stdio", internalAddr)

		httpServer := &http.Server{Handler: api.NewServer(svc, hub)}
		go func() {
			if err := httpServer.Serve(listener); err != nil && err != http.ErrServerClosed {
				log.Printf("Internal HTTP server error: %v", err)
			}
		}()

		// Give the listener a moment before the first tool call.
		time.Sleep(100 * time.Millisecond)
		baseURL = fmt.Sprintf("http://%s", internalAddr)
	}

	mcpClient := mcp.NewClient(baseURL)
	log.Println("MCP stdio server ready")

	if err := mcpserver.ServeStdio(mcpClient.GetMCPServer()); err != nil {
		return fmt.Errorf("MCP stdio server error: %w", err)
	}
	return nil
}

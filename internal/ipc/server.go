package ipc

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net"
	"os"
	"sync"
	"time"

	"github.com/1broseidon/gridsnap/internal/config"
	"github.com/1broseidon/gridsnap/internal/platform"
	"github.com/1broseidon/gridsnap/internal/runtimepath"
	"github.com/1broseidon/gridsnap/internal/snap"
)

// Server handles IPC requests from clients
type Server struct {
	socketPath   string
	listener     net.Listener
	cfg          *config.Config
	cfgMu        sync.RWMutex
	engine       *snap.Engine
	backend      platform.Backend
	startTime    time.Time
	reloadChan   chan struct{}
	shuttingDown bool
	shutdownMu   sync.Mutex
}

// NewServer creates a new IPC server
func NewServer(cfg *config.Config, engine *snap.Engine, backend platform.Backend, reloadChan chan struct{}) (*Server, error) {
	socketPath, err := runtimepath.SocketPath()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve IPC socket path: %w", err)
	}

	// Remove stale socket from a previous daemon lifecycle.
	os.Remove(socketPath)

	return &Server{
		socketPath: socketPath,
		cfg:        cfg,
		engine:     engine,
		backend:    backend,
		startTime:  time.Now(),
		reloadChan: reloadChan,
	}, nil
}

// Start begins listening for IPC connections
func (s *Server) Start() error {
	listener, err := net.Listen("unix", s.socketPath)
	if err != nil {
		return fmt.Errorf("failed to create IPC socket: %w", err)
	}
	s.listener = listener

	if err := os.Chmod(s.socketPath, 0600); err != nil {
		return fmt.Errorf("failed to set socket permissions: %w", err)
	}

	log.Printf("IPC server listening on %s", s.socketPath)

	go s.acceptLoop()
	return nil
}

// Stop shuts down the server and removes the socket.
func (s *Server) Stop() {
	s.shutdownMu.Lock()
	s.shuttingDown = true
	s.shutdownMu.Unlock()

	if s.listener != nil {
		s.listener.Close()
	}
	os.Remove(s.socketPath)
}

// UpdateConfig swaps the config after a reload.
func (s *Server) UpdateConfig(cfg *config.Config) {
	s.cfgMu.Lock()
	defer s.cfgMu.Unlock()
	s.cfg = cfg
}

// GetConfig returns the current config.
func (s *Server) GetConfig() *config.Config {
	s.cfgMu.RLock()
	defer s.cfgMu.RUnlock()
	return s.cfg
}

func (s *Server) acceptLoop() {
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			s.shutdownMu.Lock()
			if s.shuttingDown {
				s.shutdownMu.Unlock()
				return
			}
			s.shutdownMu.Unlock()
			log.Printf("IPC accept error: %v", err)
			continue
		}

		go s.handleConnection(conn)
	}
}

func (s *Server) handleConnection(conn net.Conn) {
	defer conn.Close()

	reader := bufio.NewReader(conn)
	line, err := reader.ReadBytes('\n')
	if err != nil {
		if err != io.EOF {
			log.Printf("IPC read error: %v", err)
		}
		return
	}

	var req Request
	if err := json.Unmarshal(line, &req); err != nil {
		s.writeError(conn, fmt.Sprintf("malformed request: %v", err))
		return
	}

	resp := s.handleRequest(&req)

	data, err := json.Marshal(resp)
	if err != nil {
		log.Printf("IPC marshal error: %v", err)
		return
	}
	data = append(data, '\n')
	if _, err := conn.Write(data); err != nil {
		log.Printf("IPC write error: %v", err)
	}
}

func (s *Server) handleRequest(req *Request) *Response {
	switch req.Command {
	case CommandGetStatus:
		return s.handleGetStatus()
	case CommandListBindings:
		return s.handleListBindings()
	case CommandTrigger:
		return s.handleTrigger(req.Payload)
	case CommandGetMonitors:
		return s.handleGetMonitors()
	case CommandReload:
		return s.handleReload()
	default:
		return errorResponse(fmt.Sprintf("unknown command: %s", req.Command))
	}
}

func (s *Server) handleGetStatus() *Response {
	status := StatusData{
		BindingCount:   len(s.engine.Cycles()),
		ExceptionCount: s.engine.ExceptionCount(),
		UptimeSeconds:  int64(time.Since(s.startTime).Seconds()),
		DaemonRunning:  true,
	}
	return okResponse(status)
}

func (s *Server) handleListBindings() *Response {
	cfg := s.GetConfig()

	var data BindingsData
	for _, cycle := range s.engine.Cycles() {
		actions := make([]string, 0, len(cycle.Actions()))
		for _, action := range cycle.Actions() {
			actions = append(actions, fmt.Sprintf("%v", action))
		}
		data.Bindings = append(data.Bindings, BindingInfo{
			Name:        cycle.Name(),
			Category:    cycle.Category().String(),
			Hotkey:      cfg.Hotkeys[cycle.Name()].Sequence(),
			ActionCount: len(cycle.Actions()),
			Actions:     actions,
		})
	}
	return okResponse(data)
}

func (s *Server) handleTrigger(payload json.RawMessage) *Response {
	var p TriggerPayload
	if err := json.Unmarshal(payload, &p); err != nil {
		return errorResponse(fmt.Sprintf("malformed trigger payload: %v", err))
	}
	if p.Binding == "" {
		return errorResponse("trigger payload missing binding name")
	}

	if err := s.engine.Trigger(p.Binding); err != nil {
		return errorResponse(err.Error())
	}
	return okResponse(nil)
}

func (s *Server) handleGetMonitors() *Response {
	displays, err := s.backend.Displays()
	if err != nil {
		return errorResponse(fmt.Sprintf("failed to list monitors: %v", err))
	}

	var data MonitorsData
	for _, d := range displays {
		data.Monitors = append(data.Monitors, MonitorInfo{
			ID:     d.ID,
			Name:   d.Name,
			X:      int(d.Frame.X),
			Y:      int(d.Frame.Y),
			Width:  int(d.Frame.W),
			Height: int(d.Frame.H),
		})
	}
	return okResponse(data)
}

func (s *Server) handleReload() *Response {
	cfg, err := config.Load()
	if err != nil {
		return errorResponse(fmt.Sprintf("config reload failed: %v", err))
	}

	if err := s.engine.UpdateConfig(cfg); err != nil {
		return errorResponse(fmt.Sprintf("failed to apply reloaded config: %v", err))
	}
	s.UpdateConfig(cfg)

	// Notify the daemon so it can log and warn about hotkey changes.
	select {
	case s.reloadChan <- struct{}{}:
	default:
	}
	return okResponse(nil)
}

func (s *Server) writeError(conn net.Conn, msg string) {
	data, err := json.Marshal(errorResponse(msg))
	if err != nil {
		return
	}
	data = append(data, '\n')
	conn.Write(data)
}

func okResponse(payload any) *Response {
	resp := &Response{Status: "OK"}
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return errorResponse(fmt.Sprintf("failed to marshal response: %v", err))
		}
		resp.Data = data
	}
	return resp
}

func errorResponse(msg string) *Response {
	return &Response{Status: "ERROR", Error: msg}
}

// Package api provides the HTTP analysis server.
// It accepts G-code uploads, runs the structural analysis, records results
// to the history store, and streams completion notifications to websocket
// subscribers.
package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"

	"gcode-inspect/pkg/analysis"
	"gcode-inspect/pkg/gcode"
	"gcode-inspect/pkg/history"
	"gcode-inspect/pkg/log"
)

// maxUploadBytes bounds the size of one uploaded G-code file (64 MiB).
const maxUploadBytes = 64 << 20

// Server serves analysis requests over HTTP and notifies websocket clients.
type Server struct {
	tol     analysis.Tolerances
	store   *history.Store
	logger  *log.Logger
	addr    string
	version string

	httpServer *http.Server

	wsUpgrader websocket.Upgrader
	wsClients  map[int64]*wsClient
	wsClientMu sync.RWMutex
	nextWSID   int64

	running   atomic.Bool
	startTime time.Time
}

// Config holds server configuration.
type Config struct {
	// Addr is the HTTP listen address (e.g. ":7126").
	Addr string

	// Tolerances tune the analysis heuristics.
	Tolerances analysis.Tolerances

	// Store records completed analyses. Optional; nil disables history.
	Store *history.Store

	// Logger for server events. Optional; defaults to the package logger.
	Logger *log.Logger

	// Version string reported by /server/info.
	Version string
}

// New creates a server. Call Start to begin listening.
func New(cfg Config) *Server {
	logger := cfg.Logger
	if logger == nil {
		logger = log.Default().WithPrefix("api")
	}
	s := &Server{
		tol:       cfg.Tolerances,
		store:     cfg.Store,
		logger:    logger,
		addr:      cfg.Addr,
		version:   cfg.Version,
		wsClients: make(map[int64]*wsClient),
		startTime: time.Now(),
	}
	s.wsUpgrader = websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			return true // local tooling, any origin may connect
		},
	}
	return s
}

// Handler returns the HTTP handler, exposed separately for tests.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/server/info", s.handleServerInfo)
	mux.HandleFunc("/analyze", s.handleAnalyze)
	mux.HandleFunc("/history", s.handleHistory)
	mux.HandleFunc("/websocket", s.handleWebSocket)
	return mux
}

// Start begins serving. It blocks until the listener fails or Stop is
// called.
func (s *Server) Start() error {
	s.httpServer = &http.Server{
		Addr:    s.addr,
		Handler: s.Handler(),
	}
	s.running.Store(true)
	s.logger.Infof("listening on %s", s.addr)
	err := s.httpServer.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

// Stop shuts the server down and disconnects all websocket clients.
func (s *Server) Stop() error {
	s.running.Store(false)

	s.wsClientMu.Lock()
	for _, client := range s.wsClients {
		client.Close()
	}
	s.wsClients = make(map[int64]*wsClient)
	s.wsClientMu.Unlock()

	if s.httpServer != nil {
		return s.httpServer.Close()
	}
	return nil
}

// writeJSON writes a JSON response body.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError writes a JSON error body.
func writeError(w http.ResponseWriter, status int, format string, args ...any) {
	writeJSON(w, status, map[string]any{"error": fmt.Sprintf(format, args...)})
}

// handleServerInfo reports server identity and uptime.
func (s *Server) handleServerInfo(w http.ResponseWriter, r *http.Request) {
	s.wsClientMu.RLock()
	clients := len(s.wsClients)
	s.wsClientMu.RUnlock()

	writeJSON(w, http.StatusOK, map[string]any{
		"result": map[string]any{
			"name":            "gcode-inspect",
			"version":         s.version,
			"uptime":          time.Since(s.startTime).Seconds(),
			"websocket_count": clients,
			"history_enabled": s.store != nil,
		},
	})
}

// handleAnalyze accepts a G-code body, runs the full analysis, records the
// result, and returns the report. The optional ?name= query names the file
// in history and notifications.
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "POST required")
		return
	}

	name := r.URL.Query().Get("name")
	if name == "" {
		name = "upload.gcode"
	}

	model, err := gcode.Parse(http.MaxBytesReader(w, r.Body, maxUploadBytes))
	if err != nil {
		writeError(w, http.StatusBadRequest, "parse: %v", err)
		return
	}

	rep, err := analysis.Analyze(model, s.tol)
	if err != nil {
		if analysis.IsNoShapes(err) {
			writeError(w, http.StatusUnprocessableEntity, "no extrusion shapes in %q", name)
			return
		}
		writeError(w, http.StatusInternalServerError, "analyze: %v", err)
		return
	}

	var recordID int64
	if s.store != nil {
		recordID, err = s.store.RecordAnalysis(name, rep)
		if err != nil {
			s.logger.Warnf("history record failed for %q: %v", name, err)
		}
	}

	s.logger.Infof("analyzed %q: %d lines, pre %s, post %s, planar=%v",
		name, rep.Lines, rep.PrePrint, rep.PostPrint, rep.Planar)

	s.broadcastAnalysisComplete(name, recordID, rep)

	writeJSON(w, http.StatusOK, map[string]any{
		"result": map[string]any{
			"name":   name,
			"id":     recordID,
			"report": rep,
		},
	})
}

// handleHistory returns recent analysis records, newest first. The optional
// ?limit= query caps the count (default 20).
func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		writeError(w, http.StatusNotFound, "history disabled")
		return
	}

	limit := 20
	if v := r.URL.Query().Get("limit"); v != "" {
		if _, err := fmt.Sscanf(v, "%d", &limit); err != nil || limit <= 0 {
			writeError(w, http.StatusBadRequest, "invalid limit %q", v)
			return
		}
	}

	records, err := s.store.Recent(limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "history: %v", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"result": map[string]any{"analyses": records},
	})
}

// broadcastAnalysisComplete notifies every websocket client that an
// analysis finished.
func (s *Server) broadcastAnalysisComplete(name string, id int64, rep analysis.Report) {
	notification := map[string]any{
		"jsonrpc": "2.0",
		"method":  "notify_analysis_complete",
		"params": []any{map[string]any{
			"name":   name,
			"id":     id,
			"report": rep,
		}},
	}

	s.wsClientMu.RLock()
	defer s.wsClientMu.RUnlock()
	for _, client := range s.wsClients {
		client.Send(notification)
	}
}

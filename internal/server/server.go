// Package server exposes the parser over a websocket so editors and web
// playgrounds can parse as the user types.
//
// Every text frame sent to /parse is a JSON Request; every reply is a JSON
// Reply. A connection may carry any number of requests.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"whilec/internal/config"
	"whilec/pkg/ast"
	"whilec/pkg/frontend"
	"whilec/pkg/parser"
)

// Request asks for one parse. An empty Mode uses the configured default.
type Request struct {
	Source string `json:"source"`
	Mode   string `json:"mode,omitempty"`
}

// Reply answers one Request. AST is absent when Error is set.
type Reply struct {
	ID          string         `json:"id,omitempty"`
	Mode        string         `json:"mode,omitempty"`
	AST         map[string]any `json:"ast,omitempty"`
	Diagnostics []string       `json:"diagnostics,omitempty"`
	Error       string         `json:"error,omitempty"`
}

type Server struct {
	cfg      config.ServerConfig
	parse    config.ParserConfig
	logger   *slog.Logger
	upgrader websocket.Upgrader
	httpSrv  *http.Server
}

func New(cfg *config.Config, logger *slog.Logger) (*Server, error) {
	if _, err := parser.ParseMode(cfg.Parser.Mode); err != nil {
		return nil, fmt.Errorf("invalid default mode: %w", err)
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	s := &Server{
		cfg:    cfg.Server,
		parse:  cfg.Parser,
		logger: logger.With("component", "server"),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
			// Playground clients are served from anywhere.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
	s.httpSrv = &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s, nil
}

// Handler routes /parse and /healthz.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/parse", s.handleParse)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		fmt.Fprintln(w, "ok")
	})
	return mux
}

func (s *Server) ListenAndServe() error {
	s.logger.Info("listening", "addr", s.httpSrv.Addr)
	if err := s.httpSrv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpSrv.Shutdown(ctx)
}

// Respond parses one request. It never fails: problems are reported in
// Reply.Error.
func (s *Server) Respond(req Request) Reply {
	modeName := req.Mode
	if modeName == "" {
		modeName = s.parse.Mode
	}
	mode, err := parser.ParseMode(modeName)
	if err != nil {
		return Reply{Error: err.Error()}
	}

	res, err := frontend.Parse(req.Source, mode,
		frontend.WithLogger(s.logger),
		frontend.WithMaxDepth(s.parse.MaxDepth),
		frontend.WithMaxInputLength(s.parse.MaxInputLength),
	)
	reply := Reply{
		ID:          res.ID.String(),
		Mode:        mode.String(),
		Diagnostics: res.DiagnosticMessages(),
	}
	if err != nil {
		reply.Error = err.Error()
		return reply
	}
	reply.AST = ast.ToMap(res.Root)
	return reply
}

func (s *Server) handleParse(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade failed", "remote", r.RemoteAddr, "error", err.Error())
		return
	}
	defer conn.Close()

	s.logger.Debug("client connected", "remote", r.RemoteAddr)

	for {
		if s.cfg.ReadTimeout.Duration > 0 {
			conn.SetReadDeadline(time.Now().Add(s.cfg.ReadTimeout.Duration))
		}
		msgType, msg, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				s.logger.Warn("connection closed", "remote", r.RemoteAddr, "error", err.Error())
			}
			return
		}

		var reply Reply
		if msgType != websocket.TextMessage {
			reply = Reply{Error: fmt.Sprintf("unexpected message type: %d", msgType)}
		} else {
			var req Request
			if err := json.Unmarshal(msg, &req); err != nil {
				reply = Reply{Error: fmt.Sprintf("invalid request: %v", err)}
			} else {
				reply = s.Respond(req)
			}
		}

		if s.cfg.WriteTimeout.Duration > 0 {
			conn.SetWriteDeadline(time.Now().Add(s.cfg.WriteTimeout.Duration))
		}
		if err := conn.WriteJSON(reply); err != nil {
			s.logger.Warn("write failed", "remote", r.RemoteAddr, "error", err.Error())
			return
		}
	}
}

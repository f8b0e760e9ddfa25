// ============================================================================
// teacup - grammar-driven language engine
// ============================================================================
//
// Package:     server
// Description: WebSocket endpoint for evaluation, parsing and tokenizing
// Author:      msto63
// Created:     2025-06-24
// License:     MIT
// ============================================================================

package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	mdwerror "github.com/msto63/teacup/foundation/core/error"
	mdwlog "github.com/msto63/teacup/foundation/core/log"
	"github.com/msto63/teacup/foundation/engine"
	"github.com/msto63/teacup/foundation/engine/interp"
	"github.com/msto63/teacup/internal/history"
	"github.com/msto63/teacup/internal/render"
)

// Message types
const (
	TypeEval   = "eval"
	TypeParse  = "parse"
	TypeTokens = "tokens"
	TypePing   = "ping"

	TypeResult = "result"
	TypeTree   = "tree"
	TypePong   = "pong"
	TypeError  = "error"
)

// EngineFactory creates an engine whose print builtin writes to out
type EngineFactory func(out io.Writer) (*engine.Engine, error)

// WSMessage represents a client message
type WSMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// WSSourcePayload carries the source text of eval, parse and tokens requests
type WSSourcePayload struct {
	Source string `json:"source"`
	Raw    bool   `json:"raw,omitempty"`
}

// WSResponse represents a server message
type WSResponse struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload,omitempty"`
}

// WSResultPayload is the answer to eval
type WSResultPayload struct {
	ID         string  `json:"id"`
	Value      string  `json:"value"`
	Type       string  `json:"value_type"`
	Output     string  `json:"output,omitempty"`
	DurationMS float64 `json:"duration_ms"`
}

// WSTreePayload is the answer to parse
type WSTreePayload struct {
	Brackets  string   `json:"brackets"`
	Signature []string `json:"signature"`
	Tree      string   `json:"tree"`
}

// WSToken is one entry of the answer to tokens
type WSToken struct {
	Kind  string `json:"kind"`
	Text  string `json:"text"`
	Start int    `json:"start"`
	End   int    `json:"end"`
}

// WSErrorPayload represents an error payload
type WSErrorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	ID      string `json:"id,omitempty"`
}

// WebSocketHandler serves one engine per connection
type WebSocketHandler struct {
	upgrader   websocket.Upgrader
	newEngine  EngineFactory
	store      history.Store
	logger     *mdwlog.Logger
	maxMessage int64
	idle       time.Duration
	writeWait  time.Duration
}

// NewWebSocketHandler creates a new WebSocket handler. store may be nil.
func NewWebSocketHandler(factory EngineFactory, store history.Store, cfg Config, logger *mdwlog.Logger) *WebSocketHandler {
	return &WebSocketHandler{
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
		newEngine:  factory,
		store:      store,
		logger:     logger.WithName("websocket"),
		maxMessage: cfg.MaxMessageSize,
		idle:       cfg.ReadTimeout,
		writeWait:  cfg.WriteTimeout,
	}
}

// session is the state of one connection
type session struct {
	id     string
	conn   *websocket.Conn
	engine *engine.Engine
	out    *bytes.Buffer
	logger *mdwlog.Logger
}

// ServeHTTP handles WebSocket upgrade and connections
func (h *WebSocketHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("WebSocket upgrade failed", mdwlog.Err(err))
		return
	}
	defer conn.Close()

	out := &bytes.Buffer{}
	e, err := h.newEngine(out)
	if err != nil {
		h.logger.Error("engine setup failed", mdwlog.Err(err))
		h.send(conn, errorResponse(err, ""))
		return
	}

	id := uuid.New().String()
	s := &session{
		id:     id,
		conn:   conn,
		engine: e,
		out:    out,
		logger: h.logger.WithField("session", id),
	}
	h.handleConnection(r.Context(), s)
}

// handleConnection reads messages until the client disconnects
func (h *WebSocketHandler) handleConnection(ctx context.Context, s *session) {
	s.logger.Info("WebSocket connection established", mdwlog.Field("remote", s.conn.RemoteAddr().String()))

	if h.maxMessage > 0 {
		s.conn.SetReadLimit(h.maxMessage)
	}
	if h.idle > 0 {
		s.conn.SetReadDeadline(time.Now().Add(h.idle))
		s.conn.SetPongHandler(func(string) error {
			s.conn.SetReadDeadline(time.Now().Add(h.idle))
			return nil
		})
	}

	for {
		var msg WSMessage
		if err := s.conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.logger.Warn("WebSocket read error", mdwlog.Err(err))
			} else {
				s.logger.Info("WebSocket connection closed")
			}
			return
		}
		if h.idle > 0 {
			s.conn.SetReadDeadline(time.Now().Add(h.idle))
		}

		h.send(s.conn, h.dispatch(ctx, s, msg))
	}
}

// dispatch answers a single message
func (h *WebSocketHandler) dispatch(ctx context.Context, s *session, msg WSMessage) WSResponse {
	if msg.Type == TypePing {
		return WSResponse{Type: TypePong}
	}

	var payload WSSourcePayload
	if len(msg.Payload) > 0 {
		if err := json.Unmarshal(msg.Payload, &payload); err != nil {
			return errorResponse(mdwerror.Wrap(err, "invalid payload").WithCode(mdwerror.CodeInvalidInput), "")
		}
	}

	switch msg.Type {
	case TypeEval:
		return h.eval(ctx, s, payload.Source)
	case TypeParse:
		return parse(s.engine, payload.Source)
	case TypeTokens:
		return tokens(s.engine, payload.Source, payload.Raw)
	default:
		return errorResponse(mdwerror.New("unknown message type: "+msg.Type).WithCode(mdwerror.CodeInvalidInput), "")
	}
}

func (h *WebSocketHandler) eval(ctx context.Context, s *session, source string) WSResponse {
	s.out.Reset()
	res, err := s.engine.Run(source)

	if h.store != nil {
		if rerr := h.store.Record(ctx, history.FromResult(s.id, res, err)); rerr != nil {
			s.logger.ErrorWithErr("failed to record evaluation", rerr)
		}
	}

	if err != nil {
		s.logger.LogError(err)
		id := ""
		if res != nil {
			id = res.ID
		}
		return errorResponse(err, id)
	}
	return WSResponse{
		Type: TypeResult,
		Payload: WSResultPayload{
			ID:         res.ID,
			Value:      interp.Format(res.Value),
			Type:       interp.TypeName(res.Value),
			Output:     s.out.String(),
			DurationMS: float64(res.Duration) / float64(time.Millisecond),
		},
	}
}

func parse(e *engine.Engine, source string) WSResponse {
	brackets, err := engine.ParseWith(e, source, render.Bracketed)
	if err != nil {
		return errorResponse(err, "")
	}
	sigs, err := engine.ParseWith(e, source, render.Signatures)
	if err != nil {
		return errorResponse(err, "")
	}
	tree, err := engine.ParseWith(e, source, render.NewTreeFinalizer(e.Grammar().Classifier))
	if err != nil {
		return errorResponse(err, "")
	}
	if sigs == nil {
		sigs = []string{}
	}
	return WSResponse{Type: TypeTree, Payload: WSTreePayload{
		Brackets:  brackets,
		Signature: sigs,
		Tree:      render.Plain(tree),
	}}
}

func tokens(e *engine.Engine, source string, raw bool) WSResponse {
	tokenize := e.Tokens
	if raw {
		tokenize = e.Tokenize
	}
	toks, err := tokenize(source)
	if err != nil {
		return errorResponse(err, "")
	}
	out := make([]WSToken, len(toks))
	for i, t := range toks {
		out[i] = WSToken{Kind: string(t.Kind), Text: t.Text, Start: t.Start, End: t.End}
	}
	return WSResponse{Type: TypeTokens, Payload: out}
}

func errorResponse(err error, id string) WSResponse {
	return WSResponse{
		Type: TypeError,
		Payload: WSErrorPayload{
			Code:    string(mdwerror.GetCode(err)),
			Message: err.Error(),
			ID:      id,
		},
	}
}

// send sends a response message via WebSocket
func (h *WebSocketHandler) send(conn *websocket.Conn, resp WSResponse) {
	var deadline time.Time
	if h.writeWait > 0 {
		deadline = time.Now().Add(h.writeWait)
	}
	conn.SetWriteDeadline(deadline)
	if err := conn.WriteJSON(resp); err != nil {
		h.logger.Warn("WebSocket send error", mdwlog.Err(err))
	}
}

// Package server is the HTTP surface: tool execution, agent questions and the lookup journal.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/va6996/travelscout/agents"
	"github.com/va6996/travelscout/log"
	"github.com/va6996/travelscout/metrics"
	"github.com/va6996/travelscout/orm"
	"github.com/va6996/travelscout/tools"
)

const maxBodyBytes = 1 << 20

// ToolRunner executes registered tools by name
type ToolRunner interface {
	ExecuteTool(ctx context.Context, name string, args map[string]interface{}) (interface{}, error)
	Names() []string
}

// Asker answers free-form questions
type Asker interface {
	Ask(ctx context.Context, query string) (*agents.Answer, error)
}

// History reads the lookup journal
type History interface {
	Recent(ctx context.Context, limit int) ([]orm.Lookup, error)
	ForPlace(ctx context.Context, place string) ([]orm.Lookup, error)
}

// Deps are the services behind the routes. Agent and Journal are optional.
type Deps struct {
	Tools   ToolRunner
	Agent   Asker
	Journal History
}

// Server routes HTTP requests to Deps
type Server struct {
	deps Deps
	mux  *http.ServeMux
}

// New builds the route table
func New(deps Deps) *Server {
	s := &Server{deps: deps, mux: http.NewServeMux()}

	s.mux.HandleFunc("GET /healthz", s.handleHealth)
	s.mux.Handle("GET /metrics", metrics.Handler())
	s.mux.HandleFunc("GET /v1/tools", s.handleListTools)
	s.mux.HandleFunc("POST /v1/tools/{name}", s.handleExecuteTool)
	s.mux.HandleFunc("POST /v1/ask", s.handleAsk)
	s.mux.HandleFunc("GET /v1/lookups", s.handleLookups)

	return s
}

// Handler returns the routes wrapped in request-id, metrics and CORS middleware
func (s *Server) Handler() http.Handler {
	return withRequestID(withMetrics(withCORS(s.mux)))
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(ctx context.Context, w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Errorf(ctx, "Failed to write response: %v", err)
	}
}

func writeError(ctx context.Context, w http.ResponseWriter, status int, msg string) {
	writeJSON(ctx, w, status, errorResponse{Error: msg})
}

// decodeBody reads an optional JSON body; an empty body leaves v untouched
func decodeBody(r *http.Request, v interface{}) error {
	err := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes)).Decode(v)
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(r.Context(), w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleListTools(w http.ResponseWriter, r *http.Request) {
	writeJSON(r.Context(), w, http.StatusOK, map[string][]string{"tools": s.deps.Tools.Names()})
}

type toolRequest struct {
	Args map[string]interface{} `json:"args"`
}

type toolResponse struct {
	Result interface{} `json:"result"`
}

func (s *Server) handleExecuteTool(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	name := r.PathValue("name")

	var req toolRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(ctx, w, http.StatusBadRequest, "invalid JSON body: "+err.Error())
		return
	}

	log.Infof(ctx, "Executing tool %s", name)
	result, err := s.deps.Tools.ExecuteTool(ctx, name, req.Args)
	if err != nil {
		var vErr *tools.ValidationError
		switch {
		case errors.Is(err, tools.ErrToolNotFound):
			writeError(ctx, w, http.StatusNotFound, err.Error())
		case errors.As(err, &vErr):
			writeError(ctx, w, http.StatusBadRequest, err.Error())
		default:
			log.Errorf(ctx, "Tool %s failed: %v", name, err)
			writeError(ctx, w, http.StatusInternalServerError, err.Error())
		}
		return
	}

	writeJSON(ctx, w, http.StatusOK, toolResponse{Result: result})
}

type askRequest struct {
	Query string `json:"query"`
}

func (s *Server) handleAsk(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if s.deps.Agent == nil {
		writeError(ctx, w, http.StatusServiceUnavailable, "no agent configured")
		return
	}

	var req askRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(ctx, w, http.StatusBadRequest, "invalid JSON body: "+err.Error())
		return
	}
	if strings.TrimSpace(req.Query) == "" {
		writeError(ctx, w, http.StatusBadRequest, "query is required")
		return
	}

	log.Infof(ctx, "Received question: %s", req.Query)
	answer, err := s.deps.Agent.Ask(ctx, req.Query)
	if err != nil {
		if errors.Is(err, agents.ErrNoModel) {
			writeError(ctx, w, http.StatusServiceUnavailable, err.Error())
			return
		}
		log.Errorf(ctx, "Error answering question: %v", err)
		writeError(ctx, w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(ctx, w, http.StatusOK, answer)
}

func (s *Server) handleLookups(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if s.deps.Journal == nil {
		writeError(ctx, w, http.StatusServiceUnavailable, "lookup journal is disabled")
		return
	}

	var (
		rows []orm.Lookup
		err  error
	)
	if place := r.URL.Query().Get("place"); place != "" {
		rows, err = s.deps.Journal.ForPlace(ctx, place)
	} else {
		limit := 20
		if raw := r.URL.Query().Get("limit"); raw != "" {
			n, convErr := strconv.Atoi(raw)
			if convErr != nil || n <= 0 {
				writeError(ctx, w, http.StatusBadRequest, "limit must be a positive integer")
				return
			}
			limit = n
		}
		rows, err = s.deps.Journal.Recent(ctx, limit)
	}
	if err != nil {
		log.Errorf(ctx, "Failed to read journal: %v", err)
		writeError(ctx, w, http.StatusInternalServerError, err.Error())
		return
	}

	if rows == nil {
		rows = []orm.Lookup{}
	}
	writeJSON(ctx, w, http.StatusOK, map[string][]orm.Lookup{"lookups": rows})
}

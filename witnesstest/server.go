// Package witnesstest provides an in-process fake of the Witness API for
// tests, in the spirit of net/http/httptest.
//
// The fake keeps an ordered list of leaves and per-chain checkpoints. Leaves
// are added through /postLeafHash or AddLeaf; checkpoints only appear when a
// test calls Checkpoint, which makes "not yet checkpointed" states easy to
// arrange. Hashes are deterministic but opaque.
package witnesstest

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"

	"github.com/gorilla/mux"
)

// DefaultChainID is assumed when a request omits chainId.
const DefaultChainID int64 = 8453

// Request is a request observed by Server.
type Request struct {
	Method string
	Path   string
	Query  url.Values
	Header http.Header
	Body   []byte
}

// Server is a fake Witness API listening on a local port.
type Server struct {
	*httptest.Server

	token string
	tree  *tree

	mux *mux.Router

	mu        sync.Mutex
	requests  []Request
	overrides map[string]http.Handler
}

// Option configures a Server.
type Option func(*Server)

// WithRequiredToken makes POST endpoints demand "Authorization: Bearer <token>".
func WithRequiredToken(token string) Option {
	return func(s *Server) { s.token = token }
}

// NewServer starts a fake Witness API. Call Close when done.
func NewServer(opts ...Option) *Server {
	s := &Server{
		tree:      newTree(),
		overrides: make(map[string]http.Handler),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.mux = s.router()
	s.Server = httptest.NewServer(s)
	return s
}

// ServeHTTP records the request, then dispatches to an override or the router.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	_ = r.Body.Close()
	r.Body = io.NopCloser(bytes.NewReader(body))

	s.mu.Lock()
	s.requests = append(s.requests, Request{
		Method: r.Method,
		Path:   r.URL.Path,
		Query:  r.URL.Query(),
		Header: r.Header.Clone(),
		Body:   body,
	})
	override := s.overrides[r.URL.Path]
	s.mu.Unlock()

	if override != nil {
		override.ServeHTTP(w, r)
		return
	}
	s.mux.ServeHTTP(w, r)
}

// Handle replaces the behaviour of path with h until Reset is called.
func (s *Server) Handle(path string, h http.Handler) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.overrides[path] = h
}

// HandleFunc is Handle for a plain function.
func (s *Server) HandleFunc(path string, fn func(http.ResponseWriter, *http.Request)) {
	s.Handle(path, http.HandlerFunc(fn))
}

// Respond makes path answer with a fixed status and raw body.
func (s *Server) Respond(path string, status int, body string) {
	s.HandleFunc(path, func(w http.ResponseWriter, _ *http.Request) {
		if strings.HasPrefix(strings.TrimSpace(body), "{") {
			w.Header().Set("Content-Type", "application/json")
		}
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	})
}

// Reset drops overrides and recorded requests. Leaves and checkpoints are kept.
func (s *Server) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.overrides = make(map[string]http.Handler)
	s.requests = nil
}

// Requests returns a copy of every request received so far.
func (s *Server) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Request, len(s.requests))
	copy(out, s.requests)
	return out
}

// LastRequest returns the most recent request, or false if none arrived.
func (s *Server) LastRequest() (Request, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.requests) == 0 {
		return Request{}, false
	}
	return s.requests[len(s.requests)-1], true
}

// AddLeaf inserts leafHash as if it had been posted and returns its index.
func (s *Server) AddLeaf(leafHash string) uint64 {
	idx, _ := s.tree.insert(leafHash)
	return idx
}

// Checkpoint records the current tree on chainID with the given unix timestamp.
func (s *Server) Checkpoint(chainID, timestamp int64) Checkpoint {
	return s.tree.checkpoint(chainID, timestamp)
}

func (s *Server) router() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/_health", s.health).Methods(http.MethodGet)
	r.HandleFunc("/getLatestCheckpoint", s.getLatestCheckpoint).Methods(http.MethodGet)
	r.HandleFunc("/getLatestCheckpointForAllChains", s.getLatestCheckpointForAllChains).Methods(http.MethodGet)
	r.HandleFunc("/getEarliestCheckpointCoveringLeafIndex", s.getEarliestCheckpointCoveringLeafIndex).Methods(http.MethodGet)
	r.HandleFunc("/getCheckpointByTransactionHash", s.getCheckpointByTransactionHash).Methods(http.MethodGet)
	r.HandleFunc("/getCheckpointByTimestamp", s.getCheckpointByTimestamp).Methods(http.MethodGet)
	r.HandleFunc("/getLeafIndexByHash", s.getLeafIndexByHash).Methods(http.MethodGet)
	r.HandleFunc("/getTimestampByLeafHash", s.getTimestampByLeafHash).Methods(http.MethodGet)
	r.HandleFunc("/getNodeHashById", s.getNodeHashByID).Methods(http.MethodGet)
	r.HandleFunc("/getProofForLeafHash", s.getProofForLeafHash).Methods(http.MethodGet)
	r.HandleFunc("/getTreeState", s.getTreeState).Methods(http.MethodGet)
	r.Handle("/postProof", s.requireToken(http.HandlerFunc(s.postProof))).Methods(http.MethodPost)
	r.Handle("/postLeafHash", s.requireToken(http.HandlerFunc(s.postLeafHash))).Methods(http.MethodPost)
	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeNotFound(w, "No procedure found on path \""+r.URL.Path+"\"")
	})
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		WriteError(w, http.StatusMethodNotAllowed, "METHOD_NOT_SUPPORTED", "Method not allowed")
	})
	return r
}

func (s *Server) requireToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.token != "" && r.Header.Get("Authorization") != "Bearer "+s.token {
			WriteError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Unauthorized")
			return
		}
		next.ServeHTTP(w, r)
	})
}

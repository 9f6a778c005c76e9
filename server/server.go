// Package server exposes htmlmatch queries to editors over HTTP and WebSocket.
//
// Editors push the text of open documents together with a version number and
// then query positions in them. Every query re-scans the document, so results
// are cached until the document is updated.
package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/dpotapov/htmlmatch"
	"github.com/dpotapov/htmlmatch/query"
)

// Query operations.
const (
	OpMatch      = "match"
	OpOutward    = "outward"
	OpInward     = "inward"
	OpAttributes = "attrs"
	OpScan       = "scan"
)

// defaultCacheSize is the number of cached query results when
// Handler.CacheSize is not set.
const defaultCacheSize = 1024

var (
	// ErrUnknownDocument is returned for queries on documents never opened.
	ErrUnknownDocument = errors.New("unknown document")
	// ErrStaleVersion is returned for queries on an outdated document version.
	ErrStaleVersion = errors.New("stale document version")
	// ErrUnknownOp is returned for unsupported query operations.
	ErrUnknownOp = errors.New("unknown operation")
)

// wsUpgrader is a Gorilla WebSocket instance, used to respond HTTP requests with WebSocket.
var wsUpgrader = websocket.Upgrader{}

// Document is the text of an editor buffer at a given version.
type Document struct {
	URI     string `json:"uri"`
	Version int    `json:"version"`
	Text    string `json:"text"`
}

// Query asks for the tags around Pos in a document. A zero Version refers to
// the latest version.
type Query struct {
	ID      int    `json:"id,omitempty"`
	URI     string `json:"uri"`
	Version int    `json:"version,omitempty"`
	Op      string `json:"op"`
	Pos     int    `json:"pos"`
	// Where is an optional filter expression, see package query.
	Where string `json:"where,omitempty"`
}

// Response is the answer to a Query.
type Response struct {
	ID     int    `json:"id,omitempty"`
	Result any    `json:"result,omitempty"`
	Error  string `json:"error,omitempty"`
}

// message is a WebSocket frame sent by the client: either a document update
// (type "open") or a query (type "query").
type message struct {
	Type    string `json:"type"`
	ID      int    `json:"id,omitempty"`
	URI     string `json:"uri"`
	Version int    `json:"version,omitempty"`
	Text    string `json:"text,omitempty"`
	Op      string `json:"op,omitempty"`
	Pos     int    `json:"pos,omitempty"`
	Where   string `json:"where,omitempty"`
}

// Handler serves document updates on POST /documents, queries on POST /query
// and both over a WebSocket connection on GET /ws.
type Handler struct {
	// Options configures scanning for all documents.
	Options *htmlmatch.Options

	// CacheSize limits the number of cached query results. Zero selects a
	// default size, a negative value disables caching.
	CacheSize int

	// Logger configures logging for internal events.
	Logger *slog.Logger

	// init is used to initialize the handler only once.
	init sync.Once

	// logger is a private logger instance that is used to log internal events.
	logger *slog.Logger

	mux *http.ServeMux

	mu    sync.Mutex
	docs  map[string]storedDocument
	gen   uint64
	cache *resultCache
}

// storedDocument is a document with the generation it was stored at. Every
// update gets a new generation, even when the version does not change.
type storedDocument struct {
	Document
	gen uint64
}

// ServeHTTP implements the http.Handler interface.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.init.Do(func() {
		h.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
		if h.Logger != nil {
			h.logger = h.Logger
		}

		size := h.CacheSize
		if size == 0 {
			size = defaultCacheSize
		}
		h.cache = newResultCache(size)
		h.docs = make(map[string]storedDocument)

		h.mux = http.NewServeMux()
		h.mux.HandleFunc("POST /documents", h.handleDocument)
		h.mux.HandleFunc("POST /query", h.handleQuery)
		h.mux.HandleFunc("GET /ws", h.handleWebSocket)
	})

	h.mux.ServeHTTP(w, r)
}

func (h *Handler) handleDocument(w http.ResponseWriter, r *http.Request) {
	var doc Document
	if err := json.NewDecoder(r.Body).Decode(&doc); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if doc.URI == "" {
		http.Error(w, "missing document uri", http.StatusBadRequest)
		return
	}

	h.open(doc)
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleQuery(w http.ResponseWriter, r *http.Request) {
	var q Query
	if err := json.NewDecoder(r.Body).Decode(&q); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	result, err := h.execute(q)
	if err != nil {
		h.logger.Debug("Query failed", "uri", q.URI, "op", q.Op, "pos", q.Pos, "error", err)
		http.Error(w, err.Error(), statusCode(err))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(Response{ID: q.ID, Result: result}); err != nil {
		h.logger.Error("Write query response", "uri", q.URI, "error", err)
	}
}

func (h *Handler) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	ws, err := wsUpgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already replied to the client
		h.logger.Error("Upgrade websocket", "error", err)
		return
	}
	defer ws.Close()

	logger := h.logger.With("conn", uuid.NewString())
	logger.Debug("Websocket connected", "remote", r.RemoteAddr)

	if err := h.serveWebSocket(ws, logger); err != nil {
		logger.Error("Serve websocket", "remote", r.RemoteAddr, "error", err)
		return
	}
	logger.Debug("Websocket closed", "remote", r.RemoteAddr)
}

// serveWebSocket answers queries until the client closes the connection.
func (h *Handler) serveWebSocket(ws *websocket.Conn, logger *slog.Logger) error {
	for {
		var msg message
		if err := ws.ReadJSON(&msg); err != nil {
			if websocket.IsCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				return nil
			}
			return fmt.Errorf("read websocket message: %w", err)
		}

		var resp Response
		switch msg.Type {
		case "open":
			if msg.URI == "" {
				resp.Error = "missing document uri"
				break
			}
			h.open(Document{URI: msg.URI, Version: msg.Version, Text: msg.Text})
			continue
		case "query":
			q := Query{ID: msg.ID, URI: msg.URI, Version: msg.Version, Op: msg.Op, Pos: msg.Pos, Where: msg.Where}
			resp.ID = q.ID
			result, err := h.execute(q)
			if err != nil {
				logger.Debug("Query failed", "uri", q.URI, "op", q.Op, "pos", q.Pos, "error", err)
				resp.Error = err.Error()
			} else {
				resp.Result = result
			}
		default:
			resp.Error = fmt.Sprintf("unknown message type %q", msg.Type)
		}

		if err := ws.WriteJSON(resp); err != nil {
			return fmt.Errorf("write websocket message: %w", err)
		}
	}
}

// open stores a document and drops cached results of its older versions.
func (h *Handler) open(doc Document) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.gen++
	h.docs[doc.URI] = storedDocument{Document: doc, gen: h.gen}
	h.cache.invalidate(doc.URI)
	h.logger.Debug("Document opened", "uri", doc.URI, "version", doc.Version, "size", len(doc.Text))
}

func (h *Handler) document(uri string) (storedDocument, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	doc, ok := h.docs[uri]
	return doc, ok
}

// store caches a result computed from doc unless the document was replaced
// in the meantime.
func (h *Handler) store(doc storedDocument, key cacheKey, result any) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if cur, ok := h.docs[doc.URI]; !ok || cur.gen != doc.gen {
		h.logger.Debug("Drop result of replaced document", "uri", doc.URI, "version", doc.Version)
		return
	}
	h.cache.put(key, result)
}

// execute runs a query against the stored document.
func (h *Handler) execute(q Query) (any, error) {
	doc, ok := h.document(q.URI)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownDocument, q.URI)
	}
	if q.Version != 0 && q.Version != doc.Version {
		return nil, fmt.Errorf("%w: %s has version %d, got %d", ErrStaleVersion, q.URI, doc.Version, q.Version)
	}

	key := cacheKey{uri: doc.URI, gen: doc.gen, op: q.Op, pos: q.Pos, where: q.Where}
	if result, ok := h.cache.get(key); ok {
		return result, nil
	}

	result, err := h.run(doc.Text, q)
	if err != nil {
		return nil, err
	}

	h.store(doc, key, result)
	return result, nil
}

func (h *Handler) run(src string, q Query) (any, error) {
	filter, err := query.Compile(q.Where)
	if err != nil {
		return nil, err
	}

	m := htmlmatch.NewMatcher(h.Options)
	m.Logger = h.logger

	switch q.Op {
	case OpMatch, OpAttributes:
		tag, err := m.Match(src, q.Pos)
		if err != nil {
			return nil, err
		}
		if ok, err := filter.Match(tag); err != nil || !ok {
			return nil, err
		}
		if q.Op == OpAttributes {
			return tag.Attributes, nil
		}
		return tag, nil
	case OpOutward, OpInward:
		balance := m.BalancedOutward
		if q.Op == OpInward {
			balance = m.BalancedInward
		}
		tags, err := balance(src, q.Pos)
		if err != nil {
			return nil, err
		}
		return filter.Balanced(src, tags)
	case OpScan:
		return htmlmatch.Elements(src, h.Options)
	}

	return nil, fmt.Errorf("%w: %q", ErrUnknownOp, q.Op)
}

func statusCode(err error) int {
	switch {
	case errors.Is(err, ErrUnknownDocument):
		return http.StatusNotFound
	case errors.Is(err, ErrStaleVersion):
		return http.StatusConflict
	}
	return http.StatusBadRequest
}

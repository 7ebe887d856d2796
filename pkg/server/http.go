package server

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/bastiangx/wordtree/internal/logger"
	"github.com/bastiangx/wordtree/pkg/suggest"
	"github.com/charmbracelet/log"
	"github.com/rs/cors"
)

const (
	maxBodyBytes    = 1 << 20
	shutdownTimeout = 5 * time.Second
)

type wordRequest struct {
	Word   string `json:"word"`
	Method string `json:"method,omitempty"`
}

type checkPayload struct {
	Word        string   `json:"word"`
	Found       bool     `json:"found"`
	Suggestions []string `json:"suggestions,omitzero"`
	TimeMs      float64  `json:"timeMs"`
	Method      string   `json:"method"`
}

type addPayload struct {
	Word         string  `json:"word"`
	Success      bool    `json:"success"`
	Message      string  `json:"message"`
	Persisted    bool    `json:"persisted"`
	PersistError string  `json:"persistError,omitempty"`
	TimeMs       float64 `json:"timeMs"`
}

type listPayload struct {
	Words  []string `json:"words"`
	Count  int      `json:"count"`
	Method string   `json:"method"`
	TimeMs float64  `json:"timeMs"`
}

type suggestPayload struct {
	Prefix      string   `json:"prefix"`
	Suggestions []string `json:"suggestions"`
	Count       int      `json:"count"`
	TimeMs      float64  `json:"timeMs"`
}

type errorPayload struct {
	Error string `json:"error"`
}

type api struct {
	checker *suggest.Checker
	log     *log.Logger
}

// NewHTTPHandler returns the JSON API wrapped in CORS handling for the
// given origins.
func NewHTTPHandler(checker *suggest.Checker, allowedOrigins []string) http.Handler {
	a := &api{checker: checker, log: logger.New("http")}

	mux := http.NewServeMux()
	mux.HandleFunc("/api/check", a.onlyMethod(http.MethodPost, a.handleCheck))
	mux.HandleFunc("/api/add", a.onlyMethod(http.MethodPost, a.handleAdd))
	mux.HandleFunc("/api/list", a.onlyMethod(http.MethodGet, a.handleList))
	mux.HandleFunc("/api/suggest", a.onlyMethod(http.MethodGet, a.handleSuggest))
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		a.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	c := cors.New(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type"},
	})
	return c.Handler(mux)
}

// ServeHTTP listens on addr until ctx is done, then shuts down gracefully.
func ServeHTTP(ctx context.Context, addr string, handler http.Handler) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() {
		log.Infof("HTTP API listening on %s", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	log.Debug("Shutting down HTTP API")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return nil
}

func (a *api) onlyMethod(method string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != method {
			w.Header().Set("Allow", method)
			a.writeJSON(w, http.StatusMethodNotAllowed, errorPayload{Error: "Method not allowed"})
			return
		}
		next(w, r)
	}
}

func (a *api) handleCheck(w http.ResponseWriter, r *http.Request) {
	req, ok := a.decodeWord(w, r)
	if !ok {
		return
	}
	res, err := a.checker.Check(req.Word, req.Method)
	if err != nil {
		a.writeError(w, err)
		return
	}
	a.writeJSON(w, http.StatusOK, checkPayload{
		Word:        res.Word,
		Found:       res.Found,
		Suggestions: res.Suggestions,
		TimeMs:      millis(res.Elapsed),
		Method:      res.Method,
	})
}

func (a *api) handleAdd(w http.ResponseWriter, r *http.Request) {
	req, ok := a.decodeWord(w, r)
	if !ok {
		return
	}
	res, err := a.checker.Add(req.Word, req.Method)
	if err != nil {
		a.writeError(w, err)
		return
	}
	a.writeJSON(w, http.StatusOK, addPayload{
		Word:         res.Word,
		Success:      res.Added,
		Message:      res.Message,
		Persisted:    res.Persisted,
		PersistError: res.PersistError,
		TimeMs:       millis(res.Elapsed),
	})
}

func (a *api) handleList(w http.ResponseWriter, r *http.Request) {
	res, err := a.checker.List(r.URL.Query().Get("method"))
	if err != nil {
		a.writeError(w, err)
		return
	}
	a.writeJSON(w, http.StatusOK, listPayload{
		Words:  res.Words,
		Count:  res.Count,
		Method: res.Method,
		TimeMs: millis(res.Elapsed),
	})
}

func (a *api) handleSuggest(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	limit := 0
	if raw := q.Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			a.writeJSON(w, http.StatusBadRequest, errorPayload{Error: "limit must be an integer"})
			return
		}
		limit = n
	}

	start := time.Now()
	words, err := a.checker.Suggest(q.Get("q"), limit, q.Get("method"))
	if err != nil {
		a.writeError(w, err)
		return
	}
	a.writeJSON(w, http.StatusOK, suggestPayload{
		Prefix:      q.Get("q"),
		Suggestions: words,
		Count:       len(words),
		TimeMs:      millis(time.Since(start)),
	})
}

// decodeWord reads a {word, method} body; it writes the error response itself.
func (a *api) decodeWord(w http.ResponseWriter, r *http.Request) (wordRequest, bool) {
	var req wordRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		a.log.Debugf("Bad request body: %v", err)
		a.writeJSON(w, http.StatusBadRequest, errorPayload{Error: "Invalid JSON body"})
		return req, false
	}
	if req.Word == "" {
		a.writeJSON(w, http.StatusBadRequest, errorPayload{Error: "Word is required"})
		return req, false
	}
	return req, true
}

func (a *api) writeError(w http.ResponseWriter, err error) {
	code := StatusCode(err)
	if code >= http.StatusInternalServerError {
		a.log.Errorf("Request failed: %v", err)
		a.writeJSON(w, code, errorPayload{Error: "Internal server error"})
		return
	}
	a.writeJSON(w, code, errorPayload{Error: err.Error()})
}

func (a *api) writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		a.log.Errorf("Encoding response: %v", err)
	}
}

func millis(d time.Duration) float64 {
	return float64(d.Nanoseconds()) / 1e6
}

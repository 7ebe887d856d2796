package server

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/bastiangx/wordtree/internal/logger"
	"github.com/bastiangx/wordtree/pkg/suggest"
	"github.com/charmbracelet/log"
	"github.com/vmihailenco/msgpack/v5"
)

// Server handles msgpack IPC for the dictionary
type Server struct {
	checker      *suggest.Checker
	dec          *msgpack.Decoder
	out          *bufio.Writer
	enc          *msgpack.Encoder
	log          *log.Logger
	requestCount int
}

// NewServer creates an IPC server reading requests from r and writing
// responses to w, usually stdin and stdout.
func NewServer(checker *suggest.Checker, r io.Reader, w io.Writer) *Server {
	out := bufio.NewWriter(w)
	return &Server{
		checker: checker,
		dec:     msgpack.NewDecoder(bufio.NewReader(r)),
		out:     out,
		enc:     msgpack.NewEncoder(out),
		log:     logger.New("ipc"),
	}
}

// Start announces readiness and serves requests until the input ends.
func (s *Server) Start() error {
	s.log.Debug("Starting server")
	if err := s.send(StatusResponse{Status: "ready"}); err != nil {
		return err
	}

	for {
		raw, err := s.dec.DecodeRaw()
		if err != nil {
			if errors.Is(err, io.EOF) {
				s.log.Debugf("Input closed after %d requests", s.requestCount)
				return nil
			}
			return fmt.Errorf("reading request: %w", err)
		}
		s.requestCount++

		var req Request
		if err := msgpack.Unmarshal(raw, &req); err != nil {
			s.log.Errorf("Unmarshaling request: %v", err)
			if err := s.sendError("", "Invalid msgpack request", http.StatusBadRequest); err != nil {
				return err
			}
			continue
		}
		if err := s.handleRequest(req); err != nil {
			return err
		}
	}
}

// RequestCount returns how many messages have been read.
func (s *Server) RequestCount() int {
	return s.requestCount
}

// handleRequest dispatches on the command. Only write failures are returned.
func (s *Server) handleRequest(req Request) error {
	switch req.Cmd {
	case CmdCheck:
		res, err := s.checker.Check(req.Word, req.Method)
		if err != nil {
			return s.sendFailure(req.ID, err)
		}
		return s.send(CheckResponse{
			ID:          req.ID,
			Word:        res.Word,
			Found:       res.Found,
			Suggestions: res.Suggestions,
			Method:      res.Method,
			TimeTaken:   res.Elapsed.Microseconds(),
		})

	case CmdAdd:
		res, err := s.checker.Add(req.Word, req.Method)
		if err != nil {
			return s.sendFailure(req.ID, err)
		}
		return s.send(AddResponse{
			ID:           req.ID,
			Word:         res.Word,
			Success:      res.Added,
			Message:      res.Message,
			Persisted:    res.Persisted,
			PersistError: res.PersistError,
			TimeTaken:    res.Elapsed.Microseconds(),
		})

	case CmdList:
		res, err := s.checker.List(req.Method)
		if err != nil {
			return s.sendFailure(req.ID, err)
		}
		return s.send(ListResponse{
			ID:        req.ID,
			Words:     res.Words,
			Count:     res.Count,
			Method:    res.Method,
			TimeTaken: res.Elapsed.Microseconds(),
		})

	case CmdSuggest:
		start := time.Now()
		words, err := s.checker.Suggest(req.Word, req.Limit, req.Method)
		if err != nil {
			return s.sendFailure(req.ID, err)
		}
		return s.send(SuggestResponse{
			ID:          req.ID,
			Suggestions: words,
			Count:       len(words),
			TimeTaken:   time.Since(start).Microseconds(),
		})

	case CmdStats:
		return s.send(StatsResponse{ID: req.ID, Stats: s.checker.Stats()})

	case CmdHealth:
		return s.send(StatusResponse{ID: req.ID, Status: "ok"})

	default:
		return s.sendError(req.ID, fmt.Sprintf("Unknown command: %s", req.Cmd), http.StatusBadRequest)
	}
}

// send encodes one response and flushes it.
func (s *Server) send(response any) error {
	if err := s.enc.Encode(response); err != nil {
		s.log.Errorf("Encoding response: %v", err)
		return err
	}
	return s.out.Flush()
}

func (s *Server) sendError(id, message string, code int) error {
	return s.send(ErrorResponse{ID: id, Error: message, Code: code})
}

func (s *Server) sendFailure(id string, err error) error {
	code := StatusCode(err)
	if code >= http.StatusInternalServerError {
		s.log.Errorf("Request %s failed: %v", id, err)
	} else {
		s.log.Debugf("Request %s rejected: %v", id, err)
	}
	return s.sendError(id, err.Error(), code)
}

// StatusCode maps checker errors onto HTTP style status codes.
func StatusCode(err error) int {
	switch {
	case errors.Is(err, suggest.ErrEmptyWord),
		errors.Is(err, suggest.ErrWordTooLong),
		errors.Is(err, suggest.ErrUnknownMethod):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

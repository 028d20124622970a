// Package serve exposes the engine to editor integrations as an NDJSON
// request/response loop.
package serve

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"

	"github.com/praetorian-inc/tsce/pkg/paths"
	"github.com/praetorian-inc/tsce/pkg/refactor"
	"github.com/praetorian-inc/tsce/pkg/scanner"
	"github.com/praetorian-inc/tsce/pkg/syntax"
)

// Version is the server protocol version
const Version = "1.0.0"

// Server answers requests with a shared scanner core.
type Server struct {
	core    *scanner.Core
	encoder *json.Encoder
	decoder *json.Decoder
	logger  *slog.Logger
}

// NewServer creates a new streaming server. A nil logger discards.
func NewServer(core *scanner.Core, in io.Reader, out io.Writer, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Server{
		core:    core,
		encoder: json.NewEncoder(out),
		decoder: json.NewDecoder(bufio.NewReader(in)),
		logger:  logger,
	}
}

// Run starts the server main loop
func (s *Server) Run(ctx context.Context) error {
	s.sendReady()

	reqChan := make(chan Request, 1)
	errChan := make(chan error, 1)

	go func() {
		for {
			var req Request
			if err := s.decoder.Decode(&req); err != nil {
				errChan <- err
				return
			}
			select {
			case reqChan <- req:
			case <-ctx.Done():
				return
			}
		}
	}()

	// Process requests until stdin closes or context cancels
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case err := <-errChan:
			// Drain any pending requests before handling EOF
			for {
				select {
				case req := <-reqChan:
					if s.processRequest(req) {
						return nil
					}
				default:
					if err == io.EOF {
						return nil
					}
					s.sendError("decode", "request", err.Error())
					return nil
				}
			}
		case req := <-reqChan:
			if s.processRequest(req) {
				return nil
			}
		}
	}
}

// processRequest handles a single request and returns true if the server should exit
func (s *Server) processRequest(req Request) bool {
	s.logger.Debug("request", "type", req.Type)

	switch req.Type {
	case "context":
		handle(s, req, func(p PositionPayload) (any, error) {
			return s.core.Context(p.Text, p.Offset)
		})
	case "collect":
		handle(s, req, func(p TextPayload) (any, error) {
			components, err := s.core.Collect(p.Text)
			if err != nil {
				return nil, err
			}
			return CollectData{Components: components}, nil
		})
	case "locate":
		handle(s, req, func(p PositionPayload) (any, error) {
			component, err := s.core.Locate(p.Text, p.Offset)
			if err != nil {
				return nil, err
			}
			return LocateData{Component: component}, nil
		})
	case "declarations":
		handle(s, req, func(p DeclarationsPayload) (any, error) {
			return DeclarationsData{Declarations: s.core.Declarations(p.Export, p.Components...)}, nil
		})
	case "extract":
		handle(s, req, func(p ExtractPayload) (any, error) {
			mode, err := refactor.ParseMode(p.Mode)
			if err != nil {
				return nil, requestError{err}
			}
			return s.core.Extract(refactor.Request{
				Mode:   mode,
				Path:   p.Path,
				Text:   p.Text,
				Offset: p.Offset,
				Name:   p.Name,
			})
		})
	case "close":
		return true
	default:
		s.sendError("unknown", "request", "unknown request type: "+req.Type)
	}
	return false
}

// handle decodes the payload of req, runs fn and writes its outcome.
func handle[P any](s *Server, req Request, fn func(P) (any, error)) {
	var p P
	if len(req.Payload) > 0 {
		if err := json.Unmarshal(req.Payload, &p); err != nil {
			s.sendError(req.Type, "request", err.Error())
			return
		}
	}

	result, err := fn(p)
	if err != nil {
		s.sendError(req.Type, errorKind(err), err.Error())
		return
	}

	data, err := json.Marshal(result)
	if err != nil {
		s.sendError(req.Type, "internal", err.Error())
		return
	}
	s.encoder.Encode(Response{
		Success: true,
		Type:    req.Type,
		Data:    data,
	})
}

// requestError marks a malformed request.
type requestError struct{ error }

func (e requestError) Unwrap() error { return e.error }

func errorKind(err error) string {
	var reqErr requestError
	switch {
	case errors.Is(err, syntax.ErrSyntax):
		return "syntax"
	case errors.Is(err, refactor.ErrNoComponent):
		return "no_component"
	case errors.Is(err, refactor.ErrNoUnbound):
		return "no_unbound"
	case errors.Is(err, refactor.ErrNameRequired):
		return "name_required"
	case errors.Is(err, refactor.ErrUnsupportedFile):
		return "unsupported_file"
	case errors.Is(err, paths.ErrFileNotMatched):
		return "file_not_matched"
	case errors.As(err, &reqErr):
		return "request"
	}
	return "internal"
}

func (s *Server) sendReady() {
	modes := make([]string, len(refactor.Modes))
	for i, m := range refactor.Modes {
		modes[i] = string(m)
	}
	data, _ := json.Marshal(ReadyData{Version: Version, Modes: modes})
	s.encoder.Encode(Response{
		Success: true,
		Type:    "ready",
		Data:    data,
	})
}

func (s *Server) sendError(reqType, kind, msg string) {
	s.logger.Debug("request failed", "type", reqType, "kind", kind, "error", msg)
	s.encoder.Encode(Response{
		Success:   false,
		Type:      reqType,
		Error:     msg,
		ErrorKind: kind,
	})
}

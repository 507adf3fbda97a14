package server

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/tilespeak/tilespeak/internal/logger"
	"github.com/tilespeak/tilespeak/pkg/config"
	"github.com/tilespeak/tilespeak/pkg/suggest"
)

// Server handles the IPC loop around one engine.
type Server struct {
	engine     *suggest.Engine
	cfg        *config.Config
	configPath string

	decoder *msgpack.Decoder
	encoder *msgpack.Encoder
	out     *bufio.Writer

	logger       *log.Logger
	requestCount int
}

// NewServer wires a server to stdin/stdout. configPath is the explicit
// config file ("" for the default chain) consulted on hot reload.
func NewServer(engine *suggest.Engine, cfg *config.Config, configPath string) *Server {
	return NewServerWithIO(engine, cfg, configPath, os.Stdin, os.Stdout)
}

// NewServerWithIO is NewServer over arbitrary streams, for tests and for
// hosts that tunnel the protocol over something other than stdio.
func NewServerWithIO(engine *suggest.Engine, cfg *config.Config, configPath string, r io.Reader, w io.Writer) *Server {
	out := bufio.NewWriter(w)
	return &Server{
		engine:     engine,
		cfg:        cfg,
		configPath: configPath,
		decoder:    msgpack.NewDecoder(bufio.NewReader(r)),
		encoder:    msgpack.NewEncoder(out),
		out:        out,
		logger:     logger.New("ipc"),
	}
}

// Start runs the request loop until stdin closes or ctx is cancelled.
func (s *Server) Start(ctx context.Context) error {
	s.logger.Debug("Starting IPC server")
	s.send(AckResponse{Status: "ready"})

	for {
		if err := ctx.Err(); err != nil {
			return nil
		}
		var request Request
		if err := s.decoder.Decode(&request); err != nil {
			if errors.Is(err, io.EOF) {
				s.logger.Debug("Client closed stdin, shutting down")
				return nil
			}
			s.logger.Errorf("Decoding request: %v", err)
			s.send(ErrorResponse{Error: "invalid msgpack request", Code: 400})
			continue
		}
		s.handleRequest(ctx, request)
		s.maybeReloadConfig()
	}
}

func (s *Server) handleRequest(ctx context.Context, request Request) {
	s.requestCount++

	switch request.Command {
	case "complete":
		s.handleComplete(ctx, request)
	case "record":
		s.handleRecord(request)
	case "select":
		s.handleSelect(request)
	case "ignore":
		s.handleIgnore(request)
	case "sentence":
		s.handleSentence(request)
	case "stats":
		s.send(StatsResponse{ID: request.ID, Stats: s.engine.LearningStatistics()})
	case "health":
		s.send(AckResponse{ID: request.ID, Status: "ok"})
	default:
		s.send(ErrorResponse{ID: request.ID, Error: fmt.Sprintf("unknown command: %s", request.Command), Code: 400})
	}
}

func (s *Server) handleComplete(ctx context.Context, request Request) {
	limit := request.Limit
	if limit < 1 {
		limit = s.cfg.Engine.MaxSuggestions
	}
	if limit > s.cfg.Server.MaxLimit {
		limit = s.cfg.Server.MaxLimit
	}

	start := time.Now()
	suggestions := s.engine.GetSuggestions(ctx, suggest.Request{
		CurrentWords:        request.Words,
		AvailableVocabulary: request.Vocabulary,
		MaxResults:          limit,
		Category:            request.Category,
		CategoryVocabulary:  request.CategoryVocabulary,
	})
	elapsed := time.Since(start)

	response := CompleteResponse{
		ID:          request.ID,
		Suggestions: suggestions,
		Count:       len(suggestions),
		TimeTaken:   elapsed.Milliseconds(),
	}
	if fix, ok := s.engine.Repair(request.Words); ok {
		response.Repair = &Repair{
			Original:    fix.Original,
			Corrected:   fix.Corrected,
			Confidence:  fix.Confidence,
			Explanation: fix.Explanation,
		}
	}
	s.send(response)
}

func (s *Server) handleRecord(request Request) {
	if !s.validUtterance(request) {
		return
	}
	s.engine.RecordUtterance(request.Text, request.Category)
	s.send(AckResponse{ID: request.ID, Status: "ok"})
}

func (s *Server) handleSentence(request Request) {
	if !s.validUtterance(request) {
		return
	}
	s.engine.OnSentenceCompleted(request.Text)
	s.send(AckResponse{ID: request.ID, Status: "ok"})
}

func (s *Server) handleSelect(request Request) {
	if request.Suggestion == nil {
		s.send(ErrorResponse{ID: request.ID, Error: "missing 's' parameter", Code: 400})
		return
	}
	s.engine.OnSuggestionSelected(*request.Suggestion, request.Words, request.Category)
	s.send(AckResponse{ID: request.ID, Status: "ok"})
}

func (s *Server) handleIgnore(request Request) {
	if len(request.Ignored) == 0 {
		s.send(ErrorResponse{ID: request.ID, Error: "missing 'ignored' parameter", Code: 400})
		return
	}
	s.engine.OnSuggestionsIgnored(request.Ignored, request.Words, request.Category)
	s.send(AckResponse{ID: request.ID, Status: "ok"})
}

func (s *Server) validUtterance(request Request) bool {
	if request.Text == "" {
		s.send(ErrorResponse{ID: request.ID, Error: "missing 'text' parameter", Code: 400})
		return false
	}
	if len(request.Text) > s.cfg.Server.MaxUtteranceLen {
		s.send(ErrorResponse{
			ID:    request.ID,
			Error: fmt.Sprintf("utterance exceeds maximum length of %d", s.cfg.Server.MaxUtteranceLen),
			Code:  400,
		})
		return false
	}
	return true
}

// maybeReloadConfig re-reads the TOML config after every reload-interval
// requests and applies the new limits without restarting.
func (s *Server) maybeReloadConfig() {
	interval := s.cfg.Server.ReloadInterval
	if interval <= 0 || s.requestCount%interval != 0 {
		return
	}
	fresh, path, err := config.LoadConfigWithPriority(s.configPath)
	if err != nil {
		s.logger.Warnf("Config reload failed, keeping current settings: %v", err)
		return
	}
	s.cfg = fresh
	s.engine.ApplyConfig(fresh)
	s.logger.Debugf("Reloaded config from %s after %d requests", path, s.requestCount)
}

func (s *Server) send(response any) {
	if err := s.encoder.Encode(response); err != nil {
		s.logger.Errorf("Encoding response: %v", err)
		return
	}
	if err := s.out.Flush(); err != nil {
		s.logger.Errorf("Flushing response: %v", err)
	}
}

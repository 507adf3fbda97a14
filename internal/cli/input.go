// Package cli is an interactive stdin loop for testing the engine in
// real time, before features graduate to the IPC server.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tilespeak/tilespeak/internal/logger"
	"github.com/tilespeak/tilespeak/internal/utils"
	"github.com/tilespeak/tilespeak/pkg/suggest"
)

// InputHandler reads utterance prefixes from stdin and prints ranked
// suggestions. Lines starting with a colon run commands instead:
// ":say <text>" completes a sentence, ":stats" prints the learning
// report, ":reset" wipes the scope.
type InputHandler struct {
	engine       *suggest.Engine
	log          *log.Logger
	suggestLimit int
	maxInputLen  int
	noFilter     bool
	requestCount int
}

// NewInputHandler wires the loop with display parameters.
func NewInputHandler(engine *suggest.Engine, limit, maxInputLen int, noFilter bool) *InputHandler {
	return &InputHandler{
		engine:       engine,
		log:          logger.Default(""),
		suggestLimit: limit,
		maxInputLen:  maxInputLen,
		noFilter:     noFilter,
	}
}

// Start begins the input loop. It terminates on stdin EOF or read error.
func (h *InputHandler) Start() error {
	h.log.Print("TileSpeak CLI")
	reader := bufio.NewReader(os.Stdin)
	h.log.Print("type an utterance prefix and press Enter (Ctrl+C to exit):")
	h.log.Print("commands: :say <text>, :stats, :reset")

	for {
		h.log.Print("> ")
		line, err := reader.ReadString('\n')
		if err != nil {
			return err
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, ":") {
			h.handleCommand(line)
			continue
		}
		h.handleInput(line)
	}
}

func (h *InputHandler) handleCommand(line string) {
	command, rest, _ := strings.Cut(line, " ")
	switch command {
	case ":say":
		if strings.TrimSpace(rest) == "" {
			h.log.Error("usage: :say <text>")
			return
		}
		h.engine.OnSentenceCompleted(rest)
		h.log.Printf("Recorded sentence: %q", rest)
		for _, pred := range h.engine.PredictNextIntent(utils.Tokenize(rest), 3) {
			h.log.Printf("  next intent %-10s (confidence %.2f)", pred.Intent, pred.Confidence)
		}
	case ":stats":
		stats := h.engine.LearningStatistics()
		h.log.Printf("interactions: %d, selection rate: %.2f, accuracy: %.2f",
			stats.TotalInteractions, stats.SelectionRate, stats.ModelAccuracy)
		for _, wc := range stats.TopSelectedWords {
			h.log.Printf("  picked %-16s %d times", wc.Word, wc.Count)
		}
	case ":reset":
		if err := h.engine.Reset(); err != nil {
			h.log.Errorf("Reset failed: %v", err)
			return
		}
		h.log.Print("Scope reset to cold start")
	default:
		h.log.Errorf("Unknown command: %s", command)
	}
}

// handleInput runs one suggestion query and prints the ranked results
// along with the best grammar repair, if any rule fires.
func (h *InputHandler) handleInput(line string) {
	h.requestCount++

	if len(line) > h.maxInputLen {
		h.log.Errorf("Input too long: %d characters", len(line))
		return
	}
	if !h.noFilter && !utils.IsValidInput(line) {
		h.log.Warnf("No suggestions for input: '%s' (filtered out)", line)
		return
	}

	words := utils.Tokenize(line)

	start := time.Now()
	suggestions := h.engine.GetSuggestions(context.Background(), suggest.Request{
		CurrentWords: words,
		MaxResults:   h.suggestLimit,
	})
	elapsed := time.Since(start)
	h.log.Debugf("Took %v for input '%s'", elapsed, line)

	if len(suggestions) == 0 {
		h.log.Warnf("No suggestions found for input: '%s'", line)
		return
	}

	h.log.Printf("Found %d suggestions for '%s':", len(suggestions), line)
	for i, s := range suggestions {
		clText := fmt.Sprintf("\033[38;5;75m%s\033[0m", s.Text)
		h.log.Printf("%2d. %-40s (%-20s %.2f)", i+1, clText, s.Type, s.Confidence)
	}

	if fix, ok := h.engine.Repair(words); ok {
		h.log.Printf("repair: %q -> %q (%.2f, %s)", fix.Original, fix.Corrected, fix.Confidence, fix.Explanation)
	}
}

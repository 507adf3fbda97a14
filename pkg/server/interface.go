/*
Package server implements msgpack IPC for the suggestion engine.

The server speaks a request/response protocol over stdin/stdout using
binary msgpack framing. Each request carries an ID echoed back in the
response, a command, and command-specific fields.

# IPC

A completion request and its response:

	{"id": "req_001", "cmd": "complete", "w": ["i", "want"], "l": 8}
	{"id": "req_001", "s": [{"text": "water", "type": "completion", "confidence": 0.91}], "c": 1, "t": 2}

Learning commands acknowledge with a status:

	{"id": "req_002", "cmd": "record", "text": "i want water"}
	{"id": "req_002", "status": "ok"}

Supported commands: "complete" (ranked suggestions plus an optional
grammar repair), "record" (learn an utterance), "select" (a suggestion
was tapped), "ignore" (suggestions were scrolled past), "sentence"
(a sentence was spoken; drives intent sequencing), "stats" (learning
report), "health".

The server counts requests and re-reads its TOML config after every
reload-interval requests, so limits can be tuned without a restart.
Stdout carries only msgpack frames; all logging goes to stderr.
*/
package server

import "github.com/tilespeak/tilespeak/pkg/suggest"

// Request is the envelope for every inbound command.
type Request struct {
	ID                 string               `msgpack:"id"`
	Command            string               `msgpack:"cmd"`
	Words              []string             `msgpack:"w,omitempty"`
	Text               string               `msgpack:"text,omitempty"`
	Category           string               `msgpack:"cat,omitempty"`
	Vocabulary         []string             `msgpack:"vocab,omitempty"`
	CategoryVocabulary []string             `msgpack:"cat_vocab,omitempty"`
	Limit              int                  `msgpack:"l,omitempty"`
	Suggestion         *suggest.Suggestion  `msgpack:"s,omitempty"`
	Ignored            []suggest.Suggestion `msgpack:"ignored,omitempty"`
}

// Repair is the optional grammar correction attached to completions.
type Repair struct {
	Original    string  `msgpack:"original"`
	Corrected   string  `msgpack:"corrected"`
	Confidence  float64 `msgpack:"confidence"`
	Explanation string  `msgpack:"explanation"`
}

// CompleteResponse answers a "complete" command.
type CompleteResponse struct {
	ID          string               `msgpack:"id"`
	Suggestions []suggest.Suggestion `msgpack:"s"`
	Repair      *Repair              `msgpack:"repair,omitempty"`
	Count       int                  `msgpack:"c"`
	TimeTaken   int64                `msgpack:"t"`
}

// AckResponse answers fire-and-forget learning commands.
type AckResponse struct {
	ID     string `msgpack:"id"`
	Status string `msgpack:"status"`
}

// StatsResponse answers a "stats" command.
type StatsResponse struct {
	ID    string             `msgpack:"id"`
	Stats suggest.Statistics `msgpack:"stats"`
}

// ErrorResponse reports a rejected request.
type ErrorResponse struct {
	ID    string `msgpack:"id,omitempty"`
	Error string `msgpack:"e"`
	Code  int    `msgpack:"c"`
}

package server

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/tilespeak/tilespeak/pkg/config"
	"github.com/tilespeak/tilespeak/pkg/patterns"
	"github.com/tilespeak/tilespeak/pkg/suggest"
)

// runSession feeds the requests through a server and returns the decoder
// positioned after the initial ready frame.
func runSession(t *testing.T, requests []Request) *msgpack.Decoder {
	t.Helper()

	cfg := config.DefaultConfig()
	store := patterns.NewStore(filepath.Join(t.TempDir(), "patterns.db"), "test-user")
	engine := suggest.NewEngine(cfg, store, nil)
	require.NoError(t, engine.Load(context.Background()))
	t.Cleanup(func() { engine.Close() })

	var in bytes.Buffer
	enc := msgpack.NewEncoder(&in)
	for _, req := range requests {
		require.NoError(t, enc.Encode(req))
	}

	var out bytes.Buffer
	srv := NewServerWithIO(engine, cfg, "", &in, &out)
	require.NoError(t, srv.Start(context.Background()))

	dec := msgpack.NewDecoder(&out)
	var ready AckResponse
	require.NoError(t, dec.Decode(&ready))
	require.Equal(t, "ready", ready.Status)
	return dec
}

func TestHealthAndUnknownCommand(t *testing.T) {
	dec := runSession(t, []Request{
		{ID: "1", Command: "health"},
		{ID: "2", Command: "teleport"},
	})

	var ack AckResponse
	require.NoError(t, dec.Decode(&ack))
	assert.Equal(t, AckResponse{ID: "1", Status: "ok"}, ack)

	var errResp ErrorResponse
	require.NoError(t, dec.Decode(&errResp))
	assert.Equal(t, "2", errResp.ID)
	assert.Equal(t, 400, errResp.Code)
}

func TestCompleteRoundTrip(t *testing.T) {
	dec := runSession(t, []Request{
		{ID: "c1", Command: "complete", Words: []string{"i", "want"}, Limit: 5},
	})

	var resp CompleteResponse
	require.NoError(t, dec.Decode(&resp))
	assert.Equal(t, "c1", resp.ID)
	assert.Equal(t, len(resp.Suggestions), resp.Count)
	assert.LessOrEqual(t, resp.Count, 5)
	assert.NotEmpty(t, resp.Suggestions)
}

func TestCompleteAttachesRepair(t *testing.T) {
	dec := runSession(t, []Request{
		{ID: "c1", Command: "complete", Words: []string{"he", "want", "water"}, Limit: 5},
	})

	var resp CompleteResponse
	require.NoError(t, dec.Decode(&resp))
	require.NotNil(t, resp.Repair)
	assert.Equal(t, "he wants water", resp.Repair.Corrected)
	assert.GreaterOrEqual(t, resp.Repair.Confidence, 0.85)
}

func TestRecordThenCompleteLearns(t *testing.T) {
	requests := []Request{
		{ID: "r1", Command: "record", Text: "i want water"},
		{ID: "r2", Command: "record", Text: "i want water"},
		{ID: "r3", Command: "record", Text: "i want water"},
		{ID: "c1", Command: "complete", Words: []string{"i", "want"}, Limit: 3},
	}
	dec := runSession(t, requests)

	var ack AckResponse
	for i := 0; i < 3; i++ {
		require.NoError(t, dec.Decode(&ack))
		assert.Equal(t, "ok", ack.Status)
	}

	var resp CompleteResponse
	require.NoError(t, dec.Decode(&resp))
	found := false
	for _, s := range resp.Suggestions {
		if s.Text == "water" {
			found = true
		}
	}
	assert.True(t, found, "recorded phrase should surface: %v", resp.Suggestions)
}

func TestSelectIgnoreAndStats(t *testing.T) {
	picked := suggest.Suggestion{Text: "water", Type: suggest.TypeNextWord, Confidence: 0.8}
	skipped := suggest.Suggestion{Text: "juice", Type: suggest.TypeNextWord, Confidence: 0.6}

	dec := runSession(t, []Request{
		{ID: "s1", Command: "select", Suggestion: &picked, Words: []string{"i", "want"}},
		{ID: "s2", Command: "ignore", Ignored: []suggest.Suggestion{skipped}, Words: []string{"i", "want"}},
		{ID: "s3", Command: "stats"},
	})

	var ack AckResponse
	require.NoError(t, dec.Decode(&ack))
	require.NoError(t, dec.Decode(&ack))

	var stats StatsResponse
	require.NoError(t, dec.Decode(&stats))
	assert.Equal(t, "s3", stats.ID)
	assert.Equal(t, 2, stats.Stats.TotalInteractions)
	assert.InDelta(t, 0.5, stats.Stats.SelectionRate, 1e-9)
}

func TestRejectsOversizeUtterance(t *testing.T) {
	long := make([]byte, 0, 600)
	for len(long) < 600 {
		long = append(long, "blah "...)
	}
	dec := runSession(t, []Request{
		{ID: "r1", Command: "record", Text: string(long)},
		{ID: "r2", Command: "record"},
	})

	var errResp ErrorResponse
	require.NoError(t, dec.Decode(&errResp))
	assert.Equal(t, "r1", errResp.ID)
	require.NoError(t, dec.Decode(&errResp))
	assert.Equal(t, "r2", errResp.ID)
}

package log

import (
	"bytes"
	"encoding/json"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetLevel(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	defer SetOutput(os.Stderr)
	defer func() { _ = SetLevel("info") }()

	require.NoError(t, SetLevel("warn"))
	Infof("hidden %d", 1)
	Warnf("shown %d", 2)
	assert.NotContains(t, buf.String(), "hidden 1")
	assert.Contains(t, buf.String(), "shown 2")

	assert.Error(t, SetLevel("verbose"))
	assert.NoError(t, SetLevel(""))
}

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (s *syncBuffer) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buf.Write(p)
}

func (s *syncBuffer) String() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buf.String()
}

func TestCollector_Sink(t *testing.T) {
	collector := &Collector{}
	out := &syncBuffer{}
	collector.Sink(out, LLMOutput)

	collector.Publish(NewEvent(LLMInput, map[string]string{"message": "skip"}))
	collector.Publish(NewEvent(LLMOutput, map[string]string{"text": "hello", "apiKey": "sk-live-123456789"}))

	require.Eventually(t, func() bool {
		return strings.Contains(out.String(), "hello")
	}, time.Second, 10*time.Millisecond)

	line := strings.TrimSpace(out.String())
	assert.NotContains(t, line, "skip")
	var event struct {
		EventType string            `json:"eventtype"`
		Payload   map[string]string `json:"p"`
	}
	require.NoError(t, json.Unmarshal([]byte(line), &event))
	assert.EqualValues(t, "LLM_OUTPUT", event.EventType)
	assert.EqualValues(t, "hello", event.Payload["text"])
	assert.EqualValues(t, "***REDACTED***", event.Payload["apiKey"])
}

func TestParseEventTypes(t *testing.T) {
	assert.EqualValues(t, []EventType{LLMInput, LLMError}, ParseEventTypes([]string{"LLM_INPUT", "", "LLM_ERROR"}))
}

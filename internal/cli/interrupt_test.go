package cli

import (
	"bytes"
	"context"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// syncBuffer provides thread-safe access to a bytes.Buffer.
type syncBuffer struct {
	buf bytes.Buffer
	mu  sync.Mutex
}

func (s *syncBuffer) Write(p []byte) (n int, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buf.Write(p)
}

func (s *syncBuffer) String() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buf.String()
}

func TestNewInterruptHandler(t *testing.T) {
	tests := []struct {
		writer io.Writer
		name   string
	}{
		{
			name:   "with custom writer",
			writer: &bytes.Buffer{},
		},
		{
			name:   "with nil writer",
			writer: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := NewInterruptHandler(tt.writer, "push")
			assert.NotNil(t, handler)
			assert.NotNil(t, handler.writer)
			assert.False(t, handler.interrupted)
		})
	}
}

func TestHandleInterrupts(t *testing.T) {
	output := &syncBuffer{}
	handler := NewInterruptHandler(output, "push")

	ctx, cancel := context.WithCancel(context.Background())
	ctx = handler.HandleInterrupts(ctx, true)

	select {
	case <-ctx.Done():
		t.Fatal("Context should not be canceled initially")
	default:
	}

	cancel()

	assert.Eventually(t, handler.WasInterrupted, time.Second, 10*time.Millisecond)
	assert.Eventually(t, func() bool {
		return strings.Contains(output.String(), "Run again with: payments push")
	}, time.Second, 10*time.Millisecond)
	assert.Contains(t, output.String(), "Push interrupted!")
}

func TestHandleInterrupts_NotSaved(t *testing.T) {
	output := &syncBuffer{}
	handler := NewInterruptHandler(output, "push")

	ctx, cancel := context.WithCancel(context.Background())
	_ = handler.HandleInterrupts(ctx, false)
	cancel()

	assert.Eventually(t, func() bool {
		return strings.Contains(output.String(), "Push interrupted!")
	}, time.Second, 10*time.Millisecond)
	assert.NotContains(t, output.String(), "saved locally")
}

func TestStopIsSilent(t *testing.T) {
	output := &syncBuffer{}
	handler := NewInterruptHandler(output, "push")

	ctx := handler.HandleInterrupts(context.Background(), true)
	handler.Stop()

	<-ctx.Done()
	time.Sleep(20 * time.Millisecond)
	assert.False(t, handler.WasInterrupted())
	assert.Empty(t, output.String())
}

func TestShowInterruptMessage(t *testing.T) {
	tests := []struct {
		name        string
		operation   string
		expected    []string
		notExpected []string
		saved       bool
	}{
		{
			name:      "saved",
			operation: "push",
			saved:     true,
			expected: []string{
				"Push interrupted!",
				"Your payments are saved locally",
			},
		},
		{
			name:        "unnamed operation",
			operation:   "",
			expected:    []string{"Operation interrupted!"},
			notExpected: []string{"Run again"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var output bytes.Buffer
			handler := &InterruptHandler{
				writer:    &output,
				operation: tt.operation,
				saved:     tt.saved,
			}

			handler.showInterruptMessage()

			outputStr := output.String()
			for _, expected := range tt.expected {
				assert.Contains(t, outputStr, expected)
			}
			for _, notExpected := range tt.notExpected {
				assert.NotContains(t, outputStr, notExpected)
			}
		})
	}
}

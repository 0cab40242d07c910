package progress

import (
	"bytes"
	"context"
	"strings"
	"sync"
	"testing"
	"time"
)

// syncBuffer guards a bytes.Buffer shared with the animation goroutine.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestLine(t *testing.T) {
	tests := []struct {
		percent int
		label   string
		want    string
	}{
		{0, "start", "[  0%] start"},
		{50, "extraction done", "[ 50%] extraction done"},
		{100, "complete", "[100%] complete"},
	}
	for _, tt := range tests {
		if got := Line(tt.percent, tt.label); got != tt.want {
			t.Errorf("Line(%d, %q) = %q, want %q", tt.percent, tt.label, got, tt.want)
		}
	}
}

func TestIndicatorPlainLines(t *testing.T) {
	var buf syncBuffer
	ind := New(context.Background(), &buf)
	if ind.animate {
		t.Fatal("a buffer is not a terminal")
	}

	ind.Update(0, "before start") // not shown
	ind.Start()
	ind.Update(0, "starting extraction")
	ind.Update(50, "extraction done")
	ind.Update(100, "complete")
	ind.Stop()

	want := "[  0%] starting extraction\n[ 50%] extraction done\n[100%] complete\n"
	if got := buf.String(); got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

func TestIndicatorStartStop(t *testing.T) {
	var buf syncBuffer
	ind := New(context.Background(), &buf)
	ind.animate = true

	if ind.IsActive() {
		t.Error("indicator should not be active initially")
	}

	ind.Update(60, "analyzing keywords")
	ind.Start()
	ind.Start() // no second goroutine
	if !ind.IsActive() {
		t.Error("indicator should be active after Start()")
	}

	time.Sleep(250 * time.Millisecond)
	ind.Stop()
	ind.Stop()

	if ind.IsActive() {
		t.Error("indicator should not be active after Stop()")
	}

	output := buf.String()
	if !strings.Contains(output, "[ 60%] analyzing keywords") {
		t.Errorf("output %q missing progress line", output)
	}
	if !strings.HasSuffix(output, "\r\033[2K") {
		t.Errorf("output should end by clearing the line, got %q", output)
	}
}

func TestIndicatorUpdateClamps(t *testing.T) {
	ind := New(context.Background(), &syncBuffer{})

	ind.Update(-5, "x")
	if ind.percent != 0 {
		t.Errorf("percent = %d, want 0", ind.percent)
	}
	ind.Update(250, "y")
	if ind.percent != 100 || ind.label != "y" {
		t.Errorf("percent, label = %d, %q", ind.percent, ind.label)
	}
}

func TestIndicatorContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	ind := New(ctx, &syncBuffer{})
	ind.animate = true
	ind.Start()
	cancel()

	done := make(chan struct{})
	go func() {
		ind.Stop()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Stop() did not return after context cancellation")
	}
}

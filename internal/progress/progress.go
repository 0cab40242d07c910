// Package progress renders analysis progress on stderr.
//
// On a terminal the current "[ 50%] label" line is redrawn in place with a
// spinner frame. Any other writer gets one plain line per update, so logs and
// redirected output carry every milestone and no control sequences.
package progress

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"golang.org/x/term"
)

var frames = []string{"◜", "◠", "◝", "◞", "◡", "◟"}

// Indicator shows "[ 50%] label" progress until stopped.
type Indicator struct {
	writer  io.Writer
	animate bool // redraw one line in place
	delay   time.Duration
	ctx     context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup
	mu      sync.RWMutex
	active  bool
	frame   int
	percent int
	label   string
}

// New creates an indicator writing to w. The line is animated only when w is
// a terminal. ctx stops the animation goroutine.
func New(ctx context.Context, w io.Writer) *Indicator {
	ictx, cancel := context.WithCancel(ctx)
	f, ok := w.(*os.File)
	return &Indicator{
		writer:  w,
		animate: ok && IsTerminal(f),
		delay:   100 * time.Millisecond,
		ctx:     ictx,
		cancel:  cancel,
	}
}

// Start begins showing progress. Calling it twice has no effect.
func (ind *Indicator) Start() {
	ind.mu.Lock()
	defer ind.mu.Unlock()
	if ind.active {
		return
	}
	ind.active = true
	if ind.animate {
		ind.wg.Add(1)
		go ind.run()
	}
}

// Update records the current percentage and label and shows them at once.
// Its signature matches analysis.ProgressFunc.
func (ind *Indicator) Update(percent int, label string) {
	if percent < 0 {
		percent = 0
	} else if percent > 100 {
		percent = 100
	}
	ind.mu.Lock()
	defer ind.mu.Unlock()
	ind.percent, ind.label = percent, label
	if !ind.active {
		return
	}
	if ind.animate {
		ind.draw()
		return
	}
	fmt.Fprintln(ind.writer, Line(percent, label))
}

// Stop ends the animation and clears the line.
func (ind *Indicator) Stop() {
	ind.mu.Lock()
	if !ind.active {
		ind.mu.Unlock()
		return
	}
	ind.active = false
	ind.cancel()
	ind.mu.Unlock()

	ind.wg.Wait()

	if ind.animate {
		fmt.Fprint(ind.writer, "\r\033[2K")
	}
}

// IsActive reports whether the animation is running.
func (ind *Indicator) IsActive() bool {
	ind.mu.RLock()
	defer ind.mu.RUnlock()
	return ind.active
}

// Line formats a progress line without the animation frame.
func Line(percent int, label string) string {
	return fmt.Sprintf("[%3d%%] %s", percent, label)
}

func (ind *Indicator) run() {
	defer ind.wg.Done()

	ticker := time.NewTicker(ind.delay)
	defer ticker.Stop()

	for {
		select {
		case <-ind.ctx.Done():
			return
		case <-ticker.C:
			ind.mu.Lock()
			ind.frame++
			ind.draw()
			ind.mu.Unlock()
		}
	}
}

// draw redraws the animated line; ind.mu must be held.
func (ind *Indicator) draw() {
	// clear to end of line so a shorter label leaves no residue
	fmt.Fprintf(ind.writer, "\r%s %s\033[K", frames[ind.frame%len(frames)], Line(ind.percent, ind.label))
}

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

package audio

import (
	"sync"
	"time"
)

// NullOutput is a silent output for hosts without an audio device.
// It keeps a wall clock and discards every voice.
type NullOutput struct {
	mu      sync.Mutex
	started time.Time
	state   State
}

// NewNullOutput creates a running null output.
func NewNullOutput() *NullOutput {
	return &NullOutput{started: time.Now(), state: StateRunning}
}

// State implements Output.
func (n *NullOutput) State() State {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.state
}

// Suspend pauses the output until Resume is called.
func (n *NullOutput) Suspend() error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.state == StateClosed {
		return ErrClosed
	}
	n.state = StateSuspended
	return nil
}

// Resume implements Output.
func (n *NullOutput) Resume() error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.state == StateClosed {
		return ErrClosed
	}
	n.state = StateRunning
	return nil
}

// Now implements Output.
func (n *NullOutput) Now() time.Duration {
	return time.Since(n.started)
}

// Schedule implements Output.
func (n *NullOutput) Schedule(v Voice) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.state == StateClosed {
		return ErrClosed
	}
	return nil
}

// Close implements Output.
func (n *NullOutput) Close() error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.state = StateClosed
	return nil
}

package audio

import (
	"sync"
	"time"
)

// recordingOutput is an Output that records every call made into it.
type recordingOutput struct {
	mu sync.Mutex

	state       State
	now         time.Duration
	scheduleErr error
	panicOn     string

	voices      []Voice
	resumeCalls int
	nowCalls    int
	closeCalls  int
}

func newRecordingOutput() *recordingOutput {
	return &recordingOutput{state: StateRunning, now: 2 * time.Second}
}

func (r *recordingOutput) State() State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

func (r *recordingOutput) Resume() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.resumeCalls++
	r.state = StateRunning
	return nil
}

func (r *recordingOutput) Now() time.Duration {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nowCalls++
	return r.now
}

func (r *recordingOutput) Schedule(v Voice) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.panicOn == "schedule" {
		panic("device lost")
	}
	if r.scheduleErr != nil {
		return r.scheduleErr
	}
	r.voices = append(r.voices, v)
	return nil
}

func (r *recordingOutput) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.closeCalls++
	r.state = StateClosed
	return nil
}

// calls returns the number of clock reads plus scheduled voices.
func (r *recordingOutput) calls() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.nowCalls + len(r.voices)
}

func (r *recordingOutput) scheduled() []Voice {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Voice(nil), r.voices...)
}

// openerFor returns an Opener handing out the given output.
func openerFor(out Output) Opener {
	return func() (Output, error) { return out, nil }
}

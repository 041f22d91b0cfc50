package input

import (
	"bufio"
	"context"
	"io"
	"os"
)

// StdinAdapter reads events from standard input, one per line.
type StdinAdapter struct {
	reader io.Reader
}

// NewStdinAdapter creates a new StdinAdapter reading from os.Stdin.
func NewStdinAdapter() *StdinAdapter {
	return &StdinAdapter{reader: os.Stdin}
}

// NewStdinAdapterWithReader creates a new StdinAdapter with a custom reader.
func NewStdinAdapterWithReader(r io.Reader) *StdinAdapter {
	return &StdinAdapter{reader: r}
}

// Name returns the adapter identifier.
func (a *StdinAdapter) Name() string {
	return "stdin"
}

// Run reads lines until EOF or cancellation. Reading happens on a separate
// goroutine so a blocked terminal read does not delay shutdown.
func (a *StdinAdapter) Run(ctx context.Context, onEvent func(Event), onError func(error)) error {
	type scanned struct {
		n    int
		text string
	}

	lines := make(chan scanned)
	scanErr := make(chan error, 1)

	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(a.reader)
		n := 0
		for scanner.Scan() {
			n++
			select {
			case lines <- scanned{n: n, text: scanner.Text()}:
			case <-ctx.Done():
				return
			}
		}
		scanErr <- scanner.Err()
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case l, ok := <-lines:
			if !ok {
				select {
				case err := <-scanErr:
					if err != nil {
						return &AdapterError{Source: "stdin", Message: "failed to read stdin", Err: err}
					}
				default:
				}
				return nil
			}

			ev, ok, err := ParseEvent(l.text)
			if err != nil {
				if onError != nil {
					onError(&ParseError{Line: l.n, Text: l.text, Err: err})
				}
				continue
			}
			if !ok {
				continue
			}
			ev.Line = l.n
			onEvent(ev)
		}
	}
}

package utils

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"golang.org/x/term"
)

// Spinner initializes the process indicator.
type Spinner struct {
	w        io.Writer
	enabled  bool
	stopChan chan struct{}
	done     sync.WaitGroup
}

// NewSpinner instantiates a new Spinner writing to stderr. The spinner stays
// silent when stderr is not a terminal.
func NewSpinner() *Spinner {
	return &Spinner{
		w:       os.Stderr,
		enabled: term.IsTerminal(int(os.Stderr.Fd())),
	}
}

// Start starts the process indicator.
func (s *Spinner) Start(message string) {
	if !s.enabled {
		return
	}
	s.stopChan = make(chan struct{}, 1)
	s.done.Add(1)

	go func() {
		defer s.done.Done()
		for {
			for _, r := range `-\|/` {
				select {
				case <-s.stopChan:
					fmt.Fprint(s.w, "\r\x1b[K")
					return
				default:
					fmt.Fprintf(s.w, "\r%s%s %c%s", message, SuccessColor, r, DefaultColor)
					time.Sleep(time.Millisecond * 100)
				}
			}
		}
	}()
}

// Stop stops the process indicator.
func (s *Spinner) Stop() {
	if !s.enabled || s.stopChan == nil {
		return
	}
	s.stopChan <- struct{}{}
	s.done.Wait()
	s.stopChan = nil
}

package printer

import (
	"io"
	"os"
	"sync"
)

// Service writes whole lines to a shared writer. Lines written from different
// goroutines never tear; their relative order is whatever the scheduler
// produces.
type Service struct {
	writer io.Writer
	mux    sync.Mutex
	lines  int
}

// New creates a printer writing to w, or standard output when w is nil
func New(w io.Writer) *Service {
	if w == nil {
		w = os.Stdout
	}
	return &Service{writer: w}
}

// Println writes message followed by a newline in a single write
func (s *Service) Println(message string) error {
	buf := make([]byte, 0, len(message)+1)
	buf = append(buf, message...)
	buf = append(buf, '\n')

	s.mux.Lock()
	defer s.mux.Unlock()
	if _, err := s.writer.Write(buf); err != nil {
		return err
	}
	s.lines++
	return nil
}

// Lines returns the number of lines written so far
func (s *Service) Lines() int {
	s.mux.Lock()
	defer s.mux.Unlock()
	return s.lines
}

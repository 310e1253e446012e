// internal/writer/writer.go
package writer

import (
	"errors"
	"fmt"
	"strings"

	"github.com/tamzrod/sensor-dashboard/internal/availability"
)

type fanOut struct {
	names   []string
	writers []Writer
}

// Named pairs a writer with the name used in error messages.
type Named struct {
	Name   string
	Writer Writer
}

// New fans every result out to all writers. Every writer is attempted;
// failures are collected, not short-circuited.
func New(writers ...Named) Writer {
	w := &fanOut{}
	for _, n := range writers {
		if n.Writer == nil {
			continue
		}
		w.names = append(w.names, n.Name)
		w.writers = append(w.writers, n.Writer)
	}
	return w
}

func (w *fanOut) Write(res availability.Result) error {
	var errs []string

	for i, wr := range w.writers {
		if err := wr.Write(res); err != nil {
			errs = append(errs, fmt.Sprintf("writer %s: %v", w.names[i], err))
		}
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, " | "))
	}

	return nil
}

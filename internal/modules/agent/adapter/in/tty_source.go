package in

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/term"

	"timetrack/internal/platform/clock"
)

// TTYActivitySource polls a terminal device and reports input whenever its
// access time moves, the same signal `w` uses for idle columns.
type TTYActivitySource struct {
	path     string
	interval time.Duration
	reporter *ActivityReporter
	clock    clock.Clock
	log      logrus.FieldLogger
	stat     func(path string) (time.Time, error)
}

func NewTTYActivitySource(path string, interval time.Duration, reporter *ActivityReporter, clk clock.Clock, log logrus.FieldLogger) *TTYActivitySource {
	return &TTYActivitySource{
		path:     path,
		interval: interval,
		reporter: reporter,
		clock:    clk,
		log:      log.WithField("source", "tty"),
		stat:     accessTime,
	}
}

var errNotTerminal = errors.New("stdin is not a terminal")

// DefaultTTY resolves the terminal attached to stdin.
func DefaultTTY() (string, error) {
	return resolveTTY(term.IsTerminal(int(os.Stdin.Fd())), stdinPath)
}

func resolveTTY(isTerminal bool, resolve func() (string, error)) (string, error) {
	if !isTerminal {
		return "", errNotTerminal
	}
	path, err := resolve()
	if err != nil {
		return "", fmt.Errorf("resolve stdin tty: %w", err)
	}
	return path, nil
}

func (s *TTYActivitySource) Run(ctx context.Context) error {
	last, err := s.stat(s.path)
	if err != nil {
		return fmt.Errorf("stat %s: %w", s.path, err)
	}
	s.log.WithField("path", s.path).Info("watching terminal input")

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			seen, err := s.stat(s.path)
			if err != nil {
				s.log.WithError(err).Warn("stat tty failed")
				continue
			}
			if seen.After(last) {
				last = seen
				s.reporter.Report(s.clock.Now())
			}
		}
	}
}

package in

import (
	"context"
	"os"
	"os/signal"

	"github.com/sirupsen/logrus"

	"timetrack/internal/modules/agent/domain"
	agentin "timetrack/internal/modules/agent/port/in"
)

// SignalSource plays the tray menu for a headless agent: quit signals send
// Quit and the show signal sends ShowUI.
type SignalSource struct {
	commander agentin.Commander
	log       logrus.FieldLogger
	signals   chan os.Signal
}

func NewSignalSource(commander agentin.Commander, log logrus.FieldLogger) *SignalSource {
	return &SignalSource{
		commander: commander,
		log:       log.WithField("source", "signal"),
		signals:   make(chan os.Signal, 4),
	}
}

func (s *SignalSource) Run(ctx context.Context) error {
	signal.Notify(s.signals, append(append([]os.Signal{}, quitSignals...), showSignals...)...)
	defer signal.Stop(s.signals)

	for {
		select {
		case <-ctx.Done():
			return nil
		case sig := <-s.signals:
			if s.dispatch(sig) {
				return nil
			}
		}
	}
}

// dispatch reports whether sig ended the source.
func (s *SignalSource) dispatch(sig os.Signal) bool {
	for _, show := range showSignals {
		if sig == show {
			s.log.WithField("signal", sig.String()).Info("show requested")
			s.commander.Send(domain.ShowUI{})
			return false
		}
	}
	s.log.WithField("signal", sig.String()).Info("quit requested")
	s.commander.Send(domain.Quit{})
	return true
}

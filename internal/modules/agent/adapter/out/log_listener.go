package out

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"timetrack/internal/modules/agent/channel"
	"timetrack/internal/modules/agent/domain"
	"timetrack/internal/platform/clock"
	apperrors "timetrack/internal/platform/errors"
)

// LogListener is the headless stand-in for a tray icon: it reports runtime
// events and control signals through the logger.
type LogListener struct {
	log logrus.FieldLogger
}

func NewLogListener(log logrus.FieldLogger) *LogListener {
	return &LogListener{log: log.WithField("listener", "log")}
}

// Run consumes events until the runtime quits or ctx is done.
func (l *LogListener) Run(ctx context.Context, events *channel.Mailbox[domain.Event]) error {
	for {
		e, err := events.Recv(ctx)
		if err != nil {
			if errors.Is(err, apperrors.ErrClosed) || ctx.Err() != nil {
				return nil
			}
			return err
		}
		if _, ok := e.(domain.QuitEvent); ok {
			l.log.Info("quit")
			return nil
		}
		l.Handle(e)
	}
}

func (l *LogListener) Handle(e domain.Event) {
	switch ev := e.(type) {
	case domain.UserStateEvent:
		l.log.WithField("last_activity", ev.LastActivity.Format("15:04:05")).Infof("user %s", ev.State)
	case domain.SessionStateEvent:
		l.log.WithFields(logrus.Fields{
			"in_progress": ev.InProgress,
			"task_id":     ev.TaskID,
			"running":     ev.Running,
			"elapsed":     clock.FormatDuration(ev.Elapsed),
		}).Info("session state")
	case domain.SessionSavedEvent:
		l.log.WithFields(logrus.Fields{
			"task_id":  ev.Session.TaskID,
			"duration": clock.FormatDuration(ev.Session.Duration()),
		}).Info("session saved")
	case domain.TaskAddedEvent:
		l.log.WithFields(logrus.Fields{"id": ev.Task.ID, "name": ev.Task.Name}).Info("task added")
	case domain.TaskListEvent:
		l.log.WithField("tasks", len(ev.Tasks)).Debug("task list")
	case domain.ElapsedTimeEvent:
		if ev.Trimmed > 0 {
			l.log.WithFields(logrus.Fields{
				"elapsed": clock.FormatDuration(ev.Elapsed),
				"trimmed": clock.FormatDuration(ev.Trimmed),
			}).Info("idle time removed from session")
			return
		}
		l.log.WithField("elapsed", clock.FormatDuration(ev.Elapsed)).Debug("elapsed")
	case domain.RepaintEvent:
		l.log.WithField("after", ev.After).Debug("repaint")
	case domain.ErrorEvent:
		l.log.WithError(ev.Err).WithField("op", ev.Op).Error("runtime error")
	case domain.QuitEvent:
		l.log.Info("quit")
	}
}

// RunControl logs control signals; there is no window to show headless.
func (l *LogListener) RunControl(ctx context.Context, controls *channel.Mailbox[domain.Control]) error {
	for {
		c, err := controls.Recv(ctx)
		if err != nil {
			if errors.Is(err, apperrors.ErrClosed) || ctx.Err() != nil {
				return nil
			}
			return err
		}
		switch c {
		case domain.ControlShow:
			l.log.Info("show requested, no window attached")
		case domain.ControlQuit:
			return nil
		}
	}
}

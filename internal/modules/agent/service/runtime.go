package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"timetrack/internal/modules/agent/channel"
	"timetrack/internal/modules/agent/domain"
	agentin "timetrack/internal/modules/agent/port/in"
	agentout "timetrack/internal/modules/agent/port/out"
	sessiondomain "timetrack/internal/modules/session/domain"
	"timetrack/internal/platform/clock"
	apperrors "timetrack/internal/platform/errors"
	"timetrack/internal/platform/id"
	"timetrack/internal/platform/logging"
)

const defaultPollInterval = 100 * time.Millisecond

type Config struct {
	ActiveTimeout time.Duration
	UserID        int64
	// PollInterval caps how long the loop sleeps between idle checks.
	PollInterval time.Duration
	// StartCountsAsActivity makes StartSession refresh the last activity
	// timestamp. When false a session started while idle is paused again on
	// the next tick unless input arrives.
	StartCountsAsActivity bool
	MaxSaveAttempts       int
}

// Runtime is the single writer of session and timer state. Producers talk to
// it through the inbox; listeners receive events from their own mailbox.
type Runtime struct {
	cfg     Config
	clock   clock.Clock
	ids     id.Generator
	storage agentout.Storage
	log     logrus.FieldLogger

	inbox    *channel.Inbox[domain.Command]
	events   *channel.Broadcast[domain.Event]
	controls *channel.Broadcast[domain.Control]

	state   domain.RuntimeState
	outbox  []domain.Event
	stopped bool
}

func NewRuntime(cfg Config, storage agentout.Storage, clk clock.Clock, ids id.Generator, log logrus.FieldLogger) *Runtime {
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = defaultPollInterval
	}
	if cfg.MaxSaveAttempts <= 0 {
		cfg.MaxSaveAttempts = 1
	}
	if log == nil {
		log = logging.Discard()
	}
	return &Runtime{
		cfg:      cfg,
		clock:    clk,
		ids:      ids,
		storage:  storage,
		log:      log.WithField("run_id", ids.New()),
		inbox:    channel.NewInbox[domain.Command](),
		events:   channel.NewBroadcast[domain.Event](),
		controls: channel.NewBroadcast[domain.Control](),
		state:    domain.NewRuntimeState(clk, cfg.ActiveTimeout),
	}
}

func (r *Runtime) Commander() agentin.Commander {
	return r.inbox
}

func (r *Runtime) Subscribe() *channel.Mailbox[domain.Event] {
	return r.events.Subscribe()
}

func (r *Runtime) SubscribeControl() *channel.Mailbox[domain.Control] {
	return r.controls.Subscribe()
}

// Run loops until Quit or ctx is done, which is handled like Quit.
func (r *Runtime) Run(ctx context.Context) error {
	r.log.WithFields(logrus.Fields{
		"active_timeout": r.cfg.ActiveTimeout,
		"poll_interval":  r.cfg.PollInterval,
	}).Info("agent runtime started")

	for {
		hint, running := r.Tick(ctx)
		if !running {
			return nil
		}
		wait := r.cfg.PollInterval
		if hint > 0 && hint < wait {
			wait = hint
		}

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			r.log.WithError(ctx.Err()).Info("context done, stopping runtime")
			r.shutdown(context.WithoutCancel(ctx))
			return nil
		case <-r.inbox.Ready():
		case <-timer.C:
		}
		timer.Stop()
	}
}

// Tick drains every queued command, then evaluates idleness, then publishes
// the events produced along the way. It returns the time left until the user
// would turn idle and false once the runtime has stopped.
func (r *Runtime) Tick(ctx context.Context) (time.Duration, bool) {
	if r.stopped {
		return 0, false
	}

	commands := r.inbox.Drain()
	for i, cmd := range commands {
		if !r.apply(ctx, cmd) {
			if dropped := len(commands) - i - 1; dropped > 0 {
				r.log.WithField("dropped", dropped).Warn("commands after quit ignored")
			}
			r.shutdown(ctx)
			return 0, false
		}
	}

	hint := r.evaluateActivity()
	r.flush()
	return hint, true
}

func (r *Runtime) apply(ctx context.Context, cmd domain.Command) bool {
	switch c := cmd.(type) {
	case domain.StartSession:
		r.startSession(c)
	case domain.EndSession:
		r.endSession(ctx, c)
	case domain.AddTask:
		r.addTask(ctx, c)
	case domain.RequestTaskList:
		r.listTasks(ctx)
	case domain.UserActivity:
		r.observe(c.At)
	case domain.Quit:
		return false
	case domain.ShowUI:
		r.controls.Publish(domain.ControlShow)
	case domain.RequestElapsedTime:
		r.emit(domain.ElapsedTimeEvent{Elapsed: r.state.StopWatch.Elapsed()})
	case domain.RequestSessionState:
		r.emit(r.sessionState())
	case domain.RetryPending:
		r.retryPending(ctx)
	default:
		r.log.WithField("command", fmt.Sprintf("%T", cmd)).Error("unhandled command")
	}
	return true
}

func (r *Runtime) startSession(c domain.StartSession) {
	now := r.clock.Now()
	if r.state.TaskInProgress {
		r.log.WithField("task_id", r.state.Session.TaskID).Warn("session restarted before it ended, discarding previous")
	}
	r.state.Session = sessiondomain.Session{
		Ref:       r.ids.New(),
		TaskID:    c.TaskID,
		StartedAt: now,
	}
	r.state.TaskInProgress = true
	r.state.StopWatch.Reset()
	r.state.StopWatch.Start()
	if r.cfg.StartCountsAsActivity {
		r.observe(now)
	}
	r.log.WithFields(logrus.Fields{"task_id": c.TaskID, "ref": r.state.Session.Ref}).Info("session started")
	r.emit(r.sessionState())
}

func (r *Runtime) endSession(ctx context.Context, c domain.EndSession) {
	sw := r.state.StopWatch
	if !r.state.TaskInProgress {
		sw.Reset()
		r.emit(domain.ErrorEvent{Op: "end session", Err: apperrors.ErrNoActiveSession})
		return
	}

	sw.Stop()
	session := r.state.Session
	session.DurationSeconds = uint64(sw.Elapsed() / time.Second)
	session.Comment = c.Comment
	session.UserID = r.cfg.UserID
	session.EndedAt = r.clock.Now()

	r.state.TaskInProgress = false
	r.state.Session = sessiondomain.Session{}
	sw.Reset()
	r.log.WithFields(logrus.Fields{
		"task_id":  session.TaskID,
		"ref":      session.Ref,
		"duration": session.Duration(),
	}).Info("session ended")
	r.emit(r.sessionState())

	r.retryPending(ctx)
	r.save(ctx, domain.PendingSession{Session: session})
}

// save reports whether the session was persisted. Failures are queued for
// retry until MaxSaveAttempts is reached; invalid input is never retried.
func (r *Runtime) save(ctx context.Context, p domain.PendingSession) bool {
	p.Attempts++
	err := r.storage.SaveSession(ctx, p.Session)
	if err == nil {
		r.emit(domain.SessionSavedEvent{Session: p.Session})
		return true
	}

	p.LastErr = err
	entry := r.log.WithFields(logrus.Fields{
		"ref":     p.Session.Ref,
		"task_id": p.Session.TaskID,
		"attempt": p.Attempts,
	}).WithError(err)
	if errors.Is(err, apperrors.ErrInvalidInput) {
		entry.Error("dropping session the store rejected")
		r.emit(domain.ErrorEvent{Op: "save session", Err: fmt.Errorf("%w: %w", apperrors.ErrSaveAbandoned, err)})
		return false
	}
	if p.Attempts >= r.cfg.MaxSaveAttempts {
		entry.Error("dropping session after repeated save failures")
		r.emit(domain.ErrorEvent{Op: "save session", Err: fmt.Errorf("%w: %v", apperrors.ErrSaveAbandoned, err)})
		return false
	}
	entry.Warn("session save failed, queued for retry")
	r.emit(domain.ErrorEvent{Op: "save session", Err: err})
	r.state.Pending = append(r.state.Pending, p)
	return false
}

func (r *Runtime) retryPending(ctx context.Context) {
	if len(r.state.Pending) == 0 {
		return
	}
	queued := r.state.Pending
	r.state.Pending = nil
	for _, p := range queued {
		r.save(ctx, p)
	}
}

func (r *Runtime) addTask(ctx context.Context, c domain.AddTask) {
	task := c.Task
	if task.CreatedAt.IsZero() {
		task.CreatedAt = r.clock.Now()
	}
	saved, err := r.storage.AddTask(ctx, task)
	if err != nil {
		r.log.WithError(err).WithField("name", task.Name).Warn("add task failed")
		r.emit(domain.ErrorEvent{Op: "add task", Err: err})
		return
	}
	r.emit(domain.TaskAddedEvent{Task: saved})
}

func (r *Runtime) listTasks(ctx context.Context) {
	tasks, err := r.storage.ListTasks(ctx)
	if err != nil {
		r.log.WithError(err).Warn("list tasks failed")
		r.emit(domain.ErrorEvent{Op: "list tasks", Err: err})
		return
	}
	r.emit(domain.TaskListEvent{Tasks: tasks})
}

func (r *Runtime) observe(at time.Time) {
	if at.IsZero() {
		at = r.clock.Now()
	}
	tracker := r.state.Activity
	woke := tracker.Observe(at)
	if r.state.TaskInProgress {
		r.state.StopWatch.Start()
	}
	r.emit(domain.UserStateEvent{State: domain.Active, LastActivity: tracker.LastActivityAt()})
	if woke {
		r.log.Debug("user active")
		r.emit(domain.RepaintEvent{After: tracker.Remaining(r.clock.Now())})
	}
}

// evaluateActivity pauses the stopwatch as of the last input once the user is
// idle, so the timeout window itself is not counted.
func (r *Runtime) evaluateActivity() time.Duration {
	tracker := r.state.Activity
	transition, remaining := tracker.Evaluate(r.clock.Now())
	if transition == domain.BecameIdle {
		r.log.WithField("last_activity", tracker.LastActivityAt()).Debug("user idle")
		r.emit(domain.UserStateEvent{State: domain.Idle, LastActivity: tracker.LastActivityAt()})
		r.emit(domain.RepaintEvent{})
	}
	if r.state.TaskInProgress && tracker.Classification() == domain.Idle && r.state.StopWatch.Running() {
		if trimmed := r.state.StopWatch.StopAt(tracker.LastActivityAt()); trimmed > 0 {
			r.emit(domain.ElapsedTimeEvent{Elapsed: r.state.StopWatch.Elapsed(), Trimmed: trimmed})
		}
	}
	return remaining
}

func (r *Runtime) sessionState() domain.SessionStateEvent {
	return domain.SessionStateEvent{
		InProgress: r.state.TaskInProgress,
		TaskID:     r.state.Session.TaskID,
		Running:    r.state.StopWatch.Running(),
		Elapsed:    r.state.StopWatch.Elapsed(),
	}
}

func (r *Runtime) emit(e domain.Event) {
	r.outbox = append(r.outbox, e)
}

func (r *Runtime) flush() {
	for _, e := range r.outbox {
		r.events.Publish(e)
	}
	r.outbox = nil
}

// shutdown publishes Quit to every listener exactly once and closes the
// fabric. Pending sessions get one last save attempt.
func (r *Runtime) shutdown(ctx context.Context) {
	if r.stopped {
		return
	}
	r.stopped = true
	r.inbox.Close()

	if r.state.TaskInProgress {
		r.log.WithField("task_id", r.state.Session.TaskID).Warn("quit with a session in progress, it was not saved")
	}
	r.retryPending(ctx)
	if n := len(r.state.Pending); n > 0 {
		r.log.WithField("sessions", n).Error("unsaved sessions lost on quit")
	}

	r.emit(domain.QuitEvent{})
	r.flush()
	r.controls.Publish(domain.ControlQuit)
	r.events.Close()
	r.controls.Close()
	r.log.Info("agent runtime stopped")
}

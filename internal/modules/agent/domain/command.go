package domain

import (
	"time"

	taskdomain "timetrack/internal/modules/task/domain"
)

// Command is the closed set of requests the runtime accepts.
type Command interface {
	isCommand()
}

type StartSession struct {
	TaskID int64
}

type EndSession struct {
	Comment string
}

type AddTask struct {
	Task taskdomain.Task
}

type RequestTaskList struct{}

type UserActivity struct {
	At time.Time
}

type Quit struct{}

type ShowUI struct{}

type RequestElapsedTime struct{}

type RequestSessionState struct{}

// RetryPending asks the runtime to re-attempt sessions whose save failed.
type RetryPending struct{}

func (StartSession) isCommand()        {}
func (EndSession) isCommand()          {}
func (AddTask) isCommand()             {}
func (RequestTaskList) isCommand()     {}
func (UserActivity) isCommand()        {}
func (Quit) isCommand()                {}
func (ShowUI) isCommand()              {}
func (RequestElapsedTime) isCommand()  {}
func (RequestSessionState) isCommand() {}
func (RetryPending) isCommand()        {}

package generation

import (
	"crypto/rand"
	"fmt"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/apresai/adgenius/internal/progress"
)

var transitions = map[progress.Stage][]progress.Stage{
	progress.StageIdle:       {progress.StageRequesting},
	progress.StageRequesting: {progress.StageSucceeded, progress.StageFallenBack},
	progress.StageSucceeded:  {progress.StageRendered},
	progress.StageFallenBack: {progress.StageRendered},
}

var stagePercent = map[progress.Stage]float64{
	progress.StageIdle:       0,
	progress.StageRequesting: 0.3,
	progress.StageSucceeded:  0.9,
	progress.StageFallenBack: 0.9,
	progress.StageRendered:   1,
}

// Attempt tracks one generation attempt through
// idle -> requesting -> succeeded|fallen_back -> rendered.
type Attempt struct {
	ID      string
	state   progress.Stage
	started time.Time
	source  Source
	err     error
	notify  progress.Callback
}

func newAttempt(notify progress.Callback) *Attempt {
	if notify == nil {
		notify = progress.NopCallback
	}
	return &Attempt{
		ID:      newAttemptID(),
		state:   progress.StageIdle,
		started: time.Now(),
		notify:  notify,
	}
}

func newAttemptID() string {
	return ulid.MustNew(ulid.Timestamp(time.Now()), rand.Reader).String()
}

// State returns the current stage.
func (a *Attempt) State() progress.Stage {
	return a.state
}

func (a *Attempt) advance(to progress.Stage, msg string) error {
	allowed := false
	for _, s := range transitions[a.state] {
		if s == to {
			allowed = true
			break
		}
	}
	if !allowed {
		return fmt.Errorf("attempt %s: invalid transition %s -> %s", a.ID, a.state, to)
	}
	a.state = to

	e := progress.NewEvent(to, msg, stagePercent[to], a.started)
	e.AttemptID = a.ID
	e.Source = string(a.source)
	e.Error = a.err
	a.notify(e)
	return nil
}

// MarkRendered records that the outcome was presented. It is valid exactly once,
// after the attempt succeeded or fell back.
func (a *Attempt) MarkRendered() error {
	return a.advance(progress.StageRendered, "Results rendered")
}

package domain

// JobAction names a lifecycle operation that may advance a job's stage.
type JobAction string

const (
	ActionSendQuote            JobAction = "send_quote"
	ActionAcceptQuote          JobAction = "accept_quote"
	ActionCreatePaymentLink    JobAction = "create_payment_link"
	ActionScheduleInstallation JobAction = "schedule_installation"
	ActionMarkInstalled        JobAction = "mark_installed"
	ActionScheduleRemoval      JobAction = "schedule_removal"
	ActionMarkRemoved          JobAction = "mark_removed"
	ActionComplete             JobAction = "complete"
)

type transition struct {
	from []JobStage // nil allows any stage
	to   JobStage
}

// transitions is the single authoritative table. Route handlers and services
// must not duplicate stage checks outside of NextStage.
var transitions = map[JobAction]transition{
	ActionSendQuote:         {to: JobStageQuoteSent},
	ActionAcceptQuote:       {from: []JobStage{JobStageRequested, JobStageQuoteSent, JobStageQuoteAccepted}, to: JobStageQuoteAccepted},
	ActionCreatePaymentLink: {to: JobStageQuoteSent},
	ActionScheduleInstallation: {
		from: []JobStage{JobStagePaid},
		to:   JobStageScheduled,
	},
	ActionMarkInstalled: {
		from: []JobStage{JobStageScheduled},
		to:   JobStageInstalled,
	},
	ActionScheduleRemoval: {
		from: []JobStage{JobStageInstalled},
		to:   JobStageRemovalScheduled,
	},
	ActionMarkRemoved: {
		from: []JobStage{JobStageRemovalScheduled},
		to:   JobStageRemoved,
	},
	ActionComplete: {
		from: []JobStage{JobStageRemoved},
		to:   JobStageCompleted,
	},
}

// AllowedStages returns the stages from which action may be taken.
// An empty result means the action is permitted at any stage.
func AllowedStages(action JobAction) []JobStage {
	return transitions[action].from
}

// NextStage resolves the stage a job moves to when action is applied at
// current. The second return is false when the action is not permitted at
// the current stage.
func NextStage(current JobStage, action JobAction) (JobStage, bool) {
	t, ok := transitions[action]
	if !ok {
		return current, false
	}
	if t.from == nil {
		return t.to, true
	}
	for _, s := range t.from {
		if s == current {
			return t.to, true
		}
	}
	return current, false
}

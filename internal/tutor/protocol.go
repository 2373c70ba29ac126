package tutor

import (
	"context"
	"strings"

	"github.com/codebuddy/codebuddy-go/internal/logger"
	"github.com/codebuddy/codebuddy-go/internal/session"

	"github.com/qmuntal/stateless"
)

// Protocol stages. The conversation advances one stage at a time, only
// on an explicit signal from the student; the terminal stage is
// reached only after explicit agreement.
type Stage stateless.State

var (
	StageAwaitingSubmission Stage = "AwaitingSubmission"
	StageAcknowledged       Stage = "Acknowledged"
	StageAnalyzing          Stage = "Analyzing"
	StageProbing            Stage = "Probing"
	StageIterating          Stage = "Iterating"
	StageSummarizing        Stage = "Summarizing"
	StageAwaitingAgreement  Stage = "AwaitingAgreement"
	StageFinalized          Stage = "Finalized"
)

// Protocol triggers.
type Trigger stateless.Trigger

var (
	TriggerSubmissionReceived Trigger = "SubmissionReceived"
	TriggerStudentConfirmed   Trigger = "StudentConfirmed"
	TriggerStudentAnswered    Trigger = "StudentAnswered"
	TriggerStudentAgreed      Trigger = "StudentAgreed"
	TriggerStudentDisagreed   Trigger = "StudentDisagreed"
	TriggerAssessmentProposed Trigger = "AssessmentProposed"
)

// Signal classifications for a student turn.
type Signal int

const (
	SignalAnswer Signal = iota
	SignalConfirmation
	SignalDisagreement
)

var confirmationMarkers = []string{
	"yes", "yep", "yeah", "ok", "okay", "sure", "go ahead", "sounds good",
	"i agree", "agreed", "that makes sense", "makes sense", "that's fair",
	"that is fair", "looks good", "correct", "ready",
}

var confirmationPhrases = []string{
	"i agree", "that makes sense", "sounds good", "looks good", "that's fair",
}

var disagreementPhrases = []string{
	"i disagree", "i don't agree", "i do not agree", "not really",
	"i don't think", "i do not think", "that's wrong", "that is wrong",
	"not accurate", "unfair",
}

// politeNegations are idioms that open with "no" without rejecting
// anything ("no worries, that looks right").
var politeNegations = []string{
	"no worries", "no problem", "no doubt", "no questions",
	"no further questions", "no more questions",
}

// hasMarker reports whether text is the marker itself or opens with it
// as a whole word.
func hasMarker(text, m string) bool {
	return text == m ||
		strings.HasPrefix(text, m+" ") ||
		strings.HasPrefix(text, m+",") ||
		strings.HasPrefix(text, m+".") ||
		strings.HasPrefix(text, m+"!")
}

func hasConfirmation(text string) bool {
	for _, m := range confirmationMarkers {
		if hasMarker(text, m) {
			return true
		}
	}
	for _, p := range confirmationPhrases {
		if strings.Contains(text, p) {
			return true
		}
	}
	return false
}

// ClassifySignal decides whether a student turn carries an explicit
// confirmation or disagreement. Anything ambiguous is a plain answer,
// which never advances the conversation past a confirmation gate.
func ClassifySignal(content string) Signal {
	text := strings.ToLower(strings.TrimSpace(content))
	for _, p := range disagreementPhrases {
		if strings.Contains(text, p) {
			return SignalDisagreement
		}
	}
	// A bare "no" only counts as disagreement when it is not a polite
	// idiom and the rest of the turn does not confirm ("No, that makes
	// sense" is agreement).
	if hasMarker(text, "no") || hasMarker(text, "nope") {
		polite := false
		for _, p := range politeNegations {
			if hasMarker(text, p) || strings.HasPrefix(text, p) {
				polite = true
				break
			}
		}
		if !polite && !hasConfirmation(text) {
			return SignalDisagreement
		}
	}
	if hasConfirmation(text) {
		return SignalConfirmation
	}
	return SignalAnswer
}

// Tracker follows the tutoring protocol stage of one session. It does
// not gate generation; it mirrors the logical state machine the
// instruction text encodes so callers can tell when the assessment has
// been finalized.
type Tracker struct {
	fsm *stateless.StateMachine
}

// NewTracker creates a tracker positioned before the code submission.
func NewTracker() *Tracker {
	fsm := stateless.NewStateMachine(StageAwaitingSubmission)

	fsm.Configure(StageAwaitingSubmission).
		Permit(TriggerSubmissionReceived, StageAcknowledged)

	fsm.Configure(StageAcknowledged).
		Permit(TriggerStudentConfirmed, StageAnalyzing).
		Permit(TriggerStudentAnswered, StageAnalyzing)

	fsm.Configure(StageAnalyzing).
		Permit(TriggerStudentConfirmed, StageProbing)

	fsm.Configure(StageProbing).
		Permit(TriggerStudentAnswered, StageIterating).
		Permit(TriggerStudentConfirmed, StageIterating)

	fsm.Configure(StageIterating).
		PermitReentry(TriggerStudentAnswered).
		Permit(TriggerStudentConfirmed, StageSummarizing)

	fsm.Configure(StageSummarizing).
		Permit(TriggerAssessmentProposed, StageAwaitingAgreement)

	fsm.Configure(StageAwaitingAgreement).
		Permit(TriggerStudentAgreed, StageFinalized).
		Permit(TriggerStudentDisagreed, StageIterating)

	// A turn that carries no signal valid for the current stage leaves
	// the stage unchanged; the protocol never skips ahead unprompted.
	fsm.OnUnhandledTrigger(func(_ context.Context, state stateless.State, trigger stateless.Trigger, _ []string) error {
		logger.L.Debug("protocol signal ignored", "stage", state, "trigger", trigger)
		return nil
	})

	return &Tracker{fsm: fsm}
}

// Observe advances the tracker with one appended turn.
func (t *Tracker) Observe(msg session.Message) {
	switch msg.Role {
	case session.RoleAssistant:
		// The assistant proposing its summary is what opens the
		// agreement step; other assistant turns carry no transition.
		if t.Stage() == StageSummarizing {
			t.fire(TriggerAssessmentProposed)
		}
	case session.RoleUser:
		if t.Stage() == StageAwaitingSubmission {
			t.fire(TriggerSubmissionReceived)
			return
		}
		switch ClassifySignal(msg.Content) {
		case SignalDisagreement:
			t.fire(TriggerStudentDisagreed)
		case SignalConfirmation:
			if t.Stage() == StageAwaitingAgreement {
				t.fire(TriggerStudentAgreed)
			} else {
				t.fire(TriggerStudentConfirmed)
			}
		default:
			t.fire(TriggerStudentAnswered)
		}
	}
}

// Stage returns the current protocol stage.
func (t *Tracker) Stage() Stage {
	return t.fsm.MustState().(Stage)
}

// Finalized reports whether the student has explicitly agreed with the
// assessment.
func (t *Tracker) Finalized() bool {
	return t.Stage() == StageFinalized
}

func (t *Tracker) fire(trigger Trigger) {
	if err := t.fsm.Fire(trigger); err != nil {
		logger.L.Warn("protocol fire error", "trigger", trigger, "error", err)
	}
}

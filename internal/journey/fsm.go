package journey

import (
	"errors"
	"fmt"
)

// State is the step a journey currently sits at. The step sequence is an
// explicit finite-state machine so transitions are testable without any web
// layer.
type State string

const (
	StateBegin         State = "begin"
	StateCountryPicker State = "country-picker"
	StateLookup        State = "lookup"
	StateSelect        State = "select"
	StateEdit          State = "edit"
	StateConfirm       State = "confirm"
	StateDone          State = "done"
)

// Event is something that happened during a step.
type Event string

const (
	// EventStartedUK begins a uk-mode journey.
	EventStartedUK Event = "started_uk"
	// EventStartedInternational begins a journey that must pick a country
	// first.
	EventStartedInternational Event = "started_international"
	// EventCountryChosenGB routes a picker choice of Great Britain into the
	// postcode lookup.
	EventCountryChosenGB Event = "country_chosen_gb"
	// EventCountryChosenOther routes any other country into manual entry.
	EventCountryChosenOther Event = "country_chosen_other"
	// EventLookupMatched fires when a lookup returned candidates.
	EventLookupMatched Event = "lookup_matched"
	// EventLookupEmpty fires when a lookup matched nothing; the select step
	// renders its no-results outcome and offers manual entry.
	EventLookupEmpty Event = "lookup_empty"
	// EventManualRequested is the user choosing to type the address in.
	EventManualRequested Event = "manual_requested"
	// EventCandidateChosen is a valid selection from the candidate list.
	EventCandidateChosen Event = "candidate_chosen"
	// EventAddressEdited is a valid manual-entry submission.
	EventAddressEdited Event = "address_edited"
	// EventBackToSelect returns from manual entry to the candidate list.
	EventBackToSelect Event = "back_to_select"
	// EventConfirmed commits the staged address.
	EventConfirmed Event = "confirmed"
)

// Effect tells the caller where the browser goes next, as a journey-relative
// path. The handler prefixes it with the journey's base path.
type Effect struct {
	Redirect string
}

// ErrInvalidTransition rejects an event the current state cannot accept.
var ErrInvalidTransition = errors.New("invalid journey transition")

var transitions = map[State]map[Event]State{
	StateBegin: {
		EventStartedUK:            StateLookup,
		EventStartedInternational: StateCountryPicker,
	},
	StateCountryPicker: {
		EventCountryChosenGB:    StateLookup,
		EventCountryChosenOther: StateEdit,
	},
	StateLookup: {
		EventLookupMatched:   StateSelect,
		EventLookupEmpty:     StateSelect,
		EventManualRequested: StateEdit,
	},
	StateSelect: {
		EventCandidateChosen: StateConfirm,
		EventManualRequested: StateEdit,
	},
	StateEdit: {
		EventAddressEdited: StateConfirm,
		EventBackToSelect:  StateSelect,
	},
	StateConfirm: {
		EventConfirmed: StateDone,
	},
	StateDone: {},
}

// Transition is the pure step function (State, Event) -> (State, Effect).
// Done is terminal: no event leaves it, so a finished journey can never be
// re-driven without a fresh init.
func Transition(state State, event Event) (State, Effect, error) {
	next, ok := transitions[state][event]
	if !ok {
		return state, Effect{}, fmt.Errorf("%w: %s cannot accept %s", ErrInvalidTransition, state, event)
	}
	return next, Effect{Redirect: next.Path()}, nil
}

// Path is the journey-relative route for a state.
func (s State) Path() string {
	return "/" + string(s)
}

// Terminal reports whether the state accepts no further events.
func (s State) Terminal() bool {
	return len(transitions[s]) == 0
}

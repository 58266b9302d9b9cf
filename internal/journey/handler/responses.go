package handler

import (
	"addressfinder/internal/journey"
	"addressfinder/internal/lookup"
)

// InitResponse tells the calling service where to send the user.
type InitResponse struct {
	JourneyID string `json:"journeyId"`
	Start     string `json:"start"`
}

// StepView is what the frontend renders for the journey's current step. Only
// the fields the step needs are populated.
type StepView struct {
	Step             string                   `json:"step"`
	Heading          string                   `json:"heading"`
	HeadingStyle     journey.PageHeadingStyle `json:"headingStyle"`
	Labels           journey.Labels           `json:"labels"`
	AllowManualEntry bool                     `json:"allowManualEntry"`
	BFPO             bool                     `json:"bfpo,omitempty"`

	// Select step.
	Postcode   string          `json:"postcode,omitempty"`
	Filter     string          `json:"filter,omitempty"`
	Candidates []CandidateView `json:"candidates,omitempty"`

	// Confirm step.
	Staged *AddressView `json:"staged,omitempty"`
}

// CandidateView is one selectable address.
type CandidateView struct {
	ID      string `json:"id"`
	Summary string `json:"summary"`
}

// AddressView is the flattened address shape shared by the confirm step and
// the confirmed-address API.
type AddressView struct {
	CandidateID string   `json:"candidateId,omitempty"`
	Lines       []string `json:"lines"`
	Town        string   `json:"town"`
	Postcode    string   `json:"postcode"`
	CountryCode string   `json:"countryCode"`
	CountryName string   `json:"countryName"`
}

// FromRecord builds the view model for the record's current step.
func FromRecord(record *journey.Record, locale journey.Locale) StepView {
	labels := record.Config.Labels[locale]
	view := StepView{
		Step:             string(record.State),
		HeadingStyle:     record.Config.PageHeadingStyle,
		Labels:           labels,
		AllowManualEntry: record.Config.AllowManualEntry,
		BFPO:             record.Config.BFPO,
	}

	switch record.State {
	case journey.StateLookup:
		view.Heading = labels.LookupTitle
	case journey.StateSelect:
		view.Heading = labels.SelectTitle
		view.Postcode = record.Postcode
		view.Filter = record.Filter
		view.Candidates = candidateViews(record.Candidates)
	case journey.StateEdit:
		view.Heading = labels.EditTitle
	case journey.StateConfirm:
		view.Heading = labels.ConfirmTitle
		if record.Staged != nil {
			v := addressView(record.Staged)
			view.Staged = &v
		}
	case journey.StateCountryPicker:
		view.Heading = labels.CountryPickTitle
	default:
		view.Heading = labels.AppTitle
	}
	return view
}

// FromConfirmed shapes the committed address for the calling service's API.
func FromConfirmed(confirmed *journey.ConfirmedAddress) AddressView {
	return addressView(confirmed)
}

func addressView(a *journey.ConfirmedAddress) AddressView {
	return AddressView{
		CandidateID: a.CandidateID,
		Lines:       a.Address.Lines,
		Town:        a.Address.Town,
		Postcode:    a.Address.Postcode,
		CountryCode: a.Address.Country.Code,
		CountryName: a.Address.Country.Name,
	}
}

func candidateViews(candidates []lookup.Candidate) []CandidateView {
	views := make([]CandidateView, 0, len(candidates))
	for _, c := range candidates {
		views = append(views, CandidateView{ID: c.ID, Summary: summarize(c)})
	}
	return views
}

func summarize(c lookup.Candidate) string {
	summary := c.FirstLine()
	if c.Town != "" {
		summary += ", " + c.Town
	}
	if c.Postcode != "" {
		summary += ", " + c.Postcode
	}
	return summary
}

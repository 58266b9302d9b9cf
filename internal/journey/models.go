package journey

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"addressfinder/internal/lookup"
)

// RecordSchemaVersion is stamped on every persisted journey record. Records
// carrying an unknown version are treated as stale rather than migrated; the
// end user is sent back to the start of the journey.
const RecordSchemaVersion = 2

// ID is the opaque key identifying one in-progress user journey. Calling
// services receive it at init time and use it to fetch the confirmed address.
type ID string

// NewID mints a fresh journey identifier.
func NewID() ID {
	return ID(uuid.NewString())
}

func (id ID) String() string { return string(id) }

// Address is a postal address, either as entered manually or as carried by a
// chosen candidate. At most four lines.
type Address struct {
	Lines    []string       `json:"lines"`
	Town     string         `json:"town"`
	Postcode string         `json:"postcode"`
	Country  lookup.Country `json:"country"`
}

// HasAnyLine reports whether at least one of the first three lines or the
// town is non-blank.
func (a Address) HasAnyLine() bool {
	for _, l := range a.Lines {
		if strings.TrimSpace(l) != "" {
			return true
		}
	}
	return strings.TrimSpace(a.Town) != ""
}

// ConfirmedAddress is the user's final choice. CandidateID is set when the
// address came from the lookup provider, empty for manual entry.
type ConfirmedAddress struct {
	CandidateID string  `json:"candidateId,omitempty"`
	Address     Address `json:"address"`
}

// Record is the keystore-persisted state of one journey. It is written after
// every step and read at the start of every step; the external store owns its
// expiry. Confirmed stays nil until the confirm step commits, and is never
// overwritten afterwards.
type Record struct {
	SchemaVersion int    `json:"schemaVersion"`
	ID            ID     `json:"journeyId"`
	Config        Config `json:"config"`
	State         State  `json:"state"`

	// Lookup input and its staged results; candidates are what the select
	// step validates a chosen id against.
	Postcode   string             `json:"postcode,omitempty"`
	Filter     string             `json:"filter,omitempty"`
	Candidates []lookup.Candidate `json:"candidates,omitempty"`

	// CountryCode is the country chosen on the picker for international
	// journeys.
	CountryCode string `json:"countryCode,omitempty"`

	Staged    *ConfirmedAddress `json:"staged,omitempty"`
	Confirmed *ConfirmedAddress `json:"confirmed,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// CandidateByID finds a staged candidate from the last lookup.
func (r *Record) CandidateByID(id string) (*lookup.Candidate, bool) {
	for i := range r.Candidates {
		if r.Candidates[i].ID == id {
			return &r.Candidates[i], true
		}
	}
	return nil, false
}

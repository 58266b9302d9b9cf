package lookup

// Country identifies the country of an address candidate.
type Country struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// Candidate is an address record returned by the lookup provider, not yet
// chosen by the user. Candidates are never mutated after creation.
type Candidate struct {
	ID       string   `json:"id"`
	Lines    []string `json:"lines"`
	Town     string   `json:"town"`
	Postcode string   `json:"postcode"`
	Country  Country  `json:"country"`
}

// FirstLine returns the first address line, or "" when the candidate has no
// lines. Ranking keys off this value.
func (c Candidate) FirstLine() string {
	if len(c.Lines) == 0 {
		return ""
	}
	return c.Lines[0]
}

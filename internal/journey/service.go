package journey

import (
	"context"
	"errors"
	"log/slog"
	"net/url"
	"strconv"

	"addressfinder/internal/lookup"
	"addressfinder/internal/platform/metrics"
	"addressfinder/internal/postcode"
	"addressfinder/pkg/domainerrors"
	"addressfinder/pkg/platform/audit"
	"addressfinder/pkg/platform/sentinel"
	"addressfinder/pkg/requestcontext"
)

// Store is the journey keystore as the service sees it. Implementations live
// in internal/journey/store.
type Store interface {
	Get(ctx context.Context, id ID) (*Record, error)
	Put(ctx context.Context, id ID, record *Record) error
}

// AddressMatcher finds candidate addresses for a cleaned postcode.
type AddressMatcher interface {
	Find(ctx context.Context, pc postcode.Postcode, filter string, ukMode bool) ([]lookup.Candidate, error)
	FindByOutcode(ctx context.Context, oc postcode.Outcode, number string, ukMode bool) ([]lookup.Candidate, error)
}

// Service drives journeys through the step machine, persisting the record
// after every step. Each call is an independent read-act-write against the
// keystore; there is no cross-step transaction, so two tabs driving the same
// journey are last-write-wins.
type Service struct {
	store   Store
	matcher AddressMatcher
	logger  *slog.Logger
	metrics *metrics.Metrics
	audit   audit.Sink
}

// NewService constructs the journey service. The audit sink may be nil when
// auditing is not configured.
func NewService(store Store, matcher AddressMatcher, logger *slog.Logger, m *metrics.Metrics, sink audit.Sink) *Service {
	return &Service{store: store, matcher: matcher, logger: logger, metrics: m, audit: sink}
}

// ManualAddress is the edit step's form input.
type ManualAddress struct {
	Line1       string `json:"line1"`
	Line2       string `json:"line2"`
	Line3       string `json:"line3"`
	Town        string `json:"town"`
	Postcode    string `json:"postcode"`
	CountryCode string `json:"countryCode"`
	CountryName string `json:"countryName"`
}

// maxFieldLength bounds every free-text address field. A 255-character value
// is accepted; 256 is rejected.
const maxFieldLength = 255

// maxSelectionIDLength bounds the candidate id echoed back by the select step.
const maxSelectionIDLength = 255

// Begin validates the calling service's configuration, mints a journey, and
// persists the initial record. The effect routes uk-mode journeys straight to
// lookup and international ones to the country picker.
func (s *Service) Begin(ctx context.Context, raw RawConfig) (*Record, Effect, error) {
	cfg, err := ParseConfig(raw)
	if err != nil {
		return nil, Effect{}, err
	}

	event := EventStartedUK
	if !cfg.UKMode {
		event = EventStartedInternational
	}
	state, effect, err := Transition(StateBegin, event)
	if err != nil {
		return nil, Effect{}, domainerrors.New(domainerrors.CodeInternal, err.Error())
	}

	now := requestcontext.Now(ctx)
	record := &Record{
		SchemaVersion: RecordSchemaVersion,
		ID:            NewID(),
		Config:        cfg,
		State:         state,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.put(ctx, record); err != nil {
		return nil, Effect{}, err
	}

	s.metrics.JourneyStarted()
	s.publishAudit(ctx, audit.CategoryOperations, audit.ActionJourneyStarted, record.ID, map[string]string{
		"ukMode": strconv.FormatBool(cfg.UKMode),
	})
	s.logger.InfoContext(ctx, "journey started",
		"journey_id", record.ID.String(),
		"uk_mode", cfg.UKMode,
		"request_id", requestcontext.RequestID(ctx),
	)
	return record, effect, nil
}

// Get loads a journey record for rendering a step. Missing, expired, or
// unknown-schema records surface as a stale journey.
func (s *Service) Get(ctx context.Context, id ID) (*Record, error) {
	return s.load(ctx, id)
}

// Lookup runs the postcode normalizer and the matcher, stages the ranked
// candidates on the record, and moves the journey to the select step. Zero
// results still reach select: the empty set is its no-results rendering.
func (s *Service) Lookup(ctx context.Context, id ID, rawPostcode, filter string) (*Record, Effect, error) {
	record, err := s.loadActive(ctx, id)
	if err != nil {
		return nil, Effect{}, err
	}

	pc, err := postcode.Normalize(rawPostcode)
	if err != nil {
		return nil, Effect{}, postcodeFieldError(err)
	}

	candidates, err := s.matcher.Find(ctx, pc, filter, record.Config.UKMode)
	if err != nil {
		return nil, Effect{}, s.lookupFailure(ctx, id, err)
	}
	return s.stageLookup(ctx, record, pc.String(), filter, candidates)
}

// LookupByOutcode is the BFPO variant: an outward code plus building number.
// Only offered when the journey's configuration enables it.
func (s *Service) LookupByOutcode(ctx context.Context, id ID, rawOutcode, number string) (*Record, Effect, error) {
	record, err := s.loadActive(ctx, id)
	if err != nil {
		return nil, Effect{}, err
	}
	if !record.Config.BFPO {
		return nil, Effect{}, domainerrors.New(domainerrors.CodeBadRequest, "journey does not allow outcode lookup")
	}

	oc, err := postcode.ParseOutcode(rawOutcode)
	if err != nil {
		return nil, Effect{}, postcodeFieldError(err)
	}

	candidates, err := s.matcher.FindByOutcode(ctx, oc, number, record.Config.UKMode)
	if err != nil {
		return nil, Effect{}, s.lookupFailure(ctx, id, err)
	}
	return s.stageLookup(ctx, record, oc.String(), number, candidates)
}

func (s *Service) stageLookup(ctx context.Context, record *Record, query, filter string, candidates []lookup.Candidate) (*Record, Effect, error) {
	// A fresh search from any later, uncommitted step is a rewind to lookup.
	record.State = StateLookup

	event := EventLookupMatched
	if len(candidates) == 0 {
		event = EventLookupEmpty
	}
	state, effect, err := Transition(record.State, event)
	if err != nil {
		return nil, Effect{}, domainerrors.New(domainerrors.CodeInternal, err.Error())
	}

	record.State = state
	record.Postcode = query
	record.Filter = filter
	record.Candidates = candidates
	record.Staged = nil
	if err := s.put(ctx, record); err != nil {
		return nil, Effect{}, err
	}

	s.publishAudit(ctx, audit.CategoryOperations, audit.ActionLookupPerformed, record.ID, map[string]string{
		"postcode": query,
		"matches":  strconv.Itoa(len(candidates)),
	})
	return record, effect, nil
}

// SelectCandidate validates the chosen candidate id against the staged lookup
// results and stages that address for confirmation.
func (s *Service) SelectCandidate(ctx context.Context, id ID, candidateID string) (Effect, error) {
	record, err := s.loadActive(ctx, id)
	if err != nil {
		return Effect{}, err
	}

	if candidateID == "" || len(candidateID) > maxSelectionIDLength {
		return Effect{}, invalidSelection()
	}
	candidate, ok := record.CandidateByID(candidateID)
	if !ok {
		return Effect{}, invalidSelection()
	}

	// Selecting again from confirm (or after switching to manual entry) is a
	// rewind to the select step.
	switch record.State {
	case StateSelect:
	case StateEdit, StateConfirm:
		record.State = StateSelect
	default:
		return Effect{}, invalidSelection()
	}

	state, effect, err := Transition(record.State, EventCandidateChosen)
	if err != nil {
		return Effect{}, domainerrors.New(domainerrors.CodeInternal, err.Error())
	}
	record.State = state
	record.Staged = &ConfirmedAddress{
		CandidateID: candidate.ID,
		Address: Address{
			Lines:    candidate.Lines,
			Town:     candidate.Town,
			Postcode: candidate.Postcode,
			Country:  candidate.Country,
		},
	}
	if err := s.put(ctx, record); err != nil {
		return Effect{}, err
	}
	return effect, nil
}

// RequestManual moves the journey into manual entry from the lookup or
// select steps.
func (s *Service) RequestManual(ctx context.Context, id ID) (Effect, error) {
	record, err := s.loadActive(ctx, id)
	if err != nil {
		return Effect{}, err
	}
	if !record.Config.AllowManualEntry {
		return Effect{}, domainerrors.New(domainerrors.CodeBadRequest, "journey does not allow manual entry")
	}

	state, effect, err := Transition(record.State, EventManualRequested)
	if err != nil {
		return Effect{}, domainerrors.New(domainerrors.CodeBadRequest, "manual entry is not available at this step")
	}
	record.State = state
	if err := s.put(ctx, record); err != nil {
		return Effect{}, err
	}
	return effect, nil
}

// SetCountry records the picker choice on an international journey: Great
// Britain continues to postcode lookup, everything else goes to manual entry.
func (s *Service) SetCountry(ctx context.Context, id ID, code string) (Effect, error) {
	record, err := s.loadActive(ctx, id)
	if err != nil {
		return Effect{}, err
	}
	if record.State != StateCountryPicker {
		return Effect{}, domainerrors.New(domainerrors.CodeBadRequest, "journey is not at the country picker")
	}
	if code == "" {
		return Effect{}, domainerrors.NewWithFields(domainerrors.CodeBadRequest, "country is required",
			map[string]string{"countryCode": "required"})
	}
	if code == "UK" {
		code = "GB"
	}

	event := EventCountryChosenOther
	if code == "GB" {
		event = EventCountryChosenGB
	}
	state, effect, err := Transition(record.State, event)
	if err != nil {
		return Effect{}, domainerrors.New(domainerrors.CodeInternal, err.Error())
	}
	record.State = state
	record.CountryCode = code
	if err := s.put(ctx, record); err != nil {
		return Effect{}, err
	}
	return effect, nil
}

// Edit validates a manual address submission and stages it for confirmation.
func (s *Service) Edit(ctx context.Context, id ID, form ManualAddress) (Effect, error) {
	record, err := s.loadActive(ctx, id)
	if err != nil {
		return Effect{}, err
	}

	address, verr := buildManualAddress(form, record.Config.UKMode)
	if verr != nil {
		return Effect{}, verr
	}

	// Editing from lookup, select, the picker, or confirm is a rewind into
	// the edit step.
	switch record.State {
	case StateEdit:
	case StateLookup, StateSelect, StateCountryPicker, StateConfirm:
		record.State = StateEdit
	default:
		return Effect{}, domainerrors.New(domainerrors.CodeBadRequest, "journey cannot accept an address at this step")
	}

	state, effect, err := Transition(record.State, EventAddressEdited)
	if err != nil {
		return Effect{}, domainerrors.New(domainerrors.CodeInternal, err.Error())
	}
	record.State = state
	record.Staged = &ConfirmedAddress{Address: *address}
	if err := s.put(ctx, record); err != nil {
		return Effect{}, err
	}
	return effect, nil
}

// ConfirmResult is the navigation outcome of a confirm submission.
// StepRedirect marks Target as a journey-relative step path; otherwise Target
// is the calling service's continue URL, which the caller may have supplied
// as a relative path of its own.
type ConfirmResult struct {
	Target       string
	StepRedirect bool
}

// Confirm commits the staged address. The write is once-only: a journey that
// already reached done rejects further confirms. A confirm with nothing
// staged, a stale or re-entered journey, is redirected back to lookup rather
// than failed.
func (s *Service) Confirm(ctx context.Context, id ID) (ConfirmResult, error) {
	record, err := s.load(ctx, id)
	if err != nil {
		return ConfirmResult{}, err
	}
	if record.State == StateDone {
		return ConfirmResult{}, domainerrors.New(domainerrors.CodeConflict, "journey already has a confirmed address")
	}
	if record.Staged == nil {
		s.logger.WarnContext(ctx, "confirm reached with no staged address",
			"journey_id", id.String(),
			"state", string(record.State),
			"request_id", requestcontext.RequestID(ctx),
		)
		record.State = StateLookup
		if err := s.put(ctx, record); err != nil {
			return ConfirmResult{}, err
		}
		return ConfirmResult{Target: StateLookup.Path(), StepRedirect: true}, nil
	}
	if record.State != StateConfirm {
		record.State = StateConfirm
	}

	state, _, err := Transition(record.State, EventConfirmed)
	if err != nil {
		return ConfirmResult{}, domainerrors.New(domainerrors.CodeInternal, err.Error())
	}
	record.State = state
	record.Confirmed = record.Staged
	record.Staged = nil
	if err := s.put(ctx, record); err != nil {
		return ConfirmResult{}, err
	}

	s.metrics.JourneyCompleted()
	s.publishAudit(ctx, audit.CategoryCompliance, audit.ActionAddressConfirmed, record.ID, map[string]string{
		"postcode":    record.Confirmed.Address.Postcode,
		"countryCode": record.Confirmed.Address.Country.Code,
	})
	s.logger.InfoContext(ctx, "address confirmed",
		"journey_id", id.String(),
		"request_id", requestcontext.RequestID(ctx),
	)
	return ConfirmResult{Target: continueTarget(record.Config.ContinueURL, record.ID)}, nil
}

// Confirmed returns the committed address for the calling service's API.
// Not found until the journey reaches done.
func (s *Service) Confirmed(ctx context.Context, id ID) (*ConfirmedAddress, error) {
	record, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if record.State != StateDone || record.Confirmed == nil {
		return nil, domainerrors.New(domainerrors.CodeNotFound, "journey has no confirmed address")
	}
	return record.Confirmed, nil
}

// load fetches and schema-checks a record.
func (s *Service) load(ctx context.Context, id ID) (*Record, error) {
	record, err := s.store.Get(ctx, id)
	if errors.Is(err, sentinel.ErrNotFound) || errors.Is(err, sentinel.ErrExpired) {
		return nil, domainerrors.New(domainerrors.CodeStaleJourney, "journey not found or expired")
	}
	if err != nil {
		s.metrics.KeystoreFailure()
		s.logger.ErrorContext(ctx, "keystore read failed", "journey_id", id.String(), "error", err)
		return nil, domainerrors.New(domainerrors.CodeUnavailable, "journey store unavailable")
	}
	if record.SchemaVersion != RecordSchemaVersion {
		s.logger.WarnContext(ctx, "journey record has unknown schema version",
			"journey_id", id.String(),
			"schema_version", record.SchemaVersion,
		)
		return nil, domainerrors.New(domainerrors.CodeStaleJourney, "journey record version not supported")
	}
	return record, nil
}

// loadActive is load plus a guard against driving a finished journey.
func (s *Service) loadActive(ctx context.Context, id ID) (*Record, error) {
	record, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if record.State == StateDone {
		return nil, domainerrors.New(domainerrors.CodeConflict, "journey already completed")
	}
	return record, nil
}

func (s *Service) put(ctx context.Context, record *Record) error {
	record.UpdatedAt = requestcontext.Now(ctx)
	if err := s.store.Put(ctx, record.ID, record); err != nil {
		s.metrics.KeystoreFailure()
		s.logger.ErrorContext(ctx, "keystore write failed", "journey_id", record.ID.String(), "error", err)
		return domainerrors.New(domainerrors.CodeUnavailable, "journey store unavailable")
	}
	return nil
}

func (s *Service) lookupFailure(ctx context.Context, id ID, err error) error {
	s.logger.ErrorContext(ctx, "address lookup unavailable",
		"journey_id", id.String(),
		"error", err,
		"request_id", requestcontext.RequestID(ctx),
	)
	return domainerrors.New(domainerrors.CodeUnavailable, "address lookup unavailable")
}

func (s *Service) publishAudit(ctx context.Context, category audit.EventCategory, action audit.Action, id ID, detail map[string]string) {
	if s.audit == nil {
		return
	}
	event := audit.Event{
		Category:  category,
		Action:    action,
		Timestamp: requestcontext.Now(ctx),
		JourneyID: id.String(),
		RequestID: requestcontext.RequestID(ctx),
		CallerID:  requestcontext.CallerID(ctx),
		ClientIP:  requestcontext.ClientIP(ctx),
		UserAgent: requestcontext.UserAgent(ctx),
		Device:    requestcontext.Device(ctx),
		Detail:    detail,
	}
	if err := s.audit.Publish(ctx, event); err != nil {
		s.logger.ErrorContext(ctx, "audit publish failed", "action", string(action), "error", err)
	}
}

// continueTarget appends the journey id to the calling service's continue
// URL; the caller exchanges the id for the confirmed address over the API.
func continueTarget(continueURL string, id ID) string {
	u, err := url.Parse(continueURL)
	if err != nil {
		return continueURL + "?id=" + id.String()
	}
	q := u.Query()
	q.Set("id", id.String())
	u.RawQuery = q.Encode()
	return u.String()
}

func postcodeFieldError(err error) error {
	code := "malformed_postcode"
	switch {
	case errors.Is(err, postcode.ErrEmpty):
		code = "empty_postcode"
	case errors.Is(err, postcode.ErrInvalidCharacters):
		code = "invalid_characters"
	}
	return domainerrors.NewWithFields(domainerrors.CodeBadRequest, "postcode is not valid",
		map[string]string{"postcode": code})
}

func invalidSelection() error {
	return domainerrors.NewWithFields(domainerrors.CodeBadRequest, "selected address is not valid",
		map[string]string{"addressId": "invalid_selection"})
}

// buildManualAddress validates the edit form and produces the address to
// stage. UK-mode journeys and GB-coded entries must carry a valid postcode;
// the country defaults to Great Britain when absent or when uk mode forces it.
func buildManualAddress(form ManualAddress, ukMode bool) (*Address, error) {
	fields := map[string]string{}

	for field, value := range map[string]string{
		"line1":    form.Line1,
		"line2":    form.Line2,
		"line3":    form.Line3,
		"town":     form.Town,
		"postcode": form.Postcode,
	} {
		if len(value) > maxFieldLength {
			fields[field] = "too_long"
		}
	}

	address := Address{
		Lines:    nonBlankLines(form.Line1, form.Line2, form.Line3),
		Town:     form.Town,
		Postcode: form.Postcode,
		Country:  lookup.Country{Code: form.CountryCode, Name: form.CountryName},
	}
	if ukMode || address.Country.Code == "" || address.Country.Code == "UK" {
		address.Country = lookup.Country{Code: "GB", Name: "United Kingdom"}
	}

	if !address.HasAnyLine() {
		fields["address"] = "at_least_one_line_required"
	}

	if address.Country.Code == "GB" && fields["postcode"] == "" {
		pc, err := postcode.Normalize(form.Postcode)
		if err != nil {
			fields["postcode"] = "invalid_postcode"
		} else {
			address.Postcode = pc.String()
		}
	}

	if len(fields) > 0 {
		return nil, domainerrors.NewWithFields(domainerrors.CodeBadRequest, "address is not valid", fields)
	}
	return &address, nil
}

func nonBlankLines(lines ...string) []string {
	out := make([]string, 0, len(lines))
	for _, l := range lines {
		if l != "" {
			out = append(out, l)
		}
	}
	return out
}

package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"addressfinder/internal/journey"
	"addressfinder/pkg/domainerrors"
	"addressfinder/pkg/platform/httputil"
	"addressfinder/pkg/requestcontext"
)

// Service defines the journey operations the HTTP layer drives.
type Service interface {
	Begin(ctx context.Context, raw journey.RawConfig) (*journey.Record, journey.Effect, error)
	Get(ctx context.Context, id journey.ID) (*journey.Record, error)
	Lookup(ctx context.Context, id journey.ID, rawPostcode, filter string) (*journey.Record, journey.Effect, error)
	LookupByOutcode(ctx context.Context, id journey.ID, rawOutcode, number string) (*journey.Record, journey.Effect, error)
	SelectCandidate(ctx context.Context, id journey.ID, candidateID string) (journey.Effect, error)
	RequestManual(ctx context.Context, id journey.ID) (journey.Effect, error)
	SetCountry(ctx context.Context, id journey.ID, code string) (journey.Effect, error)
	Edit(ctx context.Context, id journey.ID, form journey.ManualAddress) (journey.Effect, error)
	Confirm(ctx context.Context, id journey.ID) (journey.ConfirmResult, error)
	Confirmed(ctx context.Context, id journey.ID) (*journey.ConfirmedAddress, error)
}

// Handler wires the journey API and step endpoints to the journey service.
type Handler struct {
	service Service
	logger  *slog.Logger
}

// New constructs a journey handler with its dependencies.
func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// RegisterAPI mounts the service-to-service endpoints. Callers must put this
// group behind caller authentication.
func (h *Handler) RegisterAPI(r chi.Router) {
	r.Post("/api/init", h.handleInit)
	r.Get("/api/confirmed/{journeyID}", h.handleConfirmed)
}

// RegisterSteps mounts the end-user step endpoints.
func (h *Handler) RegisterSteps(r chi.Router) {
	r.Route("/journey/{journeyID}", func(r chi.Router) {
		r.Get("/{step}", h.handleStepView)
		r.Post("/lookup", h.handleLookup)
		r.Post("/bfpo", h.handleBFPOLookup)
		r.Post("/select", h.handleSelect)
		r.Post("/manual", h.handleManual)
		r.Post("/country-picker", h.handleCountry)
		r.Post("/edit", h.handleEdit)
		r.Post("/confirm", h.handleConfirm)
	})
}

// handleInit handles POST /api/init: validates the caller's journey
// configuration and mints a journey.
func (h *Handler) handleInit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	start := time.Now()

	var raw journey.RawConfig
	if err := httputil.DecodeJSON(r, &raw); err != nil {
		httputil.WriteError(w, err)
		return
	}

	record, effect, err := h.service.Begin(ctx, raw)
	if err != nil {
		h.logger.WarnContext(ctx, "journey init rejected",
			"request_id", requestcontext.RequestID(ctx),
			"caller_id", requestcontext.CallerID(ctx),
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "journey initialized",
		"request_id", requestcontext.RequestID(ctx),
		"caller_id", requestcontext.CallerID(ctx),
		"journey_id", record.ID.String(),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	httputil.WriteJSON(w, http.StatusCreated, InitResponse{
		JourneyID: record.ID.String(),
		Start:     stepURL(record.ID, effect.Redirect),
	})
}

// handleConfirmed handles GET /api/confirmed/{journeyID}: the calling service
// exchanges the journey id for the confirmed address.
func (h *Handler) handleConfirmed(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := journey.ID(chi.URLParam(r, "journeyID"))

	confirmed, err := h.service.Confirmed(ctx, id)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, FromConfirmed(confirmed))
}

// handleStepView handles GET /journey/{journeyID}/{step}: the view model the
// frontend renders for the journey's current step. Requesting a step the
// journey is not at redirects to the right one.
func (h *Handler) handleStepView(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := journey.ID(chi.URLParam(r, "journeyID"))
	step := chi.URLParam(r, "step")

	record, err := h.service.Get(ctx, id)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	if step != string(record.State) {
		redirect(w, r, stepURL(id, record.State.Path()))
		return
	}
	httputil.WriteJSON(w, http.StatusOK, FromRecord(record, localeFrom(r)))
}

func (h *Handler) handleLookup(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := journeyID(r)

	form, err := parseForm(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	_, effect, err := h.service.Lookup(ctx, id, form.Get("postcode"), form.Get("filter"))
	if err != nil {
		h.stepError(w, r, id, err)
		return
	}
	redirect(w, r, stepURL(id, effect.Redirect))
}

func (h *Handler) handleBFPOLookup(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := journeyID(r)

	form, err := parseForm(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	_, effect, err := h.service.LookupByOutcode(ctx, id, form.Get("outcode"), form.Get("number"))
	if err != nil {
		h.stepError(w, r, id, err)
		return
	}
	redirect(w, r, stepURL(id, effect.Redirect))
}

func (h *Handler) handleSelect(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := journeyID(r)

	form, err := parseForm(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	effect, err := h.service.SelectCandidate(ctx, id, form.Get("addressId"))
	if err != nil {
		h.stepError(w, r, id, err)
		return
	}
	redirect(w, r, stepURL(id, effect.Redirect))
}

func (h *Handler) handleManual(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := journeyID(r)

	effect, err := h.service.RequestManual(ctx, id)
	if err != nil {
		h.stepError(w, r, id, err)
		return
	}
	redirect(w, r, stepURL(id, effect.Redirect))
}

func (h *Handler) handleCountry(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := journeyID(r)

	form, err := parseForm(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	effect, err := h.service.SetCountry(ctx, id, form.Get("countryCode"))
	if err != nil {
		h.stepError(w, r, id, err)
		return
	}
	redirect(w, r, stepURL(id, effect.Redirect))
}

func (h *Handler) handleEdit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := journeyID(r)

	form, err := parseForm(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	effect, err := h.service.Edit(ctx, id, manualAddressFrom(form))
	if err != nil {
		h.stepError(w, r, id, err)
		return
	}
	redirect(w, r, stepURL(id, effect.Redirect))
}

// handleConfirm commits the staged address and sends the browser to the
// calling service's continue URL. Only a step redirect gets the journey
// prefix; the continue target is passed through untouched, relative or not.
func (h *Handler) handleConfirm(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := journeyID(r)

	result, err := h.service.Confirm(ctx, id)
	if err != nil {
		h.stepError(w, r, id, err)
		return
	}
	target := result.Target
	if result.StepRedirect {
		target = stepURL(id, target)
	}
	redirect(w, r, target)
}

// stepError writes the error envelope for a step submission. Validation
// failures stay 400 with field codes so the frontend re-renders the form.
func (h *Handler) stepError(w http.ResponseWriter, r *http.Request, id journey.ID, err error) {
	ctx := r.Context()
	code := domainerrors.CodeOf(err)
	if code == domainerrors.CodeInternal || code == domainerrors.CodeUnavailable {
		h.logger.ErrorContext(ctx, "journey step failed",
			"request_id", requestcontext.RequestID(ctx),
			"journey_id", id.String(),
			"path", r.URL.Path,
			"error", err,
		)
	}
	httputil.WriteError(w, err)
}

func journeyID(r *http.Request) journey.ID {
	return journey.ID(chi.URLParam(r, "journeyID"))
}

// stepURL turns a journey-relative step path into the route the browser hits.
func stepURL(id journey.ID, path string) string {
	return "/journey/" + id.String() + path
}

// redirect is a 303 so the browser re-requests the next step with GET.
func redirect(w http.ResponseWriter, r *http.Request, target string) {
	http.Redirect(w, r, target, http.StatusSeeOther)
}

func localeFrom(r *http.Request) journey.Locale {
	if r.URL.Query().Get("lang") == string(journey.LocaleWelsh) {
		return journey.LocaleWelsh
	}
	return journey.LocaleEnglish
}

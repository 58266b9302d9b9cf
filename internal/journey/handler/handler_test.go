package handler

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"addressfinder/internal/journey"
	"addressfinder/internal/journey/handler/mocks"
	"addressfinder/internal/lookup"
	"addressfinder/pkg/domainerrors"
	"addressfinder/pkg/platform/httputil"
)

//go:generate mockgen -source=handler.go -destination=mocks/journey_mocks.go -package=mocks Service

type JourneyHandlerSuite struct {
	suite.Suite
	ctx context.Context
}

func (s *JourneyHandlerSuite) SetupSuite() {
	s.ctx = context.Background()
}

func TestJourneyHandlerSuite(t *testing.T) {
	suite.Run(t, new(JourneyHandlerSuite))
}

func newTestRouter(t *testing.T) (chi.Router, *mocks.MockService) {
	t.Helper()
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)
	mockService := mocks.NewMockService(ctrl)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	h := New(mockService, logger)
	r := chi.NewRouter()
	h.RegisterAPI(r)
	h.RegisterSteps(r)
	return r, mockService
}

func postForm(router http.Handler, path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func testRecord(id journey.ID, state journey.State) *journey.Record {
	cfg, _ := journey.ParseConfig(journey.RawConfig{
		Version:     journey.ConfigVersion,
		ContinueURL: "https://caller.example/done",
	})
	return &journey.Record{
		SchemaVersion: journey.RecordSchemaVersion,
		ID:            id,
		Config:        cfg,
		State:         state,
	}
}

func (s *JourneyHandlerSuite) TestInit() {
	router, mockService := newTestRouter(s.T())
	id := journey.NewID()
	mockService.EXPECT().Begin(gomock.Any(), gomock.Any()).
		Return(testRecord(id, journey.StateLookup), journey.Effect{Redirect: "/lookup"}, nil)

	body := `{"version":2,"continueUrl":"https://caller.example/done"}`
	req := httptest.NewRequest(http.MethodPost, "/api/init", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(s.T(), http.StatusCreated, w.Code)
	var resp InitResponse
	require.NoError(s.T(), json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(s.T(), id.String(), resp.JourneyID)
	assert.Equal(s.T(), "/journey/"+id.String()+"/lookup", resp.Start)
}

func (s *JourneyHandlerSuite) TestInitRejectsBadConfig() {
	router, mockService := newTestRouter(s.T())
	mockService.EXPECT().Begin(gomock.Any(), gomock.Any()).
		Return(nil, journey.Effect{}, domainerrors.New(domainerrors.CodeBadRequest, "unsupported config version"))

	req := httptest.NewRequest(http.MethodPost, "/api/init", strings.NewReader(`{"version":1}`))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(s.T(), http.StatusBadRequest, w.Code)
}

func (s *JourneyHandlerSuite) TestInitRejectsMalformedJSON() {
	router, _ := newTestRouter(s.T())

	req := httptest.NewRequest(http.MethodPost, "/api/init", strings.NewReader(`{not json`))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(s.T(), http.StatusBadRequest, w.Code)
}

func (s *JourneyHandlerSuite) TestConfirmedAPI() {
	router, mockService := newTestRouter(s.T())
	id := journey.NewID()
	mockService.EXPECT().Confirmed(gomock.Any(), id).Return(&journey.ConfirmedAddress{
		CandidateID: "GB1",
		Address: journey.Address{
			Lines:    []string{"1 Malvern Court"},
			Town:     "Testford",
			Postcode: "ZZ1 1ZZ",
			Country:  lookup.Country{Code: "GB", Name: "United Kingdom"},
		},
	}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/confirmed/"+id.String(), nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(s.T(), http.StatusOK, w.Code)
	var resp AddressView
	require.NoError(s.T(), json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(s.T(), "GB1", resp.CandidateID)
	assert.Equal(s.T(), "ZZ1 1ZZ", resp.Postcode)
	assert.Equal(s.T(), "GB", resp.CountryCode)
}

func (s *JourneyHandlerSuite) TestConfirmedAPINotFound() {
	router, mockService := newTestRouter(s.T())
	id := journey.NewID()
	mockService.EXPECT().Confirmed(gomock.Any(), id).
		Return(nil, domainerrors.New(domainerrors.CodeNotFound, "journey has no confirmed address"))

	req := httptest.NewRequest(http.MethodGet, "/api/confirmed/"+id.String(), nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(s.T(), http.StatusNotFound, w.Code)
}

func (s *JourneyHandlerSuite) TestStepViewRendersCurrentStep() {
	router, mockService := newTestRouter(s.T())
	id := journey.NewID()
	record := testRecord(id, journey.StateSelect)
	record.Postcode = "ZZ1 1ZZ"
	record.Candidates = []lookup.Candidate{
		{ID: "GB1", Lines: []string{"1 Malvern Court"}, Town: "Testford", Postcode: "ZZ1 1ZZ"},
	}
	mockService.EXPECT().Get(gomock.Any(), id).Return(record, nil)

	req := httptest.NewRequest(http.MethodGet, "/journey/"+id.String()+"/select", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(s.T(), http.StatusOK, w.Code)
	var view StepView
	require.NoError(s.T(), json.Unmarshal(w.Body.Bytes(), &view))
	assert.Equal(s.T(), "select", view.Step)
	assert.Equal(s.T(), "Choose your address", view.Heading)
	require.Len(s.T(), view.Candidates, 1)
	assert.Equal(s.T(), "1 Malvern Court, Testford, ZZ1 1ZZ", view.Candidates[0].Summary)
}

func (s *JourneyHandlerSuite) TestStepViewWelshLabels() {
	router, mockService := newTestRouter(s.T())
	id := journey.NewID()
	mockService.EXPECT().Get(gomock.Any(), id).Return(testRecord(id, journey.StateLookup), nil)

	req := httptest.NewRequest(http.MethodGet, "/journey/"+id.String()+"/lookup?lang=cy", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(s.T(), http.StatusOK, w.Code)
	var view StepView
	require.NoError(s.T(), json.Unmarshal(w.Body.Bytes(), &view))
	assert.Equal(s.T(), "Dod o hyd i'ch cyfeiriad", view.Heading)
}

func (s *JourneyHandlerSuite) TestStepViewRedirectsToActualStep() {
	router, mockService := newTestRouter(s.T())
	id := journey.NewID()
	mockService.EXPECT().Get(gomock.Any(), id).Return(testRecord(id, journey.StateConfirm), nil)

	req := httptest.NewRequest(http.MethodGet, "/journey/"+id.String()+"/lookup", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(s.T(), http.StatusSeeOther, w.Code)
	assert.Equal(s.T(), "/journey/"+id.String()+"/confirm", w.Header().Get("Location"))
}

func (s *JourneyHandlerSuite) TestStepViewStaleJourney() {
	router, mockService := newTestRouter(s.T())
	id := journey.NewID()
	mockService.EXPECT().Get(gomock.Any(), id).
		Return(nil, domainerrors.New(domainerrors.CodeStaleJourney, "journey not found or expired"))

	req := httptest.NewRequest(http.MethodGet, "/journey/"+id.String()+"/lookup", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(s.T(), http.StatusGone, w.Code)
}

func (s *JourneyHandlerSuite) TestLookupRedirectsToSelect() {
	router, mockService := newTestRouter(s.T())
	id := journey.NewID()
	mockService.EXPECT().Lookup(gomock.Any(), id, "zz11zz", "court").
		Return(testRecord(id, journey.StateSelect), journey.Effect{Redirect: "/select"}, nil)

	w := postForm(router, "/journey/"+id.String()+"/lookup", url.Values{
		"postcode": {"zz11zz"},
		"filter":   {"court"},
	})

	assert.Equal(s.T(), http.StatusSeeOther, w.Code)
	assert.Equal(s.T(), "/journey/"+id.String()+"/select", w.Header().Get("Location"))
}

func (s *JourneyHandlerSuite) TestLookupValidationFailure() {
	router, mockService := newTestRouter(s.T())
	id := journey.NewID()
	mockService.EXPECT().Lookup(gomock.Any(), id, "NOPE", "").
		Return(nil, journey.Effect{}, domainerrors.NewWithFields(domainerrors.CodeBadRequest, "postcode is not valid",
			map[string]string{"postcode": "malformed_postcode"}))

	w := postForm(router, "/journey/"+id.String()+"/lookup", url.Values{"postcode": {"NOPE"}})

	assert.Equal(s.T(), http.StatusBadRequest, w.Code)
	var resp httputil.ErrorResponse
	require.NoError(s.T(), json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(s.T(), "malformed_postcode", resp.Fields["postcode"])
}

func (s *JourneyHandlerSuite) TestLookupUnavailable() {
	router, mockService := newTestRouter(s.T())
	id := journey.NewID()
	mockService.EXPECT().Lookup(gomock.Any(), id, "zz11zz", "").
		Return(nil, journey.Effect{}, domainerrors.New(domainerrors.CodeUnavailable, "address lookup unavailable"))

	w := postForm(router, "/journey/"+id.String()+"/lookup", url.Values{"postcode": {"zz11zz"}})

	assert.Equal(s.T(), http.StatusServiceUnavailable, w.Code)
}

func (s *JourneyHandlerSuite) TestBFPOLookup() {
	router, mockService := newTestRouter(s.T())
	id := journey.NewID()
	mockService.EXPECT().LookupByOutcode(gomock.Any(), id, "BF1", "2").
		Return(testRecord(id, journey.StateSelect), journey.Effect{Redirect: "/select"}, nil)

	w := postForm(router, "/journey/"+id.String()+"/bfpo", url.Values{
		"outcode": {"BF1"},
		"number":  {"2"},
	})

	assert.Equal(s.T(), http.StatusSeeOther, w.Code)
}

func (s *JourneyHandlerSuite) TestSelectRedirectsToConfirm() {
	router, mockService := newTestRouter(s.T())
	id := journey.NewID()
	mockService.EXPECT().SelectCandidate(gomock.Any(), id, "GB1").
		Return(journey.Effect{Redirect: "/confirm"}, nil)

	w := postForm(router, "/journey/"+id.String()+"/select", url.Values{"addressId": {"GB1"}})

	assert.Equal(s.T(), http.StatusSeeOther, w.Code)
	assert.Equal(s.T(), "/journey/"+id.String()+"/confirm", w.Header().Get("Location"))
}

func (s *JourneyHandlerSuite) TestManualEntry() {
	router, mockService := newTestRouter(s.T())
	id := journey.NewID()
	mockService.EXPECT().RequestManual(gomock.Any(), id).
		Return(journey.Effect{Redirect: "/edit"}, nil)

	w := postForm(router, "/journey/"+id.String()+"/manual", url.Values{})

	assert.Equal(s.T(), http.StatusSeeOther, w.Code)
	assert.Equal(s.T(), "/journey/"+id.String()+"/edit", w.Header().Get("Location"))
}

func (s *JourneyHandlerSuite) TestCountryPicker() {
	router, mockService := newTestRouter(s.T())
	id := journey.NewID()
	mockService.EXPECT().SetCountry(gomock.Any(), id, "FR").
		Return(journey.Effect{Redirect: "/edit"}, nil)

	w := postForm(router, "/journey/"+id.String()+"/country-picker", url.Values{"countryCode": {"FR"}})

	assert.Equal(s.T(), http.StatusSeeOther, w.Code)
}

func (s *JourneyHandlerSuite) TestEditPassesFormThrough() {
	router, mockService := newTestRouter(s.T())
	id := journey.NewID()
	mockService.EXPECT().Edit(gomock.Any(), id, journey.ManualAddress{
		Line1:    "1 High Street",
		Town:     "Testford",
		Postcode: "zz11zz",
	}).Return(journey.Effect{Redirect: "/confirm"}, nil)

	w := postForm(router, "/journey/"+id.String()+"/edit", url.Values{
		"line1":    {"1 High Street"},
		"town":     {"Testford"},
		"postcode": {"zz11zz"},
	})

	assert.Equal(s.T(), http.StatusSeeOther, w.Code)
}

func (s *JourneyHandlerSuite) TestConfirmRedirectsToContinueURL() {
	router, mockService := newTestRouter(s.T())
	id := journey.NewID()
	mockService.EXPECT().Confirm(gomock.Any(), id).
		Return(journey.ConfirmResult{Target: "https://caller.example/done?id=" + id.String()}, nil)

	w := postForm(router, "/journey/"+id.String()+"/confirm", url.Values{})

	assert.Equal(s.T(), http.StatusSeeOther, w.Code)
	assert.Equal(s.T(), "https://caller.example/done?id="+id.String(), w.Header().Get("Location"))
}

// A relative continue URL belongs to the calling service and must not be
// rewritten into a journey step route.
func (s *JourneyHandlerSuite) TestConfirmRedirectsToRelativeContinueURL() {
	router, mockService := newTestRouter(s.T())
	id := journey.NewID()
	mockService.EXPECT().Confirm(gomock.Any(), id).
		Return(journey.ConfirmResult{Target: "/address-captured?id=" + id.String()}, nil)

	w := postForm(router, "/journey/"+id.String()+"/confirm", url.Values{})

	assert.Equal(s.T(), http.StatusSeeOther, w.Code)
	assert.Equal(s.T(), "/address-captured?id="+id.String(), w.Header().Get("Location"))
}

func (s *JourneyHandlerSuite) TestConfirmWithNothingStagedRedirectsToLookup() {
	router, mockService := newTestRouter(s.T())
	id := journey.NewID()
	mockService.EXPECT().Confirm(gomock.Any(), id).
		Return(journey.ConfirmResult{Target: "/lookup", StepRedirect: true}, nil)

	w := postForm(router, "/journey/"+id.String()+"/confirm", url.Values{})

	assert.Equal(s.T(), http.StatusSeeOther, w.Code)
	assert.Equal(s.T(), "/journey/"+id.String()+"/lookup", w.Header().Get("Location"))
}

func (s *JourneyHandlerSuite) TestConfirmOnFinishedJourney() {
	router, mockService := newTestRouter(s.T())
	id := journey.NewID()
	mockService.EXPECT().Confirm(gomock.Any(), id).
		Return(journey.ConfirmResult{}, domainerrors.New(domainerrors.CodeConflict, "journey already has a confirmed address"))

	w := postForm(router, "/journey/"+id.String()+"/confirm", url.Values{})

	assert.Equal(s.T(), http.StatusConflict, w.Code)
}

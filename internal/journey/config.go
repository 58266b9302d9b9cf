package journey

import (
	"net/url"
	"strings"

	"addressfinder/pkg/domainerrors"
)

// ConfigVersion is the only accepted journey configuration version. Calling
// services submitting an older or unknown version are rejected at init time.
const ConfigVersion = 2

// Locale selects a message bundle. English is always present; Welsh overlays
// it for journeys that opt in.
type Locale string

const (
	LocaleEnglish Locale = "en"
	LocaleWelsh   Locale = "cy"
)

// Labels are the per-step text overrides a calling service may supply. After
// ParseConfig every field is non-empty, so steps render without nil checks.
type Labels struct {
	AppTitle         string `json:"appTitle"`
	LookupTitle      string `json:"lookupTitle"`
	SelectTitle      string `json:"selectTitle"`
	EditTitle        string `json:"editTitle"`
	ConfirmTitle     string `json:"confirmTitle"`
	CountryPickTitle string `json:"countryPickTitle"`
	NoResultsMessage string `json:"noResultsMessage"`
	ManualEntryLink  string `json:"manualEntryLink"`
}

// PageHeadingStyle controls the rendered heading class.
type PageHeadingStyle string

const (
	HeadingStyleXLarge PageHeadingStyle = "xlarge"
	HeadingStyleLarge  PageHeadingStyle = "large"
	HeadingStyleMedium PageHeadingStyle = "medium"
)

// RawConfig is the init-time payload from the calling service. Everything but
// the version and continue URL is optional.
type RawConfig struct {
	Version          int               `json:"version"`
	ContinueURL      string            `json:"continueUrl"`
	UKMode           *bool             `json:"ukMode,omitempty"`
	BFPO             bool              `json:"bfpo,omitempty"`
	DisableManual    bool              `json:"disableManualEntry,omitempty"`
	PageHeadingStyle string            `json:"pageHeadingStyle,omitempty"`
	Labels           map[Locale]Labels `json:"labels,omitempty"`
}

// Config is the resolved, immutable configuration for one journey. Created
// exactly once at init; every optional field has been defaulted so no
// downstream step re-resolves anything.
type Config struct {
	Version          int               `json:"version"`
	ContinueURL      string            `json:"continueUrl"`
	UKMode           bool              `json:"ukMode"`
	BFPO             bool              `json:"bfpo"`
	AllowManualEntry bool              `json:"allowManualEntry"`
	PageHeadingStyle PageHeadingStyle  `json:"pageHeadingStyle"`
	Labels           map[Locale]Labels `json:"labels"`
}

var defaultLabels = map[Locale]Labels{
	LocaleEnglish: {
		AppTitle:         "Find address",
		LookupTitle:      "Find your address",
		SelectTitle:      "Choose your address",
		EditTitle:        "Enter your address",
		ConfirmTitle:     "Review and confirm your address",
		CountryPickTitle: "Select your country",
		NoResultsMessage: "We could not find any addresses for that postcode",
		ManualEntryLink:  "Enter the address manually",
	},
	LocaleWelsh: {
		AppTitle:         "Dod o hyd i gyfeiriad",
		LookupTitle:      "Dod o hyd i'ch cyfeiriad",
		SelectTitle:      "Dewiswch eich cyfeiriad",
		EditTitle:        "Nodwch eich cyfeiriad",
		ConfirmTitle:     "Adolygu a chadarnhau eich cyfeiriad",
		CountryPickTitle: "Dewiswch eich gwlad",
		NoResultsMessage: "Ni allem ddod o hyd i unrhyw gyfeiriadau ar gyfer y cod post hwnnw",
		ManualEntryLink:  "Nodwch y cyfeiriad eich hun",
	},
}

// ParseConfig validates an init payload and resolves every default. The
// result is immutable for the life of the journey.
func ParseConfig(raw RawConfig) (Config, error) {
	if raw.Version != ConfigVersion {
		return Config{}, domainerrors.New(domainerrors.CodeBadRequest, "unsupported config version")
	}
	continueURL := strings.TrimSpace(raw.ContinueURL)
	if continueURL == "" {
		return Config{}, domainerrors.New(domainerrors.CodeBadRequest, "continueUrl is required")
	}
	if _, err := url.Parse(continueURL); err != nil {
		return Config{}, domainerrors.New(domainerrors.CodeBadRequest, "continueUrl is not a valid URL")
	}

	ukMode := true
	if raw.UKMode != nil {
		ukMode = *raw.UKMode
	}

	style := PageHeadingStyle(raw.PageHeadingStyle)
	switch style {
	case HeadingStyleXLarge, HeadingStyleLarge, HeadingStyleMedium:
	case "":
		style = HeadingStyleXLarge
	default:
		return Config{}, domainerrors.New(domainerrors.CodeBadRequest, "unknown pageHeadingStyle")
	}

	labels := make(map[Locale]Labels, len(defaultLabels))
	for locale, defaults := range defaultLabels {
		labels[locale] = mergeLabels(defaults, raw.Labels[locale])
	}

	return Config{
		Version:          ConfigVersion,
		ContinueURL:      continueURL,
		UKMode:           ukMode,
		BFPO:             raw.BFPO,
		AllowManualEntry: !raw.DisableManual,
		PageHeadingStyle: style,
		Labels:           labels,
	}, nil
}

// mergeLabels lays caller overrides over the defaults, field by field.
func mergeLabels(defaults, overrides Labels) Labels {
	pick := func(override, fallback string) string {
		if strings.TrimSpace(override) != "" {
			return override
		}
		return fallback
	}
	return Labels{
		AppTitle:         pick(overrides.AppTitle, defaults.AppTitle),
		LookupTitle:      pick(overrides.LookupTitle, defaults.LookupTitle),
		SelectTitle:      pick(overrides.SelectTitle, defaults.SelectTitle),
		EditTitle:        pick(overrides.EditTitle, defaults.EditTitle),
		ConfirmTitle:     pick(overrides.ConfirmTitle, defaults.ConfirmTitle),
		CountryPickTitle: pick(overrides.CountryPickTitle, defaults.CountryPickTitle),
		NoResultsMessage: pick(overrides.NoResultsMessage, defaults.NoResultsMessage),
		ManualEntryLink:  pick(overrides.ManualEntryLink, defaults.ManualEntryLink),
	}
}

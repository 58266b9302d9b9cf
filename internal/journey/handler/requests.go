package handler

import (
	"net/http"
	"net/url"

	"addressfinder/internal/journey"
	"addressfinder/pkg/domainerrors"
)

// parseForm reads a step submission. Steps are browser form posts, not JSON.
func parseForm(r *http.Request) (url.Values, error) {
	if err := r.ParseForm(); err != nil {
		return nil, domainerrors.New(domainerrors.CodeBadRequest, "request body is not a valid form")
	}
	return r.PostForm, nil
}

func manualAddressFrom(form url.Values) journey.ManualAddress {
	return journey.ManualAddress{
		Line1:       form.Get("line1"),
		Line2:       form.Get("line2"),
		Line3:       form.Get("line3"),
		Town:        form.Get("town"),
		Postcode:    form.Get("postcode"),
		CountryCode: form.Get("countryCode"),
		CountryName: form.Get("countryName"),
	}
}

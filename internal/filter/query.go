package filter

import (
	"math"
	"net/url"
	"strconv"
	"strings"

	"github.com/leboncoincoin/marketplace-web/internal/model"
)

// Query parameter names understood by the marketplace backend.
const (
	ParamSearch   = "search"
	ParamCategory = "category"
	ParamLocation = "location"
	ParamMinPrice = "minPrice"
	ParamMaxPrice = "maxPrice"
)

// Query encodes f as backend query parameters. Unset criteria are omitted.
func Query(f model.Filter) url.Values {
	q := url.Values{}
	if s := strings.TrimSpace(f.Search); s != "" {
		q.Set(ParamSearch, s)
	}
	if f.Category != "" {
		q.Set(ParamCategory, f.Category)
	}
	if l := strings.TrimSpace(f.Location); l != "" {
		q.Set(ParamLocation, l)
	}
	if f.MinPrice != nil {
		q.Set(ParamMinPrice, strconv.FormatFloat(*f.MinPrice, 'f', -1, 64))
	}
	if f.MaxPrice != nil {
		q.Set(ParamMaxPrice, strconv.FormatFloat(*f.MaxPrice, 'f', -1, 64))
	}
	return q
}

// FromQuery decodes a filter from query parameters. Unparseable or
// negative prices are ignored.
func FromQuery(q url.Values) model.Filter {
	return model.Filter{
		Search:   q.Get(ParamSearch),
		Category: q.Get(ParamCategory),
		Location: q.Get(ParamLocation),
		MinPrice: parsePrice(q.Get(ParamMinPrice)),
		MaxPrice: parsePrice(q.Get(ParamMaxPrice)),
	}
}

func parsePrice(s string) *float64 {
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || !validPrice(v) {
		return nil
	}
	return &v
}

// validPrice reports whether v is a finite, non-negative amount.
// ParseFloat accepts "NaN" and "Inf", which compare false to everything.
func validPrice(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && v >= 0
}

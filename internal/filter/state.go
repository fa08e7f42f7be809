// Package filter keeps the client-side state of the listing search
// filter and of the create/edit listing form, including opportunistic
// category inference from free text.
package filter

import (
	"errors"

	"github.com/leboncoincoin/marketplace-web/internal/catalog"
	"github.com/leboncoincoin/marketplace-web/internal/model"
)

var (
	// ErrUnknownCategory is returned when a category outside the closed set is selected.
	ErrUnknownCategory = errors.New("unknown category")
	// ErrInvalidPriceRange is returned for negative or non-finite bounds, or min > max.
	ErrInvalidPriceRange = errors.New("invalid price range")
)

// State is the active search filter. While the user has not picked a
// category explicitly, search text drives the category through
// catalog.Guess. An explicit pick locks the category until Reset.
//
// State is not safe for concurrent use; each browsing session owns one.
type State struct {
	filter model.Filter
	locked bool
}

// NewState returns an empty, unlocked filter.
func NewState() *State {
	return &State{}
}

// Restore rebuilds a state from a filter and its lock flag, e.g. when
// the browser sends its current state back.
func Restore(f model.Filter, locked bool) *State {
	s := &State{filter: f, locked: locked}
	s.filter.MinPrice = copyFloat(f.MinPrice)
	s.filter.MaxPrice = copyFloat(f.MaxPrice)
	return s
}

// SetSearch stores the search text and, unless the category is locked,
// replaces the category with the inferred one (or clears it).
func (s *State) SetSearch(text string) {
	s.filter.Search = text
	if s.locked {
		return
	}
	category, _ := catalog.Guess(text)
	s.filter.Category = category
}

// SelectCategory records an explicit category choice and locks it.
// An empty category means "all categories" and is also an explicit choice.
func (s *State) SelectCategory(category string) error {
	if category != "" && !catalog.IsCategory(category) {
		return ErrUnknownCategory
	}
	s.filter.Category = category
	s.locked = true
	return nil
}

// SetLocation stores the location criterion.
func (s *State) SetLocation(location string) {
	s.filter.Location = location
}

// SetPriceRange stores the price bounds; nil leaves a bound open.
func (s *State) SetPriceRange(min, max *float64) error {
	if (min != nil && !validPrice(*min)) || (max != nil && !validPrice(*max)) {
		return ErrInvalidPriceRange
	}
	if min != nil && max != nil && *min > *max {
		return ErrInvalidPriceRange
	}
	s.filter.MinPrice = copyFloat(min)
	s.filter.MaxPrice = copyFloat(max)
	return nil
}

// Reset clears every criterion and unlocks the category.
func (s *State) Reset() {
	s.filter = model.Filter{}
	s.locked = false
}

// Locked reports whether the category was chosen explicitly.
func (s *State) Locked() bool {
	return s.locked
}

// Current returns a copy of the active filter.
func (s *State) Current() model.Filter {
	f := s.filter
	f.MinPrice = copyFloat(f.MinPrice)
	f.MaxPrice = copyFloat(f.MaxPrice)
	return f
}

func copyFloat(v *float64) *float64 {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

package filter

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/leboncoincoin/marketplace-web/internal/catalog"
	"github.com/leboncoincoin/marketplace-web/internal/model"
)

// Listing form bounds.
const (
	MinTitleLength       = 3
	MaxTitleLength       = 100
	MinDescriptionLength = 10
	MaxDescriptionLength = 5000
	MinLocationLength    = 2
	MaxLocationLength    = 100
	MaxImages            = 10
)

// ErrTooManyImages is returned when adding an image past MaxImages.
var ErrTooManyImages = fmt.Errorf("maximum %d images allowed", MaxImages)

// Mode selects the rules applied by Form.Validate.
type Mode int

const (
	// ModeCreate requires at least one image.
	ModeCreate Mode = iota
	// ModeUpdate edits an existing listing.
	ModeUpdate
)

// FieldError describes one invalid form field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError collects every invalid field of a form.
type ValidationError struct {
	Fields []FieldError `json:"fields"`
}

func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		parts[i] = f.Field + ": " + f.Message
	}
	return "invalid listing: " + strings.Join(parts, "; ")
}

func (e *ValidationError) add(field, msg string) {
	e.Fields = append(e.Fields, FieldError{Field: field, Message: msg})
}

// Form is the state of the create/edit listing form. The category
// follows the title through catalog.Guess until picked explicitly.
type Form struct {
	Title       string
	Description string
	Price       float64
	Location    string

	category string
	images   []string
	locked   bool
}

// FormFromListing prefills a form for editing. The existing category
// counts as an explicit choice.
func FormFromListing(l *model.Listing) *Form {
	return &Form{
		Title:       l.Title,
		Description: l.Description,
		Price:       l.Price,
		Location:    l.Location,
		category:    l.Category,
		images:      append([]string(nil), l.ImageURLs...),
		locked:      l.Category != "",
	}
}

// FormFromRequest loads a submitted request body. A category present in
// the body is an explicit choice; otherwise it is inferred from the title.
func FormFromRequest(req *model.ListingRequest) *Form {
	f := &Form{
		Description: req.Description,
		Price:       req.Price,
		Location:    req.Location,
		images:      append([]string(nil), req.ImageURLs...),
	}
	if req.Category != "" {
		f.category = req.Category
		f.locked = true
	}
	f.SetTitle(req.Title)
	return f
}

// SetTitle stores the title and infers the category unless locked.
func (f *Form) SetTitle(title string) {
	f.Title = title
	if f.locked {
		return
	}
	category, _ := catalog.Guess(title)
	f.category = category
}

// SelectCategory records an explicit category choice and locks it.
func (f *Form) SelectCategory(category string) error {
	if !catalog.IsCategory(category) {
		return ErrUnknownCategory
	}
	f.category = category
	f.locked = true
	return nil
}

// Category returns the current category, inferred or chosen.
func (f *Form) Category() string {
	return f.category
}

// CategoryLocked reports whether the category was chosen explicitly.
func (f *Form) CategoryLocked() bool {
	return f.locked
}

// AddImage appends an uploaded image URL.
func (f *Form) AddImage(url string) error {
	if len(f.images) >= MaxImages {
		return ErrTooManyImages
	}
	f.images = append(f.images, url)
	return nil
}

// Apply loads an edit submitted over a form prefilled by
// FormFromListing. A category in the request is an explicit choice;
// otherwise the form keeps its own, so a locked category survives a new
// title. Nil image URLs keep the current images.
func (f *Form) Apply(req *model.ListingRequest) error {
	if req.Category != "" {
		if err := f.SelectCategory(req.Category); err != nil {
			return &ValidationError{Fields: []FieldError{{Field: "category", Message: err.Error()}}}
		}
	}
	f.SetTitle(req.Title)
	f.Description = req.Description
	f.Price = req.Price
	f.Location = req.Location

	if req.ImageURLs != nil {
		f.images = nil
		for _, u := range req.ImageURLs {
			if err := f.AddImage(u); err != nil {
				return &ValidationError{Fields: []FieldError{{Field: "imageUrls", Message: err.Error()}}}
			}
		}
	}
	return nil
}

// Images returns the ordered image URLs.
func (f *Form) Images() []string {
	return append([]string(nil), f.images...)
}

// Validate checks the form against the listing rules.
func (f *Form) Validate(mode Mode) error {
	ve := &ValidationError{}

	checkLength(ve, "title", strings.TrimSpace(f.Title), MinTitleLength, MaxTitleLength)
	checkLength(ve, "description", strings.TrimSpace(f.Description), MinDescriptionLength, MaxDescriptionLength)
	checkLength(ve, "location", strings.TrimSpace(f.Location), MinLocationLength, MaxLocationLength)

	if !validPrice(f.Price) {
		ve.add("price", "must not be negative")
	}

	switch {
	case f.category == "":
		ve.add("category", "is required")
	case !catalog.IsCategory(f.category):
		ve.add("category", "is not a known category")
	}

	if mode == ModeCreate && len(f.images) == 0 {
		ve.add("imageUrls", "at least one image is required")
	}
	if len(f.images) > MaxImages {
		ve.add("imageUrls", fmt.Sprintf("at most %d images allowed", MaxImages))
	}

	if len(ve.Fields) > 0 {
		return ve
	}
	return nil
}

// Request builds the backend request body. Call Validate first.
func (f *Form) Request() *model.ListingRequest {
	return &model.ListingRequest{
		Title:       strings.TrimSpace(f.Title),
		Description: strings.TrimSpace(f.Description),
		Price:       f.Price,
		Category:    f.category,
		Location:    strings.TrimSpace(f.Location),
		ImageURLs:   f.Images(),
	}
}

func checkLength(ve *ValidationError, field, value string, min, max int) {
	n := utf8.RuneCountInString(value)
	switch {
	case n == 0:
		ve.add(field, "is required")
	case n < min:
		ve.add(field, fmt.Sprintf("must be at least %d characters", min))
	case n > max:
		ve.add(field, fmt.Sprintf("must be at most %d characters", max))
	}
}

package filter

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leboncoincoin/marketplace-web/internal/model"
)

func ptr(v float64) *float64 { return &v }

func TestState_SearchInfersCategory(t *testing.T) {
	s := NewState()

	s.SetSearch("canapé d'angle")
	assert.Equal(t, "Mobilier", s.Current().Category)
	assert.False(t, s.Locked())

	s.SetSearch("iphone")
	assert.Equal(t, "Électronique", s.Current().Category)

	s.SetSearch("xyzzy")
	assert.Empty(t, s.Current().Category)
	assert.Equal(t, "xyzzy", s.Current().Search)
}

func TestState_ShortSearchClearsInference(t *testing.T) {
	s := NewState()
	s.SetSearch("moto")
	require.Equal(t, "Moto", s.Current().Category)

	s.SetSearch("m")
	assert.Empty(t, s.Current().Category)
}

func TestState_ExplicitCategoryLocks(t *testing.T) {
	s := NewState()
	require.NoError(t, s.SelectCategory("Musique"))
	assert.True(t, s.Locked())

	s.SetSearch("iphone 12")
	s.SetSearch("canapé")
	assert.Equal(t, "Musique", s.Current().Category)

	s.Reset()
	assert.False(t, s.Locked())
	assert.True(t, s.Current().IsZero())

	s.SetSearch("canapé")
	assert.Equal(t, "Mobilier", s.Current().Category)
}

func TestState_AllCategoriesIsExplicit(t *testing.T) {
	s := NewState()
	require.NoError(t, s.SelectCategory(""))
	s.SetSearch("iphone")
	assert.Empty(t, s.Current().Category)
}

func TestState_UnknownCategory(t *testing.T) {
	s := NewState()
	assert.ErrorIs(t, s.SelectCategory("Fusées"), ErrUnknownCategory)
	assert.False(t, s.Locked())
}

func TestState_PriceRange(t *testing.T) {
	s := NewState()

	assert.ErrorIs(t, s.SetPriceRange(ptr(-1), nil), ErrInvalidPriceRange)
	assert.ErrorIs(t, s.SetPriceRange(ptr(50), ptr(10)), ErrInvalidPriceRange)

	require.NoError(t, s.SetPriceRange(ptr(10), ptr(50)))
	f := s.Current()
	require.NotNil(t, f.MinPrice)
	require.NotNil(t, f.MaxPrice)
	assert.Equal(t, 10.0, *f.MinPrice)
	assert.Equal(t, 50.0, *f.MaxPrice)

	*f.MinPrice = 99
	assert.Equal(t, 10.0, *s.Current().MinPrice)

	require.NoError(t, s.SetPriceRange(nil, ptr(20)))
	assert.Nil(t, s.Current().MinPrice)
}

func TestState_PriceRangeRejectsNonFinite(t *testing.T) {
	s := NewState()
	require.NoError(t, s.SetPriceRange(ptr(10), ptr(50)))

	assert.ErrorIs(t, s.SetPriceRange(ptr(math.NaN()), ptr(math.Inf(1))), ErrInvalidPriceRange)
	assert.ErrorIs(t, s.SetPriceRange(nil, ptr(math.NaN())), ErrInvalidPriceRange)
	assert.ErrorIs(t, s.SetPriceRange(ptr(math.Inf(-1)), nil), ErrInvalidPriceRange)

	f := s.Current()
	require.NotNil(t, f.MinPrice)
	assert.Equal(t, 10.0, *f.MinPrice)
	assert.Equal(t, 50.0, *f.MaxPrice)
}

func TestState_Location(t *testing.T) {
	s := NewState()
	s.SetLocation("Lyon")
	assert.Equal(t, "Lyon", s.Current().Location)
}

func TestRestore(t *testing.T) {
	s := Restore(model.Filter{Category: "Musique", MinPrice: ptr(5)}, true)
	s.SetSearch("iphone")
	assert.Equal(t, "Musique", s.Current().Category)
	assert.Equal(t, 5.0, *s.Current().MinPrice)
}

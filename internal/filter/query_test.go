package filter

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leboncoincoin/marketplace-web/internal/model"
)

func TestQuery(t *testing.T) {
	q := Query(model.Filter{
		Search:   "  vélo ",
		Category: "Sport & Loisirs",
		MinPrice: ptr(0),
		MaxPrice: ptr(149.5),
	})

	assert.Equal(t, "vélo", q.Get(ParamSearch))
	assert.Equal(t, "Sport & Loisirs", q.Get(ParamCategory))
	assert.Equal(t, "0", q.Get(ParamMinPrice))
	assert.Equal(t, "149.5", q.Get(ParamMaxPrice))
	assert.False(t, q.Has(ParamLocation))
}

func TestQuery_Empty(t *testing.T) {
	assert.Empty(t, Query(model.Filter{}))
}

func TestFromQuery(t *testing.T) {
	f := FromQuery(url.Values{
		ParamSearch:   {"lego"},
		ParamLocation: {"Paris"},
		ParamMinPrice: {"abc"},
		ParamMaxPrice: {"30"},
	})

	assert.Equal(t, "lego", f.Search)
	assert.Equal(t, "Paris", f.Location)
	assert.Nil(t, f.MinPrice)
	require.NotNil(t, f.MaxPrice)
	assert.Equal(t, 30.0, *f.MaxPrice)
}

func TestFromQuery_NegativeIgnored(t *testing.T) {
	f := FromQuery(url.Values{ParamMinPrice: {"-5"}})
	assert.Nil(t, f.MinPrice)
}

func TestFromQuery_NonFiniteIgnored(t *testing.T) {
	for _, raw := range []string{"NaN", "nan", "Inf", "+Inf", "-Inf", "infinity"} {
		t.Run(raw, func(t *testing.T) {
			f := FromQuery(url.Values{ParamMinPrice: {raw}, ParamMaxPrice: {raw}})
			assert.Nil(t, f.MinPrice)
			assert.Nil(t, f.MaxPrice)

			q := Query(f)
			assert.Empty(t, q.Get(ParamMinPrice))
			assert.Empty(t, q.Get(ParamMaxPrice))
		})
	}
}

package format

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatPrice(t *testing.T) {
	tests := []struct {
		price float64
		want  string
	}{
		{0, "0"},
		{999, "999"},
		{1000, "1.000"},
		{10000, "10.000"},
		{1234567, "1.234.567"},
		{1234.56, "1.234,56"},
		{12.5, "12,50"},
		{0.99, "0,99"},
		{-2500, "-2.500"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatPrice(tt.price))
		})
	}
}

package phone

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		region   string
		expected string
	}{
		{name: "fixo de São Paulo com DDD", raw: "11 3001-1000", region: "BR", expected: "+551130011000"},
		{name: "celular com parênteses", raw: "(11) 98765-4321", region: "BR", expected: "+5511987654321"},
		{name: "região vazia usa BR", raw: "61 3206-1111", region: "", expected: "+556132061111"},
		{name: "número inválido mantido", raw: " ramal 12 ", region: "BR", expected: "ramal 12"},
		{name: "vazio", raw: "   ", region: "BR", expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Normalize(tt.raw, tt.region))
		})
	}
}

func TestNormalizePtr(t *testing.T) {
	assert.Nil(t, NormalizePtr(nil, "BR"))

	empty := "  "
	assert.Nil(t, NormalizePtr(&empty, "BR"))

	raw := "11 3003-1000"
	result := NormalizePtr(&raw, "BR")
	if assert.NotNil(t, result) {
		assert.Equal(t, "+551130031000", *result)
	}
}

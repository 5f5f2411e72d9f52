package catalog

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultCatalog(t *testing.T) {
	c := Default()
	require.NoError(t, c.Validate())

	assert.Len(t, c.Products, 10)
	assert.Len(t, c.Regions, 10)

	for _, r := range c.Regions {
		assert.GreaterOrEqual(t, len(r.Cities), 4, "country %s", r.Country)
		assert.LessOrEqual(t, len(r.Cities), 5, "country %s", r.Country)
	}

	for _, p := range c.Products {
		assert.Equal(t, int32(-2), p.BasePrice.Exponent(), "product %d should carry two decimals", p.ID)
	}
}

func TestDefaultCatalogIsPlainASCII(t *testing.T) {
	// Rows are written unquoted only while no field needs quoting.
	check := func(s string) {
		assert.False(t, strings.ContainsAny(s, ",\"\r\n"), "%q needs quoting", s)
		for _, r := range s {
			assert.Less(t, r, rune(128), "%q is not ASCII", s)
		}
	}
	for _, r := range Default().Regions {
		check(r.Country)
		for _, city := range r.Cities {
			check(city)
		}
	}
}

func TestLookups(t *testing.T) {
	c := Default()

	cities, ok := c.Cities("Japan")
	require.True(t, ok)
	assert.Contains(t, cities, "Osaka")

	_, ok = c.Cities("Atlantis")
	assert.False(t, ok)

	p, ok := c.Product(104)
	require.True(t, ok)
	assert.True(t, p.BasePrice.Equal(decimal.RequireFromString("249.00")))

	_, ok = c.Product(999)
	assert.False(t, ok)
}

func TestValidate(t *testing.T) {
	valid := func() *Catalog {
		return &Catalog{
			Products: []Product{{ID: 1, Name: "A", BasePrice: decimal.RequireFromString("1.00")}},
			Regions:  []Region{{Country: "X", Cities: []string{"x1"}}},
		}
	}

	tests := []struct {
		name   string
		mutate func(c *Catalog)
	}{
		{"no products", func(c *Catalog) { c.Products = nil }},
		{"no regions", func(c *Catalog) { c.Regions = nil }},
		{"duplicate product", func(c *Catalog) { c.Products = append(c.Products, c.Products[0]) }},
		{"zero id", func(c *Catalog) { c.Products[0].ID = 0 }},
		{"free product", func(c *Catalog) { c.Products[0].BasePrice = decimal.Zero }},
		{"empty city list", func(c *Catalog) { c.Regions[0].Cities = nil }},
		{"blank city", func(c *Catalog) { c.Regions[0].Cities = []string{" "} }},
		{"blank country", func(c *Catalog) { c.Regions[0].Country = "" }},
		{"duplicate country", func(c *Catalog) { c.Regions = append(c.Regions, c.Regions[0]) }},
	}

	require.NoError(t, valid().Validate())

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid()
			tt.mutate(c)
			assert.ErrorIs(t, c.Validate(), ErrInvalidCatalog)
		})
	}
}

func TestLoad(t *testing.T) {
	input := `{
		"products": [{"product_id": 7, "name": "Lamp", "base_price": "12.50"}],
		"regions": [{"country": "Chile", "cities": ["Santiago", "Valparaiso, Region V"]}]
	}`

	c, err := Load(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, c.Products, 1)
	assert.Equal(t, 7, c.Products[0].ID)
	assert.Equal(t, "12.5", c.Products[0].BasePrice.String())

	cities, ok := c.Cities("Chile")
	require.True(t, ok)
	assert.Equal(t, []string{"Santiago", "Valparaiso, Region V"}, cities)
}

func TestLoadRejectsBadInput(t *testing.T) {
	_, err := Load(strings.NewReader(`{"products": [`))
	assert.ErrorIs(t, err, ErrMalformedCatalog)

	_, err = Load(strings.NewReader(`{"products": [], "regions": [], "extra": 1}`))
	assert.ErrorIs(t, err, ErrMalformedCatalog)

	_, err = Load(strings.NewReader(`{"products": [{"product_id": 1, "name": "A", "base_price": "2"}], "regions": [{"country": "X", "cities": []}]}`))
	assert.ErrorIs(t, err, ErrInvalidCatalog)
}

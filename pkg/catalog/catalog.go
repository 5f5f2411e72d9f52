package catalog

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"
)

// Product is a sellable item. Name is descriptive only and never written to output.
type Product struct {
	ID        int             `json:"product_id"`
	Name      string          `json:"name"`
	BasePrice decimal.Decimal `json:"base_price"`
}

// Region maps a country to the cities orders may ship to.
type Region struct {
	Country string   `json:"country"`
	Cities  []string `json:"cities"`
}

// Catalog is the read-only reference data rows are sampled from.
// Regions is an ordered slice so that seeded runs stay reproducible.
type Catalog struct {
	Products []Product `json:"products"`
	Regions  []Region  `json:"regions"`
}

func price(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

var defaultCatalog = &Catalog{
	Products: []Product{
		{ID: 101, Name: "Wireless Mouse", BasePrice: price("25.99")},
		{ID: 102, Name: "Mechanical Keyboard", BasePrice: price("89.50")},
		{ID: 103, Name: "USB-C Hub", BasePrice: price("39.95")},
		{ID: 104, Name: "27-inch Monitor", BasePrice: price("249.00")},
		{ID: 105, Name: "Noise Cancelling Headphones", BasePrice: price("199.99")},
		{ID: 106, Name: "Portable SSD 1TB", BasePrice: price("119.00")},
		{ID: 107, Name: "Webcam 1080p", BasePrice: price("59.90")},
		{ID: 108, Name: "Laptop Stand", BasePrice: price("34.75")},
		{ID: 109, Name: "Smartphone Charger", BasePrice: price("19.99")},
		{ID: 110, Name: "Bluetooth Speaker", BasePrice: price("74.49")},
	},
	Regions: []Region{
		{Country: "USA", Cities: []string{"New York", "Los Angeles", "Chicago", "Houston", "Phoenix"}},
		{Country: "India", Cities: []string{"Mumbai", "Delhi", "Bangalore", "Chennai", "Hyderabad"}},
		{Country: "UK", Cities: []string{"London", "Manchester", "Birmingham", "Leeds"}},
		{Country: "Germany", Cities: []string{"Berlin", "Munich", "Hamburg", "Frankfurt", "Cologne"}},
		{Country: "France", Cities: []string{"Paris", "Lyon", "Marseille", "Toulouse"}},
		{Country: "Canada", Cities: []string{"Toronto", "Vancouver", "Montreal", "Calgary", "Ottawa"}},
		{Country: "Australia", Cities: []string{"Sydney", "Melbourne", "Brisbane", "Perth"}},
		{Country: "Japan", Cities: []string{"Tokyo", "Osaka", "Nagoya", "Sapporo", "Fukuoka"}},
		{Country: "Brazil", Cities: []string{"Sao Paulo", "Rio de Janeiro", "Brasilia", "Salvador"}},
		{Country: "Spain", Cities: []string{"Madrid", "Barcelona", "Valencia", "Seville", "Bilbao"}},
	},
}

// Default returns the built-in catalog. It is shared and must not be modified.
func Default() *Catalog {
	return defaultCatalog
}

// Load decodes a JSON catalog and validates it
func Load(r io.Reader) (*Catalog, error) {
	var c Catalog
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&c); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedCatalog, err)
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}

	return &c, nil
}

// Validate checks the invariants sampling relies on.
func (c *Catalog) Validate() error {
	if len(c.Products) == 0 {
		return fmt.Errorf("%w: no products", ErrInvalidCatalog)
	}
	if len(c.Regions) == 0 {
		return fmt.Errorf("%w: no regions", ErrInvalidCatalog)
	}

	ids := make(map[int]struct{}, len(c.Products))
	for _, p := range c.Products {
		if p.ID <= 0 {
			return fmt.Errorf("%w: product %q has non-positive id %d", ErrInvalidCatalog, p.Name, p.ID)
		}
		if _, dup := ids[p.ID]; dup {
			return fmt.Errorf("%w: duplicate product id %d", ErrInvalidCatalog, p.ID)
		}
		ids[p.ID] = struct{}{}

		if !p.BasePrice.IsPositive() {
			return fmt.Errorf("%w: product %d has non-positive base price %s", ErrInvalidCatalog, p.ID, p.BasePrice)
		}
	}

	countries := make(map[string]struct{}, len(c.Regions))
	for _, r := range c.Regions {
		if strings.TrimSpace(r.Country) == "" {
			return fmt.Errorf("%w: empty country name", ErrInvalidCatalog)
		}
		if _, dup := countries[r.Country]; dup {
			return fmt.Errorf("%w: duplicate country %q", ErrInvalidCatalog, r.Country)
		}
		countries[r.Country] = struct{}{}

		if len(r.Cities) == 0 {
			return fmt.Errorf("%w: country %q has no cities", ErrInvalidCatalog, r.Country)
		}
		for _, city := range r.Cities {
			if strings.TrimSpace(city) == "" {
				return fmt.Errorf("%w: country %q has an empty city name", ErrInvalidCatalog, r.Country)
			}
		}
	}

	return nil
}

// Cities returns the city list for a country
func (c *Catalog) Cities(country string) ([]string, bool) {
	for _, r := range c.Regions {
		if r.Country == country {
			return r.Cities, true
		}
	}
	return nil, false
}

// Product looks up a product by ID
func (c *Catalog) Product(id int) (Product, bool) {
	for _, p := range c.Products {
		if p.ID == id {
			return p, true
		}
	}
	return Product{}, false
}

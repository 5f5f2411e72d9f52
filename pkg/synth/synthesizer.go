package synth

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	"io"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/wisevaishu/ordersynth/pkg/catalog"
)

// Sampling bounds for generated fields.
const (
	MinUserID   = 100000
	MaxUserID   = 999999
	MinQuantity = 1
	MaxQuantity = 5

	// Orders are dated between MaxDaysAgo and MinDaysAgo days before today.
	MinDaysAgo = 1
	MaxDaysAgo = 365
)

var (
	minPriceFactor  = 0.90
	priceFactorSpan = 0.20
)

// Synthesizer samples independent, identically distributed orders.
// It is not safe for concurrent use.
type Synthesizer struct {
	catalog *catalog.Catalog
	rng     *rand.Rand
	ids     io.Reader // nil means crypto/rand via uuid.NewRandom
	now     func() time.Time
}

// Option configures a Synthesizer
type Option func(*Synthesizer)

// WithCatalog samples from c instead of the built-in catalog.
func WithCatalog(c *catalog.Catalog) Option {
	return func(s *Synthesizer) {
		s.catalog = c
	}
}

// WithSeed makes every sampled field, order IDs included, a pure function of
// seed and the clock.
func WithSeed(seed uint64) Option {
	return func(s *Synthesizer) {
		var key [32]byte
		binary.LittleEndian.PutUint64(key[:8], seed)
		src := rand.NewChaCha8(key)
		s.rng = rand.New(src)
		s.ids = src
	}
}

// WithClock sets the source of "today" for order dates.
func WithClock(now func() time.Time) Option {
	return func(s *Synthesizer) {
		s.now = now
	}
}

// NewSynthesizer creates a synthesizer. Without WithSeed it draws from an
// entropy-seeded source.
func NewSynthesizer(opts ...Option) (*Synthesizer, error) {
	s := &Synthesizer{
		catalog: catalog.Default(),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.rng == nil {
		var key [32]byte
		if _, err := crand.Read(key[:]); err != nil {
			return nil, fmt.Errorf("failed to seed random source: %w", err)
		}
		s.rng = rand.New(rand.NewChaCha8(key))
	}

	if err := s.catalog.Validate(); err != nil {
		return nil, err
	}

	return s, nil
}

// Catalog returns the reference data being sampled
func (s *Synthesizer) Catalog() *catalog.Catalog {
	return s.catalog
}

// Next samples one order.
func (s *Synthesizer) Next() (Order, error) {
	id, err := s.orderID()
	if err != nil {
		return Order{}, err
	}

	product := s.catalog.Products[s.rng.IntN(len(s.catalog.Products))]
	quantity := MinQuantity + s.rng.IntN(MaxQuantity-MinQuantity+1)

	factor := decimal.NewFromFloat(minPriceFactor + priceFactorSpan*s.rng.Float64())
	price := product.BasePrice.Mul(factor).Round(2)
	total := price.Mul(decimal.NewFromInt(int64(quantity))).Round(2)

	region := s.catalog.Regions[s.rng.IntN(len(s.catalog.Regions))]
	city := region.Cities[s.rng.IntN(len(region.Cities))]

	return Order{
		OrderID:     id,
		OrderDate:   s.orderDate(),
		UserID:      MinUserID + s.rng.IntN(MaxUserID-MinUserID+1),
		ProductID:   product.ID,
		Quantity:    quantity,
		Price:       price,
		TotalAmount: total,
		Country:     region.Country,
		City:        city,
	}, nil
}

func (s *Synthesizer) orderID() (string, error) {
	var (
		id  uuid.UUID
		err error
	)
	if s.ids != nil {
		id, err = uuid.NewRandomFromReader(s.ids)
	} else {
		id, err = uuid.NewRandom()
	}
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrOrderID, err)
	}
	return id.String(), nil
}

func (s *Synthesizer) orderDate() string {
	return DateRange(s.now()).Day(s.rng.IntN(MaxDaysAgo - MinDaysAgo + 1))
}

// Dates is the inclusive window order dates are drawn from.
type Dates struct {
	First time.Time // today - MaxDaysAgo
	Last  time.Time // today - MinDaysAgo
}

// DateRange returns the order date window relative to the calendar day of now.
func DateRange(now time.Time) Dates {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return Dates{
		First: today.AddDate(0, 0, -MaxDaysAgo),
		Last:  today.AddDate(0, 0, -MinDaysAgo),
	}
}

// Day formats the i-th day of the window, counting back from Last.
func (d Dates) Day(i int) string {
	return d.Last.AddDate(0, 0, -i).Format(DateLayout)
}

// Contains reports whether a YYYY-MM-DD date lies in the window.
func (d Dates) Contains(date string) bool {
	t, err := time.Parse(DateLayout, date)
	if err != nil {
		return false
	}
	return !t.Before(d.First) && !t.After(d.Last)
}

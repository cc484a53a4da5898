// Package marketdata provides a simulated market data client. Prices are
// generated from fixed per-symbol bases with bounded fluctuation, so the
// rest of the system can treat it like any external quote provider.
package marketdata

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/arjunmehra/folio/internal/common"
	"github.com/arjunmehra/folio/internal/interfaces"
	"github.com/arjunmehra/folio/internal/models"
)

const (
	DefaultRateLimit = 10 // requests per second

	// Current price fluctuates within ±2% of base; history adds a
	// sinusoidal trend with ±1% noise.
	priceJitter   = 0.02
	historyJitter = 0.01
)

// basePrices anchors the simulation for known symbols.
var basePrices = map[string]float64{
	"RELIANCE":   2450,
	"TCS":        3890,
	"HDFCBANK":   1650,
	"INFY":       1450,
	"ICICIBANK":  950,
	"SBIN":       620,
	"NIFTYBEES":  240,
	"GOLDBEES":   55,
	"PPFAS-FLEX": 62,
	"AAPL":       178,
	"GOOGL":      142,
	"MSFT":       378,
	"AMZN":       155,
	"BTC":        43000,
	"ETH":        2250,
}

// benchmarkBases anchors index level simulation.
var benchmarkBases = map[string]float64{
	"NIFTY50": 21500,
	"SENSEX":  71000,
	"SP500":   4750,
}

// Client implements interfaces.MarketDataClient with simulated data.
type Client struct {
	logger  *common.Logger
	limiter *rate.Limiter

	mu  sync.Mutex
	rng *rand.Rand
}

// ClientOption configures the client
type ClientOption func(*Client)

// WithLogger sets the logger
func WithLogger(logger *common.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithRateLimit sets the rate limit
func WithRateLimit(requestsPerSecond int) ClientOption {
	return func(c *Client) {
		c.limiter = rate.NewLimiter(rate.Limit(requestsPerSecond), requestsPerSecond)
	}
}

// WithSeed fixes the random source so generated data is reproducible.
func WithSeed(seed int64) ClientOption {
	return func(c *Client) {
		c.rng = rand.New(rand.NewSource(seed))
	}
}

// NewClient creates a simulated market data client.
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		logger:  common.NewSilentLogger(),
		limiter: rate.NewLimiter(rate.Limit(DefaultRateLimit), DefaultRateLimit),
		rng:     rand.New(rand.NewSource(time.Now().UnixNano())),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// basePrice returns the anchor price for a symbol. Unknown symbols get a
// stable price derived from the symbol name so repeated lookups agree.
func basePrice(symbol string) float64 {
	if p, ok := basePrices[strings.ToUpper(symbol)]; ok {
		return p
	}
	var h uint32
	for _, r := range strings.ToUpper(symbol) {
		h = h*31 + uint32(r)
	}
	return 100 + float64(h%900)
}

func (c *Client) randFloat() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.rng.Float64()
}

func (c *Client) randInt64(n int64) int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.rng.Int63n(n)
}

// GetCurrentPrice returns the simulated spot price for a symbol.
func (c *Client) GetCurrentPrice(ctx context.Context, symbol string) (float64, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return 0, fmt.Errorf("rate limit wait: %w", err)
	}
	if symbol == "" {
		return 0, fmt.Errorf("symbol is required")
	}

	base := basePrice(symbol)
	price := base * (1 + (c.randFloat()-0.5)*2*priceJitter)
	return round2(price), nil
}

// GetQuote returns the simulated quote including volume.
func (c *Client) GetQuote(ctx context.Context, symbol string) (*models.Quote, error) {
	price, err := c.GetCurrentPrice(ctx, symbol)
	if err != nil {
		return nil, err
	}

	avgVolume := 100_000 + c.randInt64(9_900_000)
	// Current volume swings around the average so spike ratios vary.
	volume := int64(float64(avgVolume) * (0.5 + c.randFloat()*2.5))

	return &models.Quote{
		Symbol:        strings.ToUpper(symbol),
		Price:         price,
		Volume:        volume,
		AverageVolume: avgVolume,
		AsOf:          time.Now(),
	}, nil
}

// GetHistoricalPrices returns a daily close series ending today, oldest first.
func (c *Client) GetHistoricalPrices(ctx context.Context, symbol string, days int) ([]models.PricePoint, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}
	if symbol == "" {
		return nil, fmt.Errorf("symbol is required")
	}
	if days <= 0 {
		return nil, fmt.Errorf("days must be positive, got %d", days)
	}

	return c.series(basePrice(symbol), days), nil
}

// GetBenchmarkSeries returns a daily index level series, oldest first.
// Unknown benchmark names fall back to NIFTY50.
func (c *Client) GetBenchmarkSeries(ctx context.Context, name string, days int) ([]models.PricePoint, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}
	if days <= 0 {
		return nil, fmt.Errorf("days must be positive, got %d", days)
	}

	base, ok := benchmarkBases[strings.ToUpper(name)]
	if !ok {
		base = benchmarkBases["NIFTY50"]
		c.logger.Debug().Str("benchmark", name).Msg("Unknown benchmark, using NIFTY50 base")
	}

	return c.series(base, days), nil
}

// series builds a sinusoidal trend with noise around a base value.
func (c *Client) series(base float64, days int) []models.PricePoint {
	now := time.Now().Truncate(24 * time.Hour)
	points := make([]models.PricePoint, 0, days)

	for i := days - 1; i >= 0; i-- {
		trend := math.Sin(float64(i)/10) * 0.05
		noise := (c.randFloat() - 0.5) * 2 * historyJitter
		close := base * (1 + trend + noise)
		points = append(points, models.PricePoint{
			Date:  now.AddDate(0, 0, -i),
			Close: round2(close),
		})
	}
	return points
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}

// Compile-time check
var _ interfaces.MarketDataClient = (*Client)(nil)

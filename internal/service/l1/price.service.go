package l1_service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"dotyield/internal/logger"
	coingecko_client "dotyield/pkg/coingecko"
	cryptocompare_client "dotyield/pkg/cryptocompare"

	"github.com/patrickmn/go-cache"
)

/**

behavior - when i ask for a price, try the sources in order and return the
first one that answers. a hit refreshes the TTL cache; when every source is
down, fall back to the last value we ever saw, however stale.

staleness tolerance is minutes, so two concurrent misses racing to fetch the
same coin is a duplicate upstream call, not a correctness problem.

*/

type PriceService interface {
	GetCurrentPriceUsd(ctx context.Context, coinID string) (float64, error)
	GetHistoricalPriceUsd(ctx context.Context, coinID string, date time.Time) (float64, error)
}

// PriceSource is one entry in the ordered fallback chain.
type PriceSource struct {
	Name  string
	Fetch func(ctx context.Context, coinID string) (float64, error)
}

type priceServiceHandler struct {
	spot      *cache.Cache
	history   *cache.Cache
	lastKnown *cache.Cache
	sources   []PriceSource
	gecko     *coingecko_client.Client
}

const spotPriceTtl = 5 * time.Minute

// ticker symbols for sources that don't speak coingecko ids
var symbolByCoinID = map[string]string{
	"polkadot": "DOT",
	"kusama":   "KSM",
	"moonbeam": "GLMR",
	"astar":    "ASTR",
	"bifrost":  "BNC",
}

func NewPriceService(gecko *coingecko_client.Client, compare *cryptocompare_client.Client) PriceService {
	sources := []PriceSource{
		{
			Name:  "coingecko",
			Fetch: gecko.GetCurrentPriceUsd,
		},
		{
			Name: "cryptocompare",
			Fetch: func(ctx context.Context, coinID string) (float64, error) {
				symbol, ok := symbolByCoinID[strings.ToLower(coinID)]
				if !ok {
					symbol = strings.ToUpper(coinID)
				}
				return compare.GetCurrentPriceUsd(ctx, symbol)
			},
		},
	}

	return newPriceServiceWithSources(gecko, sources)
}

func newPriceServiceWithSources(gecko *coingecko_client.Client, sources []PriceSource) PriceService {
	return &priceServiceHandler{
		spot:      cache.New(spotPriceTtl, 10*time.Minute),
		history:   cache.New(cache.NoExpiration, 0),
		lastKnown: cache.New(cache.NoExpiration, 0),
		sources:   sources,
		gecko:     gecko,
	}
}

// GetCurrentPriceUsd walks the fallback chain and returns the first answer.
// The TTL cache sits in front; the last-known cache sits behind everything.
func (h *priceServiceHandler) GetCurrentPriceUsd(ctx context.Context, coinID string) (float64, error) {
	log := logger.FromContext(ctx)

	if price, ok := h.spot.Get(coinID); ok {
		return price.(float64), nil
	}

	for _, source := range h.sources {
		price, err := source.Fetch(ctx, coinID)
		if err != nil {
			log.Warnf("price source %s failed for %s: %s", source.Name, coinID, err.Error())
			continue
		}
		h.spot.SetDefault(coinID, price)
		h.lastKnown.SetDefault(coinID, price)
		return price, nil
	}

	if price, ok := h.lastKnown.Get(coinID); ok {
		log.Warnf("all price sources failed for %s - using last known value", coinID)
		return price.(float64), nil
	}

	return 0, fmt.Errorf("no price source available for %s", coinID)
}

// GetHistoricalPriceUsd resolves the USD price on a past calendar day.
// Historical prices never change, so hits are cached without expiry.
func (h *priceServiceHandler) GetHistoricalPriceUsd(ctx context.Context, coinID string, date time.Time) (float64, error) {
	key := coinID + "|" + date.Format(time.DateOnly)
	if price, ok := h.history.Get(key); ok {
		return price.(float64), nil
	}

	if h.gecko == nil {
		return 0, fmt.Errorf("no historical price source configured")
	}

	price, err := h.gecko.GetHistoricalPriceUsd(ctx, coinID, date)
	if err != nil {
		return 0, fmt.Errorf("failed to get historical price for %s on %s: %w", coinID, date.Format(time.DateOnly), err)
	}

	h.history.SetDefault(key, price)
	return price, nil
}

package coingecko

import (
	"encoding/json"
	"fmt"
	"sort"
	"sync"
	"time"

	"vesting-estimator/src/calculator"
	"vesting-estimator/src/interfaces"
	"vesting-estimator/src/logger"
	"vesting-estimator/src/models"
	"vesting-estimator/src/utils"
)

const baseURL = "https://api.coingecko.com/api/v3"

// Cache keys for the injected TTL cache.
const (
	cacheKeyCurrent = "coingecko_current_price"
	cacheKeyHistory = "coingecko_price_history"
)

// -----------------------------------------------------------------------------
// CoinGeckoSource
// -----------------------------------------------------------------------------

// CoinGeckoSource fetches the token's USD price from the CoinGecko API. It
// absorbs every upstream failure itself: responses are cached for the
// configured freshness window, a dead current-price endpoint falls back to
// the last good value and then to the configured fallback price, and a dead
// history endpoint degrades to an empty table.
type CoinGeckoSource struct {
	Config  *models.MConfig
	Network interfaces.INetworkManager
	Cache   interfaces.ICache
	Logger  *logger.Logger

	lastGoodPrice float64
	mu            sync.Mutex
}

// -----------------------------------------------------------------------------

func NewCoinGeckoSource(cfg *models.MConfig, netMgr interfaces.INetworkManager, c interfaces.ICache, log *logger.Logger) *CoinGeckoSource {
	return &CoinGeckoSource{
		Config:  cfg,
		Network: netMgr,
		Cache:   c,
		Logger:  log,
	}
}

// -----------------------------------------------------------------------------

func (s *CoinGeckoSource) Name() string {
	return "coingecko"
}

// -----------------------------------------------------------------------------

// Response structures
type simplePriceResponse map[string]map[string]float64

type marketChartResponse struct {
	Prices [][2]float64 `json:"prices"` // [timestamp_ms, price] pairs
}

// -----------------------------------------------------------------------------

// GetCurrentPrice returns the latest USD snapshot. The second return value is
// true when the fallback price was substituted for live data.
func (s *CoinGeckoSource) GetCurrentPrice() (float64, bool) {
	if cached, ok := s.Cache.Get(cacheKeyCurrent); ok {
		if price, ok := cached.(float64); ok {
			return price, false
		}
	}

	price, err := s.fetchCurrentPrice()
	if err != nil {
		s.Logger.Warning("Current price fetch failed: %v", err)

		s.mu.Lock()
		lastGood := s.lastGoodPrice
		s.mu.Unlock()

		if lastGood > 0 {
			s.Logger.Info("Using last good price %.4f", lastGood)
			return lastGood, true
		}

		s.Logger.Info("Using configured fallback price %.4f", s.Config.Source.FallbackPrice)
		return s.Config.Source.FallbackPrice, true
	}

	s.Cache.Set(cacheKeyCurrent, price, s.cacheTTL())
	s.mu.Lock()
	s.lastGoodPrice = price
	s.mu.Unlock()

	return price, false
}

// -----------------------------------------------------------------------------

func (s *CoinGeckoSource) fetchCurrentPrice() (float64, error) {
	params := map[string]string{
		"ids":           s.Config.Source.CoinID,
		"vs_currencies": s.Config.Source.VsCurrency,
	}
	if s.Config.Source.APIKey != "" {
		params["x_cg_demo_api_key"] = s.Config.Source.APIKey
	}

	respBytes, err := s.Network.Get(fmt.Sprintf("%s/simple/price", baseURL), params)
	if err != nil {
		return 0, err
	}

	var resp simplePriceResponse
	if err := json.Unmarshal(respBytes, &resp); err != nil {
		return 0, fmt.Errorf("json unmarshal failed: %w", err)
	}

	price := resp[s.Config.Source.CoinID][s.Config.Source.VsCurrency]
	if !calculator.IsValidPrice(price) {
		return 0, fmt.Errorf("invalid price %f received for %s", price, s.Config.Source.CoinID)
	}

	return price, nil
}

// -----------------------------------------------------------------------------

// GetHistoricalDailyPrices returns one observed point per calendar day,
// ascending. An empty slice on upstream failure is deliberate: the series
// builder projects the whole window instead.
func (s *CoinGeckoSource) GetHistoricalDailyPrices(daysBack int) []models.MPricePoint {
	cacheKey := fmt.Sprintf("%s_%d", cacheKeyHistory, daysBack)
	if cached, ok := s.Cache.Get(cacheKey); ok {
		if points, ok := cached.([]models.MPricePoint); ok {
			return points
		}
	}

	points, err := s.fetchDailyHistory(daysBack)
	if err != nil {
		s.Logger.Warning("History fetch failed, degrading to empty table: %v", err)
		return nil
	}

	s.Cache.Set(cacheKey, points, s.cacheTTL())
	return points
}

// -----------------------------------------------------------------------------

func (s *CoinGeckoSource) fetchDailyHistory(daysBack int) ([]models.MPricePoint, error) {
	params := map[string]string{
		"vs_currency": s.Config.Source.VsCurrency,
		"days":        fmt.Sprintf("%d", daysBack),
		"interval":    "daily",
	}
	if s.Config.Source.APIKey != "" {
		params["x_cg_demo_api_key"] = s.Config.Source.APIKey
	}

	url := fmt.Sprintf("%s/coins/%s/market_chart", baseURL, s.Config.Source.CoinID)
	respBytes, err := s.Network.Get(url, params)
	if err != nil {
		return nil, err
	}

	var resp marketChartResponse
	if err := json.Unmarshal(respBytes, &resp); err != nil {
		return nil, fmt.Errorf("json unmarshal failed: %w", err)
	}

	if len(resp.Prices) == 0 {
		return nil, fmt.Errorf("no prices in response for %s", s.Config.Source.CoinID)
	}

	// One point per calendar day, later samples win, invalid prices dropped.
	byDay := make(map[string]models.MPricePoint, len(resp.Prices))
	skipped := 0
	for _, pair := range resp.Prices {
		ts := int64(pair[0]) / 1000 // ms -> s
		price := pair[1]

		if !calculator.IsValidPrice(price) {
			skipped++
			continue
		}

		day := time.Unix(ts, 0).UTC()
		label := utils.DayLabel(day)
		byDay[label] = models.MPricePoint{
			Date:      label,
			Price:     price,
			Timestamp: utils.TruncateToDay(day).Unix(),
		}
	}

	if skipped > 0 {
		s.Logger.Info("Skipped %d invalid price samples", skipped)
	}
	if len(byDay) == 0 {
		return nil, fmt.Errorf("no valid price samples for %s", s.Config.Source.CoinID)
	}

	points := make([]models.MPricePoint, 0, len(byDay))
	for _, p := range byDay {
		points = append(points, p)
	}
	sort.Slice(points, func(i, j int) bool {
		return points[i].Date < points[j].Date
	})

	s.Logger.Info("Fetched %d daily prices [%s -> %s]", len(points), points[0].Date, points[len(points)-1].Date)
	return points, nil
}

// -----------------------------------------------------------------------------

func (s *CoinGeckoSource) cacheTTL() time.Duration {
	return time.Duration(s.Config.Source.CacheTTLMinutes) * time.Minute
}

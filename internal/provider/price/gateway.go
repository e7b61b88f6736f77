// Package price adapts the external energy price feed to the domain
// price gateway port.
package price

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/al426285/mone-routing/internal/domain/apperr"
	"github.com/al426285/mone-routing/internal/domain/route"
	"go.uber.org/zap"
)

// Gateway fetches the latest fuel and electricity prices. It fails
// independently of the route provider; callers treat its failure as a
// degraded (cost-less) planning result.
type Gateway struct {
	session *http.Client
	url     string
	logger  *zap.Logger
}

// NewGateway builds a gateway for the configured feed URL.
func NewGateway(url string, timeout time.Duration, logger *zap.Logger) (*Gateway, error) {
	if url == "" {
		return nil, errors.New("price: feed url is empty")
	}
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Gateway{
		session: &http.Client{Timeout: timeout},
		url:     url,
		logger:  logger,
	}, nil
}

type feedResponse struct {
	GasolinePerLiter  *float64   `json:"gasolinePerLiter"`
	DieselPerLiter    *float64   `json:"dieselPerLiter"`
	ElectricityPerKwh *float64   `json:"electricityPerKwh"`
	Currency          string     `json:"currency"`
	Timestamp         *time.Time `json:"timestamp"`
}

// Latest returns the current price snapshot. Absence of any individual
// price is valid; only a failed or malformed fetch is an error.
func (g *Gateway) Latest(ctx context.Context) (*route.PriceSnapshot, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.url, nil)
	if err != nil {
		return nil, apperr.NewPriceAPIUnavailable("create price request: " + err.Error())
	}
	req.Header.Set("Accept", "application/json")

	resp, err := g.session.Do(req)
	if err != nil {
		g.logger.Debug("price feed call failed", zap.Error(err))
		return nil, apperr.NewPriceAPIUnavailable("price feed request failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, apperr.NewPriceAPIUnavailable("price feed returned status " + resp.Status)
	}
	if !strings.Contains(resp.Header.Get("Content-Type"), "application/json") {
		return nil, apperr.NewPriceAPIUnavailable("price feed returned a non-JSON response")
	}

	var decoded feedResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, apperr.NewPriceAPIUnavailable("decode price feed response: " + err.Error())
	}

	snapshot := &route.PriceSnapshot{
		GasolinePerLiter:  decoded.GasolinePerLiter,
		DieselPerLiter:    decoded.DieselPerLiter,
		ElectricityPerKwh: decoded.ElectricityPerKwh,
		Currency:          decoded.Currency,
		Timestamp:         time.Now().UTC(),
	}
	if decoded.Timestamp != nil {
		snapshot.Timestamp = decoded.Timestamp.UTC()
	}
	return snapshot, nil
}

package eia

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"simToDec/business/features"
	"simToDec/domain"
)

const requestTimeout = 6 * time.Second

var ErrNoData = errors.New("eia: response has no data")

type EIAConfig struct {
	APIKey   string
	BaseURL  string
	SeriesID string
}

type EIARepository struct {
	cfg        EIAConfig
	httpClient *http.Client
}

var _ features.FuelClient = (*EIARepository)(nil)

func NewEIARepository(cfg EIAConfig, httpClient *http.Client) *EIARepository {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &EIARepository{cfg: cfg, httpClient: httpClient}
}

func (r *EIARepository) Configured() bool {
	return r.cfg.APIKey != ""
}

type seriesResponse struct {
	Response *struct {
		Data []struct {
			Period string          `json:"period"`
			Value  json.RawMessage `json:"value"`
		} `json:"data"`
	} `json:"response"`
	Error string `json:"error"`
}

// LatestPrice fetches the most recent observation of the configured series.
func (r *EIARepository) LatestPrice(ctx context.Context) (domain.FuelPrice, error) {
	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	params := url.Values{}
	params.Set("api_key", r.cfg.APIKey)
	params.Set("length", "1")

	fullURL := fmt.Sprintf("%s/v2/seriesid/%s?%s", r.cfg.BaseURL, url.PathEscape(r.cfg.SeriesID), params.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return domain.FuelPrice{}, fmt.Errorf("create request failed: %w", err)
	}

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return domain.FuelPrice{}, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return domain.FuelPrice{}, fmt.Errorf("read body failed: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return domain.FuelPrice{}, fmt.Errorf("eia returned status %d: %s", resp.StatusCode, string(body))
	}

	var out seriesResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return domain.FuelPrice{}, fmt.Errorf("unmarshal series response failed: %w", err)
	}
	if out.Response == nil || len(out.Response.Data) == 0 {
		if out.Error != "" {
			return domain.FuelPrice{}, fmt.Errorf("%w: %s", ErrNoData, out.Error)
		}
		return domain.FuelPrice{}, ErrNoData
	}

	row := out.Response.Data[0]
	v, err := parseValue(row.Value)
	if err != nil {
		return domain.FuelPrice{}, err
	}
	return domain.FuelPrice{Value: v, Period: row.Period}, nil
}

// parseValue accepts the value either as a JSON number or a quoted number.
func parseValue(raw json.RawMessage) (float64, error) {
	s := strings.Trim(strings.TrimSpace(string(raw)), `"`)
	if s == "" || s == "null" {
		return 0, fmt.Errorf("%w: empty value", ErrNoData)
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid price value %q: %w", s, err)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%w: non-finite value %q", ErrNoData, s)
	}
	return v, nil
}

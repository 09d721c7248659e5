package openmeteo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"simToDec/business/features"
	"simToDec/domain"
)

const requestTimeout = 6 * time.Second

type forecastResponse struct {
	CurrentWeather *domain.WeatherReading `json:"current_weather"`
}

type OpenMeteoRepository struct {
	baseURL    string
	httpClient *http.Client
}

var _ features.WeatherClient = (*OpenMeteoRepository)(nil)

func NewOpenMeteoRepository(baseURL string, httpClient *http.Client) *OpenMeteoRepository {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &OpenMeteoRepository{baseURL: baseURL, httpClient: httpClient}
}

func (r *OpenMeteoRepository) CurrentWeather(ctx context.Context, lat, lon float64) (domain.WeatherReading, error) {
	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	params := url.Values{}
	params.Set("latitude", strconv.FormatFloat(lat, 'f', -1, 64))
	params.Set("longitude", strconv.FormatFloat(lon, 'f', -1, 64))
	params.Set("current_weather", "true")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.baseURL+"/v1/forecast?"+params.Encode(), nil)
	if err != nil {
		return domain.WeatherReading{}, fmt.Errorf("create request failed: %w", err)
	}

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return domain.WeatherReading{}, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return domain.WeatherReading{}, fmt.Errorf("read body failed: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return domain.WeatherReading{}, fmt.Errorf("open-meteo returned status %d: %s", resp.StatusCode, string(body))
	}

	var out forecastResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return domain.WeatherReading{}, fmt.Errorf("unmarshal forecast response failed: %w", err)
	}
	if out.CurrentWeather == nil {
		return domain.WeatherReading{}, nil
	}
	return *out.CurrentWeather, nil
}

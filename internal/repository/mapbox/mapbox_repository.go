package mapbox

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"simToDec/business/features"
	"simToDec/domain"
)

const (
	geocodeTimeout = 6 * time.Second
	matrixTimeout  = 8 * time.Second
)

var ErrNoResult = errors.New("mapbox: no result")

type MapboxConfig struct {
	APIKey  string
	BaseURL string
}

type MapboxRepository struct {
	cfg        MapboxConfig
	httpClient *http.Client
}

var _ features.RouteClient = (*MapboxRepository)(nil)

func NewMapboxRepository(cfg MapboxConfig, httpClient *http.Client) *MapboxRepository {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &MapboxRepository{cfg: cfg, httpClient: httpClient}
}

func (r *MapboxRepository) Configured() bool {
	return r.cfg.APIKey != ""
}

type geocodeResponse struct {
	Features []struct {
		Center []float64 `json:"center"`
	} `json:"features"`
}

// Geocode resolves a free-form place name to the first matching point.
func (r *MapboxRepository) Geocode(ctx context.Context, place string) (domain.Coordinates, error) {
	ctx, cancel := context.WithTimeout(ctx, geocodeTimeout)
	defer cancel()

	params := url.Values{}
	params.Set("access_token", r.cfg.APIKey)
	params.Set("limit", "1")

	body, err := r.doRequest(ctx, "/geocoding/v5/mapbox.places/"+url.PathEscape(place)+".json", params)
	if err != nil {
		return domain.Coordinates{}, err
	}

	var resp geocodeResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return domain.Coordinates{}, fmt.Errorf("unmarshal geocode response failed: %w", err)
	}
	if len(resp.Features) == 0 || len(resp.Features[0].Center) < 2 {
		return domain.Coordinates{}, fmt.Errorf("%w: geocode %q", ErrNoResult, place)
	}

	// mapbox returns [lon, lat]
	c := resp.Features[0].Center
	return domain.Coordinates{Lon: c[0], Lat: c[1]}, nil
}

type matrixResponse struct {
	Code      string       `json:"code"`
	Message   string       `json:"message"`
	Distances [][]*float64 `json:"distances"`
	Durations [][]*float64 `json:"durations"`
}

// Matrix returns the driving distance in meters and duration in seconds
// from one point to another.
func (r *MapboxRepository) Matrix(ctx context.Context, from, to domain.Coordinates) (meters, seconds float64, err error) {
	ctx, cancel := context.WithTimeout(ctx, matrixTimeout)
	defer cancel()

	params := url.Values{}
	params.Set("access_token", r.cfg.APIKey)
	params.Set("annotations", "distance,duration")

	coords := formatCoord(from) + ";" + formatCoord(to)
	body, err := r.doRequest(ctx, "/directions-matrix/v1/mapbox/driving/"+coords, params)
	if err != nil {
		return 0, 0, err
	}

	var resp matrixResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return 0, 0, fmt.Errorf("unmarshal matrix response failed: %w", err)
	}
	if resp.Code != "Ok" {
		return 0, 0, fmt.Errorf("matrix API error: code=%s message=%s", resp.Code, resp.Message)
	}

	d, ok := cell(resp.Distances)
	if !ok {
		return 0, 0, fmt.Errorf("%w: matrix distance", ErrNoResult)
	}
	s, ok := cell(resp.Durations)
	if !ok {
		return 0, 0, fmt.Errorf("%w: matrix duration", ErrNoResult)
	}
	return d, s, nil
}

// cell reads the origin-to-destination entry [0][1].
func cell(m [][]*float64) (float64, bool) {
	if len(m) < 1 || len(m[0]) < 2 || m[0][1] == nil {
		return 0, false
	}
	return *m[0][1], true
}

func (r *MapboxRepository) doRequest(ctx context.Context, path string, params url.Values) ([]byte, error) {
	fullURL := r.cfg.BaseURL + path
	if len(params) > 0 {
		fullURL += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request failed: %w", err)
	}

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read body failed: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("mapbox returned status %d: %s", resp.StatusCode, string(body))
	}
	return body, nil
}

// formatCoord renders "lon,lat" in plain decimal notation.
func formatCoord(c domain.Coordinates) string {
	return strconv.FormatFloat(c.Lon, 'f', -1, 64) + "," + strconv.FormatFloat(c.Lat, 'f', -1, 64)
}

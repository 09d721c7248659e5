package routecache

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	"simToDec/domain"
)

var csvHeader = []string{"orig", "dest", "distance_km", "duration_hr"}

// CSVRepository stores routes in a flat append-only CSV file. The first row
// matching an (origin, destination) pair wins.
type CSVRepository struct {
	path string
	mu   sync.Mutex
}

func NewCSVRepository(path string) *CSVRepository {
	return &CSVRepository{path: path}
}

func (r *CSVRepository) Get(ctx context.Context, origin, destination string) (*domain.RouteCacheEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	f, err := os.Open(r.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("open route cache: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	cols := map[string]int{}
	for line := 0; ; line++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		rec, err := reader.Read()
		if err == io.EOF {
			return nil, nil
		}
		if err != nil {
			return nil, fmt.Errorf("read route cache: %w", err)
		}

		if line == 0 {
			for i, name := range rec {
				cols[name] = i
			}
			for _, name := range csvHeader {
				if _, ok := cols[name]; !ok {
					return nil, fmt.Errorf("route cache header missing column %q", name)
				}
			}
			continue
		}

		if field(rec, cols["orig"]) != origin || field(rec, cols["dest"]) != destination {
			continue
		}
		km, err := strconv.ParseFloat(field(rec, cols["distance_km"]), 64)
		if err != nil {
			return nil, fmt.Errorf("route cache line %d: invalid distance_km: %w", line+1, err)
		}
		hr, err := strconv.ParseFloat(field(rec, cols["duration_hr"]), 64)
		if err != nil {
			return nil, fmt.Errorf("route cache line %d: invalid duration_hr: %w", line+1, err)
		}
		return &domain.RouteCacheEntry{
			Origin:      origin,
			Destination: destination,
			DistanceKm:  km,
			DurationHr:  hr,
		}, nil
	}
}

func (r *CSVRepository) Save(ctx context.Context, entry domain.RouteCacheEntry) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if dir := filepath.Dir(r.path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create route cache dir: %w", err)
		}
	}

	f, err := os.OpenFile(r.path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open route cache: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("stat route cache: %w", err)
	}

	w := csv.NewWriter(f)
	if info.Size() == 0 {
		if err := w.Write(csvHeader); err != nil {
			return fmt.Errorf("write route cache header: %w", err)
		}
	}
	err = w.Write([]string{
		entry.Origin,
		entry.Destination,
		strconv.FormatFloat(entry.DistanceKm, 'f', -1, 64),
		strconv.FormatFloat(entry.DurationHr, 'f', -1, 64),
	})
	if err != nil {
		return fmt.Errorf("write route cache row: %w", err)
	}
	w.Flush()
	return w.Error()
}

func field(rec []string, i int) string {
	if i < len(rec) {
		return rec[i]
	}
	return ""
}

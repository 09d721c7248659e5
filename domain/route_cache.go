package domain

import "time"

// CREATE TABLE public.route_cache (
//     id           BIGSERIAL PRIMARY KEY,
//     origin       TEXT NOT NULL,
//     destination  TEXT NOT NULL,
//     distance_km  NUMERIC,
//     duration_hr  NUMERIC,
//     created_at   TIMESTAMPTZ DEFAULT NOW()
// );

type RouteCacheEntry struct {
	ID          uint64    `gorm:"primaryKey;autoIncrement" json:"-"`
	Origin      string    `gorm:"column:origin;type:text;not null;index:idx_route_cache_od" json:"orig"`
	Destination string    `gorm:"column:destination;type:text;not null;index:idx_route_cache_od" json:"dest"`
	DistanceKm  float64   `gorm:"column:distance_km;type:numeric" json:"distance_km"`
	DurationHr  float64   `gorm:"column:duration_hr;type:numeric" json:"duration_hr"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime" json:"-"`
}

func (RouteCacheEntry) TableName() string { return "route_cache" }

package inference

import (
	"context"
	"fmt"
	"math"
	"math/rand"

	"simToDec/business/simulator"
	"simToDec/domain"
	"simToDec/pkg/logger"
)

// FeatureSource is the best-effort live data provider.
type FeatureSource interface {
	Distance(ctx context.Context, rng *rand.Rand, origin, destination string) (km, hr float64)
	WeatherScore(ctx context.Context, rng *rand.Rand, lat, lon float64) float64
	FuelIndex(ctx context.Context, rng *rand.Rand) float64
}

type Service struct {
	ictx     *InferenceContext
	features FeatureSource
	newRand  func() *rand.Rand
}

func NewService(ictx *InferenceContext, features FeatureSource) *Service {
	return &Service{
		ictx:     ictx,
		features: features,
		newRand: func() *rand.Rand {
			// the package-level source is goroutine safe, per-request sources are not shared
			return rand.New(rand.NewSource(rand.Int63()))
		},
	}
}

// WithRandSource replaces the per-request random source factory.
func (s *Service) WithRandSource(fn func() *rand.Rand) *Service {
	s.newRand = fn
	return s
}

func (s *Service) ModelInfo() domain.ModelInfo {
	return s.ictx.Info()
}

// InferLive evaluates every shipping mode for one shipment and compares the
// best-scoring mode with the policy network's choice.
func (s *Service) InferLive(ctx context.Context, req domain.ShipmentRequest) (domain.InferenceResult, error) {
	result, err := s.inferLive(ctx, req)
	if err != nil {
		InferenceRequestsTotal.WithLabelValues("error").Inc()
		return domain.InferenceResult{}, err
	}
	InferenceRequestsTotal.WithLabelValues("ok").Inc()
	ModeSelectionsTotal.WithLabelValues("score", result.BestModeByScore).Inc()
	ModeSelectionsTotal.WithLabelValues("policy", result.ActorPolicyChoice).Inc()
	return result, nil
}

func (s *Service) inferLive(ctx context.Context, req domain.ShipmentRequest) (domain.InferenceResult, error) {
	cfg := s.ictx.cfg
	rng := s.newRand()
	traceID := logger.TraceIDFromContext(ctx)

	lat, lon := cfg.DefaultLat, cfg.DefaultLon
	if req.Lat != nil {
		lat = *req.Lat
	}
	if req.Lon != nil {
		lon = *req.Lon
	}

	km, hr := s.features.Distance(ctx, rng, req.Origin(), req.Destination())
	ws := s.features.WeatherScore(ctx, rng, lat, lon)
	fi := s.features.FuelIndex(ctx, rng)
	weight := cfg.ShipmentWeight(req.SalesPerCustomer)

	logger.Info("live features",
		"trace_id", traceID,
		"origin", req.Origin(),
		"destination", req.Destination(),
		"distance_km", km,
		"duration_hr", hr,
		"weather_score", ws,
		"fuel_index", fi,
		"weight", weight,
	)

	x := s.ictx.scaler.Transform(cfg.FeatureVector(km, weight, ws, fi))
	seq := BuildSequence(x, cfg.SeqLen)
	weights := AdaptiveWeights(ws, fi)

	analysis := make([]domain.ModeAnalysis, 0, len(s.ictx.modes))
	bestMode, bestScore := "", math.Inf(-1)

	for i, mode := range s.ictx.modes {
		if err := ctx.Err(); err != nil {
			return domain.InferenceResult{}, err
		}

		pred, err := s.ictx.ensemble.Evaluate(seq, i, rng)
		if err != nil {
			return domain.InferenceResult{}, fmt.Errorf("evaluate mode %s: %w", mode, err)
		}
		if len(pred.Mean) != simulator.OutcomeDim || len(pred.Std) != simulator.OutcomeDim {
			return domain.InferenceResult{}, fmt.Errorf("evaluate mode %s: malformed prediction", mode)
		}

		score := ComputeReward(pred.Mean, pred.Std, weights)
		if math.IsNaN(score) || math.IsInf(score, 0) {
			return domain.InferenceResult{}, fmt.Errorf("evaluate mode %s: non-finite score", mode)
		}
		analysis = append(analysis, domain.ModeAnalysis{
			Mode:       mode,
			Score:      score,
			PredDelay:  pred.Mean[simulator.OutcomeDelay],
			StdDelay:   pred.Std[simulator.OutcomeDelay],
			PredProfit: pred.Mean[simulator.OutcomeProfit],
			StdProfit:  pred.Std[simulator.OutcomeProfit],
			PredCO2:    pred.Mean[simulator.OutcomeCO2],
			StdCO2:     pred.Std[simulator.OutcomeCO2],
		})

		// strict: on ties the earlier mode is kept
		if score > bestScore {
			bestMode, bestScore = mode, score
		}
	}

	choice, probs, err := s.ictx.policy.Choose(PolicyState(seq))
	if err != nil {
		return domain.InferenceResult{}, fmt.Errorf("policy: %w", err)
	}
	if choice < 0 || choice >= len(s.ictx.modes) {
		return domain.InferenceResult{}, fmt.Errorf("policy chose mode %d of %d", choice, len(s.ictx.modes))
	}

	logger.Info("inference complete",
		"trace_id", traceID,
		"best_mode_by_score", bestMode,
		"best_score", bestScore,
		"actor_policy_choice", s.ictx.modes[choice],
		"policy_probs", probs,
	)

	return domain.InferenceResult{
		BestModeByScore:   bestMode,
		BestScore:         bestScore,
		ActorPolicyChoice: s.ictx.modes[choice],
		PerModeAnalysis:   analysis,
		LiveFeatures: domain.LiveFeatures{
			Km:     km,
			WS:     ws,
			FI:     fi,
			Weight: weight,
		},
		LiveWeights: weights,
	}, nil
}

package inference

type Config struct {
	EnsembleK int
	MCSamples int
	SeqLen    int
	MCDropout bool

	// shipment weight = sales_per_customer / AvgSales * WeightMultiplier
	AvgSales         float64
	WeightMultiplier float64
	ModeReliability  float64

	// used when the request omits a coordinate
	DefaultLat float64
	DefaultLon float64
}

const (
	defaultEnsembleK        = 3
	defaultMCSamples        = 8
	defaultSeqLen           = 5
	defaultAvgSales         = 178.0
	defaultWeightMultiplier = 3.0
	defaultModeReliability  = 0.9
	defaultLat              = 20.0
	defaultLon              = 78.0
)

func DefaultConfig() Config {
	return Config{
		EnsembleK: defaultEnsembleK,
		MCSamples: defaultMCSamples,
		SeqLen:    defaultSeqLen,
		MCDropout: true,

		AvgSales:         defaultAvgSales,
		WeightMultiplier: defaultWeightMultiplier,
		ModeReliability:  defaultModeReliability,

		DefaultLat: defaultLat,
		DefaultLon: defaultLon,
	}
}

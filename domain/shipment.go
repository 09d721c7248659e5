package domain

import "encoding/json"

type ShipmentRequest struct {
	OrderCity        string   `json:"order_city"`
	OrderCountry     string   `json:"order_country"`
	CustomerCity     string   `json:"customer_city"`
	CustomerCountry  string   `json:"customer_country"`
	SalesPerCustomer float64  `json:"sales_per_customer"`
	Lat              *float64 `json:"lat,omitempty"`
	Lon              *float64 `json:"lon,omitempty"`
}

// Origin and Destination are the place names sent to the geocoder and used
// as route cache keys.
func (r ShipmentRequest) Origin() string {
	return r.OrderCity + "," + r.OrderCountry
}

func (r ShipmentRequest) Destination() string {
	return r.CustomerCity + "," + r.CustomerCountry
}

type ModeAnalysis struct {
	Mode       string  `json:"mode"`
	Score      float64 `json:"score"`
	PredDelay  float64 `json:"pred_delay"`
	StdDelay   float64 `json:"std_delay"`
	PredProfit float64 `json:"pred_profit"`
	StdProfit  float64 `json:"std_profit"`
	PredCO2    float64 `json:"pred_co2"`
	StdCO2     float64 `json:"std_co2"`
}

type LiveFeatures struct {
	Km     float64 `json:"km"`
	WS     float64 `json:"ws"`
	FI     float64 `json:"fi"`
	Weight float64 `json:"weight"`
}

// RewardWeights serializes as [delay, profit, co2, uncertainty].
type RewardWeights struct {
	Delay       float64
	Profit      float64
	CO2         float64
	Uncertainty float64
}

func (w RewardWeights) Sum() float64 {
	return w.Delay + w.Profit + w.CO2 + w.Uncertainty
}

func (w RewardWeights) MarshalJSON() ([]byte, error) {
	return json.Marshal([4]float64{w.Delay, w.Profit, w.CO2, w.Uncertainty})
}

func (w *RewardWeights) UnmarshalJSON(b []byte) error {
	var arr [4]float64
	if err := json.Unmarshal(b, &arr); err != nil {
		return err
	}
	w.Delay, w.Profit, w.CO2, w.Uncertainty = arr[0], arr[1], arr[2], arr[3]
	return nil
}

type InferenceResult struct {
	BestModeByScore   string         `json:"best_mode_by_score"`
	BestScore         float64        `json:"best_score"`
	ActorPolicyChoice string         `json:"actor_policy_choice"`
	PerModeAnalysis   []ModeAnalysis `json:"per_mode_analysis"`
	LiveFeatures      LiveFeatures   `json:"live_features"`
	LiveWeights       RewardWeights  `json:"live_weights"`
}

type ModelInfo struct {
	Modes        []string `json:"modes"`
	EnsembleSize int      `json:"ensemble_size"`
	MCSamples    int      `json:"mc_samples"`
	SeqLen       int      `json:"seq_len"`
}

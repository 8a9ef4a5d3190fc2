package history

import (
	"math"

	"tf2-trader/internal/models"
	"tf2-trader/internal/valuation"
)

const (
	shortPeriod = 5
	longPeriod  = 20
)

// Trend summarizes how the total value in refined moved across refreshes.
// Averages are nil until enough refreshes were recorded.
type Trend struct {
	Points    int      `json:"points"`
	LatestRef float64  `json:"latest_ref"`
	ChangeRef *float64 `json:"change_ref,omitempty"`
	MA5       *float64 `json:"ma5,omitempty"`
	MA20      *float64 `json:"ma20,omitempty"`
	EMA5      *float64 `json:"ema5,omitempty"`
}

// ComputeTrend takes records newest first, as returned by Recent.
func ComputeTrend(records []models.ValuationRecord) Trend {
	values := make([]float64, len(records))
	for i, r := range records {
		values[len(records)-1-i] = r.TotalRef
	}

	t := Trend{Points: len(values)}
	if len(values) == 0 {
		return t
	}
	t.LatestRef = values[len(values)-1]
	if len(values) > 1 {
		change := valuation.Round(t.LatestRef-values[len(values)-2], 2)
		t.ChangeRef = &change
	}
	t.MA5 = last(MovingAverage(values, shortPeriod))
	t.MA20 = last(MovingAverage(values, longPeriod))
	t.EMA5 = last(ExponentialMovingAverage(values, shortPeriod))
	return t
}

// MovingAverage is the simple moving average; entries before the first
// full window are NaN.
func MovingAverage(values []float64, period int) []float64 {
	result := make([]float64, len(values))
	for i := range result {
		result[i] = math.NaN()
	}
	if period <= 0 || len(values) < period {
		return result
	}

	sum := 0.0
	for i, v := range values {
		sum += v
		if i >= period {
			sum -= values[i-period]
		}
		if i >= period-1 {
			result[i] = sum / float64(period)
		}
	}
	return result
}

// ExponentialMovingAverage seeds with the first window's simple average.
func ExponentialMovingAverage(values []float64, period int) []float64 {
	result := make([]float64, len(values))
	for i := range result {
		result[i] = math.NaN()
	}
	if period <= 0 || len(values) < period {
		return result
	}

	multiplier := 2.0 / (float64(period) + 1)
	sum := 0.0
	for i := 0; i < period; i++ {
		sum += values[i]
	}
	result[period-1] = sum / float64(period)
	for i := period; i < len(values); i++ {
		result[i] = values[i]*multiplier + result[i-1]*(1-multiplier)
	}
	return result
}

func last(series []float64) *float64 {
	if len(series) == 0 || math.IsNaN(series[len(series)-1]) {
		return nil
	}
	v := valuation.Round(series[len(series)-1], 2)
	return &v
}

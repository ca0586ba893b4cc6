// scoring/metric.go
package scoring

import "wordle-arena/apperrors"

// Metric names a ranking statistic. The wire names are the ones the public
// API has always used, so they stay a little verbose.
type Metric string

const (
	MetricTotalWins      Metric = "totalWins"
	MetricWinStreak      Metric = "calculateWinStreak"
	MetricRunningStreak  Metric = "currentRunningStreak"
	MetricAverageGuesses Metric = "calculateAverageGuessCount"
	MetricAccuracy       Metric = "calculateAccuracyRate"
	MetricPoints         Metric = "calculatePoints"
)

// Metrics lists every valid metric, in a fixed order.
var Metrics = []Metric{
	MetricTotalWins,
	MetricWinStreak,
	MetricRunningStreak,
	MetricAverageGuesses,
	MetricAccuracy,
	MetricPoints,
}

// ParseMetric validates a wire-level metric name.
func ParseMetric(s string) (Metric, error) {
	for _, m := range Metrics {
		if Metric(s) == m {
			return m, nil
		}
	}
	return "", apperrors.Validation("metric must be one of totalWins, calculateWinStreak, currentRunningStreak, calculateAverageGuessCount, calculateAccuracyRate, calculatePoints")
}

// Compute evaluates the metric over a player's games. Static dispatch — each
// metric is a fixed reducer, nothing is looked up or executed dynamically.
func (m Metric) Compute(games []GameRecord) float64 {
	switch m {
	case MetricTotalWins:
		return float64(TotalWins(games))
	case MetricWinStreak:
		return float64(LongestWinStreak(games))
	case MetricRunningStreak:
		return float64(CurrentRunningStreak(games))
	case MetricAverageGuesses:
		return AverageGuessCount(games)
	case MetricAccuracy:
		return AccuracyRate(games)
	case MetricPoints:
		return float64(Points(games))
	}
	return 0
}

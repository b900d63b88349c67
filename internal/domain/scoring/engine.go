package scoring

import "math"

// StatLine is one player's aggregated totals for a round: the output of the
// ledger aggregation and the input to scoring.
type StatLine struct {
	Goals       int
	Assists     int
	Wins        int
	Draws       int
	Losses      int
	Warnings    int
	OwnGoals    int
	CleanSheets int
}

// IsZero reports whether the line carries no recorded activity at all.
// Any result recorded for a player credits a win, draw or loss, so a
// zero line means no match results exist for that player.
func (l StatLine) IsZero() bool {
	return l == StatLine{}
}

// Weights converts raw stats into points. Values are policy, not code: they
// load from configuration and default to the canonical table below.
type Weights struct {
	Goals       float64
	Assists     float64
	Wins        float64
	Draws       float64
	Losses      float64
	Warnings    float64
	OwnGoals    float64
	CleanSheets float64
}

// DefaultWeights is the canonical scoring table.
func DefaultWeights() Weights {
	return Weights{
		Goals:       4.0,
		Assists:     2.5,
		Wins:        5.0,
		Draws:       2.0,
		Losses:      -1.0,
		Warnings:    -3.0,
		OwnGoals:    -4.0,
		CleanSheets: 1.5,
	}
}

// Engine computes round points from aggregated stats. It is a pure value;
// copies are safe to share across goroutines.
type Engine struct {
	weights Weights
}

func NewEngine(weights Weights) Engine {
	return Engine{weights: weights}
}

func (e Engine) Weights() Weights {
	return e.weights
}

// Score applies the weight table to a stat line. The clean-sheet bonus only
// counts for players flagged as defenders. Result is rounded to 2 decimals.
func (e Engine) Score(line StatLine, defends bool) float64 {
	points := float64(line.Goals)*e.weights.Goals +
		float64(line.Assists)*e.weights.Assists +
		float64(line.Wins)*e.weights.Wins +
		float64(line.Draws)*e.weights.Draws +
		float64(line.Losses)*e.weights.Losses +
		float64(line.Warnings)*e.weights.Warnings +
		float64(line.OwnGoals)*e.weights.OwnGoals

	if defends {
		points += float64(line.CleanSheets) * e.weights.CleanSheets
	}

	return round2(points)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

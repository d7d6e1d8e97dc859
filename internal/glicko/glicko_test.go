package glicko

import (
	"math"
	"testing"
)

func TestNewRatingDefaults(t *testing.T) {
	r := NewRating()
	if r.Value != InitialRating || r.Deviation != InitialDeviation || r.Volatility != InitialVolatility {
		t.Fatalf("unexpected defaults: %+v", r)
	}

	lo, hi := r.Interval()
	if math.Abs(lo-814.0) > 1e-9 {
		t.Errorf("expected lower bound 814, got %f", lo)
	}
	if math.Abs(hi-2186.0) > 1e-9 {
		t.Errorf("expected upper bound 2186, got %f", hi)
	}
}

func TestWinMovesRatingsApart(t *testing.T) {
	winner, loser := NewRating(), NewRating()
	winner.WinAgainst(loser)

	if winner.Value <= InitialRating {
		t.Errorf("winner should gain rating, got %f", winner.Value)
	}
	if loser.Value >= InitialRating {
		t.Errorf("loser should lose rating, got %f", loser.Value)
	}
	// an even contest moves both by the same amount
	if math.Abs((winner.Value-InitialRating)-(InitialRating-loser.Value)) > 1e-6 {
		t.Errorf("expected a symmetric update, got %f / %f", winner.Value, loser.Value)
	}
}

func TestContestsShrinkDeviation(t *testing.T) {
	a, b := NewRating(), NewRating()
	a.WinAgainst(b)

	if a.Deviation >= InitialDeviation {
		t.Errorf("playing should shrink the deviation, got %f", a.Deviation)
	}
	if b.Deviation >= InitialDeviation {
		t.Errorf("playing should shrink the loser's deviation too, got %f", b.Deviation)
	}

	prev := a.Deviation
	for i := 0; i < 10; i++ {
		opp := NewRating()
		a.WinAgainst(opp)
	}
	if a.Deviation >= prev {
		t.Errorf("more contests should keep shrinking the deviation, got %f >= %f", a.Deviation, prev)
	}
}

func TestDecayGrowsDeviation(t *testing.T) {
	a, b := NewRating(), NewRating()
	a.WinAgainst(b)

	value, before := a.Value, a.Deviation
	a.Decay()
	if a.Deviation <= before {
		t.Errorf("decay should grow the deviation, got %f <= %f", a.Deviation, before)
	}
	if a.Value != value {
		t.Errorf("decay must not touch the rating value, got %f", a.Value)
	}
}

func TestUpsetMovesMoreThanExpectedWin(t *testing.T) {
	// give the strong player an established rating first
	strong := NewRating()
	for i := 0; i < 20; i++ {
		strong.WinAgainst(NewRating())
	}

	weak := NewRating()
	before := strong.Value
	weak.WinAgainst(strong)

	if weak.Value <= InitialRating {
		t.Errorf("beating a stronger player should gain rating, got %f", weak.Value)
	}
	if strong.Value >= before {
		t.Errorf("an upset loss should cost rating, got %f", strong.Value)
	}
}

func TestVolatilityStaysSane(t *testing.T) {
	a := NewRating()
	for i := 0; i < 50; i++ {
		a.WinAgainst(NewRating())
	}
	if math.IsNaN(a.Volatility) || a.Volatility <= 0 || a.Volatility > 1 {
		t.Errorf("volatility out of range after many contests: %f", a.Volatility)
	}
	if math.IsNaN(a.Value) || math.IsNaN(a.Deviation) {
		t.Errorf("rating went NaN: %+v", a)
	}
}

// Package glicko implements the Glicko-2 rating system for pairwise
// contests. Each rating carries a value, a deviation (uncertainty) and a
// volatility; every contest updates both participants, and inactivity
// inflates the deviation.
package glicko

import "math"

const (
	InitialRating     = 1500.0
	InitialDeviation  = 350.0
	InitialVolatility = 0.06

	// tau constrains volatility changes; smaller values suit games decided
	// by many small contests.
	tau = 0.5

	// scale converts between the display scale and the internal glicko
	// scale.
	scale = 173.7178

	convergence = 1e-6
)

// Rating is one player's skill estimate.
type Rating struct {
	Value      float64
	Deviation  float64
	Volatility float64
}

// NewRating returns the default rating assigned to an unseen player.
func NewRating() *Rating {
	return &Rating{
		Value:      InitialRating,
		Deviation:  InitialDeviation,
		Volatility: InitialVolatility,
	}
}

// WinAgainst registers a contest won by the receiver. Both ratings are
// updated from their pre-contest values.
func (r *Rating) WinAgainst(loser *Rating) {
	winner, lost := *r, *loser
	r.update(lost, 1)
	loser.update(winner, 0)
}

// Decay inflates the deviation for one rating period without contests;
// confidence in an inactive player's rating shrinks over time.
func (r *Rating) Decay() {
	phi := r.Deviation / scale
	r.Deviation = math.Sqrt(phi*phi+r.Volatility*r.Volatility) * scale
}

// Interval returns the 95% confidence interval around the rating value.
func (r *Rating) Interval() (lo, hi float64) {
	return r.Value - 1.96*r.Deviation, r.Value + 1.96*r.Deviation
}

// update applies the Glicko-2 update for a single contest against the given
// opponent, with score 1 for a win and 0 for a loss.
func (r *Rating) update(opponent Rating, score float64) {
	mu := (r.Value - InitialRating) / scale
	phi := r.Deviation / scale
	muJ := (opponent.Value - InitialRating) / scale
	phiJ := opponent.Deviation / scale

	gj := g(phiJ)
	ej := 1 / (1 + math.Exp(-gj*(mu-muJ)))
	v := 1 / (gj * gj * ej * (1 - ej))
	delta := v * gj * (score - ej)

	sigma := r.nextVolatility(phi, v, delta)
	phiStar := math.Sqrt(phi*phi + sigma*sigma)
	phiPrime := 1 / math.Sqrt(1/(phiStar*phiStar)+1/v)
	muPrime := mu + phiPrime*phiPrime*gj*(score-ej)

	r.Value = InitialRating + scale*muPrime
	r.Deviation = phiPrime * scale
	r.Volatility = sigma
}

func g(phi float64) float64 {
	return 1 / math.Sqrt(1+3*phi*phi/(math.Pi*math.Pi))
}

// nextVolatility solves for the new volatility with the Illinois variant of
// regula falsi, per step 5 of the Glicko-2 paper.
func (r *Rating) nextVolatility(phi, v, delta float64) float64 {
	a := math.Log(r.Volatility * r.Volatility)
	d2 := delta * delta
	p2 := phi * phi

	f := func(x float64) float64 {
		ex := math.Exp(x)
		num := ex * (d2 - p2 - v - ex)
		den := 2 * (p2 + v + ex) * (p2 + v + ex)
		return num/den - (x-a)/(tau*tau)
	}

	bigA := a
	var bigB float64
	if d2 > p2+v {
		bigB = math.Log(d2 - p2 - v)
	} else {
		k := 1.0
		for f(a-k*tau) < 0 {
			k++
		}
		bigB = a - k*tau
	}

	fA, fB := f(bigA), f(bigB)
	for math.Abs(bigB-bigA) > convergence {
		bigC := bigA + (bigA-bigB)*fA/(fB-fA)
		fC := f(bigC)
		if fC*fB <= 0 {
			bigA, fA = bigB, fB
		} else {
			fA /= 2
		}
		bigB, fB = bigC, fC
	}
	return math.Exp(bigA / 2)
}

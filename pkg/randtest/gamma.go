package randtest

import "math"

// igamc computes the regularized upper incomplete gamma function Q(a, x),
// which is the chi-square survival function when a = df/2 and x = chi2/2.
// Series expansion for x < a+1, continued fraction otherwise.
func igamc(a, x float64) float64 {
	if x <= 0 || a <= 0 {
		return 1
	}

	if x < a+1 {
		return 1 - igamSeries(a, x)
	}

	return igamcFraction(a, x)
}

const (
	igamEpsilon  = 1e-15
	igamMaxIters = 500
)

// igamSeries computes the lower regularized incomplete gamma P(a, x) by its
// power series
func igamSeries(a, x float64) float64 {
	sum := 1 / a
	term := sum
	ai := a

	for i := 0; i < igamMaxIters; i++ {
		ai++
		term *= x / ai
		sum += term
		if math.Abs(term) < math.Abs(sum)*igamEpsilon {
			break
		}
	}

	lg, _ := math.Lgamma(a)
	return sum * math.Exp(a*math.Log(x)-x-lg)
}

// igamcFraction computes Q(a, x) by Lentz's continued fraction
func igamcFraction(a, x float64) float64 {
	const tiny = 1e-300

	b := x + 1 - a
	c := 1 / tiny
	d := 1 / b
	h := d

	for i := 1; i <= igamMaxIters; i++ {
		an := -float64(i) * (float64(i) - a)
		b += 2

		d = an*d + b
		if math.Abs(d) < tiny {
			d = tiny
		}

		c = b + an/c
		if math.Abs(c) < tiny {
			c = tiny
		}

		d = 1 / d
		del := d * c
		h *= del

		if math.Abs(del-1) < igamEpsilon {
			break
		}
	}

	lg, _ := math.Lgamma(a)
	return math.Exp(a*math.Log(x)-x-lg) * h
}

package normalize

import "math"

// Score turns review counts into a 0-5 rating with one decimal.
// The deviation from neutral (0.5) is shrunk by 2^-log10(total+1), so titles
// with few votes stay near 2.5 and large samples converge on the raw average.
func Score(positive, negative int) float64 {
	if positive < 0 {
		positive = 0
	}
	if negative < 0 {
		negative = 0
	}
	total := positive + negative
	if total == 0 {
		return 0
	}
	avg := float64(positive) / float64(total)
	damped := avg - (avg-0.5)*math.Pow(2, -math.Log10(float64(total)+1))
	return math.Round(damped*5*10) / 10
}

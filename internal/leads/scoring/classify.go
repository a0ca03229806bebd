package scoring

// Temperature is the display classification derived from a score. It is a
// read-only mapping for UI color-coding and never feeds back into the score.
type Temperature string

const (
	TemperatureHot  Temperature = "hot"
	TemperatureWarm Temperature = "warm"
	TemperatureCold Temperature = "cold"
)

// Canonical classification thresholds. Earlier frontends disagreed on the
// cutoffs (70/40 in one place, 80/50 in another); this table is the single
// authority from here on.
const (
	hotThreshold  = 80
	warmThreshold = 40
)

// Classify maps a score to its display temperature.
func Classify(score int) Temperature {
	switch {
	case score >= hotThreshold:
		return TemperatureHot
	case score >= warmThreshold:
		return TemperatureWarm
	default:
		return TemperatureCold
	}
}

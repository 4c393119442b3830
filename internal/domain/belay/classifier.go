package belay

import (
	"math"

	"github.com/yanqian/belaycheck/internal/domain/i18n"
)

const (
	// OhmOffsetKg is the mass an Edelrid Ohm adds to the belayer.
	OhmOffsetKg = 25.0
	// OhmOffsetLbs is the pound equivalent used by the product. 25 kg is about
	// 55.1 lbs; the rounded value is kept so verdicts match earlier releases.
	OhmOffsetLbs = 55.0

	significantBelayerPercent = 50.0
)

// Text is the language dependent part of a result.
type Text struct {
	Recommendation string
	Tips           []string
	Comparison     string
}

// Classifier maps a weight pair to a safety verdict. It holds no mutable
// state and is safe for concurrent use.
type Classifier struct {
	localizer i18n.Localizer
}

// NewClassifier builds a classifier that renders text through localizer.
func NewClassifier(localizer i18n.Localizer) *Classifier {
	return &Classifier{localizer: localizer}
}

// EffectiveBelayerWeight adds the Ohm offset for the unit when useOhm is set.
func EffectiveBelayerWeight(belayer float64, unit Unit, useOhm bool) float64 {
	if !useOhm {
		return belayer
	}
	if unit == Pounds {
		return belayer + OhmOffsetLbs
	}
	return belayer + OhmOffsetKg
}

// AdjustedThresholds returns the thresholds after the Ohm substitution, the
// experience multiplier and the active-assist collapse.
func AdjustedThresholds(device Device, experience Experience, useOhm bool) (Thresholds, bool) {
	profile, ok := device.Profile()
	if !ok {
		return Thresholds{}, false
	}
	base := profile.thresholds(useOhm)
	multiplier := experience.Multiplier()
	adjusted := Thresholds{Max: base.Max * multiplier, Min: base.Min * multiplier}
	// Experienced belayers on an active cam device get no caution band.
	if profile.Category == AssistedActive && (experience == Intermediate || experience == Advanced) {
		adjusted.Min = adjusted.Max
	}
	return adjusted, true
}

// Classify returns ok=false when either weight is not a finite positive number
// or the device is unknown; callers show nothing in that case.
func (c *Classifier) Classify(input WeightInput, device Device, experience Experience, useOhm bool, lang i18n.Language) (Result, bool) {
	if !usableWeight(input.ClimberWeight) || !usableWeight(input.BelayerWeight) {
		return Result{}, false
	}
	thresholds, ok := AdjustedThresholds(device, experience, useOhm)
	if !ok {
		return Result{}, false
	}

	climber := input.ClimberWeight
	belayer := EffectiveBelayerWeight(input.BelayerWeight, input.Unit, useOhm)

	verdict := Verdict{
		Device:           device,
		IsHeavierClimber: climber > belayer,
	}
	var weightDiff, percentDiff float64
	if !verdict.IsHeavierClimber {
		weightDiff = belayer - climber
		percentDiff = weightDiff / climber * 100
		verdict.Safety = Safe
		verdict.SignificantlyHeavierBelayer = percentDiff > significantBelayerPercent
	} else {
		// Relative to the belayer: they absorb the fall.
		weightDiff = climber - belayer
		percentDiff = weightDiff / belayer * 100
		verdict.Safety = tierFor(percentDiff, thresholds)
	}
	// Extreme but finite inputs can overflow; they get no result like any
	// other unusable pair.
	if !displayable(weightDiff) || !displayable(percentDiff) {
		return Result{}, false
	}
	verdict.EqualWeight = Round1(weightDiff) == 0

	result := Result{
		Verdict:     verdict,
		WeightDiff:  weightDiff,
		PercentDiff: percentDiff,
	}
	return c.Localize(result, lang), true
}

// Describe selects the text for a verdict. It is a pure function of the
// verdict and the language.
func (c *Classifier) Describe(v Verdict, lang i18n.Language) Text {
	var tips []string
	if profile, ok := v.Device.Profile(); ok {
		tips = profile.TipsFor(lang)
	}
	return Text{
		Recommendation: recommendationText(lang, recommendationFor(v)),
		Tips:           tips,
		Comparison:     c.localizer.Text(lang, comparisonKey(v)),
	}
}

// Localize re-derives the text of r in lang. Numbers and verdict are kept.
func (c *Classifier) Localize(r Result, lang i18n.Language) Result {
	if !lang.Valid() {
		lang = i18n.Fallback
	}
	text := c.Describe(r.Verdict, lang)
	r.Recommendation = text.Recommendation
	r.Tips = text.Tips
	r.Comparison = text.Comparison
	r.Language = lang
	return r
}

// Round1 rounds half away from zero to one decimal.
func Round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func tierFor(percentDiff float64, t Thresholds) Safety {
	switch {
	case percentDiff > t.Max:
		return Unsafe
	case percentDiff > t.Min:
		return Caution
	default:
		return Safe
	}
}

func usableWeight(v float64) bool {
	return v > 0 && finite(v)
}

// displayable reports whether v and its one decimal rendering are finite.
func displayable(v float64) bool {
	return finite(v) && finite(Round1(v))
}

func finite(v float64) bool {
	return !math.IsInf(v, 0) && !math.IsNaN(v)
}

// View renders a result for the wire with one decimal numbers.
func (r Result) View() ResultView {
	tips := r.Tips
	if tips == nil {
		tips = []string{}
	}
	return ResultView{
		Safety:                      r.Safety,
		WeightDiff:                  Round1(r.WeightDiff),
		PercentDiff:                 Round1(r.PercentDiff),
		Recommendation:              r.Recommendation,
		Tips:                        tips,
		IsHeavierClimber:            r.IsHeavierClimber,
		SignificantlyHeavierBelayer: r.SignificantlyHeavierBelayer,
		EqualWeight:                 r.EqualWeight,
		Comparison:                  r.Comparison,
		Device:                      r.Device,
		Language:                    r.Language,
	}
}

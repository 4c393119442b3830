package belay

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/yanqian/belaycheck/internal/domain/i18n"
)

// Unit labels the weights. No conversion happens between units.
type Unit string

const (
	Kilograms Unit = "kg"
	Pounds    Unit = "lbs"
)

// ParseUnit accepts "kg" or "lbs"; an empty value means kilograms.
func ParseUnit(raw string) (Unit, bool) {
	switch Unit(strings.ToLower(strings.TrimSpace(raw))) {
	case "", Kilograms:
		return Kilograms, true
	case Pounds:
		return Pounds, true
	default:
		return "", false
	}
}

// Experience is the belayer's experience level.
type Experience string

const (
	Beginner     Experience = "beginner"
	Intermediate Experience = "intermediate"
	Advanced     Experience = "advanced"
)

// ParseExperience accepts the three levels; empty means intermediate.
func ParseExperience(raw string) (Experience, bool) {
	switch Experience(strings.ToLower(strings.TrimSpace(raw))) {
	case "", Intermediate:
		return Intermediate, true
	case Beginner:
		return Beginner, true
	case Advanced:
		return Advanced, true
	default:
		return "", false
	}
}

// Multiplier scales device thresholds.
func (e Experience) Multiplier() float64 {
	switch e {
	case Beginner:
		return 0.8
	case Advanced:
		return 1.2
	default:
		return 1.0
	}
}

// Safety is the classifier verdict.
type Safety string

const (
	Safe    Safety = "safe"
	Caution Safety = "caution"
	Unsafe  Safety = "unsafe"
)

func (s Safety) severity() int {
	switch s {
	case Caution:
		return 1
	case Unsafe:
		return 2
	default:
		return 0
	}
}

// ParseSafety is used when a client sends a previous result back.
func ParseSafety(raw string) (Safety, bool) {
	switch s := Safety(strings.TrimSpace(raw)); s {
	case Safe, Caution, Unsafe:
		return s, true
	default:
		return "", false
	}
}

// WeightInput is a validated pair of weights.
type WeightInput struct {
	ClimberWeight float64
	BelayerWeight float64
	Unit          Unit
}

// Verdict is everything the text selection depends on. It never changes when
// the language changes.
type Verdict struct {
	Safety                      Safety
	Device                      Device
	IsHeavierClimber            bool
	SignificantlyHeavierBelayer bool
	EqualWeight                 bool
}

// Result is produced fresh on every classification.
type Result struct {
	Verdict
	// WeightDiff and PercentDiff keep full precision; round only for display.
	WeightDiff     float64
	PercentDiff    float64
	Recommendation string
	Tips           []string
	Comparison     string
	Language       i18n.Language
}

// WeightField accepts a JSON number or a string, matching what a form sends.
type WeightField string

// UnmarshalJSON implements json.Unmarshaler.
func (w *WeightField) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "null" || trimmed == "" {
		*w = ""
		return nil
	}
	if trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*w = WeightField(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*w = WeightField(n.String())
	return nil
}

// Float parses the field. Blank or malformed values report ok=false.
func (w WeightField) Float() (float64, bool) {
	raw := strings.TrimSpace(string(w))
	if raw == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// Positive parses the field and accepts only finite values above zero.
func (w WeightField) Positive() (float64, bool) {
	v, ok := w.Float()
	if !ok || !usableWeight(v) {
		return 0, false
	}
	return v, true
}

// AssessRequest carries the raw form state.
type AssessRequest struct {
	ClimberWeight WeightField `json:"climberWeight"`
	BelayerWeight WeightField `json:"belayerWeight"`
	Unit          string      `json:"unit"`
	Device        string      `json:"device"`
	Experience    string      `json:"experience"`
	UseOhm        bool        `json:"useOhm"`
	Language      string      `json:"language"`
}

// AssessResponse wraps an optional result; Result is nil when the weights are
// not usable yet.
type AssessResponse struct {
	Result   *ResultView   `json:"result"`
	Language i18n.Language `json:"language"`
}

// ResultView is the wire form of Result.
type ResultView struct {
	Safety                      Safety        `json:"safety"`
	WeightDiff                  float64       `json:"weightDiff"`
	PercentDiff                 float64       `json:"percentDiff"`
	Recommendation              string        `json:"recommendation"`
	Tips                        []string      `json:"tips"`
	IsHeavierClimber            bool          `json:"isHeavierClimber"`
	SignificantlyHeavierBelayer bool          `json:"significantlyHeavierBelayer"`
	EqualWeight                 bool          `json:"equalWeight"`
	Comparison                  string        `json:"comparison"`
	Device                      Device        `json:"device"`
	Language                    i18n.Language `json:"language"`
}

// LocalizeRequest asks for the text of an existing result in another language.
type LocalizeRequest struct {
	Result   ResultView `json:"result"`
	Language string     `json:"language"`
}

// DeviceInfo describes a device for selectors.
type DeviceInfo struct {
	ID             Device   `json:"id"`
	Name           string   `json:"name"`
	Category       Device   `json:"category"`
	Legacy         bool     `json:"legacy"`
	MaxDiff        float64  `json:"maxDiff"`
	MinDiff        float64  `json:"minDiff"`
	MaxDiffWithOhm *float64 `json:"maxDiffWithOhm,omitempty"`
	MinDiffWithOhm *float64 `json:"minDiffWithOhm,omitempty"`
	Tips           []string `json:"tips"`
}

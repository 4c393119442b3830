package pairs

import (
	"time"

	"github.com/yanqian/belaycheck/internal/domain/belay"
)

// StorageKey is the fixed key holding a client's saved pairs.
const StorageKey = "commonPairs"

// DefaultLimit is how many pairs are kept, most recent last.
const DefaultLimit = 10

// SavedPair is a climber/belayer combination a client wants to reuse.
type SavedPair struct {
	Climber   float64      `json:"climber"`
	Belayer   float64      `json:"belayer"`
	Unit      belay.Unit   `json:"unit"`
	Device    belay.Device `json:"device"`
	UseOhm    bool         `json:"useOhm,omitempty"`
	Timestamp time.Time    `json:"timestamp"`
}

// SaveRequest carries the form state to remember.
type SaveRequest struct {
	ClimberWeight belay.WeightField `json:"climberWeight"`
	BelayerWeight belay.WeightField `json:"belayerWeight"`
	Unit          string            `json:"unit"`
	Device        string            `json:"device"`
	UseOhm        bool              `json:"useOhm"`
}

// Config wires runtime settings for the pairs domain.
type Config struct {
	Limit int
}

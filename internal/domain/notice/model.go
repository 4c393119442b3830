package notice

// Storage keys, one value per client.
const (
	UpdateInfoKey       = "appUpdateInfo"
	InstallDismissedKey = "installPromptDismissed"
)

// Entry is one release in the changelog.
type Entry struct {
	Version string   `json:"version"`
	Date    string   `json:"date"`
	Changes []string `json:"changes"`
}

// UpdateInfo records the last release a client acknowledged.
type UpdateInfo struct {
	Version string `json:"version"`
	Closed  bool   `json:"closed"`
}

// Status tells the frontend which one-time notices to show.
type Status struct {
	CurrentVersion         string `json:"currentVersion"`
	ShowUpdate             bool   `json:"showUpdate"`
	InstallPromptDismissed bool   `json:"installPromptDismissed"`
	Latest                 *Entry `json:"latest,omitempty"`
}

// Config wires runtime settings for notices.
type Config struct {
	CurrentVersion string
}

package models

// SampleDataset describes one built-in sample profile for discovery.
type SampleDataset struct {
	Key         string   `json:"key"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Features    []string `json:"features"`
}

package model

// Recommendation is a single proposed setup change.
type Recommendation struct {
	Parameter  Parameter `json:"parameter" yaml:"parameter"`
	Change     float64   `json:"change" yaml:"change"`         // signed delta
	Confidence float64   `json:"confidence" yaml:"confidence"` // (0,1]
	Reason     string    `json:"reason" yaml:"reason"`
	Module     string    `json:"module" yaml:"module"`
}

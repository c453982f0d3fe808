// Package optimization provides shared data structures for breakeven search
// results.
package optimization

// Summary captures the result of a single breakeven search.
type Summary struct {
	Scenario        string   `json:"scenario"`
	Field           string   `json:"field"`
	Original        float64  `json:"original"`
	Value           float64  `json:"value"`
	Lower           float64  `json:"lower"`
	Upper           float64  `json:"upper"`
	OwnAdvantage    float64  `json:"ownAdvantage"`
	Iterations      int      `json:"iterations"`
	Converged       bool     `json:"converged"`
	Notes           []string `json:"notes,omitempty"`
	OriginalDisplay string   `json:"originalDisplay,omitempty"`
	ValueDisplay    string   `json:"valueDisplay,omitempty"`
}

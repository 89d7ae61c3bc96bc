package models

// SearchResult is one entry in the merged search response. Type is "player",
// "team" or "module"; TeamID is set only for player results.
type SearchResult struct {
	Value    string   `json:"value"`
	Type     string   `json:"type"`
	ID       int64    `json:"id"`
	TeamID   int64    `json:"teamId,omitempty"`
	Keywords []string `json:"keywords"`
}

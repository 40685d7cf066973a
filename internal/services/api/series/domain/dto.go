// Package domain holds the series catalog types
package domain

// Series is one catalog entry
type Series struct {
	ExternalID  string `json:"external_id"`
	Name        string `json:"name"`
	Unit        string `json:"unit"`
	Description string `json:"description"`
	IsString    bool   `json:"-"`
}

// Option is the dropdown shape a client renders
type Option struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// ListResult is the catalog page
type ListResult struct {
	Items   []Series `json:"items"`
	Options []Option `json:"options"`
}

// list limits
const (
	DefaultLimit = 50
	MaxLimit     = 500
)

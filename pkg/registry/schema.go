// pkg/registry/schema.go
package registry

import "encoding/json"

type OperationRegistry struct {
	Version     string      `json:"version"`
	LastUpdated string      `json:"lastUpdated"`
	Operations  []Operation `json:"operations"`
}

type Operation struct {
	ID           string          `json:"id"`
	DisplayName  string          `json:"displayName"`
	Description  string          `json:"description"`
	Category     string          `json:"category"`
	Method       string          `json:"method"`
	Path         string          `json:"path"`
	AuthRequired bool            `json:"authRequired"`
	InputSchema  json.RawMessage `json:"inputSchema,omitempty"`
	ErrorCodes   []string        `json:"errorCodes"`
	Tags         []string        `json:"tags"`
}

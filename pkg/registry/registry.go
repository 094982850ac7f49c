// pkg/registry/registry.go
package registry

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"remedypedia/internal/common/validation"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed operations.json
var embeddedCatalog []byte

var (
	defaultOnce     sync.Once
	defaultRegistry *OperationRegistry
	defaultErr      error
)

// Default returns the catalog compiled into the binary.
func Default() (*OperationRegistry, error) {
	defaultOnce.Do(func() {
		defaultRegistry, defaultErr = Parse(embeddedCatalog)
	})
	return defaultRegistry, defaultErr
}

func LoadRegistry(path string) (*OperationRegistry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

func Parse(data []byte) (*OperationRegistry, error) {
	var reg OperationRegistry
	if err := json.Unmarshal(data, &reg); err != nil {
		return nil, fmt.Errorf("parse operation registry: %w", err)
	}
	seen := make(map[string]bool, len(reg.Operations))
	for _, op := range reg.Operations {
		if op.ID == "" || op.Method == "" || op.Path == "" {
			return nil, fmt.Errorf("operation %q: id, method and path are required", op.ID)
		}
		if seen[op.ID] {
			return nil, fmt.Errorf("duplicate operation id %q", op.ID)
		}
		seen[op.ID] = true
	}
	return &reg, nil
}

func (r *OperationRegistry) Get(id string) (Operation, bool) {
	for _, op := range r.Operations {
		if op.ID == id {
			return op, true
		}
	}
	return Operation{}, false
}

// CompileInputSchema compiles the operation's body schema. It returns nil when the
// operation accepts any body.
func (o Operation) CompileInputSchema() (*gojsonschema.Schema, error) {
	if len(o.InputSchema) == 0 {
		return nil, nil
	}
	schema, err := validation.CompileSchema(o.InputSchema)
	if err != nil {
		return nil, fmt.Errorf("operation %s: %w", o.ID, err)
	}
	return schema, nil
}

// cmd/tools/registry-check/main.go
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"remedypedia/internal/common/validation"
	"remedypedia/pkg/registry"
)

func main() {
	validateCmd := flag.NewFlagSet("validate", flag.ExitOnError)
	listCmd := flag.NewFlagSet("list", flag.ExitOnError)
	bodyCmd := flag.NewFlagSet("check-body", flag.ExitOnError)

	validatePath := validateCmd.String("path", "", "Path to an operation catalog (default: the embedded catalog)")
	listPath := listCmd.String("path", "", "Path to an operation catalog (default: the embedded catalog)")
	bodyPath := bodyCmd.String("path", "", "Path to an operation catalog (default: the embedded catalog)")
	bodyID := bodyCmd.String("id", "", "Operation ID (e.g., newsletter-subscribe)")
	bodyFile := bodyCmd.String("file", "", "JSON request body to check (default: stdin)")

	if len(os.Args) < 2 {
		help()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "validate":
		validateCmd.Parse(os.Args[2:])
		reg, err := load(*validatePath)
		if err == nil {
			err = validateRegistry(reg)
		}
		if err != nil {
			fmt.Printf("Registry validation failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Registry validation passed. Found %d operations.\n", len(reg.Operations))

	case "list":
		listCmd.Parse(os.Args[2:])
		reg, err := load(*listPath)
		if err != nil {
			fmt.Printf("Error loading registry: %v\n", err)
			os.Exit(1)
		}
		listOperations(os.Stdout, reg)

	case "check-body":
		bodyCmd.Parse(os.Args[2:])
		if *bodyID == "" {
			fmt.Println("Error: id is required for check-body.")
			bodyCmd.Usage()
			os.Exit(1)
		}
		reg, err := load(*bodyPath)
		if err != nil {
			fmt.Printf("Error loading registry: %v\n", err)
			os.Exit(1)
		}
		body, err := readBody(*bodyFile)
		if err != nil {
			fmt.Printf("Error reading body: %v\n", err)
			os.Exit(1)
		}
		if err := checkBody(reg, *bodyID, body); err != nil {
			fmt.Printf("Body rejected: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Body accepted by %s.\n", *bodyID)

	case "help":
		fallthrough
	default:
		help()
	}
}

func load(path string) (*registry.OperationRegistry, error) {
	if path == "" {
		return registry.Default()
	}
	return registry.LoadRegistry(path)
}

// validateRegistry checks the fields the router relies on and compiles every schema.
func validateRegistry(reg *registry.OperationRegistry) error {
	if len(reg.Operations) == 0 {
		return fmt.Errorf("registry contains no operations")
	}

	routes := make(map[string]string)
	for _, op := range reg.Operations {
		if op.DisplayName == "" {
			return fmt.Errorf("operation %s missing required field: DisplayName", op.ID)
		}
		if op.Category == "" {
			return fmt.Errorf("operation %s missing required field: Category", op.ID)
		}
		if !strings.HasPrefix(op.Path, "/") {
			return fmt.Errorf("operation %s: path %q must start with /", op.ID, op.Path)
		}

		route := op.Method + " " + op.Path
		if other, exists := routes[route]; exists {
			return fmt.Errorf("operations %s and %s share route %s", other, op.ID, route)
		}
		routes[route] = op.ID

		if _, err := op.CompileInputSchema(); err != nil {
			return err
		}
	}
	return nil
}

func listOperations(w io.Writer, reg *registry.OperationRegistry) {
	for _, op := range reg.Operations {
		auth := ""
		if op.AuthRequired {
			auth = " (auth)"
		}
		fmt.Fprintf(w, "%-32s %-6s %s%s\n", op.ID, op.Method, op.Path, auth)
	}
}

// checkBody validates a request body against an operation's input schema.
func checkBody(reg *registry.OperationRegistry, id string, body []byte) error {
	op, ok := reg.Get(id)
	if !ok {
		return fmt.Errorf("operation %s not found", id)
	}
	schema, err := op.CompileInputSchema()
	if err != nil {
		return err
	}
	if schema == nil {
		return nil
	}
	result, err := validation.ValidateBytes(schema, body)
	if err != nil {
		return err
	}
	return result.Err()
}

func readBody(path string) ([]byte, error) {
	if path == "" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(path)
}

func help() {
	fmt.Println(`
Usage: registry-check <command> [flags]

Commands:
  validate    Validate the operation catalog
  list        Print every operation with its route
  check-body  Validate a JSON request body against an operation's input schema
  help        Show this help message

Examples:
  registry-check validate
  registry-check validate -path pkg/registry/operations.json
  registry-check list
  registry-check check-body -id newsletter-subscribe -file body.json

Use 'registry-check <command> -h' for more information about a command.
`)
}

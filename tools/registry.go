package tools

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/firebase/genkit/go/ai"
	"github.com/xeipuuv/gojsonschema"
)

// ErrToolNotFound is returned by ExecuteTool for unknown names
var ErrToolNotFound = errors.New("tool not found")

// ToolExecutor is the function signature for executing a tool
type ToolExecutor func(ctx context.Context, args map[string]interface{}) (interface{}, error)

// ValidationError lists why arguments do not match a tool's input schema
type ValidationError struct {
	Tool    string
	Details []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid arguments for %s: %s", e.Tool, strings.Join(e.Details, "; "))
}

// Registry manages the registration of AI tools
type Registry struct {
	tools     []ai.Tool
	executors map[string]ToolExecutor
	schemas   map[string]map[string]any
}

// NewRegistry creates a new tool registry
func NewRegistry() *Registry {
	return &Registry{
		tools:     make([]ai.Tool, 0),
		executors: make(map[string]ToolExecutor),
		schemas:   make(map[string]map[string]any),
	}
}

// Register adds a tool to the registry with its executor
func (r *Registry) Register(tool ai.Tool, executor ToolExecutor) {
	def := tool.Definition()
	r.tools = append(r.tools, tool)
	r.executors[def.Name] = executor
	if len(def.InputSchema) > 0 {
		r.schemas[def.Name] = withoutDialect(def.InputSchema)
	}
}

// withoutDialect drops "$schema" so draft 2020-12 schemas validate in the draft-7 engine
func withoutDialect(schema map[string]any) map[string]any {
	if _, ok := schema["$schema"]; !ok {
		return schema
	}
	out := make(map[string]any, len(schema))
	for k, v := range schema {
		if k != "$schema" {
			out[k] = v
		}
	}
	return out
}

// GetTools returns all registered tools
func (r *Registry) GetTools() []ai.Tool {
	return r.tools
}

// Names returns the registered tool names, sorted
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.executors))
	for name := range r.executors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ExecuteTool validates args against the tool's input schema and runs it
func (r *Registry) ExecuteTool(ctx context.Context, name string, args map[string]interface{}) (interface{}, error) {
	executor, ok := r.executors[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrToolNotFound, name)
	}
	if args == nil {
		args = map[string]interface{}{}
	}
	if schema, ok := r.schemas[name]; ok {
		if err := ValidateArgs(name, schema, args); err != nil {
			return nil, err
		}
	}
	return executor(ctx, args)
}

// ValidateArgs checks args against a JSON schema
func ValidateArgs(tool string, schema map[string]any, args map[string]interface{}) error {
	result, err := gojsonschema.Validate(gojsonschema.NewGoLoader(schema), gojsonschema.NewGoLoader(args))
	if err != nil {
		return fmt.Errorf("schema validation error: %w", err)
	}
	if result.Valid() {
		return nil
	}

	details := make([]string, 0, len(result.Errors()))
	for _, e := range result.Errors() {
		details = append(details, e.String())
	}
	return &ValidationError{Tool: tool, Details: details}
}

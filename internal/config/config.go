// Package config loads and validates faultlog configuration files.
//
// Configuration is YAML on disk, validated against an embedded CUE schema
// before any value reaches the rest of the program. The facade itself never
// performs ambient lookups; values arrive at it already validated.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"gopkg.in/yaml.v3"
)

//go:embed schema.cue
var schemaCUE string

// Config holds the validated configuration values.
type Config struct {
	// Path is the backend connection descriptor (SQLite database path).
	Path string `json:"path"`

	// Application is the namespace all operations are scoped to.
	Application string `json:"application"`

	// SchemaQualifier optionally qualifies the backing table name.
	SchemaQualifier string `json:"schemaQualifier"`

	// Spool is an optional directory watched for dropped error reports.
	Spool string `json:"spool"`
}

// Load reads a YAML configuration file and validates it against the schema.
// All schema violations are reported, not just the first field decoded.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	return Parse(data)
}

// Parse validates raw YAML configuration bytes against the embedded schema.
func Parse(data []byte) (Config, error) {
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config YAML: %w", err)
	}
	if raw == nil {
		raw = map[string]any{}
	}

	ctx := cuecontext.New()

	schema := ctx.CompileString(schemaCUE, cue.Filename("schema.cue"))
	if err := schema.Err(); err != nil {
		return Config{}, fmt.Errorf("compile config schema: %w", err)
	}
	def := schema.LookupPath(cue.ParsePath("#Config"))
	if err := def.Err(); err != nil {
		return Config{}, fmt.Errorf("lookup config schema: %w", err)
	}

	val := def.Unify(ctx.Encode(raw))
	if err := val.Validate(cue.Concrete(true)); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}

	var cfg Config
	if err := val.Decode(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	return cfg, nil
}

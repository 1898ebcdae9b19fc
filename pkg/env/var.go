// Package env keeps a registry of the environment variables appwash reads.
// Calling a Register* function records the variable's name, default and
// description and returns a typed accessor. The registry feeds both the
// configuration defaults and the `help --env` listing.
package env

import (
	"cmp"
	"os"
	"slices"
	"strconv"
	"sync"
	"time"
)

// VarType identifies the data type of an environment variable.
type VarType int

const (
	TypeString VarType = iota
	TypeBool
	TypeDuration
)

func (v VarType) String() string {
	switch v {
	case TypeString:
		return "String"
	case TypeBool:
		return "Boolean"
	case TypeDuration:
		return "Duration"
	default:
		return "Unknown"
	}
}

// Component identifies which part of appwash consumes the variable.
type Component string

const (
	ComponentShell     Component = "shell"
	ComponentClient    Component = "client"
	ComponentLogging   Component = "logging"
	ComponentTelemetry Component = "telemetry"
	ComponentTesting   Component = "testing"
)

// Var holds the metadata for a single registered environment variable.
type Var struct {
	Name         string
	DefaultValue string
	Description  string
	Type         VarType
	Component    Component
	// ConfigKey is the viper key the variable is bound to. Empty means the
	// variable is read directly and never reaches the config struct.
	ConfigKey string
}

var (
	allVars = make(map[string]Var)
	mu      sync.Mutex
)

func register(v Var) {
	mu.Lock()
	defer mu.Unlock()
	allVars[v.Name] = v
}

// VarDescriptions returns all registered variables sorted by name.
func VarDescriptions() []Var {
	mu.Lock()
	defer mu.Unlock()

	out := make([]Var, 0, len(allVars))
	for _, v := range allVars {
		out = append(out, v)
	}
	slices.SortFunc(out, func(a, b Var) int {
		return cmp.Compare(a.Name, b.Name)
	})
	return out
}

// VarByName returns the metadata for a registered variable, or false if not found.
func VarByName(name string) (Var, bool) {
	mu.Lock()
	defer mu.Unlock()
	v, ok := allVars[name]
	return v, ok
}

// StringVar is a registered environment variable that holds a string value.
type StringVar struct {
	v Var
}

// RegisterStringVar registers a string environment variable bound to configKey.
func RegisterStringVar(name, configKey, defaultValue, description string, component Component) StringVar {
	v := Var{
		Name:         name,
		DefaultValue: defaultValue,
		Description:  description,
		Type:         TypeString,
		Component:    component,
		ConfigKey:    configKey,
	}
	register(v)
	return StringVar{v: v}
}

// Get returns the current value of the environment variable, or the default.
func (s StringVar) Get() string {
	if val, ok := os.LookupEnv(s.v.Name); ok {
		return val
	}
	return s.v.DefaultValue
}

func (s StringVar) Name() string         { return s.v.Name }
func (s StringVar) DefaultValue() string { return s.v.DefaultValue }

// BoolVar is a registered environment variable that holds a boolean value.
type BoolVar struct {
	v            Var
	defaultValue bool
}

// RegisterBoolVar registers a boolean environment variable bound to configKey.
func RegisterBoolVar(name, configKey string, defaultValue bool, description string, component Component) BoolVar {
	v := Var{
		Name:         name,
		DefaultValue: strconv.FormatBool(defaultValue),
		Description:  description,
		Type:         TypeBool,
		Component:    component,
		ConfigKey:    configKey,
	}
	register(v)
	return BoolVar{v: v, defaultValue: defaultValue}
}

// Get returns the parsed value, falling back to the default on unset or
// unparsable input.
func (b BoolVar) Get() bool {
	if val, ok := os.LookupEnv(b.v.Name); ok {
		parsed, err := strconv.ParseBool(val)
		if err == nil {
			return parsed
		}
	}
	return b.defaultValue
}

func (b BoolVar) Name() string { return b.v.Name }

// DurationVar is a registered environment variable that holds a time.Duration value.
type DurationVar struct {
	v            Var
	defaultValue time.Duration
}

// RegisterDurationVar registers a duration environment variable bound to configKey.
func RegisterDurationVar(name, configKey string, defaultValue time.Duration, description string, component Component) DurationVar {
	v := Var{
		Name:         name,
		DefaultValue: defaultValue.String(),
		Description:  description,
		Type:         TypeDuration,
		Component:    component,
		ConfigKey:    configKey,
	}
	register(v)
	return DurationVar{v: v, defaultValue: defaultValue}
}

func (d DurationVar) Get() time.Duration {
	if val, ok := os.LookupEnv(d.v.Name); ok {
		parsed, err := time.ParseDuration(val)
		if err == nil {
			return parsed
		}
	}
	return d.defaultValue
}

func (d DurationVar) Name() string                { return d.v.Name }
func (d DurationVar) DefaultValue() time.Duration { return d.defaultValue }

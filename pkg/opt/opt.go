package opt

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// A generic option type, which can set options on a generator or request
type Opt func(*opts) error

// StreamFn is called for each streamed chunk with the originating role
// ("assistant", "tool") and the text of the chunk.
type StreamFn func(role, text string)

// set of options
type opts struct {
	url.Values
	anyvalues map[string]any
}

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

// Well-known keys for options stored with SetAny
const (
	ToolkitKey      = "toolkit"
	StreamKey       = "stream"
	SystemPromptKey = "system"
	InvocationKey   = "invocations"
)

////////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// Apply returns a structure of applied options
func Apply(o ...Opt) (*opts, error) {
	opts := &opts{Values: make(url.Values), anyvalues: make(map[string]any)}
	for _, opt := range o {
		if err := opt(opts); err != nil {
			return nil, err
		}
	}
	return opts, nil
}

////////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Get returns the value stored with SetAny for key, or nil if not set
func (o *opts) Get(key string) any {
	return o.anyvalues[key]
}

// GetString returns the trimmed value for key, or empty string if not set
func (o *opts) GetString(key string) string {
	if values, ok := o.Values[key]; ok && len(values) > 0 {
		return strings.TrimSpace(values[0])
	}
	return ""
}

// GetUint returns the uint value for key, or 0 if not set or invalid
func (o *opts) GetUint(key string) uint {
	if values, ok := o.Values[key]; ok && len(values) > 0 {
		if v, err := strconv.ParseUint(strings.TrimSpace(values[0]), 10, 64); err == nil {
			return uint(v)
		}
	}
	return 0
}

// GetFloat64 returns the float64 value for key, or 0 if not set or invalid
func (o *opts) GetFloat64(key string) float64 {
	if values, ok := o.Values[key]; ok && len(values) > 0 {
		if v, err := strconv.ParseFloat(strings.TrimSpace(values[0]), 64); err == nil {
			return v
		}
	}
	return 0
}

// Has returns true if the key exists
func (o *opts) Has(key string) bool {
	if _, ok := o.Values[key]; ok {
		return true
	}
	_, ok := o.anyvalues[key]
	return ok
}

// StreamFn returns the stream callback stored under StreamKey, or nil
func (o *opts) StreamFn() StreamFn {
	if fn, ok := o.Get(StreamKey).(StreamFn); ok {
		return fn
	}
	return nil
}

////////////////////////////////////////////////////////////////////////////////
// OPTIONS

// Error returns an option that always returns an error
func Error(err error) Opt {
	return func(o *opts) error {
		return err
	}
}

// WithOpts combines multiple options into a single option
func WithOpts(options ...Opt) Opt {
	return func(o *opts) error {
		for _, opt := range options {
			if err := opt(o); err != nil {
				return err
			}
		}
		return nil
	}
}

func WithString(key string, value ...string) Opt {
	return func(o *opts) error {
		for _, v := range value {
			o.Values.Add(key, v)
		}
		return nil
	}
}

func WithUint(key string, value ...uint) Opt {
	return func(o *opts) error {
		for _, v := range value {
			o.Values.Add(key, fmt.Sprintf("%d", v))
		}
		return nil
	}
}

func WithFloat64(key string, value float64) Opt {
	return func(o *opts) error {
		o.Values.Add(key, strconv.FormatFloat(value, 'f', -1, 64))
		return nil
	}
}

// SetAny stores an arbitrary value under key, replacing any previous value
func SetAny(key string, value any) Opt {
	return func(o *opts) error {
		o.anyvalues[key] = value
		return nil
	}
}

// WithStream sets the stream callback for a request
func WithStream(fn StreamFn) Opt {
	return SetAny(StreamKey, fn)
}

// WithSystemPrompt sets the system prompt for a request
func WithSystemPrompt(value string) Opt {
	return WithString(SystemPromptKey, value)
}

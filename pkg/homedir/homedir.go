// Package homedir resolves the invoking user's home directory from the
// environment.
package homedir

import (
	"os"

	"github.com/denysvitali/dirscope-runtime/pkg/fserr"
)

const (
	// PosixHomeVar is consulted first
	PosixHomeVar = "HOME"
	// WindowsProfileVar is consulted when PosixHomeVar is unset or empty
	WindowsProfileVar = "USERPROFILE"
)

// lookupOrder is fixed. It does not vary with runtime.GOOS or configuration.
var lookupOrder = [...]string{PosixHomeVar, WindowsProfileVar}

// LookupOrder returns the variables consulted, in order
func LookupOrder() []string {
	return append([]string(nil), lookupOrder[:]...)
}

// Env is a source of environment variables
type Env interface {
	LookupEnv(key string) (string, bool)
}

// OSEnv reads the process environment
type OSEnv struct{}

// LookupEnv implements Env
func (OSEnv) LookupEnv(key string) (string, bool) {
	return os.LookupEnv(key)
}

// MapEnv is an Env backed by a map
type MapEnv map[string]string

// LookupEnv implements Env
func (m MapEnv) LookupEnv(key string) (string, bool) {
	v, ok := m[key]
	return v, ok
}

// Resolver looks up a home directory from the environment
type Resolver struct {
	env Env
}

// NewResolver creates a resolver. A nil env reads the process environment.
func NewResolver(env Env) *Resolver {
	if env == nil {
		env = OSEnv{}
	}
	return &Resolver{env: env}
}

// Resolve returns the value of the first variable that is set and non-empty.
// The value is returned as is: it is neither checked for existence nor cleaned.
func (r *Resolver) Resolve() (string, error) {
	for _, key := range lookupOrder {
		if v, ok := r.env.LookupEnv(key); ok && v != "" {
			return v, nil
		}
	}
	return "", fserr.New(fserr.EnvironmentUnavailable, "", nil)
}

// Resolve resolves the home directory from the process environment
func Resolve() (string, error) {
	return NewResolver(nil).Resolve()
}

package paths

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/dotdeploy/pkg/errors"
)

// EnvHome is the standard home directory variable
const EnvHome = "HOME"

// LookupFunc resolves a variable name. It has the shape of os.LookupEnv.
type LookupFunc func(name string) (string, bool)

// MapLookup returns a LookupFunc backed by a fixed map
func MapLookup(vars map[string]string) LookupFunc {
	return func(name string) (string, bool) {
		v, ok := vars[name]
		return v, ok
	}
}

// Resolver expands and absolutizes raw profile paths
type Resolver struct {
	home    string
	lookups []LookupFunc
}

// NewResolver creates a resolver with an explicit home directory and
// variable lookups, consulted in order.
func NewResolver(home string, lookups ...LookupFunc) *Resolver {
	return &Resolver{
		home:    home,
		lookups: append([]LookupFunc(nil), lookups...),
	}
}

// NewOSResolver creates a resolver for the current process: the user's home
// directory and the process environment.
func NewOSResolver() (*Resolver, error) {
	home, err := HomeDirectory()
	if err != nil {
		return nil, err
	}
	return NewResolver(home, os.LookupEnv), nil
}

// HomeDirectory returns the user's home directory.
// It first tries os.UserHomeDir(), then falls back to the HOME environment variable.
func HomeDirectory() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err == nil && homeDir != "" {
		return homeDir, nil
	}

	homeDir = os.Getenv(EnvHome)
	if homeDir != "" {
		return homeDir, nil
	}

	return "", errors.New(errors.ErrFileAccess, "unable to determine home directory: neither os.UserHomeDir() nor HOME environment variable are available")
}

// Home returns the home directory used for ~ expansion
func (r *Resolver) Home() string {
	return r.home
}

// WithVariables returns a copy of the resolver whose lookups start with vars
func (r *Resolver) WithVariables(vars map[string]string) *Resolver {
	lookups := make([]LookupFunc, 0, len(r.lookups)+1)
	lookups = append(lookups, MapLookup(vars))
	lookups = append(lookups, r.lookups...)
	return &Resolver{home: r.home, lookups: lookups}
}

func (r *Resolver) lookup(name string) (string, bool) {
	for _, fn := range r.lookups {
		if v, ok := fn(name); ok {
			return v, true
		}
	}
	return "", false
}

// Expand expands the home token and variable references without making the
// result absolute.
func (r *Resolver) Expand(rawPath string) (string, error) {
	expanded, err := r.expandHome(rawPath)
	if err != nil {
		return "", err
	}

	if !strings.Contains(expanded, "$") {
		return expanded, nil
	}

	var missing string
	result := os.Expand(expanded, func(name string) string {
		if name == "$" {
			return "$"
		}
		if v, ok := r.lookup(name); ok {
			return v
		}
		if missing == "" {
			missing = name
		}
		return ""
	})
	if missing != "" {
		return "", errors.NewUnresolvedVariable(missing, rawPath)
	}

	return result, nil
}

// Resolve expands rawPath and, when the result is relative, joins it onto
// contextRoot. The returned path is cleaned.
func (r *Resolver) Resolve(rawPath, contextRoot string) (string, error) {
	if err := ValidatePath(rawPath); err != nil {
		return "", err
	}

	expanded, err := r.Expand(rawPath)
	if err != nil {
		return "", err
	}

	if filepath.IsAbs(expanded) {
		return filepath.Clean(expanded), nil
	}

	if !filepath.IsAbs(contextRoot) {
		return "", errors.Newf(errors.ErrInvalidInput, "cannot resolve %q: context root %q is not absolute", rawPath, contextRoot).
			WithDetail(errors.DetailPath, rawPath)
	}

	return filepath.Join(contextRoot, expanded), nil
}

// expandHome expands a leading ~ to the home directory. ~user forms are
// returned unchanged.
func (r *Resolver) expandHome(path string) (string, error) {
	if path == "" || path[0] != '~' {
		return path, nil
	}

	if len(path) > 1 && path[1] != '/' && path[1] != filepath.Separator {
		return path, nil
	}

	if r.home == "" {
		return "", errors.NewUnresolvedVariable(EnvHome, path)
	}

	if len(path) == 1 {
		return r.home, nil
	}

	return filepath.Join(r.home, path[2:]), nil
}

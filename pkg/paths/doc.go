// Package paths provides path handling for dotdeploy.
//
// The central type is Resolver, which turns the raw path strings found in a
// profile into absolute paths:
//
//   - A leading ~ (or ~/) expands to the resolver's home directory
//   - $NAME, ${NAME} and ${section:key} expand through the resolver's lookups
//   - $$ is a literal dollar sign
//   - Relative results are joined onto an explicit context root
//
// Resolution is purely lexical. Nothing in this package stats, reads or
// creates files except the XDG helpers that compute (not create) locations.
//
// # Variables
//
// Lookups are consulted in order. The plan builder prepends the built-in
// variables global:home and global:base_path, so profiles written for the
// ${global:home} interpolation style keep working:
//
//	r := paths.NewResolver("/home/me", os.LookupEnv).
//	    WithVariables(map[string]string{"global:home": "/home/me"})
//	dest, err := r.Resolve("${global:home}/.vimrc", "/unused")
//	// dest == "/home/me/.vimrc"
//
// An undefined reference is an UNRESOLVED_VARIABLE error; the whole run stops
// because the profile cannot be trusted.
package paths

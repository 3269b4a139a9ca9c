// Package config holds cgmlstget's configuration.
//
// A flat Config struct is built once at the CLI boundary from defaults,
// an optional YAML config file, and command-line flags (in that
// precedence order), then passed explicitly into the commands. There is
// no global option state.
package config

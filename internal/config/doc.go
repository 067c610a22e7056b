// Package config loads application settings from defaults, an optional
// YAML file and VOCAB_-prefixed environment variables, in increasing order of
// precedence, and validates the result.
package config

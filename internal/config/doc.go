// Package config loads prodsearch configuration.
//
// Values are layered, later sources overriding earlier ones:
//
//  1. Built-in defaults
//  2. TOML file (--config, default ~/.prodsearch/config.toml)
//  3. .env file in the working directory (never overrides the real environment)
//  4. Environment variables prefixed with PRODSEARCH_
//
// The merged result is validated before use.
package config

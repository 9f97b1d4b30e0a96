// Package config loads and validates the settings of the CLM binaries.
//
// Settings come from a YAML file and can be overridden by CLM_ prefixed
// environment variables (for example CLM_DATABASE_DSN). Every section exposes
// a Validate method so a misconfigured process fails at startup.
package config

// Package config loads and validates YAML configuration for the sniffer and
// analyzer binaries.
//
// Loading order: read file, expand ${VAR} environment variables, unmarshal,
// apply defaults for zero-valued optional fields, validate required fields.
package config

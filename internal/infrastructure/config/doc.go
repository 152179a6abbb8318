// Package config loads and validates WardCall Core configuration.
//
// Configuration is read from a YAML file, merged over hardcoded defaults,
// and finally overridden by WARDCALL_* environment variables. The listen
// address, database path, and broker credentials are all externalized so
// no deployment detail is baked into the binary.
package config

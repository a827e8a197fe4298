// Package config loads and validates Hostwarden configuration.
//
// Configuration is layered: hardcoded defaults, then the YAML file, then
// HOSTWARDEN_* environment variables. The two values the service cannot
// run without, the seed admin's login and password, have no defaults and
// must come from the file or the environment.
package config

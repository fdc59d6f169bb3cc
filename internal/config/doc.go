// Package config provides configuration for the confstats tool.
//
// # Configuration Sources
//
// Configuration is assembled from the following sources in order of precedence:
//
//	1. Environment variables (highest priority)
//	2. A YAML file passed with -config
//	3. Compiled-in defaults (lowest priority)
//
// # Environment Variables
//
// All environment variables use the CONFSTATS_ prefix and the nested field
// path:
//
//	CONFSTATS_CONFERENCE_NAME="ESA 2021"
//	CONFSTATS_CONFERENCE_SCORES=3,2,1,0,-1,-2
//	CONFSTATS_CONFERENCE_ACCEPT_SCORES=3,2,1
//	CONFSTATS_REPORT_OUTPUT_PATH=scores.html
//	CONFSTATS_LOGGING_LEVEL=debug
//
// # Validation
//
// Load validates the result with go-playground/validator: the conference
// name and topics marker must be set, the score scale must be non-empty and
// strictly descending, and every accept score must belong to the scale.
//
// # Paths
//
// ResolvePaths turns the configured, possibly relative, output locations
// into absolute paths against the working directory.
package config

// Package config loads the application configuration. Values come from
// built-in defaults, an optional config file, LAYOUTGRID_ environment
// variables and explicit overrides, in increasing order of precedence.
package config

// SPDX-License-Identifier: MPL-2.0

// Package config loads and validates mapvault's configuration.
//
// Configuration is optional: every setting has a default, and a run with no
// config file at all behaves sensibly. When present, the config file is CUE
// (config.cue in the platform config directory or the current directory),
// validated against an embedded schema and merged into viper over the
// defaults. The spec-level invocation parameters (project path, map pattern,
// output root, extent layer) are never configuration; they are always CLI
// arguments.
package config

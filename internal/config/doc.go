// Package config loads, validates and exports the configuration of a documentation site.
//
// A configuration literal (YAML or JSON, or an in-memory map) goes through three passes:
// normalization canonicalizes spellings and records warnings, per-domain DefaultAppliers
// resolve framework defaults, and ValidateSite checks the result. The first failure is
// returned as a *ValidationError naming the offending field by its dotted path.
//
// The resulting Site is never modified in place. ResolveEnvironmentOverrides and
// Deployment.Apply return new values built from a Clone.
package config

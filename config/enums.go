package config

// Specification of theme defaults output.
// ENUM(yaml, json, js)
type ThemeFormat int

// Package config holds the configuration for the sitescout CLI and
// discovery engine.
//
// Configuration comes from three layers, later layers overriding earlier
// ones: compiled-in defaults, the optional .sitescout YAML file with
// per-domain overrides, and CLI flags. The Config struct is passed by
// value through the application; nothing in this package is global.
package config

// Package config loads, normalizes, and validates the recorder's TOML
// configuration.
//
// Configuration is optional: every field has a default, and a missing file
// yields the defaults. Load resolves an explicit path first, then
// ~/.config/voicerec/config.toml, then voicerec.toml in the working
// directory.
package config

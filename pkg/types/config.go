// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// ConvertConfig holds settings for the conversion batches.
type ConvertConfig struct {
	// SourceRoot contains one src-<prefix>/ directory per batch (default ".").
	SourceRoot string `json:"source_root" yaml:"source_root" mapstructure:"source_root"`

	// OutputDir receives the rendered documents of the current batch. It is
	// cleared at the start of every batch (default "output").
	OutputDir string `json:"output_dir" yaml:"output_dir" mapstructure:"output_dir"`

	// BundleDir receives bundle-<prefix>.pro6x archives (default ".").
	BundleDir string `json:"bundle_dir" yaml:"bundle_dir" mapstructure:"bundle_dir"`

	// Extension is the file extension of rendered documents, without the dot
	// (default "pro6"). Bundles use Extension + "x".
	Extension string `json:"extension" yaml:"extension" mapstructure:"extension"`

	// Concurrency caps the number of documents converted at once. Zero means
	// no limit.
	Concurrency int `json:"concurrency" yaml:"concurrency" mapstructure:"concurrency"`

	// Prefixes lists the batch type prefixes in run order (default ["ph", "sb"]).
	Prefixes []string `json:"prefixes" yaml:"prefixes" mapstructure:"prefixes"`
}

// CatalogConfig holds settings for the song catalog.
type CatalogConfig struct {
	// Enabled controls whether batch outcomes are recorded (default true).
	Enabled bool `json:"enabled" yaml:"enabled" mapstructure:"enabled"`

	// Path is the SQLite database file (default "catalog/songs.db").
	Path string `json:"path" yaml:"path" mapstructure:"path"`
}

// LogConfig holds settings for the run log.
type LogConfig struct {
	// Level is a zerolog level name (default "info").
	Level string `json:"level" yaml:"level" mapstructure:"level"`

	// Format is "console" for human-readable output or "json" (default "console").
	Format string `json:"format" yaml:"format" mapstructure:"format"`
}

// Config groups all settings read from pptx2pro.yaml and the environment.
type Config struct {
	Convert ConvertConfig `json:"convert" yaml:"convert" mapstructure:"convert"`
	Catalog CatalogConfig `json:"catalog" yaml:"catalog" mapstructure:"catalog"`
	Log     LogConfig     `json:"log" yaml:"log" mapstructure:"log"`
}

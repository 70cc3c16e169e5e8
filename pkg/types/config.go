// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// InputEncoding identifies the character encoding of an export file.
type InputEncoding string

const (
	EncodingUTF8    InputEncoding = "utf-8"
	EncodingLatin1  InputEncoding = "latin1"
	EncodingWin1252 InputEncoding = "windows-1252"
)

// SplitConfig holds settings for the split stage.
type SplitConfig struct {
	// OutDir is the directory for CSV output. Empty writes each CSV next
	// to its input file.
	OutDir string `json:"out_dir,omitempty" yaml:"out_dir,omitempty"`

	// IncludeText appends a TEXT column with the article body.
	IncludeText bool `json:"include_text" yaml:"include_text"`

	// MinTagRatio is the fraction of documents a discovered meta tag must
	// appear in to be considered (default 0.20).
	MinTagRatio float64 `json:"min_tag_ratio" yaml:"min_tag_ratio"`

	// SuppressTags lists discovered tags to ignore. The tag pattern can
	// match false positives such as the newspaper WELT; list them here or
	// raise MinTagRatio.
	SuppressTags []string `json:"suppress_tags,omitempty" yaml:"suppress_tags,omitempty"`

	// Encoding is the input file encoding (default utf-8).
	Encoding InputEncoding `json:"encoding,omitempty" yaml:"encoding,omitempty"`

	// Force rewrites CSV output even when it is newer than its input.
	Force bool `json:"force,omitempty" yaml:"force,omitempty"`
}

// ArchiveConfig holds settings for the archive index stage.
type ArchiveConfig struct {
	// ArchiveDir is the base directory for the index (contains index/).
	ArchiveDir string `json:"archive_dir" yaml:"archive_dir"`

	// MaxResults is the default maximum number of query results (default 20).
	MaxResults int `json:"max_results" yaml:"max_results"`
}

// PipelineConfig groups all stage configurations.
type PipelineConfig struct {
	Split   SplitConfig   `json:"split" yaml:"split"`
	Archive ArchiveConfig `json:"archive" yaml:"archive"`
}

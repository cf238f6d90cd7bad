package configloader

import "github.com/yaklabco/regexmatch/pkg/config"

// merge combines two configurations, with override taking precedence over base.
//   - Scalars: override wins if non-zero
//   - Pointers: override wins if non-nil
//   - Slices: override replaces base entirely if non-nil
func merge(base, override *config.Config) *config.Config {
	if base == nil {
		return override
	}
	if override == nil {
		return base
	}

	result := *base

	if override.Extensions != nil {
		result.Extensions = override.Extensions
	}
	if override.Ignore != nil {
		result.Ignore = override.Ignore
	}

	if override.Markdown.Enabled != nil {
		result.Markdown.Enabled = override.Markdown.Enabled
	}
	if override.Markdown.Languages != nil {
		result.Markdown.Languages = override.Markdown.Languages
	}
	if override.Markdown.Extensions != nil {
		result.Markdown.Extensions = override.Markdown.Extensions
	}

	if override.Colors.Match != "" {
		result.Colors.Match = override.Colors.Match
	}
	if override.Colors.Delimiter != "" {
		result.Colors.Delimiter = override.Colors.Delimiter
	}
	if override.Colors.Groups != nil {
		result.Colors.Groups = override.Colors.Groups
	}

	// false is the zero value, so a layer can only turn backups on.
	if override.Backups {
		result.Backups = true
	}

	if override.Format != "" {
		result.Format = override.Format
	}
	if override.Jobs != 0 {
		result.Jobs = override.Jobs
	}
	if override.ShowMatches {
		result.ShowMatches = true
	}

	return &result
}

// MergeAll merges configurations in order, later ones taking precedence.
func MergeAll(configs ...*config.Config) *config.Config {
	if len(configs) == 0 {
		return nil
	}

	result := configs[0]
	for _, cfg := range configs[1:] {
		result = merge(result, cfg)
	}
	return result
}

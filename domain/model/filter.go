package model

// PathFilterConfig holds the inclusion and exclusion rules applied while
// enumerating the watched tree. Exclusions always win over TargetExtensions.
type PathFilterConfig struct {
	// Root is the directory being watched
	Root string

	// IgnoreFilenames are compared literally against the base name
	IgnoreFilenames []string

	// IgnorePatterns are regular expressions searched in the base name
	IgnorePatterns []string

	// IgnoreGlobs are glob patterns matched against the base name
	IgnoreGlobs []string

	// IgnoreExtensions excludes files and directories by extension
	IgnoreExtensions []string

	// TargetExtensions restricts reported files; empty accepts everything
	TargetExtensions []string
}

package config

import "time"

// safe for API structure
type PublicConfig struct {
	Workspace        string   `json:"workspace"`
	TargetExtensions []string `json:"targetExtensions"`
	IgnoreFilenames  []string `json:"ignoreFilenames"`
	IgnoreExtensions []string `json:"ignoreExtensions"`
	IgnorePathWords  []string `json:"ignorePathWords"`
	IgnoreGlobs      []string `json:"ignoreGlobs"`
	ExecuteCommand   string   `json:"executeCommand"`

	Watch struct {
		Interval     string `json:"interval"`
		DetectBy     string `json:"detectBy"`
		PruneMissing bool   `json:"pruneMissing"`
		Shell        string `json:"shell"`
	} `json:"watch"`

	Logging struct {
		Level  string `json:"level"`
		Format string `json:"format"`
		Output string `json:"output"`
	} `json:"logging"`
}

// Public strips what the monitor API should not expose (log file location,
// bind address) and renders durations for humans.
func (c *Config) Public() PublicConfig {
	var p PublicConfig

	p.Workspace = c.Workspace
	p.TargetExtensions = nonNil(c.TargetExtensions)
	p.IgnoreFilenames = nonNil(c.IgnoreFilenames)
	p.IgnoreExtensions = nonNil(c.IgnoreExtensions)
	p.IgnorePathWords = nonNil(c.IgnorePathWords)
	p.IgnoreGlobs = nonNil(c.IgnoreGlobs)
	p.ExecuteCommand = c.ExecuteCommand

	p.Watch.Interval = c.Watch.Interval.Round(time.Millisecond).String()
	p.Watch.DetectBy = c.Watch.DetectBy
	p.Watch.PruneMissing = c.Watch.PruneMissing
	p.Watch.Shell = c.Watch.Shell

	p.Logging.Level = c.Logging.Level
	p.Logging.Format = c.Logging.Format
	p.Logging.Output = c.Logging.Output

	return p
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}

package jsxcorpus

import (
	"net/url"
	"strings"
)

// ErrorPolicy decides what an export does when a record fails to transform.
type ErrorPolicy string

// Error policies.
const (
	// AbortOnError discards the unit being flushed and stops the export.
	AbortOnError ErrorPolicy = "abort"

	// SkipOnError leaves the failing record out of its unit and continues.
	SkipOnError ErrorPolicy = "skip"
)

// bytesPerMiB converts MaxFileSize to bytes.
const bytesPerMiB = 1024 * 1024

// Config holds the settings shared by the crawl, export and dataset stages.
type Config struct {
	URL             string   `json:"url"`
	Match           []string `json:"match"`
	Exclude         []string `json:"exclude"`
	MaxPagesToCrawl int      `json:"maxPagesToCrawl"`
	Selector        string   `json:"selector"`

	// OutputFileName is the base name of output units; a trailing ".json"
	// is ignored.
	OutputFileName string `json:"outputFileName"`

	// MaxTokens is the token budget per unit. Zero is unbounded.
	MaxTokens int `json:"maxTokens"`

	// MaxFileSize is the byte budget per unit in MiB. Zero is unbounded.
	MaxFileSize float64 `json:"maxFileSize"`

	// TokenCeiling is the exclusive upper bound on a dataset pair's
	// combined token estimate.
	TokenCeiling int `json:"tokenCeiling"`

	// Concurrency bounds the records transformed at once during a flush.
	Concurrency int `json:"concurrency"`

	OnError ErrorPolicy `json:"onError"`
}

// Validate returns an error if the export settings are invalid.
func (c *Config) Validate() error {
	if c.UnitBase() == "" {
		return Errorf(EINVALID, "output file name required")
	}
	if c.MaxTokens < 0 {
		return Errorf(EINVALID, "maxTokens must not be negative")
	}
	if c.MaxFileSize < 0 {
		return Errorf(EINVALID, "maxFileSize must not be negative")
	}
	if c.Concurrency < 0 {
		return Errorf(EINVALID, "concurrency must not be negative")
	}
	switch c.OnError {
	case "", AbortOnError, SkipOnError:
	default:
		return Errorf(EINVALID, "unknown error policy %q (want %q or %q)", c.OnError, AbortOnError, SkipOnError)
	}
	return nil
}

// ValidateCrawl returns an error if the crawl settings are invalid.
func (c *Config) ValidateCrawl() error {
	if c.URL == "" {
		return Errorf(EINVALID, "crawl URL required")
	}
	u, err := url.Parse(c.URL)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return Errorf(EINVALID, "invalid crawl URL %q", c.URL)
	}
	if c.MaxPagesToCrawl < 0 {
		return Errorf(EINVALID, "maxPagesToCrawl must not be negative")
	}
	return nil
}

// ValidateDataset returns an error if the dataset settings are invalid.
func (c *Config) ValidateDataset() error {
	if c.TokenCeiling < 0 {
		return Errorf(EINVALID, "tokenCeiling must not be negative")
	}
	return nil
}

// UnitBase returns the base name of output unit directories.
func (c *Config) UnitBase() string {
	return strings.TrimSuffix(strings.TrimSpace(c.OutputFileName), ".json")
}

// Budgets returns the per-unit budgets with MaxFileSize converted to bytes.
func (c *Config) Budgets() Budgets {
	return Budgets{
		MaxTokens: c.MaxTokens,
		MaxBytes:  int64(c.MaxFileSize * bytesPerMiB),
	}
}

// Policy returns the configured error policy, defaulting to AbortOnError.
func (c *Config) Policy() ErrorPolicy {
	if c.OnError == "" {
		return AbortOnError
	}
	return c.OnError
}

// Ceiling returns the dataset token ceiling, defaulting to DefaultTokenCeiling.
func (c *Config) Ceiling() int {
	if c.TokenCeiling == 0 {
		return DefaultTokenCeiling
	}
	return c.TokenCeiling
}

package main

import (
	"context"
	"io"
	"time"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/jsxcorpus"
	"github.com/fwojciec/jsxcorpus/crawl"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	Records     jsxcorpus.RecordStore
	Crawler     *crawl.Crawler
	Transformer jsxcorpus.MarkupTransformer
	Tokens      jsxcorpus.TokenCounter
	Profiles    jsxcorpus.Profiles

	// Units returns the unit store for units named <base>-<n>.
	Units func(base string) jsxcorpus.UnitStore
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Config kong.ConfigFlag `short:"c" help:"Load settings from a JSON file using the crawler config keys"`
	Debug  bool            `help:"Log every operation to stderr" env:"JSXCORPUS_DEBUG"`

	Store   string `enum:"fs,sqlite" default:"fs" help:"Record store backend (fs, sqlite)" env:"JSXCORPUS_STORE"`
	Records string `default:"storage/datasets/default" help:"Record directory of the fs store" env:"JSXCORPUS_RECORDS"`
	DB      string `name:"db" default:"storage/records.db" help:"Database file of the sqlite store" env:"JSXCORPUS_DB"`
	Out     string `default:"." help:"Directory that receives output units" env:"JSXCORPUS_OUT"`

	Tokenizer      string `enum:"charclass,gemini" default:"charclass" help:"Token counter (charclass estimate or exact gemini count)" env:"JSXCORPUS_TOKENIZER"`
	TokenizerModel string `help:"Model of the gemini tokenizer" env:"JSXCORPUS_TOKENIZER_MODEL"`
	Profiles       string `type:"existingfile" help:"JSON file with the input and output transform profiles" env:"JSXCORPUS_PROFILES"`

	Rate    float64       `default:"1" help:"Requests per second per domain; 0 disables limiting" env:"JSXCORPUS_RATE"`
	Timeout time.Duration `default:"10s" help:"Fetch timeout per page" env:"JSXCORPUS_TIMEOUT"`

	Run      RunCmd      `cmd:"" default:"withargs" help:"Crawl the configured site, then export output units"`
	Crawl    CrawlCmd    `cmd:"" help:"Crawl the configured site into the record store"`
	Export   ExportCmd   `cmd:"" help:"Export stored records into output units"`
	Dataset  DatasetCmd  `cmd:"" help:"Write output.jsonl from the pairs of an output unit"`
	Estimate EstimateCmd `cmd:"" help:"Print the token estimate of files or stdin"`
}

// ConfigFlags are the crawl and export settings. Their names are the
// snake_case forms of the config file keys. The defaults reproduce the
// tool's built-in configuration.
type ConfigFlags struct {
	URL             string   `name:"url" default:"https://www.mayoclinic.org/diseases-conditions/index" help:"Start URL of the crawl" env:"JSXCORPUS_URL"`
	Match           []string `sep:"none" default:"https://www.mayoclinic.org/diseases-conditions/**/symptoms-causes/**" help:"Glob of URLs to follow (repeatable)" env:"JSXCORPUS_MATCH"`
	Exclude         []string `sep:"none" help:"Glob of URLs never to follow (repeatable)" env:"JSXCORPUS_EXCLUDE"`
	MaxPagesToCrawl int      `default:"40" help:"Maximum pages to crawl; 0 uses the crawler default" env:"JSXCORPUS_MAX_PAGES_TO_CRAWL"`
	Selector        string   `default:"article" help:"CSS selector of the captured element; empty captures the body" env:"JSXCORPUS_SELECTOR"`
	OutputFileName  string   `default:"mayoclinic" help:"Base name of output units" env:"JSXCORPUS_OUTPUT_FILE_NAME"`
	MaxTokens       int      `default:"20000000" help:"Token budget per unit; 0 is unbounded" env:"JSXCORPUS_MAX_TOKENS"`
	MaxFileSize     float64  `help:"Byte budget per unit in MiB; 0 is unbounded" env:"JSXCORPUS_MAX_FILE_SIZE"`
	Concurrency     int      `default:"10" help:"Records transformed at once while writing a unit" env:"JSXCORPUS_CONCURRENCY"`
	OnError         string   `enum:"abort,skip" default:"abort" help:"What a failing record does to its unit (abort, skip)" env:"JSXCORPUS_ON_ERROR"`
}

// config converts the flags into a jsxcorpus.Config.
func (f *ConfigFlags) config() *jsxcorpus.Config {
	return &jsxcorpus.Config{
		URL:             f.URL,
		Match:           f.Match,
		Exclude:         f.Exclude,
		MaxPagesToCrawl: f.MaxPagesToCrawl,
		Selector:        f.Selector,
		OutputFileName:  f.OutputFileName,
		MaxTokens:       f.MaxTokens,
		MaxFileSize:     f.MaxFileSize,
		Concurrency:     f.Concurrency,
		OnError:         jsxcorpus.ErrorPolicy(f.OnError),
	}
}

// RunCmd is the default command: crawl, then export.
type RunCmd struct {
	ConfigFlags `embed:""`

	NoCrawl bool `help:"Skip the crawl and export the stored records" env:"NO_CRAWL"`
}

// CrawlCmd is the "crawl" subcommand.
type CrawlCmd struct {
	ConfigFlags `embed:""`
}

// ExportCmd is the "export" subcommand.
type ExportCmd struct {
	ConfigFlags `embed:""`
}

// DatasetCmd is the "dataset" subcommand.
type DatasetCmd struct {
	Dir              string `arg:"" type:"existingdir" help:"Output unit directory"`
	SystemPromptFile string `type:"existingfile" help:"File whose content replaces the default system prompt" env:"JSXCORPUS_SYSTEM_PROMPT_FILE"`
	TokenCeiling     int    `default:"7168" help:"Exclusive upper bound on a pair's combined token estimate" env:"JSXCORPUS_TOKEN_CEILING"`
}

// EstimateCmd is the "estimate" subcommand.
type EstimateCmd struct {
	Files []string `arg:"" optional:"" type:"existingfile" help:"Files to estimate; stdin when none"`
}

package main

import (
	"context"
	"io"

	"github.com/fwojciec/clipper"
	"github.com/fwojciec/clipper/pipeline"
	"github.com/fwojciec/clipper/sqlite"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx           context.Context
	Stdout        io.Writer
	Stderr        io.Writer
	DB            *sqlite.DB
	Articles      clipper.ArticleService
	QualityConfig clipper.QualityConfigService
	Classifier    clipper.Classifier
	Pipeline      *pipeline.Pipeline
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Verbose bool `short:"v" help:"Log fetch and classification details"`

	Search   SearchCmd   `cmd:"" help:"Search the web and save extracted articles"`
	List     ListCmd     `cmd:"" help:"List saved articles"`
	Show     ShowCmd     `cmd:"" help:"Show a saved article"`
	Tag      TagCmd      `cmd:"" help:"Replace the tags of an article"`
	Delete   DeleteCmd   `cmd:"" help:"Delete an article and its images"`
	Reassess ReassessCmd `cmd:"" help:"Re-run quality classification on saved articles"`
	Config   ConfigCmd   `cmd:"" help:"Inspect or edit the quality pattern lists"`
}

// SearchCmd is the "search" subcommand.
type SearchCmd struct {
	Query       string `arg:"" help:"Search query"`
	Max         int    `short:"n" default:"5" help:"Maximum results to process"`
	Concurrency int    `short:"c" default:"4" help:"Concurrent page limit"`
	Render      bool   `help:"Enable headless-browser fallback for thin pages"`
	Extractor   string `enum:"heuristic,trafilatura," default:"" help:"Extraction engine override"`
}

// ListCmd is the "list" subcommand.
type ListCmd struct {
	All  bool   `help:"Include low-quality and excluded articles"`
	Tier string `enum:"high,medium,low,excluded," default:"" help:"Filter by quality tier"`
	Tag  string `help:"Filter by tag"`
}

// ShowCmd is the "show" subcommand.
type ShowCmd struct {
	ID   string `arg:"" help:"Article ID"`
	Full bool   `help:"Show full article content"`
}

// TagCmd is the "tag" subcommand.
type TagCmd struct {
	ID   string   `arg:"" help:"Article ID"`
	Tags []string `arg:"" optional:"" help:"New tag set (empty clears all tags)"`
}

// DeleteCmd is the "delete" subcommand.
type DeleteCmd struct {
	ID    string `arg:"" help:"Article ID"`
	Force bool   `help:"Confirm deletion"`
}

// ReassessCmd is the "reassess" subcommand.
type ReassessCmd struct {
	ID string `arg:"" optional:"" help:"Article ID (all articles when omitted)"`
}

// ConfigCmd groups the quality-config subcommands.
type ConfigCmd struct {
	Show   ConfigShowCmd   `cmd:"" help:"Print the current pattern lists"`
	Add    ConfigAddCmd    `cmd:"" help:"Add a pattern to a list"`
	Remove ConfigRemoveCmd `cmd:"" help:"Remove a pattern from a list"`
	Reset  ConfigResetCmd  `cmd:"" help:"Restore the default pattern lists"`
}

// ConfigShowCmd prints the quality configuration.
type ConfigShowCmd struct{}

// ConfigAddCmd adds a pattern to one of the lists.
type ConfigAddCmd struct {
	List    string `arg:"" enum:"quality,low-quality,meaningful,empty,excluded-urls" help:"Target list"`
	Pattern string `arg:"" help:"Pattern to add"`
}

// ConfigRemoveCmd removes a pattern from one of the lists.
type ConfigRemoveCmd struct {
	List    string `arg:"" enum:"quality,low-quality,meaningful,empty,excluded-urls" help:"Target list"`
	Pattern string `arg:"" help:"Pattern to remove"`
}

// ConfigResetCmd restores the default lists.
type ConfigResetCmd struct {
	Force bool `help:"Confirm reset"`
}

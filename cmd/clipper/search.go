package main

import (
	"fmt"

	"github.com/fwojciec/clipper"
	"github.com/fwojciec/clipper/pipeline"
)

// Run executes the search command.
func (c *SearchCmd) Run(deps *Dependencies) error {
	progress := func(event pipeline.ProgressEvent) {
		switch event.Type {
		case pipeline.ProgressStarted:
			fmt.Fprintf(deps.Stdout, "Processing %d results\n", event.Total)
		case pipeline.ProgressCompleted:
			fmt.Fprintf(deps.Stdout, "  [%d/%d] %s (%s)\n",
				event.Completed, event.Total, event.URL, event.Tier)
		case pipeline.ProgressFailed:
			fmt.Fprintf(deps.Stderr, "  [%d/%d] skip %s: %v\n",
				event.Completed, event.Total, event.URL, event.Error)
		case pipeline.ProgressFinished:
			// Summary printed after the run completes
		}
	}

	result, err := deps.Pipeline.Run(deps.Ctx, c.Query, progress)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", clipper.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Saved %d articles (%d failed, %d already saved)\n",
		result.Saved, result.Failed, result.Skipped)
	return nil
}

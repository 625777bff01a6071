package main

import (
	"fmt"
	"strings"

	"github.com/fwojciec/clipper"
)

// Run executes the tag command.
func (c *TagCmd) Run(deps *Dependencies) error {
	if err := deps.Articles.UpdateArticleTags(deps.Ctx, c.ID, c.Tags); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", clipper.ErrorMessage(err))
		return err
	}

	if len(c.Tags) == 0 {
		fmt.Fprintf(deps.Stdout, "Cleared tags of %s\n", c.ID)
		return nil
	}
	fmt.Fprintf(deps.Stdout, "Tagged %s: %s\n", c.ID, strings.Join(c.Tags, ", "))
	return nil
}

package main

import (
	"fmt"

	"github.com/fwojciec/clipper"
	"github.com/fwojciec/clipper/quality"
)

// configList returns a pointer to the named pattern list.
func configList(cfg *clipper.QualityConfig, name string) *[]string {
	switch name {
	case "quality":
		return &cfg.QualityIndicators
	case "low-quality":
		return &cfg.LowQualityIndicators
	case "meaningful":
		return &cfg.MeaningfulContentPatterns
	case "empty":
		return &cfg.EmptyContentPatterns
	case "excluded-urls":
		return &cfg.ExcludedURLPatterns
	}
	return nil
}

// Run executes the "config show" command.
func (c *ConfigShowCmd) Run(deps *Dependencies) error {
	cfg, err := deps.QualityConfig.Config(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", clipper.ErrorMessage(err))
		return err
	}

	sections := []struct {
		name  string
		items []string
	}{
		{"quality", cfg.QualityIndicators},
		{"low-quality", cfg.LowQualityIndicators},
		{"meaningful", cfg.MeaningfulContentPatterns},
		{"empty", cfg.EmptyContentPatterns},
		{"excluded-urls", cfg.ExcludedURLPatterns},
	}
	for _, section := range sections {
		fmt.Fprintf(deps.Stdout, "%s (%d):\n", section.name, len(section.items))
		for _, item := range section.items {
			fmt.Fprintf(deps.Stdout, "  %s\n", item)
		}
	}
	return nil
}

// Run executes the "config add" command.
func (c *ConfigAddCmd) Run(deps *Dependencies) error {
	cfg, err := deps.QualityConfig.Config(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", clipper.ErrorMessage(err))
		return err
	}

	list := configList(cfg, c.List)
	*list = append(*list, c.Pattern)

	if err := deps.QualityConfig.ReplaceConfig(deps.Ctx, cfg); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", clipper.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Added %q to %s\n", c.Pattern, c.List)
	return nil
}

// Run executes the "config remove" command.
func (c *ConfigRemoveCmd) Run(deps *Dependencies) error {
	cfg, err := deps.QualityConfig.Config(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", clipper.ErrorMessage(err))
		return err
	}

	list := configList(cfg, c.List)
	kept := (*list)[:0]
	found := false
	for _, item := range *list {
		if item == c.Pattern {
			found = true
			continue
		}
		kept = append(kept, item)
	}
	if !found {
		fmt.Fprintf(deps.Stderr, "error: pattern %q not in %s\n", c.Pattern, c.List)
		return clipper.Errorf(clipper.ENOTFOUND, "pattern %q not in %s", c.Pattern, c.List)
	}
	*list = kept

	if err := deps.QualityConfig.ReplaceConfig(deps.Ctx, cfg); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", clipper.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Removed %q from %s\n", c.Pattern, c.List)
	return nil
}

// Run executes the "config reset" command.
func (c *ConfigResetCmd) Run(deps *Dependencies) error {
	if !c.Force {
		fmt.Fprintf(deps.Stderr, "error: use --force to confirm reset\n")
		return clipper.Errorf(clipper.EINVALID, "use --force to confirm reset")
	}

	if err := deps.QualityConfig.ReplaceConfig(deps.Ctx, quality.DefaultConfig()); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", clipper.ErrorMessage(err))
		return err
	}

	fmt.Fprintln(deps.Stdout, "Restored default pattern lists")
	return nil
}

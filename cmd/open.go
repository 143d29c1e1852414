package main

import (
	"context"
	"maps"
	"slices"

	"github.com/urfave/cli/v3"
)

// Open resolves a page path through the router and prints where it lands.
func (r *Runner) Open(ctx context.Context, cmd *cli.Command) error {
	path := cmd.StringArg("path")
	if path == "" {
		path = "/"
	}

	d := r.router.Resolve(path)

	r.writePlain("Page: %s\n", d.Route.Name)
	r.writePlain("Path: %s\n", d.Path)
	for _, k := range slices.Sorted(maps.Keys(d.Params)) {
		r.writePlain("  %s = %s\n", k, d.Params[k])
	}
	if d.Redirected() {
		r.writePlain("Redirected from %s: login required\n", d.RedirectedFrom)
	}
	return nil
}

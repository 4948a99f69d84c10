package main

import (
	pagescopecsv "github.com/fwojciec/pagescope/csv"
	"github.com/fwojciec/pagescope/goldmark"
	pagescopehttp "github.com/fwojciec/pagescope/http"
)

// Run executes the serve command until the context is canceled.
func (c *ServeCmd) Run(deps *Dependencies) error {
	addr := c.Addr
	if addr == "" {
		addr = deps.Config.Addr
	}

	srv := pagescopehttp.NewServer(deps.Inspector, goldmark.NewRenderer(), pagescopecsv.NewWriter(), deps.Logger)
	deps.Logger.Info("listening", "addr", addr)
	return srv.ListenAndServe(deps.Ctx, addr)
}

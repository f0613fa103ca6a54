// Package main is the entry point for the signtutor application.
package main

import (
	"github.com/samber/lo"

	"github.com/signtutor-cli/signtutor/cmd"
	"github.com/signtutor-cli/signtutor/config"
	"github.com/signtutor-cli/signtutor/internal/cache"
	"github.com/signtutor-cli/signtutor/internal/sync"
	"github.com/signtutor-cli/signtutor/log"
)

func main() {
	lo.Must0(config.Setup())
	lo.Must0(log.Setup())

	// Background maintenance: prune expired lookup cache entries and retry
	// any tutor feedback that failed to deliver.
	go cache.CollectGarbage()
	go sync.ReconcileFailures()

	cmd.Execute()
}

// Package app is the composition root of the energy client.
//
// Run loads the configuration, sets up the rotating file logger, opens the
// key/value store and builds the catalog client, then hands the wired
// collaborators to the UI:
//
//	config.Load ──> logging.Setup ──> kv.OpenSQLite (memory on failure)
//	     │
//	     └──> catalog.NewClient ──> favorites, nav, quote, loader,
//	                                newsletter, rating ──> ui.Run (blocks)
//
// Storage that cannot be opened is not fatal: the session runs on an
// in-memory store. Configuration errors and an unusable API base URL are
// returned to the caller. Resources are closed on exit and their errors are
// combined with the run error.
package app

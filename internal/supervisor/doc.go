// Cinematch - Content-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

/*
Package supervisor provides process supervision for Cinematch using suture v4.

The tree has two layers under the root:

	cinematch (root)
	├── index-layer   IndexService: rebuilds the similarity index on catalog.changed
	└── api-layer     HTTPServerService: the HTTP API

A crash in the index layer restarts the index service without touching the
HTTP server, which keeps answering from the last published snapshot.

Supervisor events (restarts, backoff, stop timeouts) are logged through
sutureslog into the global zerolog logger via logging.NewSlogLogger.

# Usage

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	if err != nil {
	    return err
	}
	tree.AddIndexService(services.NewIndexService(engine, bus, indexCfg, logger))
	tree.AddAPIService(services.NewHTTPServerService(server, 10*time.Second))

	errCh := tree.ServeBackground(ctx)
	<-ctx.Done()
	<-errCh
*/
package supervisor

// Package serverrun exposes a shared Run entrypoint used by the CLI to
// start the wx-storage server, handling lifecycle and shutdown.
//
// Example:
//
//	cfg := config.Default()
//	cfg.DataDir = "./data"
//	ctx, cancel := context.WithCancel(context.Background())
//	defer cancel()
//	_ = serverrun.Run(ctx, cfg)
package serverrun

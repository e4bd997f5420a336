// Package redis connects the application to its shared Redis instance.
//
// Session tokens and rate limit counters live in Redis so that every node
// of the deployment sees the same state. Connect retries until the server
// is ready, and Healthcheck plugs into readiness probes.
//
// Configuration comes from the environment via the Config struct:
//
//	var cfg redis.Config
//	config.MustLoad(&cfg)
//	client, err := redis.Connect(ctx, cfg)
package redis

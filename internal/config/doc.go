// Cinematch - Content-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

/*
Package config loads Cinematch configuration with Koanf v2.

Layers, lowest priority first:

 1. Defaults from defaultConfig()
 2. Optional YAML file: $CONFIG_PATH, ./config.yaml, /etc/cinematch/config.yaml
 3. Environment variables with an explicit name mapping

Only mapped environment variables are read, so unrelated variables never
leak into the configuration. Comma-separated values are split for slice
fields such as security.cors_origins.

Example config.yaml:

	server:
	  port: 8080
	catalog:
	  path: /data/imdb_top_1000.csv
	  watch: true
	recommend:
	  default_k: 5
	  lookahead_factor: 2
	cache:
	  ttl: 10m

Load validates the result; an invalid configuration is an error, never a
silently corrected value.
*/
package config

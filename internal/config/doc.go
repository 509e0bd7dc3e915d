// Pulzion - News Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pulzion

// Package config loads and validates the server configuration.
//
// Configuration is layered with Koanf v2, later layers overriding earlier ones:
//
//  1. Defaults built into defaultConfig
//  2. An optional YAML file (CONFIG_PATH, config.yaml, /etc/pulzion/config.yaml)
//  3. Environment variables from an explicit mapping table
//
// Environment variables not listed in the mapping table are ignored, so
// unrelated process state never leaks into the configuration.
//
// # Example
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	engineCfg := cfg.Recommend.EngineConfig()
package config

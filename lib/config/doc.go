// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package config provides configuration loading for cartwatch.
//
// Configuration layering, lowest to highest precedence:
//
//  1. Built-in defaults (Default).
//  2. An optional YAML config file, specified by the CARTWATCH_CONFIG
//     environment variable or the --config flag. There is no search
//     path or automatic discovery — an explicit path or nothing.
//  3. Environment variables (CARTWATCH_API_URL, CARTWATCH_CART_ID),
//     with a .env file in the working directory loaded first if
//     present.
//  4. Command-line flags, applied by the caller.
package config

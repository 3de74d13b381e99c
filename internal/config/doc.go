// DeckSage - Card Similarity Fusion and Deck Completion
// Copyright 2026 DeckSage contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/decksage/decksage

// Package config loads and validates the runtime configuration.
//
// Configuration is layered with koanf: built-in defaults, then an
// optional YAML file, then DECKSAGE_-prefixed environment variables.
// The fusion weight snapshot lives in its own hot-reloadable file, see
// the snapshot package.
package config

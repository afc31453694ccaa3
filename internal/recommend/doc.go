// SteamLens - Steam Analytics and Recommendation API
// Copyright 2026 SteamLens contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/steamlens/steamlens

// Package recommend implements the two recommendation flavours served by the
// API: item-to-item similarity lookups and user-to-user collaborative
// filtering.
//
// All model inputs are precomputed offline and loaded once at startup: a
// game-by-game similarity matrix, a user-by-user similarity matrix, and a
// normalized game-by-user rating matrix. Nothing here trains or mutates a
// model; every call is a pure read over immutable in-memory structures, so
// concurrent use requires no locking.
//
// Tie-breaking everywhere is stable with respect to snapshot row order, which
// keeps results deterministic across identical calls.
package recommend

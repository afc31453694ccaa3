// SteamLens - Steam Analytics and Recommendation API
// Copyright 2026 SteamLens contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/steamlens/steamlens

// Package database provides the read-only tabular store backing the API.
//
// At startup every parquet snapshot is loaded into an in-memory DuckDB
// database; a missing or malformed snapshot aborts the process. After loading,
// all tables are immutable and every query method is safe for concurrent use
// without locking.
package database

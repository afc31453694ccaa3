// SteamLens - Steam Analytics and Recommendation API
// Copyright 2026 SteamLens contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/steamlens/steamlens

package api

import "net/http"

// landingHTML is the static page served at the root, pointing visitors at
// the API endpoints.
const landingHTML = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>SteamLens API</title>
<style>
  body { font-family: sans-serif; max-width: 42em; margin: 3em auto; padding: 0 1em; color: #222; }
  code { background: #f4f4f4; padding: 0.1em 0.3em; border-radius: 3px; }
  li { margin: 0.4em 0; }
</style>
</head>
<body>
<h1>SteamLens</h1>
<p>Read-only analytics and recommendations over a precomputed Steam dataset.</p>
<h2>Endpoints</h2>
<ul>
  <li><code>GET /api/v1/users/{userID}/summary</code> &mdash; spend, item count and recommendation percentage</li>
  <li><code>GET /api/v1/reviews/stats?start_date=YYYY-MM-DD&amp;end_date=YYYY-MM-DD</code> &mdash; reviewing users and recommend percentage in a window</li>
  <li><code>GET /api/v1/genres/{genre}/rank</code> &mdash; playtime ranking position of a genre</li>
  <li><code>GET /api/v1/genres/{genre}/top-users</code> &mdash; top five players of a genre</li>
  <li><code>GET /api/v1/developers/{developer}</code> &mdash; items and free percentage per release year</li>
  <li><code>GET /api/v1/reviews/sentiment?year=YYYY</code> &mdash; sentiment breakdown for a release year</li>
  <li><code>GET /api/v1/recommend/games/{game}</code> &mdash; five games similar to the given one</li>
  <li><code>GET /api/v1/recommend/users/{userID}</code> &mdash; five games for the given user</li>
  <li><code>GET /api/v1/health</code> &mdash; service health</li>
</ul>
</body>
</html>
`

// Landing handles GET /.
func (h *Handler) Landing(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(landingHTML))
}

// Package services defines shared utilities consumed by the pipeline stages
// and the external integrations under it (yt-dlp, translation backends).
//
// Key responsibilities:
//   - Context helpers that stamp stage names and per-run correlation
//     identifiers for logging.
//   - Structured error markers plus the Wrap helper so the CLI can tell a
//     configuration problem from a failed external tool.
//
// Use these helpers when wiring new stage logic so error handling and
// observability stay uniform.
package services

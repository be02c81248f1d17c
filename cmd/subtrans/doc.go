// Package main hosts the subtrans CLI entrypoint and command graph.
//
// The root command runs the whole pipeline: it asks yt-dlp for the subtitle
// track of a video, locates the resulting SRT file, and writes a translated
// copy next to it. Subcommands expose the individual pieces (translating a
// local file, listing language codes, checking dependencies) and configuration
// scaffolding.
//
// Keep this package lean: the acquisition and translation logic lives in
// internal/subtitles, and the external services sit behind the clients in
// internal/services.
package main

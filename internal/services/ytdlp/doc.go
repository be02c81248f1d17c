// Package ytdlp wraps the yt-dlp command-line tool for subtitle-only
// downloads.
//
// The client asks yt-dlp to write subtitle tracks (human and automatic) in
// SRT form without fetching media, and to print the info JSON once the files
// are on disk. The JSON's requested_subtitles map is decoded so callers can
// locate the written files without scanning the output directory. Anything
// yt-dlp prints besides the JSON line is surfaced as warnings.
package ytdlp

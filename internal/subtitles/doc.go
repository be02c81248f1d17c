// Package subtitles acquires SRT files for a video and line-translates them.
//
// The Acquirer asks a Downloader (yt-dlp in production) for subtitle tracks
// and resolves the file it wrote, falling back to the newest .srt in the
// output directory. The Translator classifies every line of an SRT file as
// blank, index, timing, or text; structural lines pass through byte for byte
// and text lines are sent one at a time to a LineTranslator. A line whose
// translation fails keeps its original text, so a flaky backend degrades the
// output instead of aborting it.
package subtitles

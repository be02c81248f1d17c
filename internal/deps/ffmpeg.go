package deps

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
)

// CheckFFmpegForYtDlp reports the FFmpeg binary yt-dlp will use to convert
// subtitles to SRT.
//
// yt-dlp prefers an ffmpeg binary that sits next to its own executable and
// falls back to resolving "ffmpeg" from PATH. Without FFmpeg, tracks that are
// only offered as VTT cannot be converted, so the dependency is optional.
func CheckFFmpegForYtDlp(ytDlpCommand string) Status {
	result := Status{
		Name:        "FFmpeg",
		Description: "Used by yt-dlp to convert subtitles to SRT",
		Optional:    true,
	}

	if binary := strings.TrimSpace(ytDlpCommand); binary != "" {
		if resolved, err := exec.LookPath(binary); err == nil {
			candidate := filepath.Join(filepath.Dir(resolved), executableName("ffmpeg"))
			if info, statErr := os.Stat(candidate); statErr == nil && isExecutable(info) {
				result.Command = candidate
				result.Path = candidate
				result.Available = true
				return result
			}
		}
	}

	if ffmpegPath, err := exec.LookPath("ffmpeg"); err == nil {
		result.Command = "ffmpeg"
		result.Path = ffmpegPath
		result.Available = true
		return result
	}

	result.Command = "ffmpeg"
	result.Detail = fmt.Sprintf("binary %q not found", "ffmpeg")
	return result
}

func executableName(base string) string {
	if runtime.GOOS == "windows" {
		return base + ".exe"
	}
	return base
}

func isExecutable(info os.FileInfo) bool {
	if info == nil || info.IsDir() {
		return false
	}
	if runtime.GOOS == "windows" {
		return true
	}
	return info.Mode().Perm()&0o111 != 0
}

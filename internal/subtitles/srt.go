package subtitles

import (
	"path/filepath"
	"regexp"
	"strings"
)

// LineKind classifies one line of an SRT file.
type LineKind int

const (
	LineText LineKind = iota
	LineBlank
	LineIndex
	LineTiming
)

func (k LineKind) String() string {
	switch k {
	case LineBlank:
		return "blank"
	case LineIndex:
		return "index"
	case LineTiming:
		return "timing"
	default:
		return "text"
	}
}

// Structural reports whether lines of this kind are copied verbatim.
func (k LineKind) Structural() bool {
	return k != LineText
}

// Prefix match: cue settings after the end timestamp are allowed.
var timingPattern = regexp.MustCompile(`^\d{2}:\d{2}:\d{2},\d{3} --> \d{2}:\d{2}:\d{2},\d{3}`)

// Classify inspects the whitespace-trimmed line.
func Classify(line string) LineKind {
	trimmed := strings.TrimSpace(line)
	switch {
	case trimmed == "":
		return LineBlank
	case isASCIIDigits(trimmed):
		return LineIndex
	case timingPattern.MatchString(trimmed):
		return LineTiming
	default:
		return LineText
	}
}

func isASCIIDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return s != ""
}

// OutputPath returns the translated file name for src: same directory and
// stem with ".translated.<target>.srt" appended. Any input extension is
// replaced, so "talk.vtt" becomes "talk.translated.de.srt".
func OutputPath(src, target string) string {
	dir := filepath.Dir(src)
	base := filepath.Base(src)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	if stem == "" {
		stem = base
	}
	return filepath.Join(dir, stem+".translated."+target+".srt")
}

var translatedPattern = regexp.MustCompile(`\.translated\.[^.]+\.srt$`)

// IsTranslatedOutput reports whether name looks like a file written by OutputPath.
func IsTranslatedOutput(name string) bool {
	return translatedPattern.MatchString(filepath.Base(name))
}

package language

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	xlanguage "golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// Auto is the sentinel handed to translation backends when the source
// language should be detected per request.
const Auto = "auto"

type entry struct {
	code2   string   // ISO 639-1 (2-letter)
	code3   string   // ISO 639-2 primary (3-letter)
	alt3    string   // ISO 639-2 alternate (e.g. "fre" vs "fra")
	display string   // Human-readable name
	words   []string // Full word forms (e.g. "english")
}

var languages = []entry{
	{"en", "eng", "", "English", []string{"english"}},
	{"es", "spa", "", "Spanish", []string{"spanish"}},
	{"fr", "fra", "fre", "French", []string{"french"}},
	{"de", "deu", "ger", "German", []string{"german"}},
	{"it", "ita", "", "Italian", []string{"italian"}},
	{"pt", "por", "", "Portuguese", []string{"portuguese"}},
	{"ja", "jpn", "", "Japanese", []string{"japanese"}},
	{"ko", "kor", "", "Korean", []string{"korean"}},
	{"zh", "zho", "chi", "Chinese", []string{"chinese"}},
	{"ru", "rus", "", "Russian", []string{"russian"}},
	{"ar", "ara", "", "Arabic", []string{"arabic"}},
	{"fa", "fas", "per", "Persian", []string{"persian", "farsi"}},
	{"tr", "tur", "", "Turkish", []string{"turkish"}},
	{"uk", "ukr", "", "Ukrainian", []string{"ukrainian"}},
	{"he", "heb", "", "Hebrew", []string{"hebrew"}},
	{"hi", "hin", "", "Hindi", []string{"hindi"}},
	{"id", "ind", "", "Indonesian", []string{"indonesian"}},
	{"vi", "vie", "", "Vietnamese", []string{"vietnamese"}},
	{"nl", "nld", "dut", "Dutch", []string{"dutch"}},
	{"pl", "pol", "", "Polish", []string{"polish"}},
	{"sv", "swe", "", "Swedish", []string{"swedish"}},
	{"da", "dan", "", "Danish", []string{"danish"}},
	{"no", "nor", "", "Norwegian", []string{"norwegian"}},
	{"fi", "fin", "", "Finnish", []string{"finnish"}},
}

// Index maps built at init time.
var (
	byCode2 map[string]*entry
	byCode3 map[string]*entry
	byWord  map[string]*entry
)

func init() {
	byCode2 = make(map[string]*entry, len(languages))
	byCode3 = make(map[string]*entry, len(languages)*2)
	byWord = make(map[string]*entry, len(languages))
	for i := range languages {
		e := &languages[i]
		byCode2[e.code2] = e
		byCode3[e.code3] = e
		if e.alt3 != "" {
			byCode3[e.alt3] = e
		}
		for _, w := range e.words {
			byWord[w] = e
		}
	}
}

func lookup(code string) *entry {
	code = strings.ToLower(strings.TrimSpace(code))
	if code == "" {
		return nil
	}
	if e, ok := byCode2[code]; ok {
		return e
	}
	if e, ok := byCode3[code]; ok {
		return e
	}
	if e, ok := byWord[code]; ok {
		return e
	}
	return nil
}

// Normalize maps user input to the code sent to yt-dlp and the translation
// backends. Known words and 3-letter codes collapse to ISO 639-1; tags with a
// region or script ("zh_cn", "pt-br") are canonicalized to BCP 47 form
// ("zh-CN", "pt-BR"). Anything else is lowercased and passed through so the
// backend can reject it.
func Normalize(code string) string {
	trimmed := strings.TrimSpace(code)
	if trimmed == "" {
		return ""
	}
	lower := strings.ToLower(trimmed)
	if lower == Auto {
		return Auto
	}
	if e := lookup(lower); e != nil {
		return e.code2
	}
	if strings.ContainsAny(trimmed, "-_") {
		if tag, err := xlanguage.Parse(strings.ReplaceAll(trimmed, "_", "-")); err == nil {
			return tag.String()
		}
	}
	return lower
}

// Validate reports whether code is a well-formed language tag. The Auto
// sentinel is rejected; callers that accept it check for it first.
func Validate(code string) error {
	code = strings.TrimSpace(code)
	if code == "" {
		return errors.New("language code is empty")
	}
	if strings.EqualFold(code, Auto) {
		return fmt.Errorf("%q is not a language code", code)
	}
	if _, err := xlanguage.Parse(code); err != nil {
		return fmt.Errorf("invalid language code %q: %w", code, err)
	}
	return nil
}

// DisplayName returns a human-readable language name for any recognized code.
// Returns "Unknown" for empty input, "Auto-detect" for the Auto sentinel, or
// the uppercased code for unrecognized input.
func DisplayName(code string) string {
	trimmed := strings.TrimSpace(code)
	if trimmed == "" {
		return "Unknown"
	}
	if strings.EqualFold(trimmed, Auto) {
		return "Auto-detect"
	}
	if e := lookup(trimmed); e != nil {
		return e.display
	}
	if tag, err := xlanguage.Parse(trimmed); err == nil {
		if name := display.English.Languages().Name(tag); name != "" {
			return name
		}
	}
	return strings.ToUpper(trimmed)
}

// NativeName returns the language's own name for itself, title-cased using
// that language's casing rules ("français" becomes "Français").
func NativeName(code string) string {
	tag, err := xlanguage.Parse(strings.TrimSpace(code))
	if err != nil {
		return ""
	}
	name := display.Self.Name(tag)
	if name == "" {
		return ""
	}
	return cases.Title(tag).String(name)
}

// Info describes one entry of the built-in language table.
type Info struct {
	Code    string
	ISO3    string
	Display string
	Native  string
}

// Known lists the built-in language table in declaration order.
func Known() []Info {
	out := make([]Info, 0, len(languages))
	for _, e := range languages {
		out = append(out, Info{
			Code:    e.code2,
			ISO3:    e.code3,
			Display: e.display,
			Native:  NativeName(e.code2),
		})
	}
	return out
}

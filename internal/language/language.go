package language

import (
	"bufio"
	_ "embed"
	"fmt"
	"strings"

	xlanguage "golang.org/x/text/language"
)

//go:embed iso639_2.txt
var codesetData string

// Entry is one row of the ISO 639-2 table.
type Entry struct {
	Code        string // bibliographic code (e.g. "ger")
	Terminology string // terminologic code when it differs (e.g. "deu")
	Alpha2      string // ISO 639-1 code, empty when none exists
	Name        string // English reference name
}

var (
	entries []Entry
	byCode3 map[string]*Entry
	byCode2 map[string]*Entry
	byName  map[string]*Entry
)

func init() {
	entries = parseCodeset(codesetData)
	byCode3 = make(map[string]*Entry, len(entries)*2)
	byCode2 = make(map[string]*Entry, len(entries)/2)
	byName = make(map[string]*Entry, len(entries))
	for i := range entries {
		e := &entries[i]
		byCode3[e.Code] = e
		if e.Terminology != "" {
			byCode3[e.Terminology] = e
		}
		if e.Alpha2 != "" {
			byCode2[e.Alpha2] = e
		}
		byName[strings.ToLower(e.Name)] = e
	}
}

func parseCodeset(data string) []Entry {
	var out []Entry
	scanner := bufio.NewScanner(strings.NewReader(data))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Split(line, "|")
		if len(fields) != 4 {
			continue
		}
		out = append(out, Entry{
			Code:        fields[0],
			Terminology: fields[1],
			Alpha2:      fields[2],
			Name:        fields[3],
		})
	}
	return out
}

// IsISO639_2 reports whether code is an ISO 639-2 code. Matching is exact:
// surrounding whitespace or upper case letters make the code invalid.
func IsISO639_2(code string) bool {
	_, ok := byCode3[code]
	return ok
}

// Lookup resolves a 2-letter code, 3-letter code or English name to its
// table entry.
func Lookup(code string) (Entry, bool) {
	if e := lookup(code); e != nil {
		return *e, true
	}
	return Entry{}, false
}

// All returns a copy of the table in code order.
func All() []Entry {
	out := make([]Entry, len(entries))
	copy(out, entries)
	return out
}

func lookup(code string) *Entry {
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
	if e, ok := byName[code]; ok {
		return e
	}
	return nil
}

// ToISO2 converts any recognized language code or name to ISO 639-1.
// Returns empty string for unrecognized input or languages without a
// 2-letter code.
func ToISO2(code string) string {
	if e := lookup(code); e != nil {
		return e.Alpha2
	}
	return ""
}

// ToISO3 converts any recognized language code or name to the bibliographic
// ISO 639-2 code. Returns "und" for empty input and unrecognized 2-letter
// codes, and passes unknown 3-letter codes through.
func ToISO3(code string) string {
	code = strings.ToLower(strings.TrimSpace(code))
	if code == "" {
		return "und"
	}
	if e := lookup(code); e != nil {
		return e.Code
	}
	if len(code) == 3 {
		return code
	}
	return "und"
}

// DisplayName returns a human-readable language name for any recognized code.
// Returns "Unknown" for empty input, or the uppercased code for unrecognized input.
func DisplayName(code string) string {
	if strings.TrimSpace(code) == "" {
		return "Unknown"
	}
	if e := lookup(code); e != nil {
		return e.Name
	}
	return strings.ToUpper(strings.TrimSpace(code))
}

// CanonicalIETF parses a BCP 47 tag and returns its canonical form
// ("en-us" becomes "en-US").
func CanonicalIETF(tag string) (string, error) {
	tag = strings.TrimSpace(tag)
	if tag == "" {
		return "", fmt.Errorf("language tag: empty value")
	}
	parsed, err := xlanguage.Parse(tag)
	if err != nil {
		return "", fmt.Errorf("language tag %q: %w", tag, err)
	}
	return parsed.String(), nil
}

// FromIETF maps a BCP 47 tag onto the bibliographic ISO 639-2 code of its
// base language.
func FromIETF(tag string) (string, error) {
	tag = strings.TrimSpace(tag)
	if tag == "" {
		return "", fmt.Errorf("language tag: empty value")
	}
	parsed, err := xlanguage.Parse(tag)
	if err != nil {
		return "", fmt.Errorf("language tag %q: %w", tag, err)
	}
	base, _ := parsed.Base()
	if e := lookup(base.String()); e != nil {
		return e.Code, nil
	}
	if e := lookup(base.ISO3()); e != nil {
		return e.Code, nil
	}
	return "", fmt.Errorf("language tag %q: base %q is not an ISO 639-2 language", tag, base.String())
}

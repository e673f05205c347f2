package manifest

import (
	"path/filepath"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// maxNameLength is the longest package name the npm registry accepts.
const maxNameLength = 214

// fallbackName is used when nothing usable survives slugging.
const fallbackName = "app"

// Slug derives a package-safe name from a target directory name. Only the
// last path element is used; accents are folded to ASCII, letters lowercased,
// and runs of other characters collapsed into a single hyphen. Characters npm
// refuses in new package names, such as "~", never survive.
func Slug(name string) string {
	base := filepath.Base(filepath.Clean(name))

	folder := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(folder, base)
	if err != nil {
		folded = base
	}

	var b strings.Builder
	prevHyphen := false
	for _, r := range strings.ToLower(folded) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '.', r == '_':
			b.WriteRune(r)
			prevHyphen = false
		default:
			if !prevHyphen {
				b.WriteRune('-')
				prevHyphen = true
			}
		}
	}

	// Names may not start with a dot or underscore.
	slug := strings.TrimLeft(b.String(), "._-")
	slug = strings.TrimRight(slug, "-")

	if len(slug) > maxNameLength {
		slug = strings.TrimRight(slug[:maxNameLength], "-")
	}
	if slug == "" {
		return fallbackName
	}
	return slug
}

// Package locale translates narrative text for display.
//
// Story strings are English msgids. Each supported language ships as an
// embedded gettext PO catalog; missing entries fall back to the msgid.
package locale

import (
	"embed"
	"errors"
	"fmt"
	"strings"

	"github.com/leonelquinteros/gotext"
)

//go:embed locales/*.po
var catalogs embed.FS

// DefaultLang is used when no language is configured.
const DefaultLang = "en"

// ErrUnknownLang is returned by New for languages without a catalog.
var ErrUnknownLang = errors.New("locale: unknown language")

var languages = []string{"en", "ko"}

// Languages returns the supported language codes.
func Languages() []string {
	out := make([]string, len(languages))
	copy(out, languages)
	return out
}

// Catalog translates msgids for one language.
type Catalog struct {
	lang string
	po   *gotext.Po
}

// New loads the catalog for lang. An empty lang selects DefaultLang.
func New(lang string) (*Catalog, error) {
	lang = strings.ToLower(strings.TrimSpace(lang))
	if lang == "" {
		lang = DefaultLang
	}
	if !supported(lang) {
		return nil, fmt.Errorf("%w: %q (supported: %s)", ErrUnknownLang, lang, strings.Join(languages, ", "))
	}

	data, err := catalogs.ReadFile("locales/" + lang + ".po")
	if err != nil {
		return nil, fmt.Errorf("locale: read %s catalog: %w", lang, err)
	}

	po := gotext.NewPo()
	po.Parse(data)

	return &Catalog{lang: lang, po: po}, nil
}

// MustNew is like New but panics on error. Intended for tests and defaults.
func MustNew(lang string) *Catalog {
	c, err := New(lang)
	if err != nil {
		panic(err)
	}
	return c
}

// Lang returns the catalog language code.
func (c *Catalog) Lang() string {
	if c == nil {
		return DefaultLang
	}
	return c.lang
}

// T translates msgid. A nil catalog returns msgid unchanged.
func (c *Catalog) T(msgid string) string {
	if c == nil || c.po == nil || msgid == "" {
		return msgid
	}
	return c.po.Get(msgid)
}

// TAll translates every entry of msgids into a new slice.
func (c *Catalog) TAll(msgids []string) []string {
	out := make([]string, len(msgids))
	for i, id := range msgids {
		out[i] = c.T(id)
	}
	return out
}

func supported(lang string) bool {
	for _, l := range languages {
		if l == lang {
			return true
		}
	}
	return false
}

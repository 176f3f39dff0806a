// Package language resolves localized strings by key, the way the CMS
// language service does: unknown keys fall through unchanged.
package language

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"
)

//go:embed en-GB.yml
var defaultStrings []byte

// Translator looks up localized strings by key.
type Translator struct {
	tag     string
	strings map[string]string
}

// New parses a YAML key/value document into a Translator.
func New(tag string, data []byte) (*Translator, error) {
	raw := map[string]string{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse language %s: %w", tag, err)
	}
	t := &Translator{tag: tag, strings: make(map[string]string, len(raw))}
	for k, v := range raw {
		t.strings[strings.ToUpper(k)] = v
	}
	return t, nil
}

// Default returns the embedded en-GB strings.
func Default() *Translator {
	t, err := New("en-GB", defaultStrings)
	if err != nil {
		panic(err)
	}
	return t
}

// Load reads a language file from disk. The embedded strings are used as a
// base so a partial file only overrides what it defines.
func Load(tag, path string) (*Translator, error) {
	base := Default()
	if path == "" {
		return base, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read language file %s: %w", path, err)
	}
	override, err := New(tag, data)
	if err != nil {
		return nil, err
	}
	for k, v := range override.strings {
		base.strings[k] = v
	}
	base.tag = tag
	log.Info().Str("tag", tag).Str("file", path).Int("keys", len(override.strings)).Msg("language file loaded")
	return base, nil
}

// Tag returns the language tag, e.g. "en-GB".
func (t *Translator) Tag() string { return t.tag }

// Text returns the string for key, or key itself when it is not translated.
// Keys are case-insensitive.
func (t *Translator) Text(key string) string {
	if v, ok := t.strings[strings.ToUpper(key)]; ok {
		return v
	}
	return key
}

// Sprintf translates key and substitutes args into its %s/%d/%v verbs in
// order, or by position for %1$s style verbs. Surplus arguments are dropped and
// missing ones render empty.
func (t *Translator) Sprintf(key string, args ...any) string {
	return substitute(t.Text(key), args)
}

func substitute(format string, args []any) string {
	var b strings.Builder
	next := 0
	arg := func(n int) {
		if n >= 0 && n < len(args) {
			fmt.Fprint(&b, args[n])
		}
	}
	for i := 0; i < len(format); i++ {
		c := format[i]
		if c != '%' || i+1 >= len(format) {
			b.WriteByte(c)
			continue
		}
		verb := format[i+1]
		switch {
		case verb == '%':
			b.WriteByte('%')
			i++
		case isVerb(verb):
			arg(next)
			next++
			i++
		case verb >= '1' && verb <= '9':
			// positional: %N$s; the sequential position is left alone
			j := i + 1
			n := 0
			for j < len(format) && format[j] >= '0' && format[j] <= '9' {
				n = n*10 + int(format[j]-'0')
				j++
			}
			if j+1 < len(format) && format[j] == '$' && isVerb(format[j+1]) {
				arg(n - 1)
				i = j + 1
				continue
			}
			b.WriteByte(c)
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}

func isVerb(c byte) bool {
	return c == 's' || c == 'd' || c == 'v'
}

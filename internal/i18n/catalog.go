// Package i18n provides the process-wide message catalog used for chart and
// section titles. The current language is set explicitly and changes are
// pushed to subscribers.
package i18n

import (
	"fmt"
	"sync"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

var supported = []language.Tag{language.English, language.German}

var german = map[string]string{
	"Profiling History":                      "Profilierungsverlauf",
	"Profiling Runs":                         "Profilierungsläufe",
	"Historical Table Stats":                 "Historische Tabellenstatistiken",
	"Historical Column Stats":                "Historische Spaltenstatistiken",
	"Row Count Over Time":                    "Zeilenanzahl im Zeitverlauf",
	"Column Count Over Time":                 "Spaltenanzahl im Zeitverlauf",
	"Null Count Over Time":                   "Null-Werte im Zeitverlauf",
	"Null Percentage Over Time":              "Null-Anteil im Zeitverlauf",
	"Distinct Count Over Time":               "Eindeutige Werte im Zeitverlauf",
	"Distinct Percentage Over Time":          "Eindeutiger Anteil im Zeitverlauf",
	"Viewing stats for column":               "Statistiken für Spalte",
	"Viewing profiling history for the past": "Profilierungsverlauf der letzten",
}

type Catalog struct {
	mu          sync.RWMutex
	current     language.Tag
	builder     *catalog.Builder
	matcher     language.Matcher
	subscribers map[int]func(language.Tag)
	nextID      int
}

func NewCatalog(defaultLang string) (*Catalog, error) {
	builder := catalog.NewBuilder(catalog.Fallback(language.English))
	for key, translation := range german {
		if err := builder.SetString(language.German, key, translation); err != nil {
			return nil, fmt.Errorf("register translation %q: %w", key, err)
		}
	}

	c := &Catalog{
		builder:     builder,
		matcher:     language.NewMatcher(supported),
		subscribers: make(map[int]func(language.Tag)),
	}
	if defaultLang == "" {
		defaultLang = language.English.String()
	}
	tag, err := c.parse(defaultLang)
	if err != nil {
		return nil, err
	}
	c.current = tag
	return c, nil
}

func (c *Catalog) parse(lang string) (language.Tag, error) {
	tag, err := language.Parse(lang)
	if err != nil {
		return language.Und, fmt.Errorf("unsupported language %q: %w", lang, err)
	}
	_, index, _ := c.matcher.Match(tag)
	return supported[index], nil
}

// Match resolves a client supplied language to the closest supported one,
// falling back to the current language when lang is empty or malformed.
func (c *Catalog) Match(lang string) language.Tag {
	if lang == "" {
		return c.Language()
	}
	tag, err := c.parse(lang)
	if err != nil {
		return c.Language()
	}
	return tag
}

func (c *Catalog) Language() language.Tag {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.current
}

// SetLanguage switches the process language and notifies subscribers
// synchronously after the switch.
func (c *Catalog) SetLanguage(lang string) error {
	tag, err := c.parse(lang)
	if err != nil {
		return err
	}

	c.mu.Lock()
	c.current = tag
	subscribers := make([]func(language.Tag), 0, len(c.subscribers))
	for _, fn := range c.subscribers {
		subscribers = append(subscribers, fn)
	}
	c.mu.Unlock()

	for _, fn := range subscribers {
		fn(tag)
	}
	return nil
}

// Subscribe registers fn for language changes. The returned func removes it.
func (c *Catalog) Subscribe(fn func(language.Tag)) func() {
	c.mu.Lock()
	defer c.mu.Unlock()
	id := c.nextID
	c.nextID++
	c.subscribers[id] = fn
	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		delete(c.subscribers, id)
	}
}

func (c *Catalog) Printer(tag language.Tag) *message.Printer {
	return message.NewPrinter(tag, message.Catalog(c.builder))
}

func (c *Catalog) Translate(tag language.Tag, key string) string {
	return c.Printer(tag).Sprintf(key)
}

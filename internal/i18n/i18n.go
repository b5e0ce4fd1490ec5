package i18n

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"maps"
	"path"
	"slices"
	"strings"
)

const (
	LangRU = "ru"
	LangEN = "en"
)

var requiredLanguages = []string{LangEN, LangRU}

type catalog map[string]string

// Manager resolves message keys per language. Each catalog already carries
// the default language's messages underneath its own.
type Manager struct {
	defaultLanguage string
	catalogs        map[string]catalog
}

// NewManager loads every <language>.json file at the root of locales.
func NewManager(defaultLanguage string, locales fs.FS) (*Manager, error) {
	raw, err := readCatalogs(locales)
	if err != nil {
		return nil, err
	}
	for _, language := range requiredLanguages {
		if _, ok := raw[language]; !ok {
			return nil, fmt.Errorf("required locale %q missing", language)
		}
	}

	manager := &Manager{defaultLanguage: LangEN, catalogs: raw}
	manager.defaultLanguage = manager.NormalizeLanguage(defaultLanguage)

	base := raw[manager.defaultLanguage]
	merged := make(map[string]catalog, len(raw))
	for language, messages := range raw {
		combined := maps.Clone(base)
		maps.Copy(combined, messages)
		merged[language] = combined
	}
	manager.catalogs = merged
	return manager, nil
}

func readCatalogs(locales fs.FS) (map[string]catalog, error) {
	files, err := fs.Glob(locales, "*.json")
	if err != nil {
		return nil, fmt.Errorf("list locales: %w", err)
	}
	if len(files) == 0 {
		return nil, errors.New("no locales found")
	}

	catalogs := make(map[string]catalog, len(files))
	for _, name := range files {
		language := strings.ToLower(strings.TrimSuffix(name, path.Ext(name)))
		content, err := fs.ReadFile(locales, name)
		if err != nil {
			return nil, fmt.Errorf("read locale %s: %w", language, err)
		}
		messages := catalog{}
		if err := json.Unmarshal(content, &messages); err != nil {
			return nil, fmt.Errorf("parse locale %s: %w", language, err)
		}
		if len(messages) == 0 {
			return nil, fmt.Errorf("locale %s is empty", language)
		}
		catalogs[language] = messages
	}
	return catalogs, nil
}

func (manager *Manager) DefaultLanguage() string {
	return manager.defaultLanguage
}

func (manager *Manager) SupportedLanguages() []string {
	return slices.Sorted(maps.Keys(manager.catalogs))
}

// NormalizeLanguage maps tags like "ru-RU" or "EN_us" onto a loaded
// language, or the default when nothing matches.
func (manager *Manager) NormalizeLanguage(raw string) string {
	if language, ok := manager.match(raw); ok {
		return language
	}
	return manager.defaultLanguage
}

// DetectFromAcceptLanguage returns the first supported language listed in an
// Accept-Language header. Quality weights are ignored.
func (manager *Manager) DetectFromAcceptLanguage(header string) string {
	for _, part := range strings.Split(header, ",") {
		tag, _, _ := strings.Cut(part, ";")
		if language, ok := manager.match(tag); ok {
			return language
		}
	}
	return manager.defaultLanguage
}

func (manager *Manager) Messages(language string) map[string]string {
	return maps.Clone(manager.catalogs[manager.NormalizeLanguage(language)])
}

// Translate returns the message for key, or key itself when no language
// defines a non-blank value.
func (manager *Manager) Translate(language string, key string) string {
	value := manager.catalogs[manager.NormalizeLanguage(language)][key]
	if strings.TrimSpace(value) == "" {
		return key
	}
	return value
}

func (manager *Manager) Translatef(language string, key string, args ...any) string {
	return fmt.Sprintf(manager.Translate(language, key), args...)
}

// Plural picks the ".one" or ".other" form of key for count. Russian plural
// rules are reduced to the same two forms.
func (manager *Manager) Plural(language string, key string, count int) string {
	form := ".other"
	if count == 1 {
		form = ".one"
	}
	return manager.Translatef(language, key+form, count)
}

func (manager *Manager) match(tag string) (string, bool) {
	language := strings.ToLower(strings.TrimSpace(tag))
	if cut := strings.IndexAny(language, "-_"); cut >= 0 {
		language = language[:cut]
	}
	if language == "" {
		return "", false
	}
	_, ok := manager.catalogs[language]
	return language, ok
}

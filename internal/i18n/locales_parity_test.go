package i18n

import (
	"slices"
	"strings"
	"testing"
)

func TestLocalesShareKeysAndFormatVerbs(t *testing.T) {
	catalogs, err := readCatalogs(Locales())
	if err != nil {
		t.Fatalf("read catalogs: %v", err)
	}
	manager, err := NewManager(LangEN, Locales())
	if err != nil {
		t.Fatalf("NewManager() unexpected error: %v", err)
	}

	reference := catalogs[LangEN]
	for _, language := range manager.SupportedLanguages() {
		if language == LangEN {
			continue
		}
		messages := catalogs[language]

		if missing := keysNotIn(reference, messages); len(missing) > 0 {
			t.Errorf("keys missing in %s locale: %s", language, strings.Join(missing, ", "))
		}
		if extra := keysNotIn(messages, reference); len(extra) > 0 {
			t.Errorf("keys only in %s locale: %s", language, strings.Join(extra, ", "))
		}
		for key, want := range reference {
			got, ok := messages[key]
			if ok && strings.Count(got, "%") != strings.Count(want, "%") {
				t.Errorf("format verbs differ for %q: en=%q %s=%q", key, want, language, got)
			}
		}
	}
}

func TestSupportedLanguagesAreSorted(t *testing.T) {
	manager, err := NewManager(LangRU, Locales())
	if err != nil {
		t.Fatalf("NewManager() unexpected error: %v", err)
	}
	if got := manager.SupportedLanguages(); !slices.Equal(got, []string{LangEN, LangRU}) {
		t.Fatalf("expected [en ru], got %v", got)
	}
}

func keysNotIn(source, target catalog) []string {
	var missing []string
	for key := range source {
		if _, ok := target[key]; !ok {
			missing = append(missing, key)
		}
	}
	slices.Sort(missing)
	return missing
}

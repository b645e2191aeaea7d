package inventory

import (
	"context"

	"github.com/nissili/inventory-dashboard/locale"
)

// TranslatedFields are the text fields a bilingual source file carries in
// both languages. Numbers, dates and the restock flag are shared.
var TranslatedFields = []locale.Field{locale.FieldClient, locale.FieldRegion, locale.FieldProduct}

// Translations maps a stored value to its counterpart in another language:
// lang -> field -> stored value -> translated value.
type Translations map[locale.Lang]map[locale.Field]map[string]string

// Add records that value of field reads as translated in lang. The first
// mapping of a value wins; blank or identical pairs are ignored.
func (t Translations) Add(lang locale.Lang, field locale.Field, value, translated string) {
	if value == "" || translated == "" || value == translated {
		return
	}
	byField, ok := t[lang]
	if !ok {
		byField = map[locale.Field]map[string]string{}
		t[lang] = byField
	}
	values, ok := byField[field]
	if !ok {
		values = map[string]string{}
		byField[field] = values
	}
	if _, seen := values[value]; !seen {
		values[value] = translated
	}
}

// Lookup returns the translation of value, or value itself.
func (t Translations) Lookup(lang locale.Lang, field locale.Field, value string) string {
	if v, ok := t[lang][field][value]; ok {
		return v
	}
	return value
}

// Len counts the stored mappings over all languages and fields.
func (t Translations) Len() int {
	n := 0
	for _, byField := range t {
		for _, values := range byField {
			n += len(values)
		}
	}
	return n
}

// Apply returns rows with their text fields shown in lang. Rows without a
// mapping keep their stored values. The input slice is never modified.
func (t Translations) Apply(rows []Row, lang locale.Lang) []Row {
	if len(t[lang]) == 0 {
		return rows
	}
	out := make([]Row, len(rows))
	for i, r := range rows {
		r.Client = t.Lookup(lang, locale.FieldClient, r.Client)
		r.Region = t.Lookup(lang, locale.FieldRegion, r.Region)
		r.Product = t.Lookup(lang, locale.FieldProduct, r.Product)
		out[i] = r
	}
	return out
}

// TranslationSource yields the value translations of the current load.
type TranslationSource interface {
	LoadTranslations(ctx context.Context) (Translations, error)
}

// LoadLocalized loads every row from src and, when src also stores
// translations, shows the text fields in lang.
func LoadLocalized(ctx context.Context, src Source, lang locale.Lang) ([]Row, error) {
	rows, err := src.LoadRows(ctx)
	if err != nil {
		return nil, err
	}
	ts, ok := src.(TranslationSource)
	if !ok {
		return rows, nil
	}
	t, err := ts.LoadTranslations(ctx)
	if err != nil {
		return nil, err
	}
	return t.Apply(rows, lang), nil
}

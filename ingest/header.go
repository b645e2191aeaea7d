package ingest

import (
	"github.com/nissili/inventory-dashboard/inventory"
	"github.com/nissili/inventory-dashboard/locale"
)

// columns maps each internal field to its index in a record.
type columns map[locale.Field]int

// detectColumns finds a complete column set in header. With preferred set
// only that language is tried; otherwise languages are tried in
// locale.Langs() order and the first complete set wins. Extra columns are
// ignored, so a bilingual file with both sets is accepted.
func detectColumns(header []string, preferred locale.Lang) (locale.Lang, columns, error) {
	index := make(map[string]int, len(header))
	for i, h := range header {
		key := locale.NormalizeHeader(h)
		if _, dup := index[key]; !dup {
			index[key] = i
		}
	}

	langs := locale.Langs()
	if preferred != "" {
		langs = []locale.Lang{preferred}
	}

	var best *MissingColumnsError
	for _, l := range langs {
		cols := make(columns, len(locale.Fields()))
		var missing []string
		for _, f := range locale.Fields() {
			label := locale.HeaderLabel(f, l)
			i, ok := index[locale.NormalizeHeader(label)]
			if !ok {
				missing = append(missing, label)
				continue
			}
			cols[f] = i
		}
		if len(missing) == 0 {
			return l, cols, nil
		}
		if best == nil || len(missing) < len(best.Missing) {
			best = &MissingColumnsError{Lang: l, Missing: missing}
		}
	}
	return "", nil, best
}

// altColumns finds, for every language other than primary, the columns of
// the translated text fields. Only languages whose set is complete are
// returned; a single-language file yields none.
func altColumns(header []string, primary locale.Lang) map[locale.Lang]columns {
	index := make(map[string]int, len(header))
	for i, h := range header {
		key := locale.NormalizeHeader(h)
		if _, dup := index[key]; !dup {
			index[key] = i
		}
	}

	out := map[locale.Lang]columns{}
	for _, l := range locale.Langs() {
		if l == primary {
			continue
		}
		cols := columns{}
		for _, f := range inventory.TranslatedFields {
			i, ok := index[locale.NormalizeHeader(locale.HeaderLabel(f, l))]
			if !ok {
				break
			}
			cols[f] = i
		}
		if len(cols) == len(inventory.TranslatedFields) {
			out[l] = cols
		}
	}
	return out
}

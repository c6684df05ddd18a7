// Package board derives the roadmap's ordered status columns from the
// project's configured statuses plus the statuses observed on items.
package board

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// UnassignedColumnKey is the reserved key of the fixed first column.
// It cannot collide with a slug: slugs never contain underscores.
const UnassignedColumnKey = "__no_status__"

// UnassignedColumnTitle is the display title of the unassigned column.
const UnassignedColumnTitle = "Sem etapa"

const maxSlugLen = 40

// Column is one ordered board column.
type Column struct {
	Key   string
	Title string
}

// NormalizeStatusValue trims the status and returns nil when nothing
// remains.
func NormalizeStatusValue(value string) *string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

var stripDiacritics = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Slugify derives a stable column key from a status title: diacritics
// stripped, lowercased, runs of non-alphanumerics collapsed to a
// hyphen, at most 40 characters.
func Slugify(value string) string {
	stripped, _, err := transform.String(stripDiacritics, value)
	if err != nil {
		stripped = value
	}

	var b strings.Builder
	lastHyphen := true // suppress a leading hyphen
	for _, r := range strings.ToLower(stripped) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
			lastHyphen = false
		} else if !lastHyphen {
			b.WriteByte('-')
			lastHyphen = true
		}
	}

	slug := strings.Trim(b.String(), "-")
	if len(slug) > maxSlugLen {
		slug = strings.Trim(slug[:maxSlugLen], "-")
	}
	return slug
}

// ColumnKeyForStatus maps an item's raw status to the key of its
// column. Empty statuses land in the unassigned column.
func ColumnKeyForStatus(status string) string {
	normalized := NormalizeStatusValue(status)
	if normalized == nil {
		return UnassignedColumnKey
	}
	return Slugify(*normalized)
}

func isDone(status string) bool {
	return strings.EqualFold(strings.TrimSpace(status), "done")
}

// BuildColumns derives the ordered column set: the fixed unassigned
// column, then the configured statuses in order, then statuses only
// observed on items in first-seen order, with "Done" always last when
// it appeared anywhere (its original casing preserved).
func BuildColumns(configured []string, observed []string) []Column {
	var titles []string
	seen := map[string]bool{}
	doneTitle := ""

	add := func(raw string) {
		normalized := NormalizeStatusValue(raw)
		if normalized == nil {
			return
		}
		title := *normalized
		if isDone(title) {
			if doneTitle == "" {
				doneTitle = title
			}
			return
		}
		key := Slugify(title)
		if seen[key] {
			return
		}
		seen[key] = true
		titles = append(titles, title)
	}

	for _, status := range configured {
		add(status)
	}
	for _, status := range observed {
		add(status)
	}

	columns := make([]Column, 0, len(titles)+2)
	columns = append(columns, Column{Key: UnassignedColumnKey, Title: UnassignedColumnTitle})
	for _, title := range titles {
		columns = append(columns, Column{Key: Slugify(title), Title: title})
	}
	if doneTitle != "" {
		columns = append(columns, Column{Key: Slugify(doneTitle), Title: doneTitle})
	}
	return columns
}

// Package classify infers a project item's display type and epic
// linkage from its heterogeneous field values. The field maps come
// straight from GitHub Projects, so key and value vocabularies cover
// the English and Portuguese spellings seen in real boards.
package classify

import (
	"strings"

	"github.com/tactyo/tactyo/internal/api"
)

// Accent is the display category of an item.
type Accent string

const (
	AccentEpic        Accent = "epic"
	AccentIssue       Accent = "issue"
	AccentPullRequest Accent = "pull-request"
	AccentDraft       Accent = "draft"
	AccentOther       Accent = "other"
)

// Classification is the derived display label, accent, and epic name.
type Classification struct {
	TypeLabel string
	Accent    Accent
	EpicName  string
}

// typeHintKeys are field names that explicitly carry an item type,
// matched case-insensitively.
var typeHintKeys = []string{"type", "tipo", "work item type", "item type", "categoria", "category"}

// epicLinkKeys are field names that may carry an epic reference.
var epicLinkKeys = []string{"epic", "épico", "epic link", "parent epic", "parent issue", "epic name"}

var epicValues = map[string]bool{"epic": true, "épico": true, "epico": true, "epics": true}
var issueValues = map[string]bool{"issue": true, "história": true, "story": true}
var prValues = map[string]bool{"pull request": true, "pr": true}

// Item classifies a project item. An explicit type-hint field wins
// over the content type; an explicit epic_name wins over a field scan.
func Item(item api.ProjectItem) Classification {
	c := Classification{EpicName: resolveEpicName(item)}

	if hint, ok := findField(item.FieldValues, typeHintKeys); ok {
		c.TypeLabel, c.Accent = classifyHint(hint)
		return c
	}

	c.TypeLabel, c.Accent = classifyContentType(item.ContentType)
	return c
}

// findField scans the field map for the first key (in keys order)
// matching case-insensitively with a non-empty string value. When
// several field names fold to the same key, the lexicographically
// smallest name wins, keeping the result independent of map order.
func findField(fields map[string]any, keys []string) (string, bool) {
	if len(fields) == 0 {
		return "", false
	}
	for _, key := range keys {
		bestName, bestValue, found := "", "", false
		for name, raw := range fields {
			if !strings.EqualFold(strings.TrimSpace(name), key) {
				continue
			}
			value, ok := raw.(string)
			if !ok {
				continue
			}
			trimmed := strings.TrimSpace(value)
			if trimmed == "" {
				continue
			}
			if !found || name < bestName {
				bestName, bestValue, found = name, trimmed, true
			}
		}
		if found {
			return bestValue, true
		}
	}
	return "", false
}

func classifyHint(value string) (string, Accent) {
	normalized := strings.ToLower(strings.TrimSpace(value))
	switch {
	case epicValues[normalized]:
		return "Épico", AccentEpic
	case issueValues[normalized]:
		return "Issue", AccentIssue
	case prValues[normalized]:
		return "Pull Request", AccentPullRequest
	default:
		// Free-form type labels pass through as-is.
		return value, AccentOther
	}
}

func classifyContentType(contentType string) (string, Accent) {
	switch contentType {
	case "Issue":
		return "Issue", AccentIssue
	case "PullRequest":
		return "Pull Request", AccentPullRequest
	case "DraftIssue":
		return "Rascunho", AccentDraft
	default:
		return "Item", AccentOther
	}
}

// resolveEpicName prefers the item's explicit epic_name and falls back
// to scanning field values for an epic-link key.
func resolveEpicName(item api.ProjectItem) string {
	if name := strings.TrimSpace(item.EpicName); name != "" {
		return name
	}
	if name, ok := findField(item.FieldValues, epicLinkKeys); ok {
		return name
	}
	return ""
}

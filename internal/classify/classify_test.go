package classify

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tactyo/tactyo/internal/api"
)

func TestTypeHintFieldWinsOverContentType(t *testing.T) {
	c := Item(api.ProjectItem{
		ContentType: "Issue",
		FieldValues: map[string]any{"Type": "Epic"},
	})
	assert.Equal(t, "Épico", c.TypeLabel)
	assert.Equal(t, AccentEpic, c.Accent)
}

func TestTypeHintVocabulary(t *testing.T) {
	tests := []struct {
		key    string
		value  string
		label  string
		accent Accent
	}{
		{"Type", "Epic", "Épico", AccentEpic},
		{"tipo", "épico", "Épico", AccentEpic},
		{"TIPO", "epico", "Épico", AccentEpic},
		{"Work Item Type", "epics", "Épico", AccentEpic},
		{"Item Type", "issue", "Issue", AccentIssue},
		{"categoria", "história", "Issue", AccentIssue},
		{"Category", "Story", "Issue", AccentIssue},
		{"Type", "Pull Request", "Pull Request", AccentPullRequest},
		{"Type", "PR", "Pull Request", AccentPullRequest},
		{"Type", "Spike", "Spike", AccentOther},
	}
	for _, tt := range tests {
		c := Item(api.ProjectItem{FieldValues: map[string]any{tt.key: tt.value}})
		assert.Equal(t, tt.label, c.TypeLabel, "%s=%s", tt.key, tt.value)
		assert.Equal(t, tt.accent, c.Accent, "%s=%s", tt.key, tt.value)
	}
}

func TestContentTypeFallback(t *testing.T) {
	tests := []struct {
		contentType string
		label       string
		accent      Accent
	}{
		{"Issue", "Issue", AccentIssue},
		{"PullRequest", "Pull Request", AccentPullRequest},
		{"DraftIssue", "Rascunho", AccentDraft},
		{"SomethingNew", "Item", AccentOther},
		{"", "Item", AccentOther},
	}
	for _, tt := range tests {
		c := Item(api.ProjectItem{ContentType: tt.contentType})
		assert.Equal(t, tt.label, c.TypeLabel, tt.contentType)
		assert.Equal(t, tt.accent, c.Accent, tt.contentType)
	}
}

func TestNonStringHintIgnored(t *testing.T) {
	c := Item(api.ProjectItem{
		ContentType: "Issue",
		FieldValues: map[string]any{"Type": 42},
	})
	assert.Equal(t, "Issue", c.TypeLabel)
	assert.Equal(t, AccentIssue, c.Accent)
}

func TestEpicNameFromFieldScan(t *testing.T) {
	c := Item(api.ProjectItem{FieldValues: map[string]any{"Epic": "Nebula"}})
	assert.Equal(t, "Nebula", c.EpicName)

	c = Item(api.ProjectItem{FieldValues: map[string]any{"Parent Epic": "Orion"}})
	assert.Equal(t, "Orion", c.EpicName)

	c = Item(api.ProjectItem{FieldValues: map[string]any{"Épico": "Vega"}})
	assert.Equal(t, "Vega", c.EpicName)
}

func TestExplicitEpicNameWins(t *testing.T) {
	c := Item(api.ProjectItem{
		EpicName:    "Solaris",
		FieldValues: map[string]any{"Epic": "Nebula"},
	})
	assert.Equal(t, "Solaris", c.EpicName)
}

func TestNoEpic(t *testing.T) {
	c := Item(api.ProjectItem{FieldValues: map[string]any{"Status": "Done"}})
	assert.Empty(t, c.EpicName)
}

func TestEpicLinkKeyPrecedenceIsStable(t *testing.T) {
	// "epic" outranks "parent issue" regardless of map iteration order.
	for range 20 {
		c := Item(api.ProjectItem{FieldValues: map[string]any{
			"Parent Issue": "Fallback",
			"Epic":         "Primary",
		}})
		assert.Equal(t, "Primary", c.EpicName)
	}
}

func TestSameHintKeyCollisionIsDeterministic(t *testing.T) {
	// "Type" and "type " both fold to the hint key "type"; the
	// lexicographically smallest field name must win on every run.
	for range 20 {
		c := Item(api.ProjectItem{FieldValues: map[string]any{
			"type ": "Epic",
			"Type":  "Issue",
		}})
		assert.Equal(t, "Issue", c.TypeLabel)
		assert.Equal(t, AccentIssue, c.Accent)
	}
}

package board

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func titles(columns []Column) []string {
	out := make([]string, len(columns))
	for i, c := range columns {
		out[i] = c.Title
	}
	return out
}

func TestNormalizeStatusValue(t *testing.T) {
	got := NormalizeStatusValue("  In Review  ")
	require.NotNil(t, got)
	assert.Equal(t, "In Review", *got)

	assert.Nil(t, NormalizeStatusValue("   "))
	assert.Nil(t, NormalizeStatusValue(""))
}

func TestBuildColumnsConfiguredOnly(t *testing.T) {
	columns := BuildColumns([]string{"Backlog", "In Review", "Done"}, nil)
	assert.Equal(t, []string{"Sem etapa", "Backlog", "In Review", "Done"}, titles(columns))
}

func TestBuildColumnsDoneAlwaysLast(t *testing.T) {
	// "Done" configured in the middle still sorts last.
	columns := BuildColumns([]string{"Done", "Backlog", "In Progress"}, nil)
	assert.Equal(t, []string{"Sem etapa", "Backlog", "In Progress", "Done"}, titles(columns))
}

func TestBuildColumnsObservedInsertedBeforeDone(t *testing.T) {
	columns := BuildColumns([]string{"Backlog", "Done"}, []string{"QA"})
	assert.Equal(t, []string{"Sem etapa", "Backlog", "QA", "Done"}, titles(columns))
}

func TestBuildColumnsDoneCasingPreserved(t *testing.T) {
	columns := BuildColumns([]string{"Backlog", "DONE"}, nil)
	assert.Equal(t, "DONE", columns[len(columns)-1].Title)
}

func TestBuildColumnsDoneOnlyObserved(t *testing.T) {
	columns := BuildColumns([]string{"Backlog"}, []string{"done"})
	assert.Equal(t, []string{"Sem etapa", "Backlog", "done"}, titles(columns))
}

func TestBuildColumnsNoDoneAtAll(t *testing.T) {
	columns := BuildColumns([]string{"Backlog", "QA"}, []string{"QA"})
	assert.Equal(t, []string{"Sem etapa", "Backlog", "QA"}, titles(columns))
}

func TestBuildColumnsDedupAndBlanks(t *testing.T) {
	columns := BuildColumns([]string{" Backlog ", "Backlog", "", "  "}, []string{"Backlog"})
	assert.Equal(t, []string{"Sem etapa", "Backlog"}, titles(columns))
}

func TestBuildColumnsStableForReorderedObservations(t *testing.T) {
	a := BuildColumns([]string{"Backlog"}, []string{"QA", "Review", "QA"})
	b := BuildColumns([]string{"Backlog"}, []string{"QA", "QA", "Review"})
	assert.Equal(t, titles(a), titles(b))
}

func TestSlugify(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"In Review", "in-review"},
		{"Em Execução", "em-execucao"},
		{"Concluído", "concluido"},
		{"QA / Teste", "qa-teste"},
		{"  spaced  out  ", "spaced-out"},
		{"Ünïcode Dàta", "unicode-data"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Slugify(tt.in), tt.in)
	}
}

func TestSlugifyMaxLength(t *testing.T) {
	long := "a very long status name that keeps going and going and going"
	slug := Slugify(long)
	assert.LessOrEqual(t, len(slug), 40)
	assert.NotEmpty(t, slug)
}

func TestColumnKeyForStatus(t *testing.T) {
	assert.Equal(t, UnassignedColumnKey, ColumnKeyForStatus("   "))
	assert.Equal(t, "in-review", ColumnKeyForStatus(" In Review "))
}

package dataset

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/idilsaglam/qotd/internal/model"
)

var want = []model.Question{
	{ID: 1, Question: "Q1", Answer: "A1"},
	{ID: 2, Question: "Q2", Answer: "A2"},
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefaultDeck(t *testing.T) {
	qs, err := Default()
	require.NoError(t, err)
	require.NotEmpty(t, qs)
	for _, q := range qs {
		assert.NotEmpty(t, q.Question)
		assert.NotEmpty(t, q.Answer)
		assert.False(t, q.Completed)
	}

	viaLoad, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, qs, viaLoad)
}

func TestLoadYAML(t *testing.T) {
	path := writeFile(t, "deck.yaml", `
- id: 1
  question: Q1
  answer: A1
- id: 2
  question: Q2
  answer: A2
  completed: true
`)
	qs, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, want, qs, "input completion flags are ignored")
}

func TestLoadJSON(t *testing.T) {
	path := writeFile(t, "deck.json", `[
  {"id": 1, "question": "Q1", "answer": "A1"},
  {"id": 2, "question": "Q2", "answer": "A2"}
]`)
	qs, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, want, qs)
}

func TestLoadCSV(t *testing.T) {
	path := writeFile(t, "deck.csv", "answer,id,question\nA1,1,Q1\n\nA2,2,Q2\n")
	qs, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, want, qs)
}

func TestLoadXLSX(t *testing.T) {
	f := excelize.NewFile()
	rows := [][]interface{}{
		{"id", "question", "answer"},
		{1, "Q1", "A1"},
		{2, "Q2", "A2"},
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &row))
	}
	path := filepath.Join(t.TempDir(), "deck.xlsx")
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	qs, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, want, qs)
}

func TestLoadRejects(t *testing.T) {
	tests := []struct {
		name, file, content string
	}{
		{"duplicate id", "d.yaml", "- {id: 1, question: a, answer: b}\n- {id: 1, question: c, answer: d}\n"},
		{"missing answer", "d.yaml", "- {id: 1, question: a}\n"},
		{"zero id", "d.json", `[{"id": 0, "question": "a", "answer": "b"}]`},
		{"csv missing column", "d.csv", "id,question\n1,a\n"},
		{"csv bad id", "d.csv", "id,question,answer\nx,a,b\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeFile(t, tt.file, tt.content))
			assert.ErrorIs(t, err, ErrInvalid)
		})
	}
}

func TestLoadUnsupportedAndMissing(t *testing.T) {
	_, err := Load(writeFile(t, "deck.txt", "hello"))
	assert.Error(t, err)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

package apps

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalog(t *testing.T) {
	all := All()
	require.Len(t, all, 7)
	assert.Equal(t, "file-explorer", all[0].ID)
	assert.Len(t, Desktop(), 7)
	assert.Len(t, StartMenu(), 7)

	all[0].Name = "mutated"
	app, ok := Get("file-explorer")
	require.True(t, ok)
	assert.Equal(t, "File Explorer", app.Name)

	_, ok = Get("solitaire")
	assert.False(t, ok)
}

func TestByCategory(t *testing.T) {
	tests := []struct {
		category Category
		want     []string
	}{
		{CategorySystem, []string{"file-explorer", "settings"}},
		{CategoryDevelopment, []string{"vscode", "cad-viewer", "terminal"}},
		{CategoryProductivity, []string{"notepad", "browser"}},
		{Category("games"), nil},
	}

	for _, tt := range tests {
		t.Run(string(tt.category), func(t *testing.T) {
			var got []string
			for _, a := range ByCategory(tt.category) {
				got = append(got, a.ID)
			}
			assert.Equal(t, tt.want, got)
		})
	}

	assert.Equal(t, []Category{CategorySystem, CategoryDevelopment, CategoryProductivity}, Categories())
}

func TestSearch(t *testing.T) {
	assert.Len(t, Search(""), 7)
	assert.Len(t, Search("   "), 7)

	got := Search("term")
	require.NotEmpty(t, got)
	assert.Equal(t, "terminal", got[0].ID)

	got = Search("edge")
	require.NotEmpty(t, got)
	assert.Equal(t, "browser", got[0].ID)

	assert.Empty(t, Search("zzzzqq"))
}

func TestGlyph(t *testing.T) {
	assert.Equal(t, ">_", Glyph("terminal", true))
	assert.Equal(t, "[?]", Glyph("unknown", true))
	assert.NotEmpty(t, Glyph("unknown", false))
	for _, a := range All() {
		assert.NotEqual(t, "[?]", Glyph(a.Icon, true), a.ID)
	}
}

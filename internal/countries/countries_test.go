package countries

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBijection(t *testing.T) {
	d := Default()
	require.Greater(t, d.Len(), 200)
	for _, c := range d.All() {
		code, ok := d.CodeForName(c.Name)
		require.True(t, ok, c.Name)
		name, ok := d.NameForCode(code)
		require.True(t, ok, code)
		assert.Equal(t, c.Name, name)
	}
}

func TestCodeForName(t *testing.T) {
	d := Default()
	tests := []struct {
		in   string
		want string
		ok   bool
	}{
		{"Nigeria", "NG", true},
		{"nigeria", "NG", true},
		{"UNITED STATES", "US", true},
		{"United", "", false},
		{"Xyzland", "", false},
	}
	for _, tt := range tests {
		got, ok := d.CodeForName(tt.in)
		assert.Equal(t, tt.ok, ok, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestCodeForNameExactBeforeFold(t *testing.T) {
	d := New([]Country{{"alpha", "AA"}, {"Alpha", "AB"}})
	code, ok := d.CodeForName("Alpha")
	require.True(t, ok)
	assert.Equal(t, "AB", code)

	code, ok = d.CodeForName("ALPHA")
	require.True(t, ok)
	assert.Equal(t, "AA", code, "first entry in table order wins")
}

func TestNameForCode(t *testing.T) {
	d := Default()
	name, ok := d.NameForCode("ng")
	require.True(t, ok)
	assert.Equal(t, "Nigeria", name)

	_, ok = d.NameForCode("ZZ")
	assert.False(t, ok)
	assert.True(t, d.Has("gb"))
	assert.False(t, d.Has("USA"))
}

func TestNameForCodeDuplicate(t *testing.T) {
	d := New([]Country{{"First", "XX"}, {"Second", "XX"}})
	name, _ := d.NameForCode("XX")
	assert.Equal(t, "First", name)
}

func TestSearch(t *testing.T) {
	d := Default()

	got := d.Search("ng")
	assert.Contains(t, got, Country{"Nigeria", "NG"})
	assert.Contains(t, got, Country{"Hong Kong", "HK"})

	assert.Empty(t, d.Search("nonexistent-xyz"))
	assert.NotNil(t, d.Search("nonexistent-xyz"))

	// table order
	kingdom := d.Search("kingdom")
	require.Len(t, kingdom, 1)
	assert.Equal(t, "GB", kingdom[0].Code)
}

func TestAllIsACopy(t *testing.T) {
	d := Default()
	all := d.All()
	all[0].Name = "changed"
	assert.NotEqual(t, "changed", d.All()[0].Name)
}

func TestSortByName(t *testing.T) {
	cs := []Country{{"Nigeria", "NG"}, {"Canada", "CA"}, {"Germany", "DE"}}
	SortByName(cs)
	assert.Equal(t, []string{"Canada", "Germany", "Nigeria"}, []string{cs[0].Name, cs[1].Name, cs[2].Name})
}

func TestSortByNameCollatesAccents(t *testing.T) {
	cs := []Country{{"Russia", "RU"}, {"Réunion", "RE"}, {"Romania", "RO"}}
	SortByName(cs)
	assert.Equal(t, []string{"RE", "RO", "RU"}, []string{cs[0].Code, cs[1].Code, cs[2].Code})
}

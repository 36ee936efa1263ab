package ui

import (
	"strings"
	"testing"

	"github.com/mattn/go-runewidth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeyValueBlock(t *testing.T) {
	out := KeyValueBlock("Mint Preview", [][2]string{
		{"Amount", "12 tokens"},
		{"Value", "0.012 ETH"},
	})
	assert.Contains(t, out, "Mint Preview")
	i, j := strings.Index(out, "Amount"), strings.Index(out, "Value")
	require.Greater(t, i, -1)
	assert.Greater(t, j, i)
	assert.Contains(t, out, "0.012 ETH")
	assert.Contains(t, out, "╭")
}

func TestTableRender(t *testing.T) {
	tbl := NewTable([]Column{{Title: "Name", Width: 8}, {Title: "Chain", Width: 6}})
	tbl.AddRow(Row{"goerli", "5"})
	tbl.AddRow(Row{"a-very-long-name"})

	out := tbl.Render()
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Contains(t, lines[0], "Name")
	assert.Contains(t, lines[1], "--------")
	assert.Contains(t, lines[2], "goerli")
	assert.Contains(t, lines[3], "a-very-l")
	assert.NotContains(t, out, "a-very-long")
}

func TestTableAutoWidth(t *testing.T) {
	tbl := NewTable([]Column{{Title: "Wallet"}, {Title: "Address"}})
	tbl.AddRow(Row{"deployer", "0xf39F"})
	tbl.AddRow(Row{"x"})

	lines := strings.Split(strings.TrimRight(tbl.Render(), "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "Wallet   Address", lines[0])
	assert.Equal(t, "-------- -------", lines[1])
	assert.Equal(t, "deployer 0xf39F ", lines[2])
	assert.Equal(t, "x               ", lines[3])
}

func TestTableWideRunes(t *testing.T) {
	tbl := NewTable([]Column{{Title: "Name"}, {Title: "Chain", Width: 5}})
	tbl.AddRow(Row{"日本", "1"})
	tbl.AddRow(Row{"ab", "5"})

	lines := strings.Split(strings.TrimRight(tbl.Render(), "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "日本 1    ", lines[2])
	assert.Equal(t, "ab   5    ", lines[3])
}

func TestKeyValueBlockAlignsKeys(t *testing.T) {
	out := KeyValueBlock("", [][2]string{{"To", "a"}, {"Network", "b"}})
	assert.Contains(t, out, "To:      a")
	assert.Contains(t, out, "Network: b")
}

func TestPad(t *testing.T) {
	assert.Equal(t, "ab  ", pad("ab", 4))
	assert.Equal(t, "abcd", pad("abcdef", 4))
	assert.Equal(t, "", pad("", 0))
	assert.Equal(t, "日 ", pad("日本", 3))
	assert.Equal(t, 4, runewidth.StringWidth(pad("🎉", 4)))
}

func TestPickerNavigation(t *testing.T) {
	m := newPicker("Wallets", []Choice{{Label: "a", Value: "a"}, {Label: "b", Value: "b"}}, "b")
	assert.Equal(t, 1, m.cursor)

	next, _ := m.Update(keyMsg("k"))
	m = next.(pickerModel)
	assert.Equal(t, 0, m.cursor)

	next, cmd := m.Update(keyMsg("enter"))
	m = next.(pickerModel)
	require.NotNil(t, cmd)
	require.NotNil(t, m.picked)
	assert.Equal(t, "a", m.picked.Value)
}

func TestPickEmpty(t *testing.T) {
	_, err := Pick("x", nil, "")
	assert.ErrorIs(t, err, ErrNoChoices)
}

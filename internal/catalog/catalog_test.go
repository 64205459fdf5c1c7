package catalog

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/benbeisheim/flipchess-backend/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	c := Default()

	entries := c.Entries()
	require.Len(t, entries, len(model.PieceTypes))
	assert.Equal(t, Entry{Name: "Queen", Icon: "Q"}, entries[0])
	assert.Equal(t, Entry{Name: "Pawn", Icon: "P"}, entries[len(entries)-1])

	e, ok := c.Lookup(model.Knight)
	require.True(t, ok)
	assert.Equal(t, "N", e.Icon)
}

func TestIconCase(t *testing.T) {
	c := Default()
	assert.Equal(t, "K", c.Icon(model.King, model.FirstSide))
	assert.Equal(t, "k", c.Icon(model.King, model.SecondSide))
	assert.Equal(t, "?", c.Icon(model.PieceType("dragon"), model.FirstSide))
}

func TestParse(t *testing.T) {
	c, err := Parse([]byte(`[{"name": "Knight", "icon": "S"}, {"name": "queen", "icon": "D"}]`))
	require.NoError(t, err)

	assert.Equal(t, "S", c.Icon(model.Knight, model.FirstSide))
	assert.Equal(t, "d", c.Icon(model.Queen, model.SecondSide))
	assert.Equal(t, "R", c.Icon(model.Rook, model.FirstSide), "untouched kinds keep defaults")
}

func TestParseErrors(t *testing.T) {
	_, err := Parse([]byte(`[{"name": "Dragon", "icon": "D"}]`))
	assert.True(t, errors.Is(err, ErrUnknownPiece))

	_, err = Parse([]byte(`[{"name": "Rook", "icon": ""}]`))
	assert.Error(t, err)

	_, err = Parse([]byte(`{`))
	assert.Error(t, err)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pieces.json")
	require.NoError(t, os.WriteFile(path, []byte(`[{"name": "Pawn", "icon": "I"}]`), 0o600))

	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "i", c.Icon(model.Pawn, model.SecondSide))

	_, err = Load(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

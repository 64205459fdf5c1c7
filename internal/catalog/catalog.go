// Package catalog holds display metadata for piece kinds: a human name and
// a one-letter icon. Nothing in the move rules consults it.
package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/benbeisheim/flipchess-backend/internal/model"
)

var ErrUnknownPiece = errors.New("unknown piece name")

type Entry struct {
	Name string `json:"name"`
	Icon string `json:"icon"`
}

type Catalog struct {
	entries map[model.PieceType]Entry
}

// Default returns the built-in entries.
func Default() *Catalog {
	return &Catalog{entries: map[model.PieceType]Entry{
		model.Queen:  {Name: "Queen", Icon: "Q"},
		model.King:   {Name: "King", Icon: "K"},
		model.Bishop: {Name: "Bishop", Icon: "B"},
		model.Knight: {Name: "Knight", Icon: "N"},
		model.Rook:   {Name: "Rook", Icon: "R"},
		model.Pawn:   {Name: "Pawn", Icon: "P"},
	}}
}

// Load reads a JSON array of entries from path. Kinds missing from the file
// keep their default entry.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog %s: %w", path, err)
	}
	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("catalog %s: %w", path, err)
	}
	return c, nil
}

func Parse(data []byte) (*Catalog, error) {
	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, err
	}
	c := Default()
	for _, e := range entries {
		t := model.PieceType(strings.ToLower(strings.TrimSpace(e.Name)))
		if !t.Valid() {
			return nil, fmt.Errorf("%w: %q", ErrUnknownPiece, e.Name)
		}
		if e.Icon == "" {
			return nil, fmt.Errorf("empty icon for %q", e.Name)
		}
		c.entries[t] = e
	}
	return c, nil
}

func (c *Catalog) Lookup(t model.PieceType) (Entry, bool) {
	e, ok := c.entries[t]
	return e, ok
}

// Entries lists every entry in model.PieceTypes order.
func (c *Catalog) Entries() []Entry {
	out := make([]Entry, 0, len(c.entries))
	for _, t := range model.PieceTypes {
		if e, ok := c.entries[t]; ok {
			out = append(out, e)
		}
	}
	return out
}

// Icon is the entry's icon, upper case for the first side and lower case
// for the second. Unknown kinds render as "?".
func (c *Catalog) Icon(t model.PieceType, color model.PlayerColor) string {
	e, ok := c.entries[t]
	if !ok {
		return "?"
	}
	if color == model.SecondSide {
		return strings.ToLower(e.Icon)
	}
	return strings.ToUpper(e.Icon)
}

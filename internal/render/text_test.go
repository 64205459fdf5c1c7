package render

import (
	"strings"
	"testing"

	"github.com/benbeisheim/flipchess-backend/internal/catalog"
	"github.com/benbeisheim/flipchess-backend/internal/model"
	"github.com/google/go-cmp/cmp"
)

func TestTextStartingPosition(t *testing.T) {
	want := "0 r n b k q b n r\n" +
		"1 p p p p p p p p\n" +
		"2 . . . . . . . .\n" +
		"3 . . . . . . . .\n" +
		"4 . . . . . . . .\n" +
		"5 . . . . . . . .\n" +
		"6 P P P P P P P P\n" +
		"7 R N B K Q B N R\n" +
		"  0 1 2 3 4 5 6 7\n"

	got := Text(model.NewBoard().Snapshot(), catalog.Default())
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Text() mismatch (-want +got):\n%s", diff)
	}
}

func TestTextUsesCatalogIcons(t *testing.T) {
	board, err := model.ParseLayout([]string{
		"........",
		"........",
		"........",
		"...n....",
		"........",
		"........",
		"........",
		"........",
	}, 0)
	if err != nil {
		t.Fatalf("ParseLayout: %v", err)
	}
	pieces, err := catalog.Parse([]byte(`[{"name": "Knight", "icon": "S"}]`))
	if err != nil {
		t.Fatalf("catalog.Parse: %v", err)
	}

	got := Text(board.Snapshot(), pieces)
	if want := "\n3 . . . s . . . .\n"; !strings.Contains(got, want) {
		t.Errorf("Text() = %q, want a line %q", got, want)
	}
}

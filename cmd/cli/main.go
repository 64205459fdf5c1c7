// Command cli plays a local game in the terminal. Each input line is a
// move "fromRow fromCol toRow toCol" in the frame of the side to move; the
// board is printed again after every line.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/benbeisheim/flipchess-backend/internal/catalog"
	"github.com/benbeisheim/flipchess-backend/internal/model"
	"github.com/benbeisheim/flipchess-backend/internal/render"
	"github.com/gofiber/fiber/v2/log"
)

func main() {
	catalogPath := flag.String("catalog", "", "JSON piece catalog (default: built-in)")
	flag.Parse()

	pieces := catalog.Default()
	if *catalogPath != "" {
		var err error
		if pieces, err = catalog.Load(*catalogPath); err != nil {
			log.Fatal(err)
		}
	}

	if err := run(os.Stdin, os.Stdout, model.NewBoard(), pieces); err != nil {
		log.Fatal(err)
	}
}

func run(in io.Reader, out io.Writer, board *model.Board, pieces *catalog.Catalog) error {
	if err := printBoard(out, board, pieces); err != nil {
		return err
	}
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		src, dst, err := parseMove(scanner.Text())
		if err != nil {
			fmt.Fprintf(out, "? %v\n", err)
			continue
		}
		if !board.Move(src, dst) {
			fmt.Fprintf(out, "illegal move %v -> %v\n", src, dst)
			continue
		}
		if err := printBoard(out, board, pieces); err != nil {
			return err
		}
	}
	return scanner.Err()
}

func parseMove(line string) (src, dst model.Position, err error) {
	n, err := fmt.Sscan(line, &src.Row, &src.Col, &dst.Row, &dst.Col)
	if err != nil || n != 4 {
		return src, dst, fmt.Errorf("want four numbers, got %q", line)
	}
	return src, dst, nil
}

func printBoard(out io.Writer, board *model.Board, pieces *catalog.Catalog) error {
	if _, err := fmt.Fprintf(out, "move %d, %s to play\n", board.MoveCount(), board.CurrentSide()); err != nil {
		return err
	}
	return render.Write(out, board.Snapshot(), pieces)
}

package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/kiryu-dev/board-games/internal/domain"
	"github.com/pkg/errors"
)

var (
	errBadInput = errors.New("bad input")
	errAutoMove = errors.New("computer move requested")
)

func main() {
	addr := flag.String("addr", "localhost:8080", "server address")
	mode := flag.String("mode", "online", "online, computer or local")
	kindFlag := flag.String("kind", string(domain.TicTacToe), "tictactoe or morris")
	difficulty := flag.String("difficulty", string(domain.Medium), "easy, medium or hard")
	flag.Parse()
	kind, err := domain.ParseKind(*kindFlag)
	if err != nil || kind == domain.Chess {
		log.Fatalf("unsupported game kind '%s'", *kindFlag)
	}
	in := newInput()
	switch *mode {
	case "online":
		err = playOnline(*addr, kind, in)
	case "computer":
		err = playRest(*addr, kind, domain.CreateOptions{VsComputer: true, Difficulty: domain.Difficulty(*difficulty)}, in)
	case "local":
		err = playRest(*addr, kind, domain.CreateOptions{}, in)
	default:
		err = errors.Errorf("unknown mode '%s'", *mode)
	}
	if err != nil {
		log.Fatal(err)
	}
}

type input struct {
	scanner *bufio.Scanner
	// '?' asks for a computer move
	auto bool
}

func newInput() *input {
	return &input{scanner: bufio.NewScanner(os.Stdin)}
}

// cells reads n cell numbers 1-9 from one line and returns them as
// positions 0-8.
func (in *input) cells(prompt string, n int) ([]int, error) {
	for {
		fmt.Print(prompt)
		if ok := in.scanner.Scan(); !ok {
			if err := in.scanner.Err(); err != nil {
				return nil, err
			}
			return nil, errors.New("input closed")
		}
		line := in.scanner.Text()
		if in.auto && strings.TrimSpace(line) == "?" {
			return nil, errAutoMove
		}
		positions, err := parseCells(line, n)
		if err == nil {
			return positions, nil
		}
		fmt.Print("\033[F\033[K")
	}
}

func parseCells(line string, n int) ([]int, error) {
	fields := strings.Fields(line)
	if len(fields) != n {
		return nil, errors.WithMessagef(errBadInput, "expected %d numbers", n)
	}
	positions := make([]int, 0, n)
	for _, field := range fields {
		pos, err := strconv.Atoi(field)
		if err != nil || pos < 1 || pos > 9 {
			return nil, errors.WithMessagef(errBadInput, "'%s' is not a cell 1-9", field)
		}
		positions = append(positions, pos-1)
	}
	return positions, nil
}

func printBoard(board domain.Board) {
	fmt.Printf("\033[H\033[J")
	for i, cell := range board {
		if (i+1)%3 == 0 {
			fmt.Printf("%c ", cell)
			if i < 6 {
				fmt.Printf("\n——|———|——\n")
			}
		} else {
			fmt.Printf("%c | ", cell)
		}
	}
	fmt.Println()
}

const (
	winGameResult      = "Победа"
	loseGameResult     = "Поражение"
	drawGameResult     = "Ничья"
	walkoverGameResult = "Техническая победа (оппонент отключился)"
	inactivityResult   = "Игра завершена из-за неактивности"
)

func gameResult(winner domain.Result, mark string, reason domain.EndReason) string {
	switch {
	case reason == domain.Inactivity:
		return inactivityResult
	case reason == domain.Disconnected:
		return walkoverGameResult
	case winner == domain.Draw:
		return drawGameResult
	case string(winner) == mark:
		return winGameResult
	default:
		return loseGameResult
	}
}

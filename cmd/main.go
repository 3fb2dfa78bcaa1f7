package main

import (
	"fmt"
	"log"

	"github.com/limaJavier/minesweep/internal/game"
	"github.com/limaJavier/minesweep/internal/model"
	"github.com/limaJavier/minesweep/internal/sat"
	"github.com/samber/lo"
)

const Seed uint64 = 42

func main() {
	// difficulty := game.Easy
	difficulty := game.Medium
	// difficulty := game.Hard

	safeCell := game.Position{X: difficulty.Width / 2, Y: difficulty.Height / 2}
	board, err := game.NewBoard(game.Options{
		Difficulty: difficulty,
		SafeCell:   &safeCell,
		Seed:       lo.ToPtr(Seed),
	})
	if err != nil {
		log.Fatal(err)
	}

	board.Open(safeCell.X, safeCell.Y)
	fmt.Println(board)

	player := model.NewPlayer(board, model.NewClassifier(sat.NewDPLLSolver(nil)))
	result, steps, err := player.Play()
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(board)

	if result != game.Win {
		fmt.Printf("Stuck after %v steps\n", steps)
		return
	}

	fmt.Printf("Cleared in %v steps\n", steps)
	fmt.Println("Well done!")
}

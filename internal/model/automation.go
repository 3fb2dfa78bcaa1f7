package model

import (
	"github.com/limaJavier/minesweep/internal/game"
)

// Player drives a board with a classifier: each step it flags the cells
// proven mined, opens the cells proven safe and chords the whole board.
type Player struct {
	board      *game.Board
	classifier Classifier
}

func NewPlayer(board *game.Board, classifier Classifier) *Player {
	return &Player{
		board:      board,
		classifier: classifier,
	}
}

// Step runs one round of deductions and reports whether any verdict was
// applied. Cells flagged or questioned by hand are left untouched.
func (player *Player) Step() (bool, error) {
	if player.board.Result() != game.Playing {
		return false, nil
	}

	classification, err := player.classifier.Classify(player.board.Snapshot())
	if err != nil {
		return false, err
	}

	//** Apply the proven verdicts, flags before opens
	progress := false
	for position, verdict := range classification {
		if verdict != Mine || player.board.Cell(position.X, position.Y) != game.CellUnopened {
			continue
		}
		player.board.ToggleFlag(position.X, position.Y)
		progress = true
	}
	for position, verdict := range classification {
		if verdict != Safe || player.board.Cell(position.X, position.Y) != game.CellUnopened {
			continue
		}
		player.board.Open(position.X, position.Y)
		progress = true
	}
	if !progress {
		return false, nil
	}

	//** Chord everywhere: only cells whose flags match their count react
	for y := range player.board.Height() {
		for x := range player.board.Width() {
			player.board.Chord(x, y)
		}
	}
	return true, nil
}

// Play steps until the game ends or no further verdict can be derived, and
// returns the final result together with the number of steps taken. A
// Playing result means the position is ambiguous for pure deduction.
func (player *Player) Play() (game.Result, int, error) {
	steps := 0
	for {
		progress, err := player.Step()
		if err != nil {
			return player.board.Result(), steps, err
		}
		if !progress {
			return player.board.Result(), steps, nil
		}
		steps++
		if player.board.Result() != game.Playing {
			return player.board.Result(), steps, nil
		}
	}
}

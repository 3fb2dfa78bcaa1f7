package game

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/mitchellh/mapstructure"
)

type CellKind uint8

const (
	Hidden CellKind = iota
	Flagged
	Revealed
)

// SnapshotCell is the player-visible state of one cell. Count carries the
// nearby-mine count and is meaningful for revealed cells only.
type SnapshotCell struct {
	Kind  CellKind
	Count int
}

// Snapshot is the player-visible projection of a board: what the solver is
// allowed to know. Questioned cells project to Hidden since their marker
// carries no information.
type Snapshot struct {
	Width  int
	Height int
	Cells  [][]SnapshotCell // indexed Cells[y][x]
}

func (snapshot Snapshot) Cell(x, y int) SnapshotCell {
	return snapshot.Cells[y][x]
}

func (snapshot Snapshot) NearbyCells(x, y int) []Position {
	return NearbyPositions(snapshot.Width, snapshot.Height, x, y)
}

// Snapshot projects the board into what the player currently sees.
func (b *Board) Snapshot() Snapshot {
	cells := make([][]SnapshotCell, b.Height())
	for y := range b.Height() {
		cells[y] = make([]SnapshotCell, b.Width())
		for x := range b.Width() {
			switch b.cells[y][x] {
			case CellOpened:
				cells[y][x] = SnapshotCell{Kind: Revealed, Count: b.NearbyMines(x, y)}
			case CellFlagged:
				cells[y][x] = SnapshotCell{Kind: Flagged}
			default:
				cells[y][x] = SnapshotCell{Kind: Hidden}
			}
		}
	}
	return Snapshot{Width: b.Width(), Height: b.Height(), Cells: cells}
}

type snapshotInput struct {
	Width  int
	Height int
	Cells  [][]string
}

// SnapshotFromJson reads a snapshot document: a cell matrix of "." for
// hidden, "?" for questioned, "F" for flagged and "0".."8" for revealed
// cells, together with the grid dimensions.
func SnapshotFromJson(file string) (Snapshot, error) {
	bytes, err := os.ReadFile(file)
	if err != nil {
		return Snapshot{}, fmt.Errorf("cannot read snapshot file: %w", err)
	}

	var inputJson map[string]any
	if err := json.Unmarshal(bytes, &inputJson); err != nil {
		return Snapshot{}, fmt.Errorf("cannot parse snapshot file: %w", err)
	}

	var input snapshotInput
	if err := mapstructure.Decode(inputJson, &input); err != nil {
		return Snapshot{}, fmt.Errorf("cannot decode snapshot document: %w", err)
	}

	return snapshotFromInput(input)
}

func snapshotFromInput(input snapshotInput) (Snapshot, error) {
	if input.Width < 1 || input.Height < 1 {
		return Snapshot{}, fmt.Errorf("snapshot dimensions must be positive: %vx%v", input.Width, input.Height)
	} else if len(input.Cells) != input.Height {
		return Snapshot{}, fmt.Errorf("snapshot has %v rows, expected %v", len(input.Cells), input.Height)
	}

	cells := make([][]SnapshotCell, input.Height)
	for y, row := range input.Cells {
		if len(row) != input.Width {
			return Snapshot{}, fmt.Errorf("snapshot row %v has %v cells, expected %v", y, len(row), input.Width)
		}
		cells[y] = make([]SnapshotCell, input.Width)
		for x, symbol := range row {
			switch symbol {
			case ".", "?":
				cells[y][x] = SnapshotCell{Kind: Hidden}
			case "F", "f":
				cells[y][x] = SnapshotCell{Kind: Flagged}
			default:
				count, err := strconv.Atoi(symbol)
				if err != nil || count < 0 || count > 8 {
					return Snapshot{}, fmt.Errorf("invalid cell symbol %q at (%v, %v)", symbol, x, y)
				}
				cells[y][x] = SnapshotCell{Kind: Revealed, Count: count}
			}
		}
	}

	return Snapshot{Width: input.Width, Height: input.Height, Cells: cells}, nil
}

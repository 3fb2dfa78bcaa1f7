package game

import (
	"os"
	"path"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBoardSnapshot(t *testing.T) {
	// Arrange
	board, _ := NewBoardFromMines(3, 1, []Position{{X: 0, Y: 0}})
	board.ToggleFlag(0, 0)
	board.Open(1, 0)
	board.ToggleFlag(2, 0)
	board.ToggleFlag(2, 0) // questioned

	// Act
	snapshot := board.Snapshot()

	// Assert
	assert.Equal(t, 3, snapshot.Width)
	assert.Equal(t, 1, snapshot.Height)
	assert.Equal(t, SnapshotCell{Kind: Flagged}, snapshot.Cell(0, 0))
	assert.Equal(t, SnapshotCell{Kind: Revealed, Count: 1}, snapshot.Cell(1, 0))
	// Question markers carry no information for the solver
	assert.Equal(t, SnapshotCell{Kind: Hidden}, snapshot.Cell(2, 0))
}

func TestSnapshotFromJson(t *testing.T) {
	writeSnapshot := func(t *testing.T, document string) string {
		file := path.Join(t.TempDir(), "snapshot.json")
		if err := os.WriteFile(file, []byte(document), 0644); err != nil {
			t.Fatalf("cannot write snapshot file: %v", err)
		}
		return file
	}

	t.Run("Valid document", func(t *testing.T) {
		// Arrange
		file := writeSnapshot(t, `{
			"width": 3,
			"height": 2,
			"cells": [
				["1", ".", "F"],
				["?", "0", "8"]
			]
		}`)

		// Act
		snapshot, err := SnapshotFromJson(file)

		// Assert
		assert.Nil(t, err)
		assert.Equal(t, SnapshotCell{Kind: Revealed, Count: 1}, snapshot.Cell(0, 0))
		assert.Equal(t, SnapshotCell{Kind: Hidden}, snapshot.Cell(1, 0))
		assert.Equal(t, SnapshotCell{Kind: Flagged}, snapshot.Cell(2, 0))
		assert.Equal(t, SnapshotCell{Kind: Hidden}, snapshot.Cell(0, 1))
		assert.Equal(t, SnapshotCell{Kind: Revealed, Count: 0}, snapshot.Cell(1, 1))
		assert.Equal(t, SnapshotCell{Kind: Revealed, Count: 8}, snapshot.Cell(2, 1))
	})

	t.Run("Dimension mismatch", func(t *testing.T) {
		// Arrange
		file := writeSnapshot(t, `{"width": 2, "height": 2, "cells": [[".", "."]]}`)

		// Act
		_, err := SnapshotFromJson(file)

		// Assert
		assert.NotNil(t, err)
	})

	t.Run("Invalid cell symbol", func(t *testing.T) {
		// Arrange
		file := writeSnapshot(t, `{"width": 1, "height": 1, "cells": [["9"]]}`)

		// Act
		_, err := SnapshotFromJson(file)

		// Assert
		assert.NotNil(t, err)
	})

	t.Run("Missing file", func(t *testing.T) {
		// Act
		_, err := SnapshotFromJson(path.Join(t.TempDir(), "absent.json"))

		// Assert
		assert.NotNil(t, err)
	})
}

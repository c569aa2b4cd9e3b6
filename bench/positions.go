// Package bench loads sets of benchmark positions and times the exact
// solver on them.
package bench

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/domino14/othello/board"
)

//go:embed positions.yaml
var defaultPositions []byte

var ErrNoPositions = errors.New("no positions in benchmark set")

// Entry is one benchmark position as written in a YAML set.
type Entry struct {
	Name  string `yaml:"name"`
	Board string `yaml:"board"`
	Score *int   `yaml:"score,omitempty"`
	Move  string `yaml:"move,omitempty"`
}

type positionSet struct {
	Positions []Entry `yaml:"positions"`
}

// Position is a parsed Entry.
type Position struct {
	Entry
	Pos board.Position
	// ExpectedMove is -1 when the entry has no move.
	ExpectedMove int
}

// Parse decodes a YAML set and checks every board and move in it.
func Parse(data []byte) ([]Position, error) {
	var set positionSet
	if err := yaml.Unmarshal(data, &set); err != nil {
		return nil, fmt.Errorf("decoding benchmark set: %w", err)
	}
	if len(set.Positions) == 0 {
		return nil, ErrNoPositions
	}
	positions := make([]Position, 0, len(set.Positions))
	for i, e := range set.Positions {
		if e.Name == "" {
			e.Name = fmt.Sprintf("position-%d", i+1)
		}
		pos, err := board.Parse(e.Board)
		if err != nil {
			return nil, fmt.Errorf("position %s: %w", e.Name, err)
		}
		p := Position{Entry: e, Pos: pos, ExpectedMove: -1}
		if e.Move != "" {
			p.ExpectedMove, err = board.CoordToIndex(e.Move)
			if err != nil {
				return nil, fmt.Errorf("position %s: %w", e.Name, err)
			}
		}
		positions = append(positions, p)
	}
	return positions, nil
}

// Load reads a YAML set from path, or the built-in set if path is empty.
func Load(path string) ([]Position, error) {
	if path == "" {
		return Parse(defaultPositions)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

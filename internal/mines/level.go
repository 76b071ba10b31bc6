package mines

import (
	"fmt"
	"strings"
)

type Level struct {
	Name                 string
	Rows, Columns, Mines int
}

var (
	Beginner     = Level{Name: "beginner", Rows: 8, Columns: 8, Mines: 10}
	Intermediate = Level{Name: "intermediate", Rows: 16, Columns: 16, Mines: 40}
	Expert       = Level{Name: "expert", Rows: 16, Columns: 30, Mines: 99}
)

var Levels = []Level{Beginner, Intermediate, Expert}

func ParseLevel(name string) (Level, error) {
	for _, level := range Levels {
		if strings.EqualFold(level.Name, name) {
			return level, nil
		}
	}
	return Level{}, fmt.Errorf("%w: %q", ErrUnknownLevel, name)
}

func (l Level) String() string {
	return fmt.Sprintf("%s %dx%d(%d)", l.Name, l.Rows, l.Columns, l.Mines)
}

func GenerateLevel(l Level, r Rand) (*Board, error) {
	return Generate(l.Rows, l.Columns, l.Mines, r)
}

package mines

import "fmt"

// Code is the single integer a cell is stored as.
//
//   - 0 to 8 hidden safe cell with that many mined neighbors, 9 hidden mine
//   - 10 to 19 the same values, flagged
//   - -1 to -9 revealed safe cell with 0 to 8 mined neighbors
//   - -10 revealed (exploded) mine
//
// Codes only cross the persistence boundary; everything else works on [Cell].
type Code int16

const (
	codeMine         Code = 9
	codeFlagOffset   Code = 10
	codeRevealedMine Code = -10
)

func Encode(c Cell) Code {
	var base Code
	if c.content.mine {
		base = codeMine
	} else {
		base = Code(c.content.adjacent)
	}
	switch c.visibility {
	case Flagged:
		return base + codeFlagOffset
	case Revealed:
		if c.content.mine {
			return codeRevealedMine
		}
		return -base - 1
	default:
		return base
	}
}

func Decode(code Code) (Cell, error) {
	switch {
	case code == codeRevealedMine:
		return NewCell(MineContent(), Revealed), nil
	case -9 <= code && code <= -1:
		return NewCell(SafeContent(int(-code-1)), Revealed), nil
	case 0 <= code && code <= 19:
		visibility := Hidden
		if code >= codeFlagOffset {
			visibility = Flagged
			code -= codeFlagOffset
		}
		if code == codeMine {
			return NewCell(MineContent(), visibility), nil
		}
		return NewCell(SafeContent(int(code)), visibility), nil
	default:
		return Cell{}, fmt.Errorf("%w: %d", ErrInvalidCode, code)
	}
}

package mines

import "strconv"

type Visibility uint8

const (
	Hidden Visibility = iota
	Flagged
	Revealed
)

func (v Visibility) String() string {
	switch v {
	case Hidden:
		return "hidden"
	case Flagged:
		return "flagged"
	case Revealed:
		return "revealed"
	default:
		return "Visibility(" + strconv.Itoa(int(v)) + ")"
	}
}

// Content is what a cell holds: either a mine or the number of mined
// neighbors (0 to 8).
type Content struct {
	mine     bool
	adjacent uint8
}

func MineContent() Content {
	return Content{mine: true}
}

// SafeContent panics if n is not in 0..8.
func SafeContent(n int) Content {
	if n < 0 || n > 8 {
		panic("mines: adjacent mine count out of range: " + strconv.Itoa(n))
	}
	return Content{adjacent: uint8(n)}
}

func (c Content) IsMine() bool {
	return c.mine
}

// Adjacent returns the mined neighbors count; it is 0 for mines.
func (c Content) Adjacent() int {
	return int(c.adjacent)
}

func (c Content) String() string {
	if c.mine {
		return "mine"
	}
	return "safe(" + strconv.Itoa(int(c.adjacent)) + ")"
}

type Cell struct {
	content    Content
	visibility Visibility
}

func NewCell(content Content, visibility Visibility) Cell {
	return Cell{content: content, visibility: visibility}
}

func (c Cell) Content() Content       { return c.content }
func (c Cell) Visibility() Visibility { return c.visibility }

func (c Cell) IsMine() bool     { return c.content.mine }
func (c Cell) IsRevealed() bool { return c.visibility == Revealed }
func (c Cell) IsFlagged() bool  { return c.visibility == Flagged }

func (c Cell) with(v Visibility) Cell {
	c.visibility = v
	return c
}

const (
	glyphHidden  = '#'
	glyphFlagged = '?'
	glyphMine    = '*'
	glyphEmpty   = ' '
)

// Glyph renders a cell. revealAll exposes the content of hidden and flagged
// cells and must only be used once the game is over.
func Glyph(c Cell, revealAll bool) rune {
	if !revealAll {
		switch c.visibility {
		case Hidden:
			return glyphHidden
		case Flagged:
			return glyphFlagged
		}
	}
	if c.content.mine {
		return glyphMine
	}
	if c.content.adjacent == 0 {
		return glyphEmpty
	}
	return rune('0' + c.content.adjacent)
}

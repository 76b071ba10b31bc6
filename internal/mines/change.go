package mines

// Change is the outcome of one action on a game: the status and board the
// game moves to. The zero value is [NoChanges].
type Change struct {
	GameID int64
	Status Status
	Board  *Board
}

// NoChanges is returned by actions that are valid to request but have
// nothing to do. It must never be persisted.
var NoChanges = Change{}

func (c Change) HasNoChanges() bool {
	return c.Status == ""
}

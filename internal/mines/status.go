package mines

import (
	"fmt"
	"strings"
)

type Status string

const (
	Created Status = "CREATED"
	Playing Status = "PLAYING"
	Paused  Status = "PAUSED"
	Won     Status = "WON"
	Loose   Status = "LOOSE"
)

func ParseStatus(s string) (Status, error) {
	switch status := Status(strings.ToUpper(s)); status {
	case Created, Playing, Paused, Won, Loose:
		return status, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidStatus, s)
	}
}

func (s Status) IsTerminal() bool {
	return s == Won || s == Loose
}

func (s Status) String() string {
	return string(s)
}

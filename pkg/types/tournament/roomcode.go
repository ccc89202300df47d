package tournamenttypes

import (
	"errors"
	"strings"
)

// MaxRoomCodeLength is the longest room code a referee may choose.
const MaxRoomCodeLength = 5

// ErrInvalidRoomCode is returned for codes that are empty, too long or not alphanumeric.
var ErrInvalidRoomCode = errors.New("room code must be 1-5 letters or digits")

// NormalizeRoomCode trims and upper-cases a room code and validates it.
func NormalizeRoomCode(raw string) (string, error) {
	code := strings.ToUpper(strings.TrimSpace(raw))
	if len(code) == 0 || len(code) > MaxRoomCodeLength {
		return "", ErrInvalidRoomCode
	}
	for _, r := range code {
		if (r < 'A' || r > 'Z') && (r < '0' || r > '9') {
			return "", ErrInvalidRoomCode
		}
	}
	return code, nil
}

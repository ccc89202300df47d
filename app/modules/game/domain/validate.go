package gamedomain

import (
	"errors"
	"fmt"
	"strings"

	gametypes "github.com/Black-And-White-Club/party-bracket/pkg/types/game"
)

var (
	ErrInvalidGameType = errors.New("invalid game type")
	ErrInvalidStat     = errors.New("invalid stat")
)

// GameTypeSpec is the parsed, validated form of a game type's JSON columns.
type GameTypeSpec struct {
	PlayerInputs  []gametypes.Input
	RefereeInputs []gametypes.Input
	Titles        []gametypes.TitleDefinition
}

// ParseGameType validates a game type. Every title must read a stat some input produces.
func ParseGameType(gt *gametypes.GameType) (*GameTypeSpec, error) {
	if strings.TrimSpace(gt.Name) == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidGameType)
	}
	playerInputs, err := gametypes.ParseInputs(gt.PlayerInputs)
	if err != nil {
		return nil, fmt.Errorf("%w: player inputs: %w", ErrInvalidGameType, err)
	}
	refereeInputs, err := gametypes.ParseInputs(gt.RefereeInputs)
	if err != nil {
		return nil, fmt.Errorf("%w: referee inputs: %w", ErrInvalidGameType, err)
	}
	titles, err := gametypes.ParseTitleDefinitions(gt.TitleDefinitions)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidGameType, err)
	}

	spec := &GameTypeSpec{PlayerInputs: playerInputs, RefereeInputs: refereeInputs, Titles: titles}
	for _, def := range titles {
		if spec.input(def.Condition.Stat()) == nil {
			return nil, fmt.Errorf("%w: title %q reads unknown stat %q", ErrInvalidGameType, def.Name, def.Condition.Stat())
		}
	}
	return spec, nil
}

func (s *GameTypeSpec) input(key string) gametypes.Input {
	for _, in := range s.PlayerInputs {
		if in.StatKey() == key {
			return in
		}
	}
	for _, in := range s.RefereeInputs {
		if in.StatKey() == key {
			return in
		}
	}
	return nil
}

// ValidateStats checks every submitted stat against the input that produces it.
func (s *GameTypeSpec) ValidateStats(stats []gametypes.StatInput) error {
	if len(stats) == 0 {
		return fmt.Errorf("%w: no stats submitted", ErrInvalidStat)
	}
	seen := map[string]bool{}
	for _, st := range stats {
		if seen[st.Key] {
			return fmt.Errorf("%w: duplicate key %q", ErrInvalidStat, st.Key)
		}
		seen[st.Key] = true
		in := s.input(st.Key)
		if in == nil {
			return fmt.Errorf("%w: unknown key %q", ErrInvalidStat, st.Key)
		}
		if !in.Accepts(st.Value) {
			return fmt.Errorf("%w: %q rejects %s", ErrInvalidStat, st.Key, string(st.Value))
		}
	}
	return nil
}

package tournamenttypes

// Role is a player's role inside one tournament.
type Role string

const (
	RoleReferee   Role = "referee"
	RolePlayer    Role = "player"
	RoleSpectator Role = "spectator"
)

// IsValid checks if the role is a valid value.
func (r Role) IsValid() bool {
	switch r {
	case RoleReferee, RolePlayer, RoleSpectator:
		return true
	default:
		return false
	}
}

// CanJoinTeam reports whether a player with this role may be placed on a team.
func (r Role) CanJoinTeam() bool {
	return r == RolePlayer
}

func (r Role) String() string {
	return string(r)
}

package authguard

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	authdomain "github.com/Black-And-White-Club/party-bracket/app/modules/auth/domain"
	"github.com/Black-And-White-Club/party-bracket/pkg/events"
	gameevents "github.com/Black-And-White-Club/party-bracket/pkg/events/game"
	tournamentevents "github.com/Black-And-White-Club/party-bracket/pkg/events/tournament"
	"github.com/Black-And-White-Club/party-bracket/pkg/handlerwrapper"
	"github.com/Black-And-White-Club/party-bracket/pkg/observability/attr"
	gametypes "github.com/Black-And-White-Club/party-bracket/pkg/types/game"
	tournamenttypes "github.com/Black-And-White-Club/party-bracket/pkg/types/tournament"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

var (
	ErrNoSession       = errors.New("command requires a session")
	ErrSpectator       = errors.New("spectators cannot issue commands")
	ErrNotYourSeat     = errors.New("command names another player")
	ErrOtherTournament = errors.New("command targets another tournament")
	ErrRefereeOnly     = errors.New("only the referee can do this")
)

// ErrorCode maps guard rejections onto reply codes.
var ErrorCode = events.CodeTable(map[error]string{
	ErrNoSession:       "UNAUTHORIZED",
	ErrSpectator:       "FORBIDDEN",
	ErrNotYourSeat:     "FORBIDDEN",
	ErrOtherTournament: "FORBIDDEN",
	ErrRefereeOnly:     "NOT_REFEREE",
})

// Actor fields. player_id is the caller on team and stat commands, but the drafted player on
// draft_player, so each rule names its own.
const (
	fieldActor   = "actor_id"
	fieldCaptain = "captain_id"
	fieldVoter   = "voter_id"
	fieldPlayer  = "player_id"
)

// rule is what a seat-bound command demands of its caller.
type rule struct {
	// self is the payload field that must name the caller's seat.
	self string
	// refereeSelf lets the referee act on behalf of the player named in self.
	refereeSelf bool
	referee     bool
}

// rules lists the seat-bound commands. Subjects not listed (create, join, reconnect, read
// queries) pass through: they carry no seat to impersonate.
var rules = map[string]rule{
	tournamentevents.CancelTournamentRequestedV1:  {self: fieldActor},
	tournamentevents.StartTournamentRequestedV1:   {self: fieldActor},
	tournamentevents.CreateTeamRequestedV1:        {},
	tournamentevents.UpdateTeamNameRequestedV1:    {},
	tournamentevents.JoinTeamRequestedV1:          {self: fieldPlayer},
	tournamentevents.LeaveTeamRequestedV1:         {self: fieldPlayer},
	tournamentevents.VoteForLeaderRequestedV1:     {self: fieldVoter},
	tournamentevents.StartDraftRequestedV1:        {self: fieldActor},
	tournamentevents.DraftPlayerRequestedV1:       {self: fieldCaptain},
	tournamentevents.RevealLeadersRequestedV1:     {referee: true},
	tournamentevents.SubmitDicePickRequestedV1:    {},
	tournamentevents.ResetDiceRollRequestedV1:     {referee: true},
	tournamentevents.ConfirmDiceWinnerRequestedV1: {referee: true},

	gameevents.CreateGameTypeRequestedV1:    {},
	gameevents.PickGameRequestedV1:          {self: fieldPlayer},
	gameevents.SubmitPlayerStatsRequestedV1: {self: fieldPlayer, refereeSelf: true},
	gameevents.SubmitGameResultRequestedV1:  {referee: true},
	gameevents.EndGameRequestedV1:           {self: fieldActor},
	gameevents.CalculateTitlesRequestedV1:   {referee: true},
	gameevents.AdvanceRoundRequestedV1:      {referee: true},
	gameevents.GlobalTitlesRequestedV1:      {referee: true},
}

// TokenValidator turns a session token into claims.
type TokenValidator interface {
	ValidateToken(ctx context.Context, token string) (*authdomain.Claims, error)
}

// ScopeReader resolves which tournament a game or team belongs to.
type ScopeReader interface {
	GetGame(ctx context.Context, db bun.IDB, id uuid.UUID) (*gametypes.Game, error)
	ListTeams(ctx context.Context, db bun.IDB, tournamentID uuid.UUID) ([]*tournamenttypes.Team, error)
}

// scope holds the ids a command payload may carry. Absent fields stay uuid.Nil.
type scope struct {
	TournamentID uuid.UUID `json:"tournament_id"`
	GameID       uuid.UUID `json:"game_id"`
	TeamID       uuid.UUID `json:"team_id"`
	ActorID      uuid.UUID `json:"actor_id"`
	CaptainID    uuid.UUID `json:"captain_id"`
	VoterID      uuid.UUID `json:"voter_id"`
	PlayerID     uuid.UUID `json:"player_id"`
}

func (s scope) field(name string) uuid.UUID {
	switch name {
	case fieldActor:
		return s.ActorID
	case fieldCaptain:
		return s.CaptainID
	case fieldVoter:
		return s.VoterID
	case fieldPlayer:
		return s.PlayerID
	}
	return uuid.Nil
}

// Guard binds seat-bound commands to the session that sent them. Payload ids are only trusted
// once they match the session's seat and tournament.
type Guard struct {
	tokens    TokenValidator
	reader    ScopeReader
	publisher message.Publisher
	logger    *slog.Logger
	topicOf   func(*message.Message) string
}

// New creates a guard. reader may be nil, in which case game and team ids are not scoped.
func New(tokens TokenValidator, reader ScopeReader, publisher message.Publisher, logger *slog.Logger) *Guard {
	return &Guard{
		tokens:    tokens,
		reader:    reader,
		publisher: publisher,
		logger:    logger,
		topicOf: func(msg *message.Message) string {
			return message.SubscribeTopicFromCtx(msg.Context())
		},
	}
}

// Middleware is a router middleware. Rejected commands are answered on reply_to and acked
// without reaching the handler.
func (g *Guard) Middleware(h message.HandlerFunc) message.HandlerFunc {
	return func(msg *message.Message) ([]*message.Message, error) {
		topic := g.topicOf(msg)
		r, guarded := rules[topic]
		if !guarded {
			return h(msg)
		}

		claims, err := g.authorize(msg.Context(), r, msg)
		if err != nil {
			g.reject(msg, topic, err)
			return nil, nil
		}
		g.logger.DebugContext(msg.Context(), "Command authorized",
			attr.String("topic", topic),
			attr.UUID("player_id", claims.PlayerID),
		)
		return h(msg)
	}
}

// authorize checks msg against r and returns the caller's claims.
func (g *Guard) authorize(ctx context.Context, r rule, msg *message.Message) (*authdomain.Claims, error) {
	token := msg.Metadata.Get(handlerwrapper.MetadataSessionToken)
	if token == "" {
		return nil, ErrNoSession
	}
	claims, err := g.tokens.ValidateToken(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoSession, err)
	}
	if !claims.CanCommand() {
		return nil, ErrSpectator
	}

	var sc scope
	if err := json.Unmarshal(msg.Payload, &sc); err != nil {
		// The handler answers undecodable payloads itself.
		return claims, nil
	}

	isReferee := claims.Role == tournamenttypes.RoleReferee
	if r.referee && !isReferee {
		return nil, ErrRefereeOnly
	}
	if r.self != "" && sc.field(r.self) != claims.PlayerID && !(r.refereeSelf && isReferee) {
		return nil, fmt.Errorf("%w: %s", ErrNotYourSeat, r.self)
	}

	if sc.TournamentID != uuid.Nil && sc.TournamentID != claims.TournamentID {
		return nil, ErrOtherTournament
	}
	if g.reader == nil {
		return claims, nil
	}
	if sc.GameID != uuid.Nil {
		game, err := g.reader.GetGame(ctx, nil, sc.GameID)
		// Unknown games fall through so the handler reports GAME_NOT_FOUND.
		if err == nil && game.TournamentID != claims.TournamentID {
			return nil, ErrOtherTournament
		}
	}
	if sc.TeamID != uuid.Nil {
		teams, err := g.reader.ListTeams(ctx, nil, claims.TournamentID)
		if err != nil {
			return nil, fmt.Errorf("list teams: %w", err)
		}
		if !hasTeam(teams, sc.TeamID) {
			return nil, ErrOtherTournament
		}
	}
	return claims, nil
}

func (g *Guard) reject(msg *message.Message, topic string, err error) {
	ctx := msg.Context()
	g.logger.WarnContext(ctx, "Command rejected",
		attr.String("topic", topic),
		attr.String("message_id", msg.UUID),
		attr.Error(err),
	)

	rt := msg.Metadata.Get(handlerwrapper.MetadataReplyTo)
	if rt == "" {
		return
	}
	correlationID := msg.Metadata.Get(handlerwrapper.MetadataCorrelationID)
	if correlationID == "" {
		correlationID = msg.UUID
	}
	out, encErr := handlerwrapper.NewResultMessage(ctx, handlerwrapper.Result{
		Topic:   rt,
		Payload: events.FailureFrom(err, ErrorCode),
	}, correlationID)
	if encErr != nil {
		return
	}
	if pubErr := g.publisher.Publish(rt, out); pubErr != nil {
		g.logger.ErrorContext(ctx, "Failed to publish rejection", attr.String("topic", rt), attr.Error(pubErr))
	}
}

func hasTeam(teams []*tournamenttypes.Team, id uuid.UUID) bool {
	for _, t := range teams {
		if t.ID == id {
			return true
		}
	}
	return false
}

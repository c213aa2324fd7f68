package session

import (
	"context"
	"errors"
	"log/slog"

	"github.com/Sumit-Saurabh98/SyncWatch/internal/dispatcher"
	"github.com/Sumit-Saurabh98/SyncWatch/internal/domain"
	"github.com/Sumit-Saurabh98/SyncWatch/internal/repository/message"
	"github.com/Sumit-Saurabh98/SyncWatch/internal/repository/room"
)

var (
	ErrUnauthorized       = errors.New("not a participant of this room")
	ErrNotAMember         = errors.New("not a member of this room")
	ErrRoomFull           = errors.New("room is full")
	ErrPersistenceFailure = errors.New("persistence failure")
)

type iRegistry interface {
	Register(connID, userID string, sender domain.Sender) error
	IdentityOf(connID string) (string, error)
	Unregister(connID string) error
}

type iMembership interface {
	Join(roomID, connID string) []string
	Leave(roomID, connID string) []string
	MembersOf(roomID string) []string
	RoomsOf(connID string) []string
	IsMember(roomID, connID string) bool
}

type iDispatcher interface {
	Broadcast(ctx context.Context, roomID string, event *dispatcher.Event, excludeConnID string) int
}

type iRoomRepo interface {
	IsParticipant(ctx context.Context, userID, roomID string) (bool, error)
	GetProfile(ctx context.Context, userID string) (room.Profile, error)
	SetPlayerState(ctx context.Context, params *room.SetPlayerStateParams) error
	GetPlayerState(ctx context.Context, roomID string) (room.PlayerState, error)
}

type iMessageRepo interface {
	SaveMessage(ctx context.Context, params *message.SaveMessageParams) (message.Message, error)
	RecentMessages(ctx context.Context, roomID string, limit int) ([]message.Message, error)
}

type Config struct {
	MembersLimit int
	HistoryLimit int
}

type service struct {
	registry     iRegistry
	membership   iMembership
	dispatcher   iDispatcher
	roomRepo     iRoomRepo
	messageRepo  iMessageRepo
	logger       *slog.Logger
	membersLimit int
	historyLimit int
}

func NewService(
	registry iRegistry,
	membership iMembership,
	dispatcher iDispatcher,
	roomRepo iRoomRepo,
	messageRepo iMessageRepo,
	cfg *Config,
	logger *slog.Logger,
) *service {
	return &service{
		registry:     registry,
		membership:   membership,
		dispatcher:   dispatcher,
		roomRepo:     roomRepo,
		messageRepo:  messageRepo,
		logger:       logger,
		membersLimit: cfg.MembersLimit,
		historyLimit: cfg.HistoryLimit,
	}
}

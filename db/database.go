package db

import (
	"context"
	"database/sql"
	"time"

	"github.com/localboard/board-be/model"

	_ "github.com/go-sql-driver/mysql"
)

type Database interface {
	BoardDatabase
	UserDatabase
	GetSQLDB() *sql.DB
	Close() error
}

type CreateChatter struct {
	CreatorId    string
	CreatorAlias string // only set when Anonymous
	Content      string
	Anonymous    bool
}

type CreateBroadcast struct {
	CreatorId string
	Activity  model.Activity
	Location  string
	ExpiresAt time.Time
}

type CreateTradeOffer struct {
	CreatorId string
	Kind      model.TradeKind
	Have      string
	Want      string
	ImageUrl  string
}

type CreateDrop struct {
	CreatorId string
	Kind      model.DropKind
	Title     string
	Location  string
	EndsAt    *time.Time
	ImageUrl  string
}

// BoardDatabase holds the four per-kind tables backing the unified feed.
// The Get*s listings apply each kind's query-time live filter (trade: not
// completed, drop: active) and order by created_at descending.
type BoardDatabase interface {
	CreateChatter(ctx context.Context, req *CreateChatter) (chatterId int64, err error)
	GetChatterById(ctx context.Context, id int64) (*model.Chatter, error)
	GetChatters(ctx context.Context) ([]*model.Chatter, error)

	CreateBroadcast(ctx context.Context, req *CreateBroadcast) (broadcastId int64, err error)
	GetBroadcastById(ctx context.Context, id int64) (*model.Broadcast, error)
	GetBroadcasts(ctx context.Context) ([]*model.Broadcast, error)

	CreateTradeOffer(ctx context.Context, req *CreateTradeOffer) (tradeOfferId int64, err error)
	GetTradeOfferById(ctx context.Context, id int64) (*model.TradeOffer, error)
	GetTradeOffers(ctx context.Context) ([]*model.TradeOffer, error)
	MarkTradeOfferCompleted(ctx context.Context, id int64) error

	CreateDrop(ctx context.Context, req *CreateDrop) (dropId int64, err error)
	GetDropById(ctx context.Context, id int64) (*model.Drop, error)
	GetDrops(ctx context.Context) ([]*model.Drop, error)
	DeactivateDrop(ctx context.Context, id int64) error
}

type UserDatabase interface {
	CreateUser(context.Context, *model.User) error
	GetUser(context.Context, string) (*model.User, error)
}

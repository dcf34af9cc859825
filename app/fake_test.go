package app

import (
	"context"
	"io"
	"time"

	"github.com/localboard/board-be/db"
	"github.com/localboard/board-be/model"
)

// fakeBoardDB is an in-memory db.BoardDatabase with per-kind injectable errors
type fakeBoardDB struct {
	nextId int64

	chatters   []*model.Chatter
	broadcasts []*model.Broadcast
	trades     []*model.TradeOffer
	drops      []*model.Drop

	chattersErr   error
	broadcastsErr error
	tradesErr     error
	dropsErr      error

	// forgetRows makes every by-id lookup miss, as if the row vanished
	// between the insert and the read-back
	forgetRows bool
}

func (f *fakeBoardDB) CreateChatter(ctx context.Context, req *db.CreateChatter) (int64, error) {
	if f.chattersErr != nil {
		return 0, f.chattersErr
	}
	creator := &model.DisplayableUser{User: &model.User{Id: req.CreatorId}}
	if req.Anonymous {
		creator = &model.DisplayableUser{AnonymousUser: &model.AnonymousUser{DisplayName: req.CreatorAlias}}
	}
	f.nextId++
	f.chatters = append(f.chatters, &model.Chatter{
		Id:        f.nextId,
		Creator:   creator,
		Content:   req.Content,
		Anonymous: req.Anonymous,
		CreatedAt: time.Now(),
	})
	return f.nextId, nil
}

func (f *fakeBoardDB) GetChatterById(ctx context.Context, id int64) (*model.Chatter, error) {
	if f.forgetRows {
		return nil, nil
	}
	for _, chatter := range f.chatters {
		if chatter.Id == id {
			return chatter, nil
		}
	}
	return nil, nil
}

func (f *fakeBoardDB) GetChatters(ctx context.Context) ([]*model.Chatter, error) {
	if f.chattersErr != nil {
		return nil, f.chattersErr
	}
	return f.chatters, nil
}

func (f *fakeBoardDB) CreateBroadcast(ctx context.Context, req *db.CreateBroadcast) (int64, error) {
	if f.broadcastsErr != nil {
		return 0, f.broadcastsErr
	}
	f.nextId++
	f.broadcasts = append(f.broadcasts, &model.Broadcast{
		Id:        f.nextId,
		CreatorId: req.CreatorId,
		Activity:  req.Activity,
		Location:  req.Location,
		ExpiresAt: req.ExpiresAt,
		CreatedAt: time.Now(),
	})
	return f.nextId, nil
}

func (f *fakeBoardDB) GetBroadcastById(ctx context.Context, id int64) (*model.Broadcast, error) {
	if f.forgetRows {
		return nil, nil
	}
	for _, broadcast := range f.broadcasts {
		if broadcast.Id == id {
			return broadcast, nil
		}
	}
	return nil, nil
}

func (f *fakeBoardDB) GetBroadcasts(ctx context.Context) ([]*model.Broadcast, error) {
	if f.broadcastsErr != nil {
		return nil, f.broadcastsErr
	}
	return f.broadcasts, nil
}

func (f *fakeBoardDB) CreateTradeOffer(ctx context.Context, req *db.CreateTradeOffer) (int64, error) {
	if f.tradesErr != nil {
		return 0, f.tradesErr
	}
	f.nextId++
	f.trades = append(f.trades, &model.TradeOffer{
		Id:        f.nextId,
		CreatorId: req.CreatorId,
		Kind:      req.Kind,
		Have:      req.Have,
		Want:      req.Want,
		ImageUrl:  req.ImageUrl,
		CreatedAt: time.Now(),
	})
	return f.nextId, nil
}

func (f *fakeBoardDB) GetTradeOfferById(ctx context.Context, id int64) (*model.TradeOffer, error) {
	if f.forgetRows {
		return nil, nil
	}
	for _, trade := range f.trades {
		if trade.Id == id {
			return trade, nil
		}
	}
	return nil, nil
}

func (f *fakeBoardDB) GetTradeOffers(ctx context.Context) ([]*model.TradeOffer, error) {
	if f.tradesErr != nil {
		return nil, f.tradesErr
	}
	var incomplete []*model.TradeOffer
	for _, trade := range f.trades {
		if !trade.Completed {
			incomplete = append(incomplete, trade)
		}
	}
	return incomplete, nil
}

func (f *fakeBoardDB) MarkTradeOfferCompleted(ctx context.Context, id int64) error {
	for _, trade := range f.trades {
		if trade.Id == id {
			trade.Completed = true
		}
	}
	return nil
}

func (f *fakeBoardDB) CreateDrop(ctx context.Context, req *db.CreateDrop) (int64, error) {
	if f.dropsErr != nil {
		return 0, f.dropsErr
	}
	f.nextId++
	f.drops = append(f.drops, &model.Drop{
		Id:        f.nextId,
		CreatorId: req.CreatorId,
		Kind:      req.Kind,
		Title:     req.Title,
		Location:  req.Location,
		EndsAt:    req.EndsAt,
		ImageUrl:  req.ImageUrl,
		Active:    true,
		CreatedAt: time.Now(),
	})
	return f.nextId, nil
}

func (f *fakeBoardDB) GetDropById(ctx context.Context, id int64) (*model.Drop, error) {
	if f.forgetRows {
		return nil, nil
	}
	for _, drop := range f.drops {
		if drop.Id == id {
			return drop, nil
		}
	}
	return nil, nil
}

func (f *fakeBoardDB) GetDrops(ctx context.Context) ([]*model.Drop, error) {
	if f.dropsErr != nil {
		return nil, f.dropsErr
	}
	var active []*model.Drop
	for _, drop := range f.drops {
		if drop.Active {
			active = append(active, drop)
		}
	}
	return active, nil
}

func (f *fakeBoardDB) DeactivateDrop(ctx context.Context, id int64) error {
	for _, drop := range f.drops {
		if drop.Id == id {
			drop.Active = false
		}
	}
	return nil
}

type fakeImageStore struct {
	uploads []string
	err     error
}

func (f *fakeImageStore) Upload(ctx context.Context, blobName string, contents io.Reader) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.uploads = append(f.uploads, blobName)
	return "https://storage.example.com/" + blobName, nil
}

package planetscale

import (
	"context"
	"time"

	"github.com/upper/db/v4"

	db2 "github.com/localboard/board-be/db"
	"github.com/localboard/board-be/model"
)

type BroadcastDB struct {
	sess db.Session
}

func getBroadcastDB(sess db.Session) *BroadcastDB {
	return &BroadcastDB{sess}
}

func (bdb *BroadcastDB) CreateBroadcast(ctx context.Context, req *db2.CreateBroadcast) (int64, error) {
	res, err := bdb.sess.SQL().
		InsertInto("broadcast").
		Columns("creator_id", "activity", "location", "expires_at").
		Values(req.CreatorId, req.Activity, req.Location, req.ExpiresAt).
		ExecContext(ctx)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

type flattenedBroadcast struct {
	Id        int64          `db:"id"`
	CreatorId string         `db:"creator_id"`
	Activity  model.Activity `db:"activity"`
	Location  string         `db:"location"`
	ExpiresAt time.Time      `db:"expires_at"`
	CreatedAt time.Time      `db:"created_at"`
}

func (bdb *BroadcastDB) GetBroadcastById(ctx context.Context, id int64) (*model.Broadcast, error) {
	var broadcast flattenedBroadcast
	if err := bdb.sess.SQL().
		Select("*").
		From("broadcast").
		Where("id = ?", id).
		IteratorContext(ctx).
		One(&broadcast); err != nil {
		if err == db.ErrNoMoreRows {
			return nil, nil
		}
		return nil, err
	}
	return buildBroadcastFromFlattened(&broadcast), nil
}

// GetBroadcasts returns all broadcasts, expired ones included. Expiry
// filtering is left to display logic so consumers can re-derive time-frames.
func (bdb *BroadcastDB) GetBroadcasts(ctx context.Context) ([]*model.Broadcast, error) {
	var flattenedBroadcasts []flattenedBroadcast
	if err := bdb.sess.SQL().
		Select("*").
		From("broadcast").
		OrderBy("created_at DESC", "id DESC").
		IteratorContext(ctx).
		All(&flattenedBroadcasts); err != nil {
		return nil, err
	}
	broadcasts := make([]*model.Broadcast, len(flattenedBroadcasts))
	for i, flattened := range flattenedBroadcasts {
		broadcasts[i] = buildBroadcastFromFlattened(&flattened)
	}
	return broadcasts, nil
}

func buildBroadcastFromFlattened(broadcast *flattenedBroadcast) *model.Broadcast {
	return &model.Broadcast{
		Id:        broadcast.Id,
		CreatorId: broadcast.CreatorId,
		Activity:  broadcast.Activity,
		Location:  broadcast.Location,
		ExpiresAt: broadcast.ExpiresAt,
		CreatedAt: broadcast.CreatedAt,
	}
}

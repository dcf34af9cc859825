package planetscale

import (
	"context"
	"time"

	"github.com/upper/db/v4"

	db2 "github.com/localboard/board-be/db"
	"github.com/localboard/board-be/db/dao"
	"github.com/localboard/board-be/model"
)

type DropDB struct {
	sess db.Session
}

func getDropDB(sess db.Session) *DropDB {
	return &DropDB{sess}
}

func (ddb *DropDB) CreateDrop(ctx context.Context, req *db2.CreateDrop) (int64, error) {
	res, err := ddb.sess.SQL().
		InsertInto("food_drop").
		Columns("creator_id", "kind", "title", "location", "ends_at", "image_url").
		Values(req.CreatorId, req.Kind, req.Title, req.Location, dao.NullTimeFromPtr(req.EndsAt), req.ImageUrl).
		ExecContext(ctx)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

type flattenedDrop struct {
	Id        int64          `db:"id"`
	CreatorId string         `db:"creator_id"`
	Kind      model.DropKind `db:"kind"`
	Title     string         `db:"title"`
	Location  string         `db:"location"`
	EndsAt    dao.NullTime   `db:"ends_at"`
	ImageUrl  string         `db:"image_url"`
	Active    bool           `db:"active"`
	CreatedAt time.Time      `db:"created_at"`
}

func (ddb *DropDB) GetDropById(ctx context.Context, id int64) (*model.Drop, error) {
	var drop flattenedDrop
	if err := ddb.sess.SQL().
		Select("*").
		From("food_drop").
		Where("id = ?", id).
		IteratorContext(ctx).
		One(&drop); err != nil {
		if err == db.ErrNoMoreRows {
			return nil, nil
		}
		return nil, err
	}
	return buildDropFromFlattened(&drop), nil
}

// GetDrops lists active drops only
func (ddb *DropDB) GetDrops(ctx context.Context) ([]*model.Drop, error) {
	var flattenedDrops []flattenedDrop
	if err := ddb.sess.SQL().
		Select("*").
		From("food_drop").
		Where("active = ?", true).
		OrderBy("created_at DESC", "id DESC").
		IteratorContext(ctx).
		All(&flattenedDrops); err != nil {
		return nil, err
	}
	drops := make([]*model.Drop, len(flattenedDrops))
	for i, flattened := range flattenedDrops {
		drops[i] = buildDropFromFlattened(&flattened)
	}
	return drops, nil
}

func (ddb *DropDB) DeactivateDrop(ctx context.Context, id int64) error {
	_, err := ddb.sess.SQL().
		Update("food_drop").
		Set("active", false).
		Where("id = ?", id).
		ExecContext(ctx)
	return err
}

func buildDropFromFlattened(drop *flattenedDrop) *model.Drop {
	return &model.Drop{
		Id:        drop.Id,
		CreatorId: drop.CreatorId,
		Kind:      drop.Kind,
		Title:     drop.Title,
		Location:  drop.Location,
		EndsAt:    drop.EndsAt.AsTimePtr(),
		ImageUrl:  drop.ImageUrl,
		Active:    drop.Active,
		CreatedAt: drop.CreatedAt,
	}
}

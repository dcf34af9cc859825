package planetscale

import (
	"context"
	"time"

	"github.com/upper/db/v4"

	db2 "github.com/localboard/board-be/db"
	"github.com/localboard/board-be/model"
	"github.com/localboard/board-be/util"
)

type ChatterDB struct {
	sess db.Session
}

func getChatterDB(sess db.Session) *ChatterDB {
	return &ChatterDB{sess}
}

func (cdb *ChatterDB) CreateChatter(ctx context.Context, req *db2.CreateChatter) (int64, error) {
	res, err := cdb.sess.SQL().
		InsertInto("chatter").
		Columns("creator_id", "creator_alias", "content", "anonymous").
		Values(req.CreatorId, req.CreatorAlias, req.Content, req.Anonymous).
		ExecContext(ctx)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

type flattenedChatter struct {
	Id                 int64     `db:"id"`
	Content            string    `db:"content"`
	Anonymous          bool      `db:"anonymous"`
	CreatorId          string    `db:"creator_id"`
	CreatorAlias       string    `db:"creator_alias"`
	CreatorDisplayName string    `db:"display_name"`
	CreatedAt          time.Time `db:"created_at"`
}

var chatterColumns = []interface{}{
	"c.id",
	"c.content",
	"c.anonymous",
	"c.creator_id",
	"c.creator_alias",
	"person.display_name",
	"c.created_at",
}

func (cdb *ChatterDB) GetChatterById(ctx context.Context, id int64) (*model.Chatter, error) {
	var chatter flattenedChatter
	if err := cdb.sess.SQL().
		Select(chatterColumns...).
		From("chatter as c").
		Join("person").On("c.creator_id = person.firebase_id").
		Where("c.id = ?", id).
		IteratorContext(ctx).
		One(&chatter); err != nil {
		if err == db.ErrNoMoreRows {
			return nil, nil
		}
		return nil, err
	}
	return buildChatterFromFlattened(&chatter), nil
}

func (cdb *ChatterDB) GetChatters(ctx context.Context) ([]*model.Chatter, error) {
	var flattenedChatters []flattenedChatter
	if err := cdb.sess.SQL().
		Select(chatterColumns...).
		From("chatter as c").
		Join("person").On("c.creator_id = person.firebase_id").
		OrderBy("c.created_at DESC", "c.id DESC").
		IteratorContext(ctx).
		All(&flattenedChatters); err != nil {
		return nil, err
	}
	chatters := make([]*model.Chatter, len(flattenedChatters))
	for i, flattened := range flattenedChatters {
		chatters[i] = buildChatterFromFlattened(&flattened)
	}
	return chatters, nil
}

// buildChatterFromFlattened hides the real creator behind the stored alias for
// anonymous rows. The owning identity stays in the row either way.
func buildChatterFromFlattened(chatter *flattenedChatter) *model.Chatter {
	creator := &model.DisplayableUser{
		User: &model.User{
			Id:          chatter.CreatorId,
			DisplayName: chatter.CreatorDisplayName,
			Avatar:      util.Avatar(chatter.CreatorId),
		},
	}
	if chatter.Anonymous {
		creator = &model.DisplayableUser{
			AnonymousUser: &model.AnonymousUser{
				DisplayName: chatter.CreatorAlias,
				Avatar:      util.Avatar(chatter.CreatorAlias),
			},
		}
	}
	return &model.Chatter{
		Id:        chatter.Id,
		Creator:   creator,
		Content:   chatter.Content,
		Anonymous: chatter.Anonymous,
		CreatedAt: chatter.CreatedAt,
	}
}

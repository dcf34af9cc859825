package planetscale

import (
	"context"
	"time"

	"github.com/upper/db/v4"

	db2 "github.com/localboard/board-be/db"
	"github.com/localboard/board-be/model"
)

type TradeDB struct {
	sess db.Session
}

func getTradeDB(sess db.Session) *TradeDB {
	return &TradeDB{sess}
}

func (tdb *TradeDB) CreateTradeOffer(ctx context.Context, req *db2.CreateTradeOffer) (int64, error) {
	res, err := tdb.sess.SQL().
		InsertInto("trade_offer").
		Columns("creator_id", "kind", "have", "want", "image_url").
		Values(req.CreatorId, req.Kind, req.Have, req.Want, req.ImageUrl).
		ExecContext(ctx)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

type flattenedTradeOffer struct {
	Id        int64           `db:"id"`
	CreatorId string          `db:"creator_id"`
	Kind      model.TradeKind `db:"kind"`
	Have      string          `db:"have"`
	Want      string          `db:"want"`
	ImageUrl  string          `db:"image_url"`
	Completed bool            `db:"completed"`
	CreatedAt time.Time       `db:"created_at"`
}

func (tdb *TradeDB) GetTradeOfferById(ctx context.Context, id int64) (*model.TradeOffer, error) {
	var trade flattenedTradeOffer
	if err := tdb.sess.SQL().
		Select("*").
		From("trade_offer").
		Where("id = ?", id).
		IteratorContext(ctx).
		One(&trade); err != nil {
		if err == db.ErrNoMoreRows {
			return nil, nil
		}
		return nil, err
	}
	return buildTradeOfferFromFlattened(&trade), nil
}

// GetTradeOffers lists incomplete offers only
func (tdb *TradeDB) GetTradeOffers(ctx context.Context) ([]*model.TradeOffer, error) {
	var flattenedTrades []flattenedTradeOffer
	if err := tdb.sess.SQL().
		Select("*").
		From("trade_offer").
		Where("completed = ?", false).
		OrderBy("created_at DESC", "id DESC").
		IteratorContext(ctx).
		All(&flattenedTrades); err != nil {
		return nil, err
	}
	trades := make([]*model.TradeOffer, len(flattenedTrades))
	for i, flattened := range flattenedTrades {
		trades[i] = buildTradeOfferFromFlattened(&flattened)
	}
	return trades, nil
}

func (tdb *TradeDB) MarkTradeOfferCompleted(ctx context.Context, id int64) error {
	_, err := tdb.sess.SQL().
		Update("trade_offer").
		Set("completed", true).
		Where("id = ?", id).
		ExecContext(ctx)
	return err
}

func buildTradeOfferFromFlattened(trade *flattenedTradeOffer) *model.TradeOffer {
	return &model.TradeOffer{
		Id:        trade.Id,
		CreatorId: trade.CreatorId,
		Kind:      trade.Kind,
		Have:      trade.Have,
		Want:      trade.Want,
		ImageUrl:  trade.ImageUrl,
		Completed: trade.Completed,
		CreatedAt: trade.CreatedAt,
	}
}

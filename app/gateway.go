package app

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/localboard/board-be/config"
	"github.com/localboard/board-be/db"
	"github.com/localboard/board-be/model"
	"github.com/localboard/board-be/util"
)

// ImageStore is the slice of the object store the gateway needs: store a blob,
// get back its public URL.
type ImageStore interface {
	Upload(ctx context.Context, blobName string, contents io.Reader) (publicUrl string, err error)
}

// ImageFile is a user-furnished image attachment
type ImageFile struct {
	Name     string
	Contents io.Reader
}

func (f *ImageFile) Close() error {
	if closer, ok := f.Contents.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}

// Gateway translates user-furnished, kind-specific input into validated rows
// and rows back into normalized feed posts. The acting identity is always
// passed in explicitly, resolved once by the session layer.
type Gateway struct {
	db     db.BoardDatabase
	images ImageStore
}

func NewGateway(boardDB db.BoardDatabase, images ImageStore) *Gateway {
	return &Gateway{
		db:     boardDB,
		images: images,
	}
}

// NormalizeChatterContent sanitizes and bounds chatter text. Callers that
// display input before it is stored must display this, never the raw body.
func NormalizeChatterContent(content string) (string, error) {
	content = strings.TrimSpace(util.XSSSanitize(content))
	if content == "" {
		return "", fmt.Errorf("%w: content is required", ErrInvalid)
	}
	if len([]rune(content)) > config.CHATTER_MAX_LEN {
		return "", fmt.Errorf("%w: content must be at most %v characters", ErrInvalid, config.CHATTER_MAX_LEN)
	}
	return content, nil
}

func ValidateBroadcastInput(activity model.Activity, location string) (string, error) {
	location = strings.TrimSpace(location)
	if location == "" {
		return "", fmt.Errorf("%w: location is required", ErrInvalid)
	}
	if !model.KnownActivity(activity) {
		return "", fmt.Errorf("%w: unknown activity %q", ErrInvalid, activity)
	}
	return location, nil
}

// ExpiryFromTimeFrame converts the relative time-frame tag chosen at creation
// time to an absolute expiry
func ExpiryFromTimeFrame(now time.Time, timeFrame model.TimeFrame) (time.Time, error) {
	switch timeFrame {
	case model.TimeFrameNow:
		return now.Add(2 * time.Hour), nil
	case model.TimeFrameWithinHour:
		return now.Add(time.Hour), nil
	case model.TimeFrameTonight:
		return util.EndOfDay(now), nil
	}
	return time.Time{}, fmt.Errorf("%w: unknown time frame %q", ErrInvalid, timeFrame)
}

func ValidateTradeOfferInput(kind model.TradeKind, have, want string) (string, string, error) {
	have, want = strings.TrimSpace(have), strings.TrimSpace(want)
	if have == "" || want == "" {
		return "", "", fmt.Errorf("%w: have and want are required", ErrInvalid)
	}
	if kind != model.TradeKindGoods && kind != model.TradeKindFavors {
		return "", "", fmt.Errorf("%w: unknown trade kind %q", ErrInvalid, kind)
	}
	return have, want, nil
}

func ValidateDropInput(kind model.DropKind, title, location string) (string, string, error) {
	title, location = strings.TrimSpace(title), strings.TrimSpace(location)
	if title == "" || location == "" {
		return "", "", fmt.Errorf("%w: title and location are required", ErrInvalid)
	}
	if kind != model.DropKindFree && kind != model.DropKindDealPromo {
		return "", "", fmt.Errorf("%w: unknown drop kind %q", ErrInvalid, kind)
	}
	return title, location, nil
}

func (g *Gateway) CreateChatter(ctx context.Context, user *model.User, content string, anonymous bool) (*model.Chatter, error) {
	if user == nil {
		return nil, ErrUnauthenticated
	}
	content, err := NormalizeChatterContent(content)
	if err != nil {
		return nil, err
	}

	req := &db.CreateChatter{
		CreatorId: user.Id,
		Content:   content,
		Anonymous: anonymous,
	}
	if anonymous {
		req.CreatorAlias = util.GenerateAlias()
	}
	id, err := g.db.CreateChatter(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInsertFailed, err)
	}
	chatter, err := g.db.GetChatterById(ctx, id)
	if err != nil {
		return nil, err
	}
	if chatter == nil {
		return nil, fmt.Errorf("%w: chatter %v missing after insert", ErrInsertFailed, id)
	}
	return chatter, nil
}

func (g *Gateway) CreateBroadcast(ctx context.Context, user *model.User, activity model.Activity, location string, timeFrame model.TimeFrame) (*model.Broadcast, error) {
	if user == nil {
		return nil, ErrUnauthenticated
	}
	location, err := ValidateBroadcastInput(activity, location)
	if err != nil {
		return nil, err
	}
	expiresAt, err := ExpiryFromTimeFrame(time.Now(), timeFrame)
	if err != nil {
		return nil, err
	}

	id, err := g.db.CreateBroadcast(ctx, &db.CreateBroadcast{
		CreatorId: user.Id,
		Activity:  activity,
		Location:  location,
		ExpiresAt: expiresAt,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInsertFailed, err)
	}
	broadcast, err := g.db.GetBroadcastById(ctx, id)
	if err != nil {
		return nil, err
	}
	if broadcast == nil {
		return nil, fmt.Errorf("%w: broadcast %v missing after insert", ErrInsertFailed, id)
	}
	return broadcast, nil
}

func (g *Gateway) CreateTradeOffer(ctx context.Context, user *model.User, kind model.TradeKind, have, want string, image *ImageFile) (*model.TradeOffer, error) {
	if user == nil {
		return nil, ErrUnauthenticated
	}
	have, want, err := ValidateTradeOfferInput(kind, have, want)
	if err != nil {
		return nil, err
	}

	// images only make sense for goods. favors silently ignore the attachment
	var imageUrl string
	if image != nil && kind == model.TradeKindGoods {
		if imageUrl, err = g.uploadImage(ctx, "trade", image); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrUploadFailed, err)
		}
	}

	id, err := g.db.CreateTradeOffer(ctx, &db.CreateTradeOffer{
		CreatorId: user.Id,
		Kind:      kind,
		Have:      have,
		Want:      want,
		ImageUrl:  imageUrl,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInsertFailed, err)
	}
	trade, err := g.db.GetTradeOfferById(ctx, id)
	if err != nil {
		return nil, err
	}
	if trade == nil {
		return nil, fmt.Errorf("%w: trade offer %v missing after insert", ErrInsertFailed, id)
	}
	return trade, nil
}

func (g *Gateway) CreateDrop(ctx context.Context, user *model.User, kind model.DropKind, title, location string, endsAt *time.Time, image *ImageFile) (*model.Drop, error) {
	if user == nil {
		return nil, ErrUnauthenticated
	}
	title, location, err := ValidateDropInput(kind, title, location)
	if err != nil {
		return nil, err
	}
	// DEAL_PROMO drops should carry an end time, but that's left to the caller.
	// FREE_DROP is open-ended ("until gone") and stores none.
	if kind == model.DropKindFree {
		endsAt = nil
	}

	var imageUrl string
	if image != nil {
		if imageUrl, err = g.uploadImage(ctx, "drop", image); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrUploadFailed, err)
		}
	}

	id, err := g.db.CreateDrop(ctx, &db.CreateDrop{
		CreatorId: user.Id,
		Kind:      kind,
		Title:     title,
		Location:  location,
		EndsAt:    endsAt,
		ImageUrl:  imageUrl,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInsertFailed, err)
	}
	drop, err := g.db.GetDropById(ctx, id)
	if err != nil {
		return nil, err
	}
	if drop == nil {
		return nil, fmt.Errorf("%w: drop %v missing after insert", ErrInsertFailed, id)
	}
	return drop, nil
}

// uploadImage namespaces blobs by kind directory and upload time to avoid
// collisions between same-named files
func (g *Gateway) uploadImage(ctx context.Context, dir string, image *ImageFile) (string, error) {
	blobName := fmt.Sprintf("%v/%v-%v", dir, time.Now().UnixMilli(), image.Name)
	return g.images.Upload(ctx, blobName, image.Contents)
}

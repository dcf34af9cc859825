package model

import (
	"time"
)

type PostKind string

const (
	PostKindChatter   PostKind = "CHATTER"
	PostKindBroadcast          = "BROADCAST"
	PostKindTrade              = "TRADE"
	PostKindDrop               = "DROP"
)

type TimeFrame string

const (
	TimeFrameNow        TimeFrame = "NOW"
	TimeFrameWithinHour           = "WITHIN_ONE_HOUR"
	TimeFrameTonight              = "TONIGHT"
)

type Activity string

const (
	ActivityStudy  Activity = "STUDY"
	ActivityEat             = "EAT"
	ActivityCoffee          = "COFFEE"
	ActivityWalk            = "WALK"
	ActivityGym             = "GYM"
	ActivityChill           = "CHILL"
)

var activities = map[Activity]bool{
	ActivityStudy:  true,
	ActivityEat:    true,
	ActivityCoffee: true,
	ActivityWalk:   true,
	ActivityGym:    true,
	ActivityChill:  true,
}

func KnownActivity(activity Activity) bool {
	return activities[activity]
}

type TradeKind string

const (
	TradeKindGoods  TradeKind = "GOODS"
	TradeKindFavors           = "FAVORS"
)

type DropKind string

const (
	DropKindFree      DropKind = "FREE_DROP"
	DropKindDealPromo          = "DEAL_PROMO"
)

type Chatter struct {
	Id        int64            `json:"id"`
	Creator   *DisplayableUser `json:"creator"`
	Content   string           `json:"content"`
	Anonymous bool             `json:"anonymous"`
	CreatedAt time.Time        `json:"createdAt"`
}

type Broadcast struct {
	Id        int64     `json:"id"`
	CreatorId string    `json:"-"`
	Activity  Activity  `json:"activity"`
	Location  string    `json:"location"`
	ExpiresAt time.Time `json:"expiresAt"`
	CreatedAt time.Time `json:"createdAt"`
}

// TimeFrameAt derives the display time-frame from the remaining time-to-expiry,
// not from the tag the broadcast was created with. Returns "" once expired.
func (b *Broadcast) TimeFrameAt(now time.Time) TimeFrame {
	remaining := b.ExpiresAt.Sub(now)
	if remaining <= 0 {
		return ""
	}
	year, month, day := now.Date()
	endOfDay := time.Date(year, month, day, 23, 59, 59, 0, now.Location())
	if !b.ExpiresAt.Before(endOfDay) {
		return TimeFrameTonight
	}
	if remaining <= time.Hour {
		return TimeFrameWithinHour
	}
	return TimeFrameNow
}

type TradeOffer struct {
	Id        int64     `json:"id"`
	CreatorId string    `json:"creatorId"`
	Kind      TradeKind `json:"kind"`
	Have      string    `json:"have"`
	Want      string    `json:"want"`
	ImageUrl  string    `json:"imageUrl,omitempty"`
	Completed bool      `json:"completed"`
	CreatedAt time.Time `json:"createdAt"`
}

type Drop struct {
	Id        int64      `json:"id"`
	CreatorId string     `json:"creatorId"`
	Kind      DropKind   `json:"kind"`
	Title     string     `json:"title"`
	Location  string     `json:"location"`
	EndsAt    *time.Time `json:"endsAt,omitempty"` // nil for FREE_DROP ("until gone")
	ImageUrl  string     `json:"imageUrl,omitempty"`
	Active    bool       `json:"active"`
	CreatedAt time.Time  `json:"createdAt"`
}

// Post is the normalized feed entry. Exactly one variant pointer is set,
// matching Kind.
type Post struct {
	Kind      PostKind    `json:"kind"`
	Id        int64       `json:"id"`
	TempId    string      `json:"tempId,omitempty"` // set only on optimistic entries
	CreatedAt time.Time   `json:"createdAt"`
	Chatter   *Chatter    `json:"chatter,omitempty"`
	Broadcast *Broadcast  `json:"broadcast,omitempty"`
	Trade     *TradeOffer `json:"trade,omitempty"`
	Drop      *Drop       `json:"drop,omitempty"`
}

func ChatterPost(chatter *Chatter) *Post {
	return &Post{
		Kind:      PostKindChatter,
		Id:        chatter.Id,
		CreatedAt: chatter.CreatedAt,
		Chatter:   chatter,
	}
}

func BroadcastPost(broadcast *Broadcast) *Post {
	return &Post{
		Kind:      PostKindBroadcast,
		Id:        broadcast.Id,
		CreatedAt: broadcast.CreatedAt,
		Broadcast: broadcast,
	}
}

func TradePost(trade *TradeOffer) *Post {
	return &Post{
		Kind:      PostKindTrade,
		Id:        trade.Id,
		CreatedAt: trade.CreatedAt,
		Trade:     trade,
	}
}

func DropPost(drop *Drop) *Post {
	return &Post{
		Kind:      PostKindDrop,
		Id:        drop.Id,
		CreatedAt: drop.CreatedAt,
		Drop:      drop,
	}
}

// Live reports whether the post is still eligible for display at now.
// Trade and drop rows are already filtered at query time; the broadcast check
// only matters here since expiry is left to display logic.
func (p *Post) Live(now time.Time) bool {
	switch p.Kind {
	case PostKindChatter:
		return true
	case PostKindBroadcast:
		return p.Broadcast == nil || p.Broadcast.ExpiresAt.After(now)
	case PostKindTrade:
		return p.Trade == nil || !p.Trade.Completed
	case PostKindDrop:
		return p.Drop == nil || p.Drop.Active
	}
	return false
}

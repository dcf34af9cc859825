package app

import (
	"context"
	"log"
	"sort"
	"sync"

	"github.com/getsentry/sentry-go"

	"github.com/localboard/board-be/model"
)

// FetchFeed issues the four per-kind list queries concurrently and returns
// their union sorted by creation time descending. A failed kind contributes
// nothing; feed availability wins over completeness, so the result is
// best-effort and never an outright failure.
func (g *Gateway) FetchFeed(ctx context.Context) []*model.Post {
	fetches := map[model.PostKind]func(context.Context) ([]*model.Post, error){
		model.PostKindChatter:   g.fetchChatterPosts,
		model.PostKindBroadcast: g.fetchBroadcastPosts,
		model.PostKindTrade:     g.fetchTradePosts,
		model.PostKindDrop:      g.fetchDropPosts,
	}

	var (
		postsLock sync.Mutex
		posts     []*model.Post
		wg        sync.WaitGroup
	)
	for kind, fetch := range fetches {
		wg.Add(1)
		go func(kind model.PostKind, fetch func(context.Context) ([]*model.Post, error)) {
			defer wg.Done()
			kindPosts, err := fetch(ctx)
			if err != nil {
				log.Printf("failed to fetch %v posts for feed: %v", kind, err)
				sentry.CaptureException(err)
				return
			}
			postsLock.Lock()
			posts = append(posts, kindPosts...)
			postsLock.Unlock()
		}(kind, fetch)
	}
	wg.Wait()

	sort.SliceStable(posts, func(i, j int) bool {
		return posts[i].CreatedAt.After(posts[j].CreatedAt)
	})
	return posts
}

func (g *Gateway) fetchChatterPosts(ctx context.Context) ([]*model.Post, error) {
	chatters, err := g.db.GetChatters(ctx)
	if err != nil {
		return nil, err
	}
	posts := make([]*model.Post, len(chatters))
	for i, chatter := range chatters {
		posts[i] = model.ChatterPost(chatter)
	}
	return posts, nil
}

func (g *Gateway) fetchBroadcastPosts(ctx context.Context) ([]*model.Post, error) {
	broadcasts, err := g.db.GetBroadcasts(ctx)
	if err != nil {
		return nil, err
	}
	posts := make([]*model.Post, len(broadcasts))
	for i, broadcast := range broadcasts {
		posts[i] = model.BroadcastPost(broadcast)
	}
	return posts, nil
}

func (g *Gateway) fetchTradePosts(ctx context.Context) ([]*model.Post, error) {
	trades, err := g.db.GetTradeOffers(ctx)
	if err != nil {
		return nil, err
	}
	posts := make([]*model.Post, len(trades))
	for i, trade := range trades {
		posts[i] = model.TradePost(trade)
	}
	return posts, nil
}

func (g *Gateway) fetchDropPosts(ctx context.Context) ([]*model.Post, error) {
	drops, err := g.db.GetDrops(ctx)
	if err != nil {
		return nil, err
	}
	posts := make([]*model.Post, len(drops))
	for i, drop := range drops {
		posts[i] = model.DropPost(drop)
	}
	return posts, nil
}

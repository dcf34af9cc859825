package controllers

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/localboard/board-be/model"
)

// FeedSource is the slice of the gateway the board needs
type FeedSource interface {
	FetchFeed(ctx context.Context) []*model.Post
}

const ReloadInterval = time.Minute * 5

// BoardController holds the served ordered post list and the optimistic-update
// protocol over it: a locally-fabricated post is shown immediately and later
// replaced with the confirmed row or removed on failure. Optimistic entries
// never go back to pending.
type BoardController struct {
	gateway      FeedSource
	postsLock    sync.Mutex
	posts        []*model.Post
	reloadTicker *time.Ticker
}

func NewBoardController(c context.Context, gateway FeedSource) *BoardController {
	controller := &BoardController{
		gateway: gateway,
	}
	controller.Reload(c)

	controller.reloadTicker = time.NewTicker(ReloadInterval)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				log.Println("recovered while attempting to reload the board", r)
			}
		}()
		for range controller.reloadTicker.C {
			controller.Reload(c)
		}
	}()

	return controller
}

// Reload replaces the entire list with a fresh fetch. Pending optimistic
// entries not yet confirmed server-side are dropped with it.
func (bc *BoardController) Reload(c context.Context) {
	posts := bc.gateway.FetchFeed(c)

	bc.postsLock.Lock()
	defer bc.postsLock.Unlock()
	bc.posts = posts
}

// Posts snapshots the list, applying each kind's live predicate at display
// time. Expired broadcasts drop out here, not at fetch time.
func (bc *BoardController) Posts(now time.Time) []*model.Post {
	bc.postsLock.Lock()
	defer bc.postsLock.Unlock()

	visible := make([]*model.Post, 0, len(bc.posts))
	for _, post := range bc.posts {
		if post.Live(now) {
			visible = append(visible, post)
		}
	}
	return visible
}

// AddOptimistic prepends a caller-fabricated post and returns the temporary id
// to reconcile it with later. No network call is made.
func (bc *BoardController) AddOptimistic(post *model.Post) string {
	tempId := "tmp-" + uuid.NewString()
	post.TempId = tempId

	bc.postsLock.Lock()
	defer bc.postsLock.Unlock()
	bc.posts = append([]*model.Post{post}, bc.posts...)
	return tempId
}

// ReplaceOptimistic swaps the entry with tempId for the confirmed post,
// preserving its position. No-op if the entry is gone.
func (bc *BoardController) ReplaceOptimistic(tempId string, confirmed *model.Post) {
	bc.postsLock.Lock()
	defer bc.postsLock.Unlock()
	for i, post := range bc.posts {
		if post.TempId == tempId {
			bc.posts[i] = confirmed
			return
		}
	}
}

// RemoveOptimistic removes the entry with tempId entirely, for when the real
// creation call ultimately fails.
func (bc *BoardController) RemoveOptimistic(tempId string) {
	bc.postsLock.Lock()
	defer bc.postsLock.Unlock()
	for i, post := range bc.posts {
		if post.TempId == tempId {
			bc.posts = append(bc.posts[:i], bc.posts[i+1:]...)
			return
		}
	}
}

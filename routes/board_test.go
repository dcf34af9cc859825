package routes

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/localboard/board-be/app"
	"github.com/localboard/board-be/controllers"
	"github.com/localboard/board-be/db"
	"github.com/localboard/board-be/middleware"
	"github.com/localboard/board-be/model"
	"github.com/localboard/board-be/util"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

// boardFakeDB covers the slice of db.BoardDatabase the create handlers reach,
// with hooks that observe the board while a create is still in flight
type boardFakeDB struct {
	nextId int64

	chatters   []*model.Chatter
	broadcasts []*model.Broadcast

	onCreateChatter   func()
	onCreateBroadcast func()
}

func (f *boardFakeDB) CreateChatter(ctx context.Context, req *db.CreateChatter) (int64, error) {
	if f.onCreateChatter != nil {
		f.onCreateChatter()
	}
	f.nextId++
	f.chatters = append(f.chatters, &model.Chatter{
		Id:        f.nextId,
		Creator:   &model.DisplayableUser{User: &model.User{Id: req.CreatorId}},
		Content:   req.Content,
		Anonymous: req.Anonymous,
		CreatedAt: time.Now(),
	})
	return f.nextId, nil
}

func (f *boardFakeDB) GetChatterById(ctx context.Context, id int64) (*model.Chatter, error) {
	for _, chatter := range f.chatters {
		if chatter.Id == id {
			return chatter, nil
		}
	}
	return nil, nil
}

func (f *boardFakeDB) GetChatters(ctx context.Context) ([]*model.Chatter, error) {
	return f.chatters, nil
}

func (f *boardFakeDB) CreateBroadcast(ctx context.Context, req *db.CreateBroadcast) (int64, error) {
	if f.onCreateBroadcast != nil {
		f.onCreateBroadcast()
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

func (f *boardFakeDB) GetBroadcastById(ctx context.Context, id int64) (*model.Broadcast, error) {
	for _, broadcast := range f.broadcasts {
		if broadcast.Id == id {
			return broadcast, nil
		}
	}
	return nil, nil
}

func (f *boardFakeDB) GetBroadcasts(ctx context.Context) ([]*model.Broadcast, error) {
	return f.broadcasts, nil
}

func (f *boardFakeDB) CreateTradeOffer(ctx context.Context, req *db.CreateTradeOffer) (int64, error) {
	return 0, nil
}

func (f *boardFakeDB) GetTradeOfferById(ctx context.Context, id int64) (*model.TradeOffer, error) {
	return nil, nil
}

func (f *boardFakeDB) GetTradeOffers(ctx context.Context) ([]*model.TradeOffer, error) {
	return nil, nil
}

func (f *boardFakeDB) MarkTradeOfferCompleted(ctx context.Context, id int64) error {
	return nil
}

func (f *boardFakeDB) CreateDrop(ctx context.Context, req *db.CreateDrop) (int64, error) {
	return 0, nil
}

func (f *boardFakeDB) GetDropById(ctx context.Context, id int64) (*model.Drop, error) {
	return nil, nil
}

func (f *boardFakeDB) GetDrops(ctx context.Context) ([]*model.Drop, error) {
	return nil, nil
}

func (f *boardFakeDB) DeactivateDrop(ctx context.Context, id int64) error {
	return nil
}

type noopImageStore struct{}

func (noopImageStore) Upload(ctx context.Context, blobName string, contents io.Reader) (string, error) {
	return "https://storage.example.com/" + blobName, nil
}

func newBoardTestHandler() (*boardRoutes, *boardFakeDB) {
	boardDB := &boardFakeDB{}
	gateway := app.NewGateway(boardDB, noopImageStore{})
	board := controllers.NewBoardController(context.Background(), gateway)
	return &boardRoutes{gateway: gateway, board: board}, boardDB
}

func jsonTestContext(t *testing.T, body string) *gin.Context {
	t.Helper()
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodPut, "/", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Set(middleware.USER_PROFILE_KEY, &model.User{Id: "firebase-uid-1", DisplayName: "Jordan"})
	return c
}

// the board is served to every session, so a bad or hostile body must be
// turned away before it can appear there even for a moment
func TestCreateChatterKeepsRawInputOffTheBoard(t *testing.T) {
	t.Run("invalid content never produces a board entry", func(t *testing.T) {
		handler, boardDB := newBoardTestHandler()
		c := jsonTestContext(t, `{"content":"   "}`)

		_, httpErr := handler.createChatter(c)

		if httpErr == nil || httpErr.Status != http.StatusBadRequest {
			t.Errorf("got %v, want a 400", httpErr)
		}
		if posts := handler.board.Posts(time.Now()); len(posts) != 0 {
			t.Errorf("got %d board entries for rejected input, want 0", len(posts))
		}
		if len(boardDB.chatters) != 0 {
			t.Errorf("got %d inserts, want 0", len(boardDB.chatters))
		}
	})
	t.Run("markup-only content never produces a board entry", func(t *testing.T) {
		handler, _ := newBoardTestHandler()
		c := jsonTestContext(t, `{"content":"<script>alert(1)</script>"}`)

		_, httpErr := handler.createChatter(c)

		if httpErr == nil || httpErr.Status != http.StatusBadRequest {
			t.Errorf("got %v, want a 400", httpErr)
		}
		if posts := handler.board.Posts(time.Now()); len(posts) != 0 {
			t.Errorf("got %d board entries for rejected input, want 0", len(posts))
		}
	})
	t.Run("in-flight entry holds sanitized content", func(t *testing.T) {
		handler, boardDB := newBoardTestHandler()
		var inflight []*model.Post
		boardDB.onCreateChatter = func() {
			inflight = handler.board.Posts(time.Now())
		}
		c := jsonTestContext(t, `{"content":"<script>alert(1)</script>see you at the quad"}`)

		_, httpErr := handler.createChatter(c)

		if httpErr != nil {
			t.Fatalf("unexpected error %v", httpErr)
		}
		if len(inflight) != 1 {
			t.Fatalf("got %d in-flight board entries, want 1", len(inflight))
		}
		if got := inflight[0].Chatter.Content; strings.Contains(got, "<script>") {
			t.Errorf("raw markup visible on the board: %q", got)
		} else if got != "see you at the quad" {
			t.Errorf("got in-flight content %q, want the sanitized text", got)
		}
	})
}

func TestCreateBroadcastPlaceholderExpiry(t *testing.T) {
	t.Run("in-flight entry carries the real time-frame expiry", func(t *testing.T) {
		handler, boardDB := newBoardTestHandler()
		var inflight []*model.Post
		boardDB.onCreateBroadcast = func() {
			inflight = handler.board.Posts(time.Now())
		}
		c := jsonTestContext(t, `{"activity":"STUDY","location":"Library","timeFrame":"TONIGHT"}`)

		_, httpErr := handler.createBroadcast(c)

		if httpErr != nil {
			t.Fatalf("unexpected error %v", httpErr)
		}
		if len(inflight) != 1 {
			t.Fatalf("got %d in-flight board entries, want 1", len(inflight))
		}
		if got, want := inflight[0].Broadcast.ExpiresAt, util.EndOfDay(time.Now()); !got.Equal(want) {
			t.Errorf("got in-flight expiry %v, want %v", got, want)
		}
	})
	t.Run("unknown time frame never produces a board entry", func(t *testing.T) {
		handler, boardDB := newBoardTestHandler()
		c := jsonTestContext(t, `{"activity":"STUDY","location":"Library","timeFrame":"SOMETIME"}`)

		_, httpErr := handler.createBroadcast(c)

		if httpErr == nil || httpErr.Status != http.StatusBadRequest {
			t.Errorf("got %v, want a 400", httpErr)
		}
		if posts := handler.board.Posts(time.Now()); len(posts) != 0 {
			t.Errorf("got %d board entries for rejected input, want 0", len(posts))
		}
		if len(boardDB.broadcasts) != 0 {
			t.Errorf("got %d inserts, want 0", len(boardDB.broadcasts))
		}
	})
}

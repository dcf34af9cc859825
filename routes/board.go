package routes

import (
	"errors"
	"net/http"
	"time"

	"firebase.google.com/go/v4/auth"
	"github.com/gin-gonic/gin"

	"github.com/localboard/board-be/app"
	"github.com/localboard/board-be/controllers"
	"github.com/localboard/board-be/db"
	"github.com/localboard/board-be/middleware"
	"github.com/localboard/board-be/model"
	"github.com/localboard/board-be/util"
)

type boardRoutes struct {
	db      db.Database
	gateway *app.Gateway
	board   *controllers.BoardController
}

func AddBoardRoutes(group *gin.RouterGroup, database db.Database, gateway *app.Gateway, board *controllers.BoardController, authClient *auth.Client) {
	routes := boardRoutes{database, gateway, board}
	boardGroup := group.Group("/board", middleware.Auth(database, authClient, &middleware.AuthConfig{}))
	boardGroup.GET("/feed", util.HandlerWrapper(routes.getFeed, &util.HandlerOpts{}))
	boardGroup.PUT("/chatters", util.HandlerWrapper(routes.createChatter, &util.HandlerOpts{}))
	boardGroup.PUT("/broadcasts", util.HandlerWrapper(routes.createBroadcast, &util.HandlerOpts{}))
	boardGroup.PUT("/trades", util.HandlerWrapper(routes.createTradeOffer, &util.HandlerOpts{}))
	boardGroup.PUT("/drops", util.HandlerWrapper(routes.createDrop, &util.HandlerOpts{}))
	boardGroup.POST("/trades/:id/complete", util.HandlerWrapper(routes.completeTradeOffer, &util.HandlerOpts{}))
	boardGroup.POST("/drops/:id/deactivate", util.HandlerWrapper(routes.deactivateDrop, &util.HandlerOpts{}))
}

// buildGatewayHTTPErr maps the gateway failure taxonomy onto response codes
func buildGatewayHTTPErr(err error) *util.HTTPError {
	switch {
	case errors.Is(err, app.ErrUnauthenticated):
		return &util.HTTPError{Status: http.StatusUnauthorized, Message: err.Error()}
	case errors.Is(err, app.ErrInvalid):
		return &util.HTTPError{Status: http.StatusBadRequest, Message: err.Error()}
	case errors.Is(err, app.ErrUploadFailed):
		return &util.HTTPError{Status: http.StatusBadGateway, Message: "image upload failed"}
	default:
		return util.BuildDbHTTPErr(err)
	}
}

func (br *boardRoutes) getFeed(c *gin.Context) (interface{}, *util.HTTPError) {
	if c.Query("reload") == "true" {
		br.board.Reload(c)
	}
	return gin.H{
		"posts": br.board.Posts(time.Now()),
	}, nil
}

type createChatterReq struct {
	Content   string `json:"content"`
	Anonymous bool   `json:"anonymous"`
}

func (br *boardRoutes) createChatter(c *gin.Context) (interface{}, *util.HTTPError) {
	var req createChatterReq
	if err := c.BindJSON(&req); err != nil {
		return nil, util.BuildJSONBindHTTPErr(err)
	}
	user := middleware.MustGetLocalUser(c)

	// the board is shared across sessions, so nothing from the raw body may
	// enter it. the placeholder holds the same normalized content the gateway
	// will store, and bad input never produces a placeholder at all.
	content, err := app.NormalizeChatterContent(req.Content)
	if err != nil {
		return nil, buildGatewayHTTPErr(err)
	}

	creator := &model.DisplayableUser{User: user}
	if req.Anonymous {
		alias := util.GenerateAlias()
		creator = &model.DisplayableUser{AnonymousUser: &model.AnonymousUser{
			DisplayName: alias,
			Avatar:      util.Avatar(alias),
		}}
	}
	tempId := br.board.AddOptimistic(model.ChatterPost(&model.Chatter{
		Creator:   creator,
		Content:   content,
		Anonymous: req.Anonymous,
		CreatedAt: time.Now(),
	}))

	chatter, err := br.gateway.CreateChatter(c, user, content, req.Anonymous)
	if err != nil {
		br.board.RemoveOptimistic(tempId)
		return nil, buildGatewayHTTPErr(err)
	}
	br.board.ReplaceOptimistic(tempId, model.ChatterPost(chatter))
	return chatter, nil
}

type createBroadcastReq struct {
	Activity  model.Activity  `json:"activity"`
	Location  string          `json:"location"`
	TimeFrame model.TimeFrame `json:"timeFrame"`
}

func (br *boardRoutes) createBroadcast(c *gin.Context) (interface{}, *util.HTTPError) {
	var req createBroadcastReq
	if err := c.BindJSON(&req); err != nil {
		return nil, util.BuildJSONBindHTTPErr(err)
	}
	user := middleware.MustGetLocalUser(c)

	location, err := app.ValidateBroadcastInput(req.Activity, req.Location)
	if err != nil {
		return nil, buildGatewayHTTPErr(err)
	}
	// give the placeholder the real expiry so it renders the right time frame
	expiresAt, err := app.ExpiryFromTimeFrame(time.Now(), req.TimeFrame)
	if err != nil {
		return nil, buildGatewayHTTPErr(err)
	}

	tempId := br.board.AddOptimistic(model.BroadcastPost(&model.Broadcast{
		CreatorId: user.Id,
		Activity:  req.Activity,
		Location:  location,
		ExpiresAt: expiresAt,
		CreatedAt: time.Now(),
	}))

	broadcast, err := br.gateway.CreateBroadcast(c, user, req.Activity, location, req.TimeFrame)
	if err != nil {
		br.board.RemoveOptimistic(tempId)
		return nil, buildGatewayHTTPErr(err)
	}
	br.board.ReplaceOptimistic(tempId, model.BroadcastPost(broadcast))
	return broadcast, nil
}

type createTradeOfferReq struct {
	Kind model.TradeKind `form:"kind"`
	Have string          `form:"have"`
	Want string          `form:"want"`
}

func (br *boardRoutes) createTradeOffer(c *gin.Context) (interface{}, *util.HTTPError) {
	var req createTradeOfferReq
	if err := c.ShouldBind(&req); err != nil {
		return nil, util.BuildJSONBindHTTPErr(err)
	}
	user := middleware.MustGetLocalUser(c)

	have, want, err := app.ValidateTradeOfferInput(req.Kind, req.Have, req.Want)
	if err != nil {
		return nil, buildGatewayHTTPErr(err)
	}

	image, httpErr := formImageMaybe(c)
	if httpErr != nil {
		return nil, httpErr
	}
	if image != nil {
		defer image.Close()
	}

	tempId := br.board.AddOptimistic(model.TradePost(&model.TradeOffer{
		CreatorId: user.Id,
		Kind:      req.Kind,
		Have:      have,
		Want:      want,
		CreatedAt: time.Now(),
	}))

	trade, err := br.gateway.CreateTradeOffer(c, user, req.Kind, have, want, image)
	if err != nil {
		br.board.RemoveOptimistic(tempId)
		return nil, buildGatewayHTTPErr(err)
	}
	br.board.ReplaceOptimistic(tempId, model.TradePost(trade))
	return trade, nil
}

type createDropReq struct {
	Kind     model.DropKind `form:"kind"`
	Title    string         `form:"title"`
	Location string         `form:"location"`
	EndsAt   string         `form:"endsAt"` // RFC3339, expected for DEAL_PROMO
}

func (br *boardRoutes) createDrop(c *gin.Context) (interface{}, *util.HTTPError) {
	var req createDropReq
	if err := c.ShouldBind(&req); err != nil {
		return nil, util.BuildJSONBindHTTPErr(err)
	}
	user := middleware.MustGetLocalUser(c)

	var endsAt *time.Time
	if req.EndsAt != "" {
		parsed, err := util.ParseTime(req.EndsAt)
		if err != nil {
			return nil, &util.HTTPError{Status: http.StatusBadRequest, Message: "endsAt must be RFC3339"}
		}
		endsAt = &parsed
	}

	title, location, err := app.ValidateDropInput(req.Kind, req.Title, req.Location)
	if err != nil {
		return nil, buildGatewayHTTPErr(err)
	}
	if req.Kind == model.DropKindFree {
		endsAt = nil
	}

	image, httpErr := formImageMaybe(c)
	if httpErr != nil {
		return nil, httpErr
	}
	if image != nil {
		defer image.Close()
	}

	tempId := br.board.AddOptimistic(model.DropPost(&model.Drop{
		CreatorId: user.Id,
		Kind:      req.Kind,
		Title:     title,
		Location:  location,
		EndsAt:    endsAt,
		Active:    true,
		CreatedAt: time.Now(),
	}))

	drop, err := br.gateway.CreateDrop(c, user, req.Kind, title, location, endsAt, image)
	if err != nil {
		br.board.RemoveOptimistic(tempId)
		return nil, buildGatewayHTTPErr(err)
	}
	br.board.ReplaceOptimistic(tempId, model.DropPost(drop))
	return drop, nil
}

// formImageMaybe extracts the optional image file from a multipart form
func formImageMaybe(c *gin.Context) (*app.ImageFile, *util.HTTPError) {
	fileHeader, err := c.FormFile("image")
	if err != nil {
		return nil, nil
	}
	file, err := fileHeader.Open()
	if err != nil {
		return nil, &util.HTTPError{Status: http.StatusBadRequest, Message: "image is unreadable"}
	}
	return &app.ImageFile{
		Name:     fileHeader.Filename,
		Contents: file,
	}, nil
}

func (br *boardRoutes) completeTradeOffer(c *gin.Context) (interface{}, *util.HTTPError) {
	id, httpErr := util.ParseId(c.Param("id"))
	if httpErr != nil {
		return nil, httpErr
	}
	user := middleware.MustGetLocalUser(c)

	trade, err := br.db.GetTradeOfferById(c, id)
	if err != nil {
		return nil, util.BuildDbHTTPErr(err)
	}
	if trade == nil {
		return nil, &util.HTTPError{Status: http.StatusNotFound, Message: "trade offer not found"}
	}
	if trade.CreatorId != user.Id {
		return nil, &util.HTTPError{Status: http.StatusForbidden, Message: "only the creator can complete an offer"}
	}
	if err := br.db.MarkTradeOfferCompleted(c, id); err != nil {
		return nil, util.BuildDbHTTPErr(err)
	}
	return nil, nil
}

func (br *boardRoutes) deactivateDrop(c *gin.Context) (interface{}, *util.HTTPError) {
	id, httpErr := util.ParseId(c.Param("id"))
	if httpErr != nil {
		return nil, httpErr
	}
	user := middleware.MustGetLocalUser(c)

	drop, err := br.db.GetDropById(c, id)
	if err != nil {
		return nil, util.BuildDbHTTPErr(err)
	}
	if drop == nil {
		return nil, &util.HTTPError{Status: http.StatusNotFound, Message: "drop not found"}
	}
	if drop.CreatorId != user.Id {
		return nil, &util.HTTPError{Status: http.StatusForbidden, Message: "only the creator can deactivate a drop"}
	}
	if err := br.db.DeactivateDrop(c, id); err != nil {
		return nil, util.BuildDbHTTPErr(err)
	}
	return nil, nil
}

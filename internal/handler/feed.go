package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"nhooyr.io/websocket"
	"nhooyr.io/websocket/wsjson"

	"tradeflex/internal/feed"
)

const feedWriteTimeout = 5 * time.Second

// FeedHandler streams freshly posted flexes over a websocket. Read-only for
// the client; anything it sends is drained and ignored.
type FeedHandler struct {
	Hub    *feed.Hub
	Logger *zap.Logger
}

func (h *FeedHandler) Register(r *gin.Engine) {
	r.GET("/api/feed/live", h.live)
}

// @Summary Live flex feed
// @Tags feed
// @Router /api/feed/live [get]
func (h *FeedHandler) live(c *gin.Context) {
	if h.Hub == nil {
		Error(c, http.StatusInternalServerError, "service unavailable", nil)
		return
	}
	conn, err := websocket.Accept(c.Writer, c.Request, nil)
	if err != nil {
		if h.Logger != nil {
			h.Logger.Debug("websocket accept failed", zap.Error(err))
		}
		return
	}
	defer conn.Close(websocket.StatusNormalClosure, "")

	items, cancel := h.Hub.Subscribe()
	defer cancel()

	ctx := c.Request.Context()

	// Reader goroutine: surfaces client disconnects and keeps control
	// frames flowing.
	readDone := make(chan struct{})
	go func() {
		defer close(readDone)
		for {
			if _, _, err := conn.Read(ctx); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case <-readDone:
			return
		case item, open := <-items:
			if !open {
				return
			}
			writeCtx, cancelWrite := context.WithTimeout(ctx, feedWriteTimeout)
			err := wsjson.Write(writeCtx, conn, item)
			cancelWrite()
			if err != nil {
				return
			}
		}
	}
}

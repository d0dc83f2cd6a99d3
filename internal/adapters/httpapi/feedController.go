package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type FeedController struct {
	fd     FeedUseCase
	logger *zap.Logger
}

func NewFeedController(fd FeedUseCase, logger *zap.Logger) *FeedController {
	return &FeedController{fd: fd, logger: logger}
}

func (ctl *FeedController) GetAllPosts(c *gin.Context) {
	posts, err := ctl.fd.GetAllPosts(c.Request.Context())
	if err != nil {
		respondError(c, ctl.logger, err)
		return
	}
	c.JSON(http.StatusOK, posts)
}

func (ctl *FeedController) GetFollowingPosts(c *gin.Context) {
	posts, err := ctl.fd.GetFollowingPosts(c.Request.Context(), currentUserID(c))
	if err != nil {
		respondError(c, ctl.logger, err)
		return
	}
	c.JSON(http.StatusOK, posts)
}

func (ctl *FeedController) GetUserPosts(c *gin.Context) {
	posts, err := ctl.fd.GetUserPosts(c.Request.Context(), c.Param("username"))
	if err != nil {
		respondError(c, ctl.logger, err)
		return
	}
	c.JSON(http.StatusOK, posts)
}

func (ctl *FeedController) GetLikedPosts(c *gin.Context) {
	posts, err := ctl.fd.GetLikedPosts(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, ctl.logger, err)
		return
	}
	c.JSON(http.StatusOK, posts)
}

func (ctl *FeedController) Search(c *gin.Context) {
	res, err := ctl.fd.Search(c.Request.Context(), c.Query("query"))
	if err != nil {
		respondError(c, ctl.logger, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

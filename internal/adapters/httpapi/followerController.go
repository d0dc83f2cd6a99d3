package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type FollowerController struct {
	fc     FollowerUseCase
	logger *zap.Logger
}

func NewFollowerController(fc FollowerUseCase, logger *zap.Logger) *FollowerController {
	return &FollowerController{fc: fc, logger: logger}
}

func (ctl *FollowerController) FollowUnfollowUser(c *gin.Context) {
	followed, err := ctl.fc.FollowUnfollowUser(c.Request.Context(), currentUserID(c), c.Param("id"))
	if err != nil {
		respondError(c, ctl.logger, err)
		return
	}

	msg := "User unfollowed successfully"
	if followed {
		msg = "User followed successfully"
	}
	c.JSON(http.StatusOK, gin.H{"message": msg})
}

func (ctl *FollowerController) GetFollowingUsers(c *gin.Context) {
	users, err := ctl.fc.GetFollowingUsers(c.Request.Context(), currentUserID(c))
	if err != nil {
		respondError(c, ctl.logger, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

func (ctl *FollowerController) GetFollowers(c *gin.Context) {
	users, err := ctl.fc.GetFollowersByUserID(c.Request.Context(), currentUserID(c))
	if err != nil {
		respondError(c, ctl.logger, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

func (ctl *FollowerController) GetSuggestedUsers(c *gin.Context) {
	users, err := ctl.fc.GetSuggestedUsers(c.Request.Context(), currentUserID(c))
	if err != nil {
		respondError(c, ctl.logger, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

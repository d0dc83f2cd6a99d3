package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type MessageController struct {
	mc     MessageUseCase
	logger *zap.Logger
}

func NewMessageController(mc MessageUseCase, logger *zap.Logger) *MessageController {
	return &MessageController{mc: mc, logger: logger}
}

func (ctl *MessageController) SendMessage(c *gin.Context) {
	var req struct {
		ReceiverID string `json:"receiverId" binding:"required"`
		Message    string `json:"message"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid input")
		return
	}
	msg, err := ctl.mc.SendMessage(c.Request.Context(), currentUserID(c), req.ReceiverID, req.Message)
	if err != nil {
		respondError(c, ctl.logger, err)
		return
	}
	c.JSON(http.StatusCreated, msg)
}

func (ctl *MessageController) GetChat(c *gin.Context) {
	msgs, err := ctl.mc.GetChat(c.Request.Context(), currentUserID(c), c.Param("userId"))
	if err != nil {
		respondError(c, ctl.logger, err)
		return
	}
	c.JSON(http.StatusOK, msgs)
}

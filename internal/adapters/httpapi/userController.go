package httpapi

import (
	"net/http"
	"time"

	"xclone/internal/adapters/httpapi/middleware"
	userPort "xclone/internal/ports/user"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type UserController struct {
	uc     UserUseCase
	logger *zap.Logger
}

func NewUserController(uc UserUseCase, logger *zap.Logger) *UserController {
	return &UserController{uc: uc, logger: logger}
}

func (ctl *UserController) Signup(c *gin.Context) {
	var req struct {
		FullName string `json:"fullName" binding:"required"`
		Username string `json:"username" binding:"required"`
		Email    string `json:"email" binding:"required"`
		Mobile   string `json:"mobile" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid input")
		return
	}
	u, err := ctl.uc.RegisterUser(c.Request.Context(), req.FullName, req.Username, req.Email, req.Mobile, req.Password)
	if err != nil {
		respondError(c, ctl.logger, err)
		return
	}
	c.JSON(http.StatusCreated, u)
}

func (ctl *UserController) Login(c *gin.Context) {
	var req struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid input")
		return
	}
	res, err := ctl.uc.LoginUser(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		respondError(c, ctl.logger, err)
		return
	}

	maxAge := int(time.Until(time.Unix(res.ExpiresAt, 0)).Seconds())
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(middleware.CookieName, res.Token, maxAge, "/", "", c.Request.TLS != nil, true)
	c.JSON(http.StatusOK, res)
}

func (ctl *UserController) Logout(c *gin.Context) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(middleware.CookieName, "", -1, "/", "", c.Request.TLS != nil, true)
	c.JSON(http.StatusOK, gin.H{"message": "Logged out successfully"})
}

func (ctl *UserController) GetMe(c *gin.Context) {
	profile, err := ctl.uc.GetMe(c.Request.Context(), currentUserID(c))
	if err != nil {
		respondError(c, ctl.logger, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

func (ctl *UserController) GetUserProfile(c *gin.Context) {
	profile, err := ctl.uc.GetUserProfile(c.Request.Context(), c.Param("username"))
	if err != nil {
		respondError(c, ctl.logger, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

func (ctl *UserController) SearchUsers(c *gin.Context) {
	users, err := ctl.uc.SearchUsers(c.Request.Context(), c.Query("query"))
	if err != nil {
		respondError(c, ctl.logger, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

func (ctl *UserController) UpdateUser(c *gin.Context) {
	var req struct {
		FullName        *string `json:"fullName"`
		Username        *string `json:"username"`
		Email           *string `json:"email"`
		Bio             *string `json:"bio"`
		Link            *string `json:"link"`
		CurrentPassword string  `json:"currentPassword"`
		NewPassword     string  `json:"newPassword"`
		ProfileImg      string  `json:"profileImg"`
		CoverImg        string  `json:"coverImg"`
	}
	if err := bindJSONLimited(c, maxProfileBodyBytes, &req); err != nil {
		respondError(c, ctl.logger, err)
		return
	}

	profile, err := ctl.uc.UpdateUser(c.Request.Context(), currentUserID(c), &userPort.UpdateUserInput{
		FullName:        req.FullName,
		Username:        req.Username,
		Email:           req.Email,
		Bio:             req.Bio,
		Link:            req.Link,
		CurrentPassword: req.CurrentPassword,
		NewPassword:     req.NewPassword,
		ProfileImg:      req.ProfileImg,
		CoverImg:        req.CoverImg,
	})
	if err != nil {
		respondError(c, ctl.logger, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

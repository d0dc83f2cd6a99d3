package httpapi

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"xclone/internal/core/apperr"
	"xclone/internal/ports/objectstore"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	maxImageBytes = 10 << 20
	// base64 image plus the rest of the JSON body
	maxPostBodyBytes    = maxImageBytes/3*4 + 1<<20
	maxProfileBodyBytes = 2*(maxImageBytes/3*4) + 1<<20
)

var errImageTooLarge = apperr.NewValidationError("img", "img must be at most 10MB")

type PostController struct {
	pc     PostUseCase
	logger *zap.Logger
}

func NewPostController(pc PostUseCase, logger *zap.Logger) *PostController {
	return &PostController{pc: pc, logger: logger}
}

func (ctl *PostController) CreatePost(c *gin.Context) {
	text, img, err := readPostInput(c)
	if err != nil {
		respondError(c, ctl.logger, err)
		return
	}
	var body string
	if text != nil {
		body = *text
	}

	res, err := ctl.pc.CreatePost(c.Request.Context(), currentUserID(c), body, img)
	if err != nil {
		respondError(c, ctl.logger, err)
		return
	}
	c.JSON(http.StatusCreated, res)
}

func (ctl *PostController) UpdatePost(c *gin.Context) {
	text, img, err := readPostInput(c)
	if err != nil {
		respondError(c, ctl.logger, err)
		return
	}

	res, err := ctl.pc.UpdatePost(c.Request.Context(), currentUserID(c), c.Param("id"), text, img)
	if err != nil {
		respondError(c, ctl.logger, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (ctl *PostController) DeletePost(c *gin.Context) {
	if err := ctl.pc.DeletePost(c.Request.Context(), currentUserID(c), c.Param("id")); err != nil {
		respondError(c, ctl.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Post deleted successfully"})
}

func (ctl *PostController) LikeUnlikePost(c *gin.Context) {
	likes, err := ctl.pc.LikeUnlikePost(c.Request.Context(), currentUserID(c), c.Param("id"))
	if err != nil {
		respondError(c, ctl.logger, err)
		return
	}
	c.JSON(http.StatusOK, likes)
}

func (ctl *PostController) CommentOnPost(c *gin.Context) {
	var req struct {
		Text string `json:"text"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid input")
		return
	}
	res, err := ctl.pc.CommentOnPost(c.Request.Context(), currentUserID(c), c.Param("id"), req.Text)
	if err != nil {
		respondError(c, ctl.logger, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// readPostInput accepts either a JSON body {text, img} with img as a data
// URI, or a multipart form with a text field and an img file.
func readPostInput(c *gin.Context) (*string, *objectstore.Image, error) {
	if strings.HasPrefix(c.ContentType(), "multipart/form-data") {
		return readMultipartPost(c)
	}

	var req struct {
		Text *string `json:"text"`
		Img  string  `json:"img"`
	}
	if err := bindJSONLimited(c, maxPostBodyBytes, &req); err != nil {
		return nil, nil, err
	}
	img, err := objectstore.ParseDataURI(req.Img)
	if err != nil {
		return nil, nil, err
	}
	return req.Text, img, nil
}

func readMultipartPost(c *gin.Context) (*string, *objectstore.Image, error) {
	var text *string
	if v, ok := c.GetPostForm("text"); ok {
		text = &v
	}

	fh, err := c.FormFile("img")
	if errors.Is(err, http.ErrMissingFile) {
		return text, nil, nil
	}
	if err != nil {
		return nil, nil, apperr.NewValidationError("img", "invalid multipart form")
	}

	f, err := fh.Open()
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, maxImageBytes+1))
	if err != nil {
		return nil, nil, err
	}
	if len(data) > maxImageBytes {
		return nil, nil, errImageTooLarge
	}
	contentType := http.DetectContentType(data)
	if len(data) == 0 || !strings.HasPrefix(contentType, "image/") {
		return nil, nil, objectstore.ErrInvalidImage
	}
	return text, &objectstore.Image{Data: data, ContentType: contentType}, nil
}

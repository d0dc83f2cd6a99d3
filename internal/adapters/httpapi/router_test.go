package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"xclone/internal/core/apperr"
	feedPort "xclone/internal/ports/feed"
	messagePort "xclone/internal/ports/message"
	"xclone/internal/ports/objectstore"
	postPort "xclone/internal/ports/post"
	userPort "xclone/internal/ports/user"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const (
	testToken  = "valid-token"
	testUserID = "0b7c2a8e-8f5e-4a39-9a7b-3f9c1d2e4f5a"
)

type mockUserUseCase struct{ mock.Mock }

func (m *mockUserUseCase) RegisterUser(ctx context.Context, fullName, username, email, mobile, password string) (*userPort.UserDTO, error) {
	args := m.Called(ctx, fullName, username, email, mobile, password)
	u, _ := args.Get(0).(*userPort.UserDTO)
	return u, args.Error(1)
}

func (m *mockUserUseCase) LoginUser(ctx context.Context, username, password string) (*userPort.LoginResponse, error) {
	args := m.Called(ctx, username, password)
	r, _ := args.Get(0).(*userPort.LoginResponse)
	return r, args.Error(1)
}

func (m *mockUserUseCase) ValidateToken(token string) (string, error) {
	if token == testToken {
		return testUserID, nil
	}
	return "", &apperr.UnauthorizedError{Message: "Unauthorized: Invalid Token"}
}

func (m *mockUserUseCase) GetMe(ctx context.Context, userID string) (*userPort.ProfileDTO, error) {
	args := m.Called(ctx, userID)
	p, _ := args.Get(0).(*userPort.ProfileDTO)
	return p, args.Error(1)
}

func (m *mockUserUseCase) GetUserProfile(ctx context.Context, username string) (*userPort.ProfileDTO, error) {
	args := m.Called(ctx, username)
	p, _ := args.Get(0).(*userPort.ProfileDTO)
	return p, args.Error(1)
}

func (m *mockUserUseCase) SearchUsers(ctx context.Context, query string) ([]*userPort.UserDTO, error) {
	args := m.Called(ctx, query)
	u, _ := args.Get(0).([]*userPort.UserDTO)
	return u, args.Error(1)
}

func (m *mockUserUseCase) UpdateUser(ctx context.Context, userID string, in *userPort.UpdateUserInput) (*userPort.ProfileDTO, error) {
	args := m.Called(ctx, userID, in)
	p, _ := args.Get(0).(*userPort.ProfileDTO)
	return p, args.Error(1)
}

type mockPostUseCase struct{ mock.Mock }

func (m *mockPostUseCase) CreatePost(ctx context.Context, userID, text string, img *objectstore.Image) (*postPort.PostDTO, error) {
	args := m.Called(ctx, userID, text, img)
	p, _ := args.Get(0).(*postPort.PostDTO)
	return p, args.Error(1)
}

func (m *mockPostUseCase) UpdatePost(ctx context.Context, userID, postID string, text *string, img *objectstore.Image) (*postPort.PostDTO, error) {
	args := m.Called(ctx, userID, postID, text, img)
	p, _ := args.Get(0).(*postPort.PostDTO)
	return p, args.Error(1)
}

func (m *mockPostUseCase) DeletePost(ctx context.Context, userID, postID string) error {
	return m.Called(ctx, userID, postID).Error(0)
}

func (m *mockPostUseCase) LikeUnlikePost(ctx context.Context, userID, postID string) ([]string, error) {
	args := m.Called(ctx, userID, postID)
	l, _ := args.Get(0).([]string)
	return l, args.Error(1)
}

func (m *mockPostUseCase) CommentOnPost(ctx context.Context, userID, postID, text string) (*postPort.PostDTO, error) {
	args := m.Called(ctx, userID, postID, text)
	p, _ := args.Get(0).(*postPort.PostDTO)
	return p, args.Error(1)
}

type mockFeedUseCase struct{ mock.Mock }

func (m *mockFeedUseCase) GetAllPosts(ctx context.Context) ([]*postPort.PostDTO, error) {
	args := m.Called(ctx)
	p, _ := args.Get(0).([]*postPort.PostDTO)
	return p, args.Error(1)
}

func (m *mockFeedUseCase) GetFollowingPosts(ctx context.Context, userID string) ([]*postPort.PostDTO, error) {
	args := m.Called(ctx, userID)
	p, _ := args.Get(0).([]*postPort.PostDTO)
	return p, args.Error(1)
}

func (m *mockFeedUseCase) GetUserPosts(ctx context.Context, username string) ([]*postPort.PostDTO, error) {
	args := m.Called(ctx, username)
	p, _ := args.Get(0).([]*postPort.PostDTO)
	return p, args.Error(1)
}

func (m *mockFeedUseCase) GetLikedPosts(ctx context.Context, userID string) ([]*postPort.PostDTO, error) {
	args := m.Called(ctx, userID)
	p, _ := args.Get(0).([]*postPort.PostDTO)
	return p, args.Error(1)
}

func (m *mockFeedUseCase) Search(ctx context.Context, query string) (*feedPort.SearchResultDTO, error) {
	args := m.Called(ctx, query)
	r, _ := args.Get(0).(*feedPort.SearchResultDTO)
	return r, args.Error(1)
}

type mockFollowerUseCase struct{ mock.Mock }

func (m *mockFollowerUseCase) FollowUnfollowUser(ctx context.Context, followerID, followeeID string) (bool, error) {
	args := m.Called(ctx, followerID, followeeID)
	return args.Bool(0), args.Error(1)
}

func (m *mockFollowerUseCase) GetFollowingUsers(ctx context.Context, userID string) ([]*userPort.UserDTO, error) {
	args := m.Called(ctx, userID)
	u, _ := args.Get(0).([]*userPort.UserDTO)
	return u, args.Error(1)
}

func (m *mockFollowerUseCase) GetFollowersByUserID(ctx context.Context, userID string) ([]*userPort.UserDTO, error) {
	args := m.Called(ctx, userID)
	u, _ := args.Get(0).([]*userPort.UserDTO)
	return u, args.Error(1)
}

func (m *mockFollowerUseCase) GetSuggestedUsers(ctx context.Context, userID string) ([]*userPort.UserDTO, error) {
	args := m.Called(ctx, userID)
	u, _ := args.Get(0).([]*userPort.UserDTO)
	return u, args.Error(1)
}

type mockMessageUseCase struct{ mock.Mock }

func (m *mockMessageUseCase) SendMessage(ctx context.Context, senderID, receiverID, text string) (*messagePort.MessageDTO, error) {
	args := m.Called(ctx, senderID, receiverID, text)
	r, _ := args.Get(0).(*messagePort.MessageDTO)
	return r, args.Error(1)
}

func (m *mockMessageUseCase) GetChat(ctx context.Context, userID, otherID string) ([]*messagePort.MessageDTO, error) {
	args := m.Called(ctx, userID, otherID)
	r, _ := args.Get(0).([]*messagePort.MessageDTO)
	return r, args.Error(1)
}

type testAPI struct {
	router   *gin.Engine
	users    *mockUserUseCase
	posts    *mockPostUseCase
	feed     *mockFeedUseCase
	follower *mockFollowerUseCase
	messages *mockMessageUseCase
}

func newTestAPI() *testAPI {
	gin.SetMode(gin.TestMode)
	api := &testAPI{
		users:    new(mockUserUseCase),
		posts:    new(mockPostUseCase),
		feed:     new(mockFeedUseCase),
		follower: new(mockFollowerUseCase),
		messages: new(mockMessageUseCase),
	}
	api.router = SetupRoutes(api.users, api.posts, api.feed, api.follower, api.messages, zap.NewNop())
	return api
}

func (a *testAPI) do(method, path, body string, authed bool) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if authed {
		req.Header.Set("Authorization", "Bearer "+testToken)
	}
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func errorBody(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Error string `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body.Error
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	api := newTestAPI()

	for _, path := range []string{"/api/posts/all", "/api/users/suggested", "/api/auth/me", "/api/messages/x"} {
		w := api.do(http.MethodGet, path, "", false)
		assert.Equal(t, http.StatusUnauthorized, w.Code, path)
	}
}

func TestCreatePost_JSON(t *testing.T) {
	api := newTestAPI()
	created := &postPort.PostDTO{
		ID:       "p1",
		User:     &userPort.UserDTO{ID: testUserID, Username: "alice"},
		Text:     "hello",
		Likes:    []string{},
		Comments: []*postPort.CommentDTO{},
	}
	api.posts.On("CreatePost", mock.Anything, testUserID, "hello", (*objectstore.Image)(nil)).Return(created, nil).Once()

	w := api.do(http.MethodPost, "/api/posts/create", `{"text":"hello"}`, true)
	require.Equal(t, http.StatusCreated, w.Code)

	var got map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, "p1", got["_id"])
	assert.Equal(t, []interface{}{}, got["likes"])
	assert.Equal(t, []interface{}{}, got["comments"])
	assert.NotContains(t, w.Body.String(), "password")
	api.posts.AssertExpectations(t)
}

func TestCreatePost_DataURIImage(t *testing.T) {
	api := newTestAPI()
	api.posts.On("CreatePost", mock.Anything, testUserID, "", mock.MatchedBy(func(img *objectstore.Image) bool {
		return img != nil && img.ContentType == "image/png" && string(img.Data) == "png"
	})).Return(&postPort.PostDTO{ID: "p2", Likes: []string{}}, nil).Once()

	w := api.do(http.MethodPost, "/api/posts/create", `{"img":"data:image/png;base64,cG5n"}`, true)
	assert.Equal(t, http.StatusCreated, w.Code)

	w = api.do(http.MethodPost, "/api/posts/create", `{"img":"not-an-image"}`, true)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	api.posts.AssertExpectations(t)
}

func TestJSONBodyLimit(t *testing.T) {
	api := newTestAPI()
	huge := strings.Repeat("A", maxProfileBodyBytes)

	w := api.do(http.MethodPost, "/api/posts/create", `{"img":"data:image/png;base64,`+huge+`"}`, true)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "request body is too large", errorBody(t, w))

	w = api.do(http.MethodPost, "/api/users/update", `{"profileImg":"data:image/png;base64,`+huge+`"}`, true)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "request body is too large", errorBody(t, w))

	api.posts.AssertNotCalled(t, "CreatePost", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	api.users.AssertNotCalled(t, "UpdateUser", mock.Anything, mock.Anything, mock.Anything)
}

func TestCreatePost_Multipart(t *testing.T) {
	api := newTestAPI()
	pngHeader := []byte("\x89PNG\r\n\x1a\n0000")

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	require.NoError(t, mw.WriteField("text", "with picture"))
	fw, err := mw.CreateFormFile("img", "pic.png")
	require.NoError(t, err)
	_, err = fw.Write(pngHeader)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	api.posts.On("CreatePost", mock.Anything, testUserID, "with picture", mock.MatchedBy(func(img *objectstore.Image) bool {
		return img != nil && img.ContentType == "image/png" && bytes.Equal(img.Data, pngHeader)
	})).Return(&postPort.PostDTO{ID: "p3", Likes: []string{}}, nil).Once()

	req := httptest.NewRequest(http.MethodPost, "/api/posts/create", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+testToken)
	w := httptest.NewRecorder()
	api.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	api.posts.AssertExpectations(t)
}

func TestErrorMapping(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		msg    string
	}{
		{"validation", apperr.NewValidationError("text", "Post must have text or image"), http.StatusBadRequest, "Post must have text or image"},
		{"unauthorized", &apperr.UnauthorizedError{Message: "You are not authorized to delete this post"}, http.StatusUnauthorized, "You are not authorized to delete this post"},
		{"not found", &apperr.NotFoundError{Resource: "Post", Message: "Post not found"}, http.StatusNotFound, "Post not found"},
		{"conflict", &apperr.ConflictError{Message: "Username is already taken"}, http.StatusConflict, "Username is already taken"},
		{"store failure", errors.New("dial tcp 10.0.0.1:3306: connection refused"), http.StatusInternalServerError, "Internal server error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := newTestAPI()
			api.posts.On("DeletePost", mock.Anything, testUserID, "p1").Return(tt.err).Once()

			w := api.do(http.MethodDelete, "/api/posts/p1", "", true)
			assert.Equal(t, tt.status, w.Code)
			assert.Equal(t, tt.msg, errorBody(t, w))
		})
	}
}

func TestLikeUnlikePost(t *testing.T) {
	api := newTestAPI()
	api.posts.On("LikeUnlikePost", mock.Anything, testUserID, "p1").Return([]string{testUserID}, nil).Once()

	w := api.do(http.MethodPost, "/api/posts/like/p1", "", true)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `["`+testUserID+`"]`, w.Body.String())
}

func TestSearchNothingFound(t *testing.T) {
	api := newTestAPI()
	api.feed.On("Search", mock.Anything, "zzz").
		Return(nil, &apperr.NotFoundError{Resource: "Search", Message: "No users or posts found."}).Once()

	w := api.do(http.MethodGet, "/api/posts/search?query=zzz", "", true)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "No users or posts found.", errorBody(t, w))
}

func TestFollowingFeedEmpty(t *testing.T) {
	api := newTestAPI()
	api.feed.On("GetFollowingPosts", mock.Anything, testUserID).Return([]*postPort.PostDTO{}, nil).Once()

	w := api.do(http.MethodGet, "/api/posts/following", "", true)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestFollowUnfollowUser(t *testing.T) {
	api := newTestAPI()
	api.follower.On("FollowUnfollowUser", mock.Anything, testUserID, "u2").Return(true, nil).Once()
	api.follower.On("FollowUnfollowUser", mock.Anything, testUserID, testUserID).
		Return(false, apperr.NewValidationError("id", "You can't follow/unfollow yourself")).Once()

	w := api.do(http.MethodPost, "/api/users/follow/u2", "", true)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "User followed successfully")

	w = api.do(http.MethodPost, "/api/users/follow/"+testUserID, "", true)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLoginSetsCookie(t *testing.T) {
	api := newTestAPI()
	exp := time.Now().Add(time.Hour).Unix()
	api.users.On("LoginUser", mock.Anything, "alice", "secret1").
		Return(&userPort.LoginResponse{Token: "tok", ExpiresAt: exp}, nil).Once()
	api.users.On("LoginUser", mock.Anything, "alice", "wrong").
		Return(nil, &apperr.UnauthorizedError{Message: "Invalid username or password"}).Once()

	w := api.do(http.MethodPost, "/api/auth/login", `{"username":"alice","password":"secret1"}`, false)
	require.Equal(t, http.StatusOK, w.Code)
	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "jwt", cookies[0].Name)
	assert.Equal(t, "tok", cookies[0].Value)
	assert.True(t, cookies[0].HttpOnly)

	w = api.do(http.MethodPost, "/api/auth/login", `{"username":"alice","password":"wrong"}`, false)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = api.do(http.MethodPost, "/api/auth/login", `{"username":"alice"}`, false)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSignupConflict(t *testing.T) {
	api := newTestAPI()
	api.users.On("RegisterUser", mock.Anything, "Alice", "alice", "a@example.com", "0912", "secret1").
		Return(nil, &apperr.ConflictError{Message: "Username is already taken"}).Once()

	w := api.do(http.MethodPost, "/api/auth/signup",
		`{"fullName":"Alice","username":"alice","email":"a@example.com","mobile":"0912","password":"secret1"}`, false)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestSendMessage(t *testing.T) {
	api := newTestAPI()
	api.messages.On("SendMessage", mock.Anything, testUserID, "u2", "hi").
		Return(&messagePort.MessageDTO{ID: "m1", Message: "hi"}, nil).Once()

	w := api.do(http.MethodPost, "/api/messages/send", `{"receiverId":"u2","message":"hi"}`, true)
	assert.Equal(t, http.StatusCreated, w.Code)
	api.messages.AssertExpectations(t)
}

package messageapp

import (
	"context"
	"testing"
	"time"

	"xclone/internal/core/apperr"
	messageEntity "xclone/internal/core/message"
	userEntity "xclone/internal/core/user"

	"github.com/gofrs/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeMessageRepository struct {
	msgs  []*messageEntity.Message
	clock time.Time
}

func (r *fakeMessageRepository) Create(ctx context.Context, m *messageEntity.Message) (*messageEntity.Message, error) {
	r.clock = r.clock.Add(time.Second)
	m.CreatedAt = r.clock
	r.msgs = append(r.msgs, m)
	return m, nil
}

func (r *fakeMessageRepository) FindConversation(ctx context.Context, a, b uuid.UUID) ([]*messageEntity.Message, error) {
	var out []*messageEntity.Message
	for _, m := range r.msgs {
		if (m.SenderID == a && m.ReceiverID == b) || (m.SenderID == b && m.ReceiverID == a) {
			out = append(out, m)
		}
	}
	return out, nil
}

type fakeUserRepository struct {
	users map[uuid.UUID]*userEntity.User
}

func (r *fakeUserRepository) add(username string) *userEntity.User {
	u := &userEntity.User{ID: uuid.Must(uuid.NewV4()), Username: username}
	r.users[u.ID] = u
	return u
}

func (r *fakeUserRepository) Create(ctx context.Context, u *userEntity.User) (*userEntity.User, error) {
	return u, nil
}

func (r *fakeUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*userEntity.User, error) {
	if u, ok := r.users[id]; ok {
		return u, nil
	}
	return nil, userEntity.ErrUserNotFound
}

func (r *fakeUserRepository) FindByUsername(ctx context.Context, username string) (*userEntity.User, error) {
	return nil, userEntity.ErrUserNotFound
}

func (r *fakeUserRepository) FindTaken(ctx context.Context, username, email, mobile string, excludeID uuid.UUID) (*userEntity.User, error) {
	return nil, userEntity.ErrUserNotFound
}

func (r *fakeUserRepository) Search(ctx context.Context, query string) ([]*userEntity.User, error) {
	return nil, nil
}

func (r *fakeUserRepository) Update(ctx context.Context, u *userEntity.User) error { return nil }

func (r *fakeUserRepository) LikedPostIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	return nil, nil
}

func TestSendMessageAndGetChat(t *testing.T) {
	ctx := context.Background()
	users := &fakeUserRepository{users: map[uuid.UUID]*userEntity.User{}}
	repo := &fakeMessageRepository{clock: time.Now()}
	svc := NewMessageService(repo, users, zap.NewNop())
	a := users.add("a")
	b := users.add("b")
	c := users.add("c")

	_, err := svc.SendMessage(ctx, a.ID.String(), b.ID.String(), "hi b")
	require.NoError(t, err)
	_, err = svc.SendMessage(ctx, b.ID.String(), a.ID.String(), " hi a ")
	require.NoError(t, err)
	_, err = svc.SendMessage(ctx, c.ID.String(), a.ID.String(), "spam")
	require.NoError(t, err)

	chat, err := svc.GetChat(ctx, a.ID.String(), b.ID.String())
	require.NoError(t, err)
	require.Len(t, chat, 2)
	assert.Equal(t, "hi b", chat[0].Message)
	assert.Equal(t, "hi a", chat[1].Message)
	assert.True(t, chat[0].CreatedAt.Before(chat[1].CreatedAt))
}

func TestSendMessage_Validation(t *testing.T) {
	ctx := context.Background()
	users := &fakeUserRepository{users: map[uuid.UUID]*userEntity.User{}}
	svc := NewMessageService(&fakeMessageRepository{}, users, zap.NewNop())
	a := users.add("a")

	_, err := svc.SendMessage(ctx, a.ID.String(), a.ID.String(), "  ")
	assert.True(t, apperr.IsValidation(err))

	_, err = svc.SendMessage(ctx, a.ID.String(), uuid.Must(uuid.NewV4()).String(), "hello")
	assert.True(t, apperr.IsNotFound(err))
}

func TestGetChat_Empty(t *testing.T) {
	svc := NewMessageService(&fakeMessageRepository{}, &fakeUserRepository{}, zap.NewNop())

	chat, err := svc.GetChat(context.Background(), uuid.Must(uuid.NewV4()).String(), "garbage")
	require.NoError(t, err)
	assert.NotNil(t, chat)
	assert.Empty(t, chat)
}

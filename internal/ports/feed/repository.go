package feed

import (
	"context"

	"xclone/internal/core/post"
	postPort "xclone/internal/ports/post"
	userPort "xclone/internal/ports/user"

	"github.com/gofrs/uuid"
)

// FeedRepository is the read side of the post store. Every method returns
// posts newest first with author, likes and comment authors loaded.
type FeedRepository interface {
	FindAll(ctx context.Context) ([]*post.Post, error)
	FindByOwners(ctx context.Context, ownerIDs []uuid.UUID) ([]*post.Post, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*post.Post, error)
	// Search matches query as a case-insensitive substring of the post text or
	// the author's username.
	Search(ctx context.Context, query string) ([]*post.Post, error)
}

type SearchResultDTO struct {
	Posts []*postPort.PostDTO       `json:"posts"`
	Users []*userPort.SearchUserDTO `json:"users"`
}

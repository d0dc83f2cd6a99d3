package apperr

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindsSurviveWrapping(t *testing.T) {
	notFound := &NotFoundError{Resource: "Post"}
	wrapped := fmt.Errorf("load post: %w", notFound)

	assert.True(t, IsNotFound(wrapped))
	assert.False(t, IsValidation(wrapped))
	assert.False(t, IsUnauthorized(wrapped))
	assert.False(t, IsConflict(wrapped))
	assert.Equal(t, "Post not found", notFound.Error())
}

func TestMessages(t *testing.T) {
	assert.Equal(t, "No users or posts found.", (&NotFoundError{Resource: "result", Message: "No users or posts found."}).Error())
	assert.Equal(t, "Text field is required", NewValidationError("text", "Text field is required").Error())
	assert.True(t, IsValidation(NewValidationError("text", "x")))
	assert.True(t, IsUnauthorized(fmt.Errorf("x: %w", &UnauthorizedError{Message: "no"})))
	assert.True(t, IsConflict(&ConflictError{Message: "taken"}))
}

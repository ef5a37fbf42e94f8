package services

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "huddle/pkg/errors"
)

func TestParsePage(t *testing.T) {
	tests := []struct {
		limit, offset string
		wantLimit     int
		wantOffset    int
	}{
		{"", "", 50, 0},
		{"10", "20", 10, 20},
		{"500", "0", 100, 0},
		{"100", "", 100, 0},
		{"0", "-5", 50, 0},
		{"-1", "x", 50, 0},
		{"abc", "7", 50, 7},
	}
	for _, tt := range tests {
		l, o := ParsePage(tt.limit, tt.offset)
		assert.Equal(t, tt.wantLimit, l, "limit=%q", tt.limit)
		assert.Equal(t, tt.wantOffset, o, "offset=%q", tt.offset)
	}
}

func TestMessageService_CreateAndList(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t, nil)
	reg := h.register(t, "alice", "secret1")
	p := h.principal(t, reg.Token.Key)

	for i := 0; i < 120; i++ {
		_, err := h.messages.Create(ctx, *p, MessageInput{Content: str(fmt.Sprintf("msg %d", i))})
		require.NoError(t, err)
	}

	limit, offset := ParsePage("", "")
	page, err := h.messages.List(ctx, limit, offset)
	require.NoError(t, err)
	assert.EqualValues(t, 120, page.Total)
	require.Len(t, page.Items, 50)
	assert.Equal(t, "msg 119", page.Items[0].Content)
	assert.Equal(t, "msg 70", page.Items[49].Content)
	assert.Equal(t, "alice", page.Items[0].Author.Username)

	limit, offset = ParsePage("500", "")
	page, err = h.messages.List(ctx, limit, offset)
	require.NoError(t, err)
	assert.Len(t, page.Items, 100)

	page, err = h.messages.List(ctx, 50, 100)
	require.NoError(t, err)
	require.Len(t, page.Items, 20)
	assert.Equal(t, "msg 19", page.Items[0].Content)
	assert.Equal(t, "msg 0", page.Items[19].Content)
}

func TestMessageService_CreateTrimsAndStampsAuthor(t *testing.T) {
	h := newHarness(t, nil)
	reg := h.register(t, "alice", "secret1")
	p := h.principal(t, reg.Token.Key)

	msg, err := h.messages.Create(context.Background(), *p, MessageInput{Content: str("  hello  ")})
	require.NoError(t, err)
	assert.Equal(t, "hello", msg.Content)
	assert.Equal(t, reg.Member.ID, msg.AuthorID)
	assert.Equal(t, reg.Member.ID, msg.Author.ID)
	assert.False(t, msg.CreatedAt.IsZero())
}

func TestMessageService_ContentBounds(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t, nil)
	reg := h.register(t, "alice", "secret1")
	p := h.principal(t, reg.Token.Key)

	_, err := h.messages.Create(ctx, *p, MessageInput{Content: str(strings.Repeat("a", ContentMaxLength))})
	assert.NoError(t, err)

	_, err = h.messages.Create(ctx, *p, MessageInput{Content: str(strings.Repeat("a", ContentMaxLength+1))})
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	_, err = h.messages.Create(ctx, *p, MessageInput{Content: str(strings.Repeat("é", ContentMaxLength))})
	assert.NoError(t, err)

	_, err = h.messages.Create(ctx, *p, MessageInput{Content: str("   ")})
	assert.Equal(t, []string{msgBlank}, fieldErrors(t, err)["content"])

	_, err = h.messages.Create(ctx, *p, MessageInput{})
	assert.Equal(t, []string{msgRequired}, fieldErrors(t, err)["content"])
}

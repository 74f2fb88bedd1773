package book

import (
	"context"
	"errors"
	"strings"
	"testing"

	"bookcatalog/internal/platform/validation"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validRequest() Request {
	return Request{Title: "X123", Author: "A", Description: "short", Rating: 3}
}

func fieldErrors(t *testing.T, err error) map[string]string {
	t.Helper()
	var verr *validation.Error
	require.True(t, errors.As(err, &verr), "expected *validation.Error, got %v", err)
	out := map[string]string{}
	for _, f := range verr.Fields {
		out[f.Field] = f.Message
	}
	return out
}

func TestService_Create_Validation(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name      string
		mutate    func(*Request)
		wantField string
	}{
		{"rating zero", func(r *Request) { r.Rating = 0 }, "rating"},
		{"rating six", func(r *Request) { r.Rating = 6 }, "rating"},
		{"rating one", func(r *Request) { r.Rating = 1 }, ""},
		{"rating five", func(r *Request) { r.Rating = 5 }, ""},
		{"description four chars", func(r *Request) { r.Description = "four" }, "description"},
		{"description five chars", func(r *Request) { r.Description = "fives" }, ""},
		{"description 300 chars", func(r *Request) { r.Description = strings.Repeat("d", 300) }, ""},
		{"description 301 chars", func(r *Request) { r.Description = strings.Repeat("d", 301) }, "description"},
		{"title two chars", func(r *Request) { r.Title = "ab" }, "title"},
		{"title three chars", func(r *Request) { r.Title = "abc" }, ""},
		{"title two multibyte runes", func(r *Request) { r.Title = "éé" }, "title"},
		{"title three multibyte runes", func(r *Request) { r.Title = "ééé" }, ""},
		{"author 150 multibyte runes", func(r *Request) { r.Author = strings.Repeat("ü", 150) }, ""},
		{"author 151 multibyte runes", func(r *Request) { r.Author = strings.Repeat("ü", 151) }, "author"},
		{"description four multibyte runes", func(r *Request) { r.Description = "日本語本" }, "description"},
		{"description 300 multibyte runes", func(r *Request) { r.Description = strings.Repeat("日", 300) }, ""},
		{"author empty", func(r *Request) { r.Author = "" }, "author"},
		{"author 150 chars", func(r *Request) { r.Author = strings.Repeat("a", 150) }, ""},
		{"author 151 chars", func(r *Request) { r.Author = strings.Repeat("a", 151) }, "author"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewService(NewMemoryRepo(SeedBooks(), IDFromLast), nil)
			req := validRequest()
			tt.mutate(&req)

			_, err := svc.Create(ctx, req)
			if tt.wantField == "" {
				assert.NoError(t, err)
				return
			}
			fields := fieldErrors(t, err)
			assert.Contains(t, fields, tt.wantField)
		})
	}
}

func TestService_Create_IgnoresClientID(t *testing.T) {
	svc := NewService(NewMemoryRepo(SeedBooks(), IDFromLast), nil)
	req := validRequest()
	req.ID = 1

	b, err := svc.Create(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, int64(7), b.ID)
}

func TestService_Create_RejectedInputNeverStored(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	mockRepo := NewMockRepository(ctrl)
	svc := NewService(mockRepo, nil)

	req := validRequest()
	req.Rating = 6

	_, err := svc.Create(context.Background(), req)
	assert.Error(t, err)
}

func TestService_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("full replace", func(t *testing.T) {
		repo := NewMemoryRepo(SeedBooks(), IDFromLast)
		svc := NewService(repo, nil)

		req := validRequest()
		b, err := svc.Update(ctx, 5, req)
		require.NoError(t, err)
		assert.Equal(t, int64(5), b.ID)

		got, err := repo.GetByID(ctx, 5)
		require.NoError(t, err)
		assert.Equal(t, "X123", got.Title)
		assert.Nil(t, got.PublishDate)
	})

	t.Run("body id equal to path is accepted", func(t *testing.T) {
		svc := NewService(NewMemoryRepo(SeedBooks(), IDFromLast), nil)
		req := validRequest()
		req.ID = 5
		_, err := svc.Update(ctx, 5, req)
		assert.NoError(t, err)
	})

	t.Run("id change is rejected", func(t *testing.T) {
		repo := NewMemoryRepo(SeedBooks(), IDFromLast)
		svc := NewService(repo, nil)
		req := validRequest()
		req.ID = 1

		_, err := svc.Update(ctx, 5, req)
		assert.ErrorIs(t, err, ErrIDMismatch)

		books, _ := repo.List(ctx)
		assert.Equal(t, SeedBooks(), books)
	})

	t.Run("missing id", func(t *testing.T) {
		repo := NewMemoryRepo(SeedBooks(), IDFromLast)
		svc := NewService(repo, nil)

		_, err := svc.Update(ctx, 77, validRequest())
		assert.ErrorIs(t, err, ErrNotFound)
		assert.Equal(t, 6, repo.Len())
	})

	t.Run("invalid input", func(t *testing.T) {
		svc := NewService(NewMemoryRepo(SeedBooks(), IDFromLast), nil)
		req := validRequest()
		req.Title = ""

		_, err := svc.Update(ctx, 1, req)
		assert.Contains(t, fieldErrors(t, err), "title")
	})
}

func TestService_Delete_PropagatesRepoError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	mockRepo := NewMockRepository(ctrl)
	svc := NewService(mockRepo, nil)

	mockRepo.EXPECT().Delete(gomock.Any(), int64(3)).Return(context.DeadlineExceeded)

	err := svc.Delete(context.Background(), 3)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestService_CreateThenDeleteRestoresSeed(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepo(SeedBooks(), IDFromLast)
	svc := NewService(repo, nil)

	created, err := svc.Create(ctx, validRequest())
	require.NoError(t, err)
	assert.Equal(t, int64(7), created.ID)

	books, _ := svc.List(ctx)
	require.Len(t, books, 7)
	assert.Equal(t, created, books[6])

	require.NoError(t, svc.Delete(ctx, 7))

	books, _ = svc.List(ctx)
	assert.Equal(t, SeedBooks(), books)
}

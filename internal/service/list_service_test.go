package service

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	apperr "cinelist/internal/errors"
	"cinelist/internal/model"
	"cinelist/internal/tmdb"
)

// MockListRepository is a mock implementation of ListRepository.
type MockListRepository struct {
	mock.Mock
}

func (m *MockListRepository) ListByOwner(ctx context.Context, ownerID uint) ([]model.MovieList, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.MovieList), args.Error(1)
}

func (m *MockListRepository) PublicLists(ctx context.Context) ([]model.MovieList, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.MovieList), args.Error(1)
}

func (m *MockListRepository) PublicListsByOwner(ctx context.Context, ownerID uint) ([]model.MovieList, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.MovieList), args.Error(1)
}

func (m *MockListRepository) FindVisible(ctx context.Context, id, requesterID uint) (*model.MovieList, error) {
	args := m.Called(ctx, id, requesterID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.MovieList), args.Error(1)
}

func (m *MockListRepository) FindOwned(ctx context.Context, id, ownerID uint) (*model.MovieList, error) {
	args := m.Called(ctx, id, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.MovieList), args.Error(1)
}

func (m *MockListRepository) Create(ctx context.Context, list *model.MovieList) error {
	args := m.Called(ctx, list)
	return args.Error(0)
}

func (m *MockListRepository) Update(ctx context.Context, list *model.MovieList) error {
	args := m.Called(ctx, list)
	return args.Error(0)
}

func (m *MockListRepository) Delete(ctx context.Context, list *model.MovieList) error {
	args := m.Called(ctx, list)
	return args.Error(0)
}

func (m *MockListRepository) AddItem(ctx context.Context, item *model.MovieListItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockListRepository) FindItem(ctx context.Context, listID, itemID uint) (*model.MovieListItem, error) {
	args := m.Called(ctx, listID, itemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.MovieListItem), args.Error(1)
}

func (m *MockListRepository) RemoveItem(ctx context.Context, listID, itemID uint) error {
	args := m.Called(ctx, listID, itemID)
	return args.Error(0)
}

func (m *MockListRepository) UpdateItemNotes(ctx context.Context, listID, itemID uint, notes *string) (*model.MovieListItem, error) {
	args := m.Called(ctx, listID, itemID, notes)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.MovieListItem), args.Error(1)
}

// MockMetadataGateway is a mock implementation of MetadataGateway.
type MockMetadataGateway struct {
	mock.Mock
}

func (m *MockMetadataGateway) MovieDetails(ctx context.Context, movieID int) (*tmdb.Movie, error) {
	args := m.Called(ctx, movieID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*tmdb.Movie), args.Error(1)
}

func (m *MockMetadataGateway) ImageURL(path, size string) string {
	args := m.Called(path, size)
	return args.String(0)
}

func strPtr(s string) *string { return &s }

func TestListService_CreateList(t *testing.T) {
	longName := make([]byte, 256)
	for i := range longName {
		longName[i] = 'a'
	}
	longDescription := make([]byte, 1001)
	for i := range longDescription {
		longDescription[i] = 'b'
	}

	tests := []struct {
		name          string
		input         ListInput
		setupMock     func(*MockListRepository)
		expectedError error
	}{
		{
			name:  "successful creation",
			input: ListInput{Name: "Favorites", Description: strPtr("all-time greats"), IsPublic: false},
			setupMock: func(m *MockListRepository) {
				m.On("Create", mock.Anything, mock.AnythingOfType("*model.MovieList")).Return(nil)
			},
			expectedError: nil,
		},
		{
			name:          "empty name rejected before store",
			input:         ListInput{Name: "   "},
			setupMock:     func(m *MockListRepository) {},
			expectedError: apperr.ErrValidation,
		},
		{
			name:          "over-length name rejected",
			input:         ListInput{Name: string(longName)},
			setupMock:     func(m *MockListRepository) {},
			expectedError: apperr.ErrValidation,
		},
		{
			name:          "over-length description rejected",
			input:         ListInput{Name: "ok", Description: strPtr(string(longDescription))},
			setupMock:     func(m *MockListRepository) {},
			expectedError: apperr.ErrValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockListRepository)
			tt.setupMock(mockRepo)
			mockGateway := new(MockMetadataGateway)

			svc := NewListService(mockRepo, mockGateway)
			list, err := svc.CreateList(context.Background(), 1, tt.input)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, list)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, list)
				assert.Equal(t, uint(1), list.UserID)
				assert.Equal(t, "Favorites", list.Name)
				assert.Equal(t, "all-time greats", *list.Description)
				assert.False(t, list.IsPublic)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestListService_AddMovie(t *testing.T) {
	ownedList := &model.MovieList{ID: 10, UserID: 1, Name: "Favorites"}

	tests := []struct {
		name          string
		ownerID       uint
		listID        uint
		tmdbMovieID   int
		notes         *string
		setupMock     func(*MockListRepository, *MockMetadataGateway)
		expectedError error
		check         func(*testing.T, *model.MovieListItem)
	}{
		{
			name:        "successful add snapshots gateway data",
			ownerID:     1,
			listID:      10,
			tmdbMovieID: 550,
			notes:       strPtr("great"),
			setupMock: func(mRepo *MockListRepository, mGw *MockMetadataGateway) {
				mRepo.On("FindOwned", mock.Anything, uint(10), uint(1)).Return(ownedList, nil)
				mGw.On("MovieDetails", mock.Anything, 550).Return(&tmdb.Movie{
					ID:          550,
					Title:       "Fight Club",
					PosterPath:  "/poster.jpg",
					Overview:    "An insomniac office worker.",
					ReleaseDate: "1999-10-15",
					VoteAverage: 8.438,
				}, nil)
				mRepo.On("AddItem", mock.Anything, mock.AnythingOfType("*model.MovieListItem")).Return(nil)
			},
			check: func(t *testing.T, item *model.MovieListItem) {
				assert.Equal(t, uint(10), item.MovieListID)
				assert.Equal(t, 550, item.TMDBMovieID)
				assert.Equal(t, "Fight Club", item.MovieTitle)
				assert.Equal(t, "/poster.jpg", *item.MoviePosterPath)
				assert.Equal(t, "An insomniac office worker.", *item.MovieOverview)
				assert.Equal(t, 1999, item.MovieReleaseDate.Year())
				assert.True(t, item.MovieVoteAverage.Equal(decimal.NewFromFloat(8.4)))
				assert.Equal(t, "great", *item.UserNotes)
			},
		},
		{
			name:        "list owned by someone else surfaces as not found",
			ownerID:     2,
			listID:      10,
			tmdbMovieID: 550,
			setupMock: func(mRepo *MockListRepository, mGw *MockMetadataGateway) {
				mRepo.On("FindOwned", mock.Anything, uint(10), uint(2)).Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: apperr.ErrListNotFound,
		},
		{
			name:        "gateway failure aborts before any write",
			ownerID:     1,
			listID:      10,
			tmdbMovieID: 550,
			setupMock: func(mRepo *MockListRepository, mGw *MockMetadataGateway) {
				mRepo.On("FindOwned", mock.Anything, uint(10), uint(1)).Return(ownedList, nil)
				mGw.On("MovieDetails", mock.Anything, 550).Return(nil, apperr.ErrUpstream)
			},
			expectedError: apperr.ErrUpstream,
		},
		{
			name:        "unknown movie surfaces as not found",
			ownerID:     1,
			listID:      10,
			tmdbMovieID: 999999,
			setupMock: func(mRepo *MockListRepository, mGw *MockMetadataGateway) {
				mRepo.On("FindOwned", mock.Anything, uint(10), uint(1)).Return(ownedList, nil)
				mGw.On("MovieDetails", mock.Anything, 999999).Return(nil, apperr.ErrMovieNotFound)
			},
			expectedError: apperr.ErrMovieNotFound,
		},
		{
			name:        "duplicate movie in list conflicts",
			ownerID:     1,
			listID:      10,
			tmdbMovieID: 550,
			setupMock: func(mRepo *MockListRepository, mGw *MockMetadataGateway) {
				mRepo.On("FindOwned", mock.Anything, uint(10), uint(1)).Return(ownedList, nil)
				mGw.On("MovieDetails", mock.Anything, 550).Return(&tmdb.Movie{ID: 550, Title: "Fight Club"}, nil)
				mRepo.On("AddItem", mock.Anything, mock.AnythingOfType("*model.MovieListItem")).Return(apperr.ErrDuplicateItem)
			},
			expectedError: apperr.ErrDuplicateItem,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockListRepository)
			mockGateway := new(MockMetadataGateway)
			tt.setupMock(mockRepo, mockGateway)

			svc := NewListService(mockRepo, mockGateway)
			item, err := svc.AddMovie(context.Background(), tt.ownerID, tt.listID, tt.tmdbMovieID, tt.notes)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, item)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, item)
				tt.check(t, item)
			}

			mockRepo.AssertExpectations(t)
			mockGateway.AssertExpectations(t)
		})
	}
}

func TestListService_GetList(t *testing.T) {
	created := time.Date(2025, 7, 17, 12, 0, 0, 0, time.UTC)
	vote := decimal.NewFromFloat(8.4)
	visible := &model.MovieList{
		ID:        10,
		UserID:    1,
		Name:      "Favorites",
		IsPublic:  true,
		CreatedAt: created,
		User:      &model.User{ID: 1, Name: "Alice"},
		Items: []model.MovieListItem{
			{
				ID:               7,
				MovieListID:      10,
				TMDBMovieID:      550,
				MovieTitle:       "Fight Club",
				MoviePosterPath:  strPtr("/poster.jpg"),
				MovieVoteAverage: &vote,
			},
		},
	}

	t.Run("owner sees their list with items", func(t *testing.T) {
		mockRepo := new(MockListRepository)
		mockGateway := new(MockMetadataGateway)
		mockRepo.On("FindVisible", mock.Anything, uint(10), uint(1)).Return(visible, nil)
		mockGateway.On("ImageURL", "/poster.jpg", "").Return("https://image.tmdb.org/t/p/w500/poster.jpg")

		svc := NewListService(mockRepo, mockGateway)
		detail, err := svc.GetList(context.Background(), 10, 1)

		assert.NoError(t, err)
		assert.True(t, detail.IsOwner)
		assert.Equal(t, "Alice", detail.User)
		assert.Len(t, detail.Items, 1)
		assert.Equal(t, "Fight Club", detail.Items[0].MovieTitle)
		assert.Equal(t, "https://image.tmdb.org/t/p/w500/poster.jpg", detail.Items[0].PosterURL)
		mockRepo.AssertExpectations(t)
	})

	t.Run("non-owner of public list is not the owner", func(t *testing.T) {
		mockRepo := new(MockListRepository)
		mockGateway := new(MockMetadataGateway)
		mockRepo.On("FindVisible", mock.Anything, uint(10), uint(2)).Return(visible, nil)
		mockGateway.On("ImageURL", "/poster.jpg", "").Return("https://image.tmdb.org/t/p/w500/poster.jpg")

		svc := NewListService(mockRepo, mockGateway)
		detail, err := svc.GetList(context.Background(), 10, 2)

		assert.NoError(t, err)
		assert.False(t, detail.IsOwner)
	})

	t.Run("invisible list surfaces as not found", func(t *testing.T) {
		mockRepo := new(MockListRepository)
		mockGateway := new(MockMetadataGateway)
		mockRepo.On("FindVisible", mock.Anything, uint(10), uint(3)).Return(nil, gorm.ErrRecordNotFound)

		svc := NewListService(mockRepo, mockGateway)
		detail, err := svc.GetList(context.Background(), 10, 3)

		assert.ErrorIs(t, err, apperr.ErrListNotFound)
		assert.Nil(t, detail)
	})
}

func TestListService_UpdateList(t *testing.T) {
	t.Run("non-owner cannot update", func(t *testing.T) {
		mockRepo := new(MockListRepository)
		mockRepo.On("FindOwned", mock.Anything, uint(10), uint(2)).Return(nil, gorm.ErrRecordNotFound)

		svc := NewListService(mockRepo, new(MockMetadataGateway))
		list, err := svc.UpdateList(context.Background(), 10, 2, ListInput{Name: "Renamed"})

		assert.ErrorIs(t, err, apperr.ErrListNotFound)
		assert.Nil(t, list)
		mockRepo.AssertExpectations(t)
	})

	t.Run("owner updates name and visibility", func(t *testing.T) {
		owned := &model.MovieList{ID: 10, UserID: 1, Name: "Favorites"}
		mockRepo := new(MockListRepository)
		mockRepo.On("FindOwned", mock.Anything, uint(10), uint(1)).Return(owned, nil)
		mockRepo.On("Update", mock.Anything, owned).Return(nil)

		svc := NewListService(mockRepo, new(MockMetadataGateway))
		list, err := svc.UpdateList(context.Background(), 10, 1, ListInput{Name: "Renamed", IsPublic: true})

		assert.NoError(t, err)
		assert.Equal(t, "Renamed", list.Name)
		assert.True(t, list.IsPublic)
		mockRepo.AssertExpectations(t)
	})
}

func TestListService_RemoveMovie(t *testing.T) {
	ownedList := &model.MovieList{ID: 10, UserID: 1}

	tests := []struct {
		name          string
		ownerID       uint
		listID        uint
		itemID        uint
		setupMock     func(*MockListRepository)
		expectedError error
	}{
		{
			name:    "successful removal",
			ownerID: 1, listID: 10, itemID: 7,
			setupMock: func(m *MockListRepository) {
				m.On("FindOwned", mock.Anything, uint(10), uint(1)).Return(ownedList, nil)
				m.On("RemoveItem", mock.Anything, uint(10), uint(7)).Return(nil)
			},
		},
		{
			name:    "item under a different list is not found",
			ownerID: 1, listID: 10, itemID: 99,
			setupMock: func(m *MockListRepository) {
				m.On("FindOwned", mock.Anything, uint(10), uint(1)).Return(ownedList, nil)
				m.On("RemoveItem", mock.Anything, uint(10), uint(99)).Return(gorm.ErrRecordNotFound)
			},
			expectedError: apperr.ErrItemNotFound,
		},
		{
			name:    "non-owner cannot remove",
			ownerID: 2, listID: 10, itemID: 7,
			setupMock: func(m *MockListRepository) {
				m.On("FindOwned", mock.Anything, uint(10), uint(2)).Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: apperr.ErrListNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockListRepository)
			tt.setupMock(mockRepo)

			svc := NewListService(mockRepo, new(MockMetadataGateway))
			err := svc.RemoveMovie(context.Background(), tt.ownerID, tt.listID, tt.itemID)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
			} else {
				assert.NoError(t, err)
			}
			mockRepo.AssertExpectations(t)
		})
	}
}

func TestListService_UpdateNotes(t *testing.T) {
	ownedList := &model.MovieList{ID: 10, UserID: 1}

	t.Run("notes are replaced", func(t *testing.T) {
		updated := &model.MovieListItem{ID: 7, MovieListID: 10, UserNotes: strPtr("rewatch soon")}
		mockRepo := new(MockListRepository)
		mockRepo.On("FindOwned", mock.Anything, uint(10), uint(1)).Return(ownedList, nil)
		mockRepo.On("UpdateItemNotes", mock.Anything, uint(10), uint(7), mock.Anything).Return(updated, nil)

		svc := NewListService(mockRepo, new(MockMetadataGateway))
		item, err := svc.UpdateNotes(context.Background(), 1, 10, 7, strPtr("rewatch soon"))

		assert.NoError(t, err)
		assert.Equal(t, "rewatch soon", *item.UserNotes)
		mockRepo.AssertExpectations(t)
	})

	t.Run("item under a different list is not found", func(t *testing.T) {
		mockRepo := new(MockListRepository)
		mockRepo.On("FindOwned", mock.Anything, uint(10), uint(1)).Return(ownedList, nil)
		mockRepo.On("UpdateItemNotes", mock.Anything, uint(10), uint(7), mock.Anything).Return(nil, gorm.ErrRecordNotFound)

		svc := NewListService(mockRepo, new(MockMetadataGateway))
		item, err := svc.UpdateNotes(context.Background(), 1, 10, 7, nil)

		assert.ErrorIs(t, err, apperr.ErrItemNotFound)
		assert.Nil(t, item)
	})
}

func TestListService_Summaries(t *testing.T) {
	t.Run("owner lists include item counts", func(t *testing.T) {
		mockRepo := new(MockListRepository)
		mockRepo.On("ListByOwner", mock.Anything, uint(1)).Return([]model.MovieList{
			{ID: 10, UserID: 1, Name: "Favorites", Items: []model.MovieListItem{{ID: 1}, {ID: 2}}},
			{ID: 11, UserID: 1, Name: "Watch Later"},
		}, nil)

		svc := NewListService(mockRepo, new(MockMetadataGateway))
		lists, err := svc.ListsForOwner(context.Background(), 1)

		assert.NoError(t, err)
		assert.Len(t, lists, 2)
		assert.Equal(t, 2, lists[0].ItemsCount)
		assert.Equal(t, 0, lists[1].ItemsCount)
	})

	t.Run("public lists carry the owner name", func(t *testing.T) {
		mockRepo := new(MockListRepository)
		mockRepo.On("PublicLists", mock.Anything).Return([]model.MovieList{
			{ID: 10, UserID: 1, Name: "Favorites", IsPublic: true, User: &model.User{ID: 1, Name: "Alice"}},
		}, nil)

		svc := NewListService(mockRepo, new(MockMetadataGateway))
		lists, err := svc.PublicLists(context.Background())

		assert.NoError(t, err)
		assert.Len(t, lists, 1)
		assert.Equal(t, "Alice", lists[0].User)
	})
}

func TestListService_DeleteList(t *testing.T) {
	t.Run("owner deletes with cascade", func(t *testing.T) {
		owned := &model.MovieList{ID: 10, UserID: 1}
		mockRepo := new(MockListRepository)
		mockRepo.On("FindOwned", mock.Anything, uint(10), uint(1)).Return(owned, nil)
		mockRepo.On("Delete", mock.Anything, owned).Return(nil)

		svc := NewListService(mockRepo, new(MockMetadataGateway))
		assert.NoError(t, svc.DeleteList(context.Background(), 10, 1))
		mockRepo.AssertExpectations(t)
	})

	t.Run("non-owner cannot delete", func(t *testing.T) {
		mockRepo := new(MockListRepository)
		mockRepo.On("FindOwned", mock.Anything, uint(10), uint(2)).Return(nil, gorm.ErrRecordNotFound)

		svc := NewListService(mockRepo, new(MockMetadataGateway))
		assert.ErrorIs(t, svc.DeleteList(context.Background(), 10, 2), apperr.ErrListNotFound)
	})
}

package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	apperr "cinelist/internal/errors"
	"cinelist/internal/model"
)

// ListRepository defines movie list and list item persistence operations.
//
// Visibility is enforced inside the queries themselves: FindVisible and
// PublicLists never load rows the requester is not allowed to see, so private
// data cannot leak through an existence side channel. All item operations are
// scoped by (listID, itemID); an item ID alone is never trusted.
type ListRepository interface {
	ListByOwner(ctx context.Context, ownerID uint) ([]model.MovieList, error)
	PublicLists(ctx context.Context) ([]model.MovieList, error)
	PublicListsByOwner(ctx context.Context, ownerID uint) ([]model.MovieList, error)
	FindVisible(ctx context.Context, id, requesterID uint) (*model.MovieList, error)
	FindOwned(ctx context.Context, id, ownerID uint) (*model.MovieList, error)
	Create(ctx context.Context, list *model.MovieList) error
	Update(ctx context.Context, list *model.MovieList) error
	Delete(ctx context.Context, list *model.MovieList) error

	AddItem(ctx context.Context, item *model.MovieListItem) error
	FindItem(ctx context.Context, listID, itemID uint) (*model.MovieListItem, error)
	RemoveItem(ctx context.Context, listID, itemID uint) error
	UpdateItemNotes(ctx context.Context, listID, itemID uint, notes *string) (*model.MovieListItem, error)
}

type listRepository struct {
	db *gorm.DB
}

// NewListRepository builds a GORM-backed repository.
func NewListRepository(db *gorm.DB) ListRepository {
	return &listRepository{db: db}
}

// ListByOwner returns all lists owned by a user with items preloaded.
func (r *listRepository) ListByOwner(ctx context.Context, ownerID uint) ([]model.MovieList, error) {
	var lists []model.MovieList
	if err := r.db.WithContext(ctx).
		Preload("Items").
		Where("user_id = ?", ownerID).
		Find(&lists).Error; err != nil {
		return nil, err
	}
	return lists, nil
}

// PublicLists returns all public lists, newest first, with owner and items preloaded.
func (r *listRepository) PublicLists(ctx context.Context) ([]model.MovieList, error) {
	var lists []model.MovieList
	if err := r.db.WithContext(ctx).
		Preload("Items").
		Preload("User").
		Where("is_public = ?", true).
		Order("created_at DESC").
		Find(&lists).Error; err != nil {
		return nil, err
	}
	return lists, nil
}

// PublicListsByOwner returns the public lists of one user, newest first.
func (r *listRepository) PublicListsByOwner(ctx context.Context, ownerID uint) ([]model.MovieList, error) {
	var lists []model.MovieList
	if err := r.db.WithContext(ctx).
		Preload("Items").
		Where("user_id = ? AND is_public = ?", ownerID, true).
		Order("created_at DESC").
		Find(&lists).Error; err != nil {
		return nil, err
	}
	return lists, nil
}

// FindVisible finds a list readable by the requester: their own or any public one.
func (r *listRepository) FindVisible(ctx context.Context, id, requesterID uint) (*model.MovieList, error) {
	var list model.MovieList
	if err := r.db.WithContext(ctx).
		Preload("Items").
		Preload("User").
		Where("id = ? AND (user_id = ? OR is_public = ?)", id, requesterID, true).
		First(&list).Error; err != nil {
		return nil, err
	}
	return &list, nil
}

// FindOwned finds a list with a strict ownership check. All mutations go through this.
func (r *listRepository) FindOwned(ctx context.Context, id, ownerID uint) (*model.MovieList, error) {
	var list model.MovieList
	if err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, ownerID).
		First(&list).Error; err != nil {
		return nil, err
	}
	return &list, nil
}

func (r *listRepository) Create(ctx context.Context, list *model.MovieList) error {
	return r.db.WithContext(ctx).Create(list).Error
}

func (r *listRepository) Update(ctx context.Context, list *model.MovieList) error {
	return r.db.WithContext(ctx).Save(list).Error
}

// Delete removes a list and all of its items in one transaction, so a
// concurrent add observes either "list exists" or "list gone", never an orphan.
func (r *listRepository) Delete(ctx context.Context, list *model.MovieList) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("movie_list_id = ?", list.ID).Delete(&model.MovieListItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(list).Error
	})
}

// AddItem inserts a list item. The unique index on (movie_list_id, tmdb_movie_id)
// resolves concurrent duplicate inserts at the storage layer; the loser gets
// ErrDuplicateItem.
func (r *listRepository) AddItem(ctx context.Context, item *model.MovieListItem) error {
	if err := r.db.WithContext(ctx).Create(item).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperr.ErrDuplicateItem
		}
		return err
	}
	return nil
}

// FindItem finds an item scoped by its parent list ID.
func (r *listRepository) FindItem(ctx context.Context, listID, itemID uint) (*model.MovieListItem, error) {
	var item model.MovieListItem
	if err := r.db.WithContext(ctx).
		Where("id = ? AND movie_list_id = ?", itemID, listID).
		First(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// RemoveItem deletes an item scoped by its parent list ID. A list ID that does
// not match the item's actual parent deletes nothing and reports not found.
func (r *listRepository) RemoveItem(ctx context.Context, listID, itemID uint) error {
	res := r.db.WithContext(ctx).
		Where("id = ? AND movie_list_id = ?", itemID, listID).
		Delete(&model.MovieListItem{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// UpdateItemNotes replaces the personal notes on an item.
func (r *listRepository) UpdateItemNotes(ctx context.Context, listID, itemID uint, notes *string) (*model.MovieListItem, error) {
	item, err := r.FindItem(ctx, listID, itemID)
	if err != nil {
		return nil, err
	}
	item.UserNotes = notes
	if err := r.db.WithContext(ctx).Save(item).Error; err != nil {
		return nil, err
	}
	return item, nil
}

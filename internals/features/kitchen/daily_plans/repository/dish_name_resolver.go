package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	dishModel "isp392_backend/internals/features/menu/dishes/model"
)

// DishNameResolver looks up dish names for plan responses.
type DishNameResolver struct {
	DB *gorm.DB
}

func NewDishNameResolver(db *gorm.DB) *DishNameResolver {
	return &DishNameResolver{DB: db}
}

func (r *DishNameResolver) NamesFor(ctx context.Context, itemIDs []uuid.UUID) (map[uuid.UUID]string, error) {
	if len(itemIDs) == 0 {
		return map[uuid.UUID]string{}, nil
	}

	var rows []struct {
		DishID   uuid.UUID `gorm:"column:dish_id"`
		DishName string    `gorm:"column:dish_name"`
	}
	err := r.DB.WithContext(ctx).
		Model(&dishModel.DishModel{}).
		Select("dish_id, dish_name").
		Where("dish_id IN ?", itemIDs).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	names := make(map[uuid.UUID]string, len(rows))
	for _, row := range rows {
		names[row.DishID] = row.DishName
	}
	return names, nil
}

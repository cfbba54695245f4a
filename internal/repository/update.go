package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// updateRow перезаписывает все колонки существующей строки, кроме id и created_at.
// Если строка уже удалена, возвращает notFound и ничего не вставляет.
func updateRow(ctx context.Context, db *gorm.DB, model any, notFound error) error {
	result := conn(ctx, db).
		Model(model).
		Select("*").
		Omit("id", "created_at", clause.Associations).
		Updates(model)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return notFound
	}
	return nil
}

package repository

import (
	"gorm.io/gorm"

	"schoolsched_backend/internals/features/schedule/model"
	"schoolsched_backend/internals/infrastructure"
)

// Subjects need no specialized behavior; the generic repository with the
// view preloads is enough.
func NewSubjectRepository(db *gorm.DB) *infrastructure.GormRepository[model.Subject] {
	return infrastructure.NewGormRepository[model.Subject](db, model.Subject{}.DefaultPreloads()...)
}

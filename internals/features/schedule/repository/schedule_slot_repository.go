package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"schoolsched_backend/internals/features/schedule/model"
	"schoolsched_backend/internals/infrastructure"
)

// ScheduleSlotRepository enforces the teacher/subject assignment rule on
// direct slot writes as well, so the invariant holds no matter which path
// created the slot.
type ScheduleSlotRepository struct {
	*infrastructure.GormRepository[model.ScheduleSlot]
	db *gorm.DB
}

func NewScheduleSlotRepository(db *gorm.DB) *ScheduleSlotRepository {
	return &ScheduleSlotRepository{
		GormRepository: infrastructure.NewGormRepository[model.ScheduleSlot](db, model.ScheduleSlot{}.DefaultPreloads()...),
		db:             db,
	}
}

func (r *ScheduleSlotRepository) Create(ctx context.Context, rec *model.ScheduleSlot) (*model.ScheduleSlot, error) {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, _, err := resolveAssignment(tx, rec.TeacherID, rec.SubjectID); err != nil {
			return err
		}
		return tx.Create(rec).Error
	})
	if err != nil {
		return nil, infrastructure.TranslateDBError(err)
	}
	return r.GetByID(ctx, rec.ID)
}

func (r *ScheduleSlotRepository) Update(ctx context.Context, id uint, patch infrastructure.Patch[model.ScheduleSlot]) (*model.ScheduleSlot, error) {
	found := true
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var slot model.ScheduleSlot
		if err := tx.First(&slot, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				found = false
				return nil
			}
			return err
		}
		patch.Apply(&slot)
		if _, _, err := resolveAssignment(tx, slot.TeacherID, slot.SubjectID); err != nil {
			return err
		}
		return tx.Save(&slot).Error
	})
	if err != nil {
		return nil, infrastructure.TranslateDBError(err)
	}
	if !found {
		return nil, nil
	}
	return r.GetByID(ctx, id)
}

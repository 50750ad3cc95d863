package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"schoolsched_backend/internals/features/schedule/dto"
	"schoolsched_backend/internals/features/schedule/model"
	"schoolsched_backend/internals/infrastructure"
)

// ClassRepository extends the generic repository with full timetable
// replacement: when schedule_slots is present all existing slots are
// destroyed and rebuilt from the specs, validating each teacher/subject
// assignment. Any failure rolls back the whole update, name change included.
type ClassRepository struct {
	*infrastructure.GormRepository[model.Class]
	db *gorm.DB
}

func NewClassRepository(db *gorm.DB) *ClassRepository {
	return &ClassRepository{
		GormRepository: infrastructure.NewGormRepository[model.Class](db, model.Class{}.DefaultPreloads()...),
		db:             db,
	}
}

func (r *ClassRepository) Update(ctx context.Context, id uint, patch infrastructure.Patch[model.Class]) (*model.Class, error) {
	req, ok := patch.(dto.UpdateClassRequest)
	if !ok {
		return r.GormRepository.Update(ctx, id, patch)
	}

	found := true
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var class model.Class
		if err := tx.First(&class, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				found = false
				return nil
			}
			return err
		}

		req.Apply(&class)
		if err := tx.Save(&class).Error; err != nil {
			return err
		}

		specs, present := req.SlotSpecs()
		if !present {
			return nil
		}
		return r.rebuildSlots(tx, &class, specs)
	})
	if err != nil {
		return nil, infrastructure.TranslateDBError(err)
	}
	if !found {
		return nil, nil
	}
	return r.GetByID(ctx, id)
}

func (r *ClassRepository) rebuildSlots(tx *gorm.DB, class *model.Class, specs []dto.SlotSpec) error {
	if err := tx.Where("class_id = ?", class.ID).Delete(&model.ScheduleSlot{}).Error; err != nil {
		return err
	}
	for _, spec := range specs {
		teacher, subject, err := resolveAssignment(tx, spec.Teacher.ID, spec.Subject.ID)
		if err != nil {
			return err
		}
		slot := model.ScheduleSlot{
			Weekday:   spec.Weekday,
			Time:      spec.Time,
			ClassID:   class.ID,
			TeacherID: teacher.ID,
			SubjectID: subject.ID,
		}
		if err := tx.Create(&slot).Error; err != nil {
			return err
		}
	}
	return nil
}

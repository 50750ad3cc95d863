package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"schoolsched_backend/internals/apperr"
	"schoolsched_backend/internals/features/schedule/dto"
	"schoolsched_backend/internals/features/schedule/model"
	"schoolsched_backend/internals/infrastructure"
)

// TeacherRepository extends the generic repository with a relationship-aware
// update: the teacher's subject set is replaced (not merged) with the
// resolved refs in one transaction.
type TeacherRepository struct {
	*infrastructure.GormRepository[model.Teacher]
	db *gorm.DB
}

func NewTeacherRepository(db *gorm.DB) *TeacherRepository {
	return &TeacherRepository{
		GormRepository: infrastructure.NewGormRepository[model.Teacher](db, model.Teacher{}.DefaultPreloads()...),
		db:             db,
	}
}

func (r *TeacherRepository) Update(ctx context.Context, id uint, patch infrastructure.Patch[model.Teacher]) (*model.Teacher, error) {
	req, ok := patch.(dto.UpdateTeacherRequest)
	if !ok {
		return r.GormRepository.Update(ctx, id, patch)
	}

	found := true
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var teacher model.Teacher
		if err := tx.First(&teacher, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				found = false
				return nil
			}
			return err
		}

		req.Apply(&teacher)
		if err := tx.Save(&teacher).Error; err != nil {
			return err
		}

		refs, present := req.SubjectRefs()
		if !present {
			return nil
		}
		ids := make([]uint, 0, len(refs))
		for _, ref := range refs {
			ids = append(ids, ref.ID)
		}

		var subjects []*model.Subject
		if len(ids) > 0 {
			if err := tx.Where("id IN ?", ids).Find(&subjects).Error; err != nil {
				return err
			}
		}
		if len(subjects) != len(ids) {
			return apperr.New(apperr.ErrExecutionFailed, "some subjects were not found")
		}

		assoc := tx.Model(&teacher).Association("Subjects")
		if len(subjects) == 0 {
			return assoc.Clear()
		}
		return assoc.Replace(&subjects)
	})
	if err != nil {
		return nil, infrastructure.TranslateDBError(err)
	}
	if !found {
		return nil, nil
	}
	return r.GetByID(ctx, id)
}

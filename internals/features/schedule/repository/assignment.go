package repository

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"schoolsched_backend/internals/apperr"
	"schoolsched_backend/internals/features/schedule/model"
)

// resolveAssignment loads a teacher (with subjects) and a subject by id and
// enforces the one cross-entity consistency rule of the system: a slot's
// subject must belong to its teacher's assigned-subject set.
func resolveAssignment(tx *gorm.DB, teacherID, subjectID uint) (*model.Teacher, *model.Subject, error) {
	var teacher model.Teacher
	if err := tx.Preload("Subjects").First(&teacher, teacherID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, apperr.New(apperr.ErrExecutionFailed,
				fmt.Sprintf("teacher with id %d was not found", teacherID))
		}
		return nil, nil, err
	}

	var subject model.Subject
	if err := tx.First(&subject, subjectID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, apperr.New(apperr.ErrExecutionFailed,
				fmt.Sprintf("subject with id %d was not found", subjectID))
		}
		return nil, nil, err
	}

	for _, s := range teacher.Subjects {
		if s.ID == subject.ID {
			return &teacher, &subject, nil
		}
	}
	return nil, nil, apperr.New(apperr.ErrExecutionFailed,
		fmt.Sprintf("subject %q is not assigned to teacher %q", subject.Name, teacher.Name))
}

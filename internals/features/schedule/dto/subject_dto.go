package dto

import (
	"strings"

	"schoolsched_backend/internals/apperr"
	"schoolsched_backend/internals/features/schedule/model"
)

type CreateSubjectRequest struct {
	Name string `json:"name" validate:"required,min=1,max=128"`
}

func (r *CreateSubjectRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
}

func (r CreateSubjectRequest) ToModel() *model.Subject {
	return &model.Subject{Name: r.Name}
}

type UpdateSubjectRequest struct {
	Name PatchField[string] `json:"name"`
}

func (r *UpdateSubjectRequest) Normalize() {
	if r.Name.Present && r.Name.Value != nil {
		v := strings.TrimSpace(*r.Name.Value)
		r.Name.Value = &v
	}
}

func (r UpdateSubjectRequest) Validate() error {
	if r.Name.Present {
		if r.Name.Value == nil || *r.Name.Value == "" {
			return apperr.New(apperr.ErrInvalidObject, "name must not be empty")
		}
	}
	return nil
}

func (r UpdateSubjectRequest) Apply(s *model.Subject) {
	if r.Name.Present && r.Name.Value != nil {
		s.Name = *r.Name.Value
	}
}

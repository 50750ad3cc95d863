package dto

import (
	"strings"

	"schoolsched_backend/internals/apperr"
	"schoolsched_backend/internals/features/schedule/model"
)

type CreateTeacherRequest struct {
	Name string `json:"name" validate:"required,min=1,max=128"`
}

func (r *CreateTeacherRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
}

func (r CreateTeacherRequest) ToModel() *model.Teacher {
	return &model.Teacher{Name: r.Name}
}

// UpdateTeacherRequest patches the name and/or replaces the full subject
// association set. Subjects are id refs; the repository resolves them.
type UpdateTeacherRequest struct {
	Name     PatchField[string] `json:"name"`
	Subjects PatchField[[]Ref]  `json:"subjects"`
}

func (r *UpdateTeacherRequest) Normalize() {
	if r.Name.Present && r.Name.Value != nil {
		v := strings.TrimSpace(*r.Name.Value)
		r.Name.Value = &v
	}
}

func (r UpdateTeacherRequest) Validate() error {
	if r.Name.Present {
		if r.Name.Value == nil || *r.Name.Value == "" {
			return apperr.New(apperr.ErrInvalidObject, "name must not be empty")
		}
	}
	if r.Subjects.Present && r.Subjects.Value != nil {
		for _, ref := range *r.Subjects.Value {
			if ref.ID == 0 {
				return apperr.New(apperr.ErrInvalidObject, "every subject reference must carry an id")
			}
		}
	}
	return nil
}

func (r UpdateTeacherRequest) Apply(t *model.Teacher) {
	if r.Name.Present && r.Name.Value != nil {
		t.Name = *r.Name.Value
	}
}

// SubjectRefs returns the requested replacement set and whether the field
// was present at all. An explicit null clears every association.
func (r UpdateTeacherRequest) SubjectRefs() ([]Ref, bool) {
	if !r.Subjects.Present {
		return nil, false
	}
	if r.Subjects.Value == nil {
		return []Ref{}, true
	}
	return *r.Subjects.Value, true
}

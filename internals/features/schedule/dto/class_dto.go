package dto

import (
	"strings"
	"time"

	"schoolsched_backend/internals/apperr"
	"schoolsched_backend/internals/features/schedule/model"
)

type CreateClassRequest struct {
	Name string `json:"name" validate:"required,min=1,max=128"`
}

func (r *CreateClassRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
}

func (r CreateClassRequest) ToModel() *model.Class {
	return &model.Class{Name: r.Name}
}

// SlotSpec describes one slot of a replacement timetable: weekday, HH:MM
// time, and id refs for teacher and subject. The class is implied.
type SlotSpec struct {
	Weekday string `json:"weekday"`
	Time    string `json:"time"`
	Teacher Ref    `json:"teacher"`
	Subject Ref    `json:"subject"`
}

// UpdateClassRequest patches the name and/or replaces the class's entire
// slot set. Old slots are destroyed, never reused.
type UpdateClassRequest struct {
	Name          PatchField[string]     `json:"name"`
	ScheduleSlots PatchField[[]SlotSpec] `json:"schedule_slots"`
}

func (r *UpdateClassRequest) Normalize() {
	if r.Name.Present && r.Name.Value != nil {
		v := strings.TrimSpace(*r.Name.Value)
		r.Name.Value = &v
	}
}

func (r UpdateClassRequest) Validate() error {
	if r.Name.Present {
		if r.Name.Value == nil || *r.Name.Value == "" {
			return apperr.New(apperr.ErrInvalidObject, "name must not be empty")
		}
	}
	if r.ScheduleSlots.Present && r.ScheduleSlots.Value != nil {
		for _, spec := range *r.ScheduleSlots.Value {
			if !model.IsValidWeekday(spec.Weekday) {
				return apperr.New(apperr.ErrInvalidObject, "invalid weekday: "+spec.Weekday)
			}
			if _, err := time.Parse("15:04", spec.Time); err != nil {
				return apperr.New(apperr.ErrInvalidObject, "invalid time, expected HH:MM: "+spec.Time)
			}
			if spec.Teacher.ID == 0 {
				return apperr.New(apperr.ErrInvalidObject, "every slot must carry a teacher id")
			}
			if spec.Subject.ID == 0 {
				return apperr.New(apperr.ErrInvalidObject, "every slot must carry a subject id")
			}
		}
	}
	return nil
}

func (r UpdateClassRequest) Apply(cl *model.Class) {
	if r.Name.Present && r.Name.Value != nil {
		cl.Name = *r.Name.Value
	}
}

// SlotSpecs returns the requested replacement slots and whether the field
// was present. An explicit null clears the timetable.
func (r UpdateClassRequest) SlotSpecs() ([]SlotSpec, bool) {
	if !r.ScheduleSlots.Present {
		return nil, false
	}
	if r.ScheduleSlots.Value == nil {
		return []SlotSpec{}, true
	}
	return *r.ScheduleSlots.Value, true
}

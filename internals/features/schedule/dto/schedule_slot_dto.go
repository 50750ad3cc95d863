package dto

import (
	"time"

	"schoolsched_backend/internals/apperr"
	"schoolsched_backend/internals/features/schedule/model"
)

type CreateScheduleSlotRequest struct {
	Weekday   string `json:"weekday" validate:"required,oneof=MONDAY TUESDAY WEDNESDAY THURSDAY FRIDAY SATURDAY SUNDAY"`
	Time      string `json:"time" validate:"required,datetime=15:04"`
	ClassID   uint   `json:"class_id" validate:"required"`
	TeacherID uint   `json:"teacher_id" validate:"required"`
	SubjectID uint   `json:"subject_id" validate:"required"`
}

func (r CreateScheduleSlotRequest) ToModel() *model.ScheduleSlot {
	return &model.ScheduleSlot{
		Weekday:   r.Weekday,
		Time:      r.Time,
		ClassID:   r.ClassID,
		TeacherID: r.TeacherID,
		SubjectID: r.SubjectID,
	}
}

type UpdateScheduleSlotRequest struct {
	Weekday   PatchField[string] `json:"weekday"`
	Time      PatchField[string] `json:"time"`
	ClassID   PatchField[uint]   `json:"class_id"`
	TeacherID PatchField[uint]   `json:"teacher_id"`
	SubjectID PatchField[uint]   `json:"subject_id"`
}

func (r UpdateScheduleSlotRequest) Validate() error {
	if r.Weekday.Present {
		if r.Weekday.Value == nil || !model.IsValidWeekday(*r.Weekday.Value) {
			return apperr.New(apperr.ErrInvalidObject, "invalid weekday")
		}
	}
	if r.Time.Present {
		if r.Time.Value == nil {
			return apperr.New(apperr.ErrInvalidObject, "time must not be null")
		}
		if _, err := time.Parse("15:04", *r.Time.Value); err != nil {
			return apperr.New(apperr.ErrInvalidObject, "invalid time, expected HH:MM: "+*r.Time.Value)
		}
	}
	for _, f := range []struct {
		name  string
		field PatchField[uint]
	}{
		{"class_id", r.ClassID},
		{"teacher_id", r.TeacherID},
		{"subject_id", r.SubjectID},
	} {
		if f.field.Present && (f.field.Value == nil || *f.field.Value == 0) {
			return apperr.New(apperr.ErrInvalidObject, f.name+" must reference an existing record")
		}
	}
	return nil
}

func (r UpdateScheduleSlotRequest) Apply(h *model.ScheduleSlot) {
	if r.Weekday.Present && r.Weekday.Value != nil {
		h.Weekday = *r.Weekday.Value
	}
	if r.Time.Present && r.Time.Value != nil {
		h.Time = *r.Time.Value
	}
	if r.ClassID.Present && r.ClassID.Value != nil {
		h.ClassID = *r.ClassID.Value
	}
	if r.TeacherID.Present && r.TeacherID.Value != nil {
		h.TeacherID = *r.TeacherID.Value
	}
	if r.SubjectID.Present && r.SubjectID.Value != nil {
		h.SubjectID = *r.SubjectID.Value
	}
}

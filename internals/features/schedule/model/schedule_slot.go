package model

import (
	"schoolsched_backend/internals/serializer"
)

// ScheduleSlot is one timetable entry: a weekday/time pair binding exactly
// one class, one teacher and one subject. It has no bespoke view; the
// generic serializer renders it.
type ScheduleSlot struct {
	ID      uint   `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Weekday string `gorm:"column:weekday;type:varchar(16);not null;check:chk_schedule_slots_weekday,weekday IN ('MONDAY','TUESDAY','WEDNESDAY','THURSDAY','FRIDAY','SATURDAY','SUNDAY')" json:"weekday"`
	Time    string `gorm:"column:time;type:varchar(5);not null" json:"time"`

	ClassID   uint `gorm:"column:class_id;not null" json:"class_id"`
	TeacherID uint `gorm:"column:teacher_id;not null" json:"teacher_id"`
	SubjectID uint `gorm:"column:subject_id;not null" json:"subject_id"`

	Class   *Class   `gorm:"foreignKey:ClassID;constraint:OnDelete:CASCADE" json:"class,omitempty"`
	Teacher *Teacher `gorm:"foreignKey:TeacherID" json:"teacher,omitempty"`
	Subject *Subject `gorm:"foreignKey:SubjectID" json:"subject,omitempty"`
}

func (ScheduleSlot) TableName() string { return "schedule_slots" }

func (ScheduleSlot) DefaultPreloads() []string {
	return []string{"Class", "Teacher", "Subject"}
}

// slotWithClassView is the reduced slot shape shared by the teacher and
// subject views.
func (h *ScheduleSlot) slotWithClassView() *serializer.Map {
	m := serializer.NewMap().
		Set("id", h.ID).
		Set("weekday", h.Weekday).
		Set("time", h.Time)
	if h.Class != nil {
		m.Set("class", serializer.NewMap().
			Set("id", h.Class.ID).
			Set("name", h.Class.Name))
	} else {
		m.Set("class", nil)
	}
	return m
}

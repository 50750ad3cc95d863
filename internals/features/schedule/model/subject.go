package model

import (
	"schoolsched_backend/internals/serializer"
)

type Subject struct {
	ID   uint   `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Name string `gorm:"column:name;type:varchar(128);not null;unique" json:"name"`

	Teachers      []*Teacher      `gorm:"many2many:teacher_subjects;constraint:OnDelete:CASCADE" json:"teachers,omitempty"`
	ScheduleSlots []*ScheduleSlot `gorm:"foreignKey:SubjectID" json:"schedule_slots,omitempty"`
}

func (Subject) TableName() string { return "subjects" }

func (Subject) DefaultPreloads() []string {
	return []string{"Teachers", "Teachers.ScheduleSlots", "Teachers.ScheduleSlots.Class"}
}

// View renders the curated subject shape: the teachers assigned to it, each
// with their slots for this subject and the class each slot belongs to.
func (s *Subject) View() *serializer.Map {
	teachers := make([]*serializer.Map, 0, len(s.Teachers))
	for _, t := range s.Teachers {
		slots := make([]*serializer.Map, 0)
		for _, slot := range t.ScheduleSlots {
			if slot.SubjectID != s.ID {
				continue
			}
			slots = append(slots, slot.slotWithClassView())
		}
		teachers = append(teachers, serializer.NewMap().
			Set("id", t.ID).
			Set("name", t.Name).
			Set("schedule_slots", slots))
	}
	return serializer.NewMap().
		Set("id", s.ID).
		Set("name", s.Name).
		Set("teachers", teachers)
}

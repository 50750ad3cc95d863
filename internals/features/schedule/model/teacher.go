package model

import (
	"schoolsched_backend/internals/serializer"
)

type Teacher struct {
	ID   uint   `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Name string `gorm:"column:name;type:varchar(128);not null" json:"name"`

	Subjects      []*Subject      `gorm:"many2many:teacher_subjects;constraint:OnDelete:CASCADE" json:"subjects,omitempty"`
	ScheduleSlots []*ScheduleSlot `gorm:"foreignKey:TeacherID" json:"schedule_slots,omitempty"`
}

func (Teacher) TableName() string { return "teachers" }

// DefaultPreloads covers the subgraph the public view renders.
func (Teacher) DefaultPreloads() []string {
	return []string{"Subjects", "ScheduleSlots", "ScheduleSlots.Class"}
}

// View renders the curated teacher shape: each assigned subject carries the
// teacher's slots for that subject, each slot with its class. It stops the
// graph there instead of exposing every symmetric relationship.
func (t *Teacher) View() *serializer.Map {
	subjects := make([]*serializer.Map, 0, len(t.Subjects))
	for _, s := range t.Subjects {
		slots := make([]*serializer.Map, 0)
		for _, slot := range t.ScheduleSlots {
			if slot.SubjectID != s.ID {
				continue
			}
			slots = append(slots, slot.slotWithClassView())
		}
		subjects = append(subjects, serializer.NewMap().
			Set("id", s.ID).
			Set("name", s.Name).
			Set("schedule_slots", slots))
	}
	return serializer.NewMap().
		Set("id", t.ID).
		Set("name", t.Name).
		Set("subjects", subjects)
}

package model

import (
	"schoolsched_backend/internals/serializer"
)

// Class exclusively owns its schedule slots: deleting a class cascades to
// them at the database level.
type Class struct {
	ID   uint   `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Name string `gorm:"column:name;type:varchar(128);not null;unique" json:"name"`

	ScheduleSlots []*ScheduleSlot `gorm:"foreignKey:ClassID;constraint:OnDelete:CASCADE" json:"schedule_slots,omitempty"`
}

func (Class) TableName() string { return "classes" }

func (Class) DefaultPreloads() []string {
	return []string{"ScheduleSlots", "ScheduleSlots.Subject", "ScheduleSlots.Teacher"}
}

// View renders the class timetable: every slot with its subject and teacher.
func (cl *Class) View() *serializer.Map {
	slots := make([]*serializer.Map, 0, len(cl.ScheduleSlots))
	for _, slot := range cl.ScheduleSlots {
		sm := serializer.NewMap().
			Set("id", slot.ID).
			Set("weekday", slot.Weekday).
			Set("time", slot.Time)
		if slot.Subject != nil {
			sm.Set("subject", serializer.NewMap().
				Set("id", slot.Subject.ID).
				Set("name", slot.Subject.Name))
		} else {
			sm.Set("subject", nil)
		}
		if slot.Teacher != nil {
			sm.Set("teacher", serializer.NewMap().
				Set("id", slot.Teacher.ID).
				Set("name", slot.Teacher.Name))
		} else {
			sm.Set("teacher", nil)
		}
		slots = append(slots, sm)
	}
	return serializer.NewMap().
		Set("id", cl.ID).
		Set("name", cl.Name).
		Set("schedule_slots", slots)
}

package serializer_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"schoolsched_backend/internals/features/schedule/model"
	"schoolsched_backend/internals/serializer"
)

func TestMapKeepsInsertionOrder(t *testing.T) {
	m := serializer.NewMap().
		Set("zeta", 1).
		Set("alpha", "x").
		Set("mid", nil)

	b, err := json.Marshal(m)
	require.NoError(t, err)
	require.Equal(t, `{"zeta":1,"alpha":"x","mid":null}`, string(b))
	require.Equal(t, []string{"zeta", "alpha", "mid"}, m.Keys())
}

func TestMapSetOverwriteKeepsPosition(t *testing.T) {
	m := serializer.NewMap().Set("a", 1).Set("b", 2).Set("a", 3)
	b, err := json.Marshal(m)
	require.NoError(t, err)
	require.Equal(t, `{"a":3,"b":2}`, string(b))
}

func TestSerializeScalarColumnsInDeclarationOrder(t *testing.T) {
	slot := &model.ScheduleSlot{
		ID:        7,
		Weekday:   model.Monday,
		Time:      "08:30",
		ClassID:   1,
		TeacherID: 2,
		SubjectID: 3,
	}
	m, err := serializer.Serialize(slot)
	require.NoError(t, err)
	require.Equal(t,
		[]string{"id", "weekday", "time", "class_id", "teacher_id", "subject_id", "class", "teacher", "subject"},
		m.Keys())

	v, ok := m.Get("weekday")
	require.True(t, ok)
	require.Equal(t, model.Monday, v)

	// unloaded single-valued relationships stay visible as null
	v, ok = m.Get("class")
	require.True(t, ok)
	require.Nil(t, v)
}

func TestSerializeBreaksCycles(t *testing.T) {
	class := &model.Class{ID: 1, Name: "1A"}
	slot := &model.ScheduleSlot{ID: 2, Weekday: model.Friday, Time: "10:00", ClassID: 1, Class: class}
	class.ScheduleSlots = []*model.ScheduleSlot{slot}

	m, err := serializer.Serialize(class)
	require.NoError(t, err)

	slotsAny, ok := m.Get("schedule_slots")
	require.True(t, ok)
	slots := slotsAny.([]any)
	require.Len(t, slots, 1)

	slotMap := slots[0].(*serializer.Map)
	backRef, ok := slotMap.Get("class")
	require.True(t, ok)

	// the revisited class appears reduced: scalar columns only, no
	// relationship keys, so the traversal terminates
	reduced := backRef.(*serializer.Map)
	require.Equal(t, []string{"id", "name"}, reduced.Keys())
	id, _ := reduced.Get("id")
	require.Equal(t, uint(1), id)
}

func TestSerializeDepthZeroReducesRelationships(t *testing.T) {
	teacher := &model.Teacher{ID: 3, Name: "Ada"}
	subject := &model.Subject{ID: 4, Name: "Math"}
	class := &model.Class{
		ID:   1,
		Name: "1A",
		ScheduleSlots: []*model.ScheduleSlot{
			{ID: 2, Weekday: model.Monday, Time: "08:00", ClassID: 1, TeacherID: 3, SubjectID: 4, Teacher: teacher, Subject: subject},
		},
	}

	m, err := serializer.SerializeDepth(class, 0)
	require.NoError(t, err)

	slots, _ := m.Get("schedule_slots")
	slotMap := slots.([]any)[0].(*serializer.Map)
	require.Equal(t,
		[]string{"id", "weekday", "time", "class_id", "teacher_id", "subject_id"},
		slotMap.Keys())
}

func TestSerializeRevisitCaughtOncePerObject(t *testing.T) {
	shared := &model.Subject{ID: 9, Name: "Physics"}
	teacher := &model.Teacher{ID: 1, Name: "Ada", Subjects: []*model.Subject{shared}}
	slot := &model.ScheduleSlot{ID: 5, Weekday: model.Tuesday, Time: "09:00", TeacherID: 1, SubjectID: 9, Subject: shared}
	teacher.ScheduleSlots = []*model.ScheduleSlot{slot}

	m, err := serializer.Serialize(teacher)
	require.NoError(t, err)

	// first encounter of the shared subject is expanded
	subjects, _ := m.Get("subjects")
	first := subjects.([]any)[0].(*serializer.Map)
	_, hasRel := first.Get("teachers")
	require.True(t, hasRel)

	// the diamond reference through the slot is reduced
	slots, _ := m.Get("schedule_slots")
	slotMap := slots.([]any)[0].(*serializer.Map)
	second := mustMap(t, slotMap, "subject")
	_, hasRel = second.Get("teachers")
	require.False(t, hasRel)
}

func TestSerializeRegularStruct(t *testing.T) {
	type listing struct {
		Items      []*model.Class `json:"items"`
		PageNumber int            `json:"page_number"`
		PageSize   int            `json:"page_size"`
		TotalItems int64          `json:"total_items"`
	}
	l := &listing{
		Items:      []*model.Class{{ID: 1, Name: "1A"}},
		PageNumber: 1,
		PageSize:   10,
		TotalItems: 1,
	}

	m, err := serializer.Serialize(l)
	require.NoError(t, err)
	require.Equal(t, []string{"items", "page_number", "page_size", "total_items"}, m.Keys())

	items, _ := m.Get("items")
	entry := items.([]any)[0].(*serializer.Map)
	name, _ := entry.Get("name")
	require.Equal(t, "1A", name)
}

func mustMap(t *testing.T, m *serializer.Map, key string) *serializer.Map {
	t.Helper()
	v, ok := m.Get(key)
	require.True(t, ok)
	out, ok := v.(*serializer.Map)
	require.True(t, ok)
	return out
}

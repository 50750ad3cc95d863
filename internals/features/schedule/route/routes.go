package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"schoolsched_backend/internals/features/schedule/dto"
	"schoolsched_backend/internals/features/schedule/model"
	"schoolsched_backend/internals/features/schedule/repository"
	"schoolsched_backend/internals/infrastructure"
)

// RegisterScheduleRoutes wires one controller per entity under the given
// router group, one route set each.
func RegisterScheduleRoutes(api fiber.Router, db *gorm.DB) {
	teacherSvc := infrastructure.NewService[model.Teacher]("teacher", repository.NewTeacherRepository(db))
	infrastructure.NewController[model.Teacher, dto.CreateTeacherRequest, dto.UpdateTeacherRequest](teacherSvc).
		RegisterRoutes(api.Group("/teacher"))

	subjectSvc := infrastructure.NewService[model.Subject]("subject", repository.NewSubjectRepository(db))
	infrastructure.NewController[model.Subject, dto.CreateSubjectRequest, dto.UpdateSubjectRequest](subjectSvc).
		RegisterRoutes(api.Group("/subject"))

	classSvc := infrastructure.NewService[model.Class]("class", repository.NewClassRepository(db))
	infrastructure.NewController[model.Class, dto.CreateClassRequest, dto.UpdateClassRequest](classSvc).
		RegisterRoutes(api.Group("/class"))

	slotSvc := infrastructure.NewService[model.ScheduleSlot]("schedule slot", repository.NewScheduleSlotRepository(db))
	infrastructure.NewController[model.ScheduleSlot, dto.CreateScheduleSlotRequest, dto.UpdateScheduleSlotRequest](slotSvc).
		RegisterRoutes(api.Group("/schedule_slot"))
}

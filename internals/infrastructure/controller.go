package infrastructure

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"schoolsched_backend/internals/apperr"
	helper "schoolsched_backend/internals/helpers"
	"schoolsched_backend/internals/serializer"
)

// CreateRequest is a typed creation payload for one entity.
type CreateRequest[T any] interface {
	ToModel() *T
}

// Viewer lets an entity replace the generic serialization with a curated
// public view of its relationship subgraph.
type Viewer interface {
	View() *serializer.Map
}

// Normalizer is implemented by DTOs that trim/canonicalize their input
// before validation.
type Normalizer interface {
	Normalize()
}

// Validatable is implemented by patch DTOs whose tri-state fields cannot be
// covered by struct tags alone.
type Validatable interface {
	Validate() error
}

// Controller exposes the REST route set for one entity:
//
//	GET    /count  GET /all  GET /:id  GET /
//	POST   /       PUT /:id  DELETE /:id
//
// Reads and updates answer 200, create 201, delete 204 without a body.
type Controller[T any, C CreateRequest[T], U Patch[T]] struct {
	svc      *Service[T]
	validate *validator.Validate
}

func NewController[T any, C CreateRequest[T], U Patch[T]](svc *Service[T]) *Controller[T, C, U] {
	return &Controller[T, C, U]{svc: svc, validate: validator.New()}
}

func (ctl *Controller[T, C, U]) RegisterRoutes(r fiber.Router) {
	r.Get("/count", ctl.CountAll)
	r.Get("/all", ctl.GetAllWithoutPagination)
	r.Get("/", ctl.GetAll)
	r.Get("/:id", ctl.GetByID)
	r.Post("/", ctl.Create)
	r.Put("/:id", ctl.Update)
	r.Delete("/:id", ctl.Delete)
}

func (ctl *Controller[T, C, U]) GetByID(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	rec, err := ctl.svc.GetByID(c.UserContext(), id)
	if err != nil {
		return err
	}
	body, err := ctl.render(rec)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(body)
}

func (ctl *Controller[T, C, U]) GetAll(c *fiber.Ctx) error {
	q := helper.ResolveListQuery(c)
	page, err := ctl.svc.GetAll(c.UserContext(), q.PageNumber, q.PageSize, q.Filter)
	if err != nil {
		return err
	}
	items := make([]any, 0, len(page.Items))
	for _, rec := range page.Items {
		body, err := ctl.render(rec)
		if err != nil {
			return err
		}
		items = append(items, body)
	}
	body := serializer.NewMap().
		Set("items", items).
		Set("page_number", page.PageNumber).
		Set("page_size", page.PageSize).
		Set("total_items", page.TotalItems)
	return c.Status(fiber.StatusOK).JSON(body)
}

func (ctl *Controller[T, C, U]) GetAllWithoutPagination(c *fiber.Ctx) error {
	records, err := ctl.svc.GetAllWithoutPagination(c.UserContext())
	if err != nil {
		return err
	}
	items := make([]any, 0, len(records))
	for _, rec := range records {
		body, err := ctl.render(rec)
		if err != nil {
			return err
		}
		items = append(items, body)
	}
	return c.Status(fiber.StatusOK).JSON(items)
}

func (ctl *Controller[T, C, U]) CountAll(c *fiber.Ctx) error {
	total, err := ctl.svc.CountAll(c.UserContext())
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"total_count": total})
}

func (ctl *Controller[T, C, U]) Create(c *fiber.Ctx) error {
	var req C
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid payload")
	}
	if n, ok := any(&req).(Normalizer); ok {
		n.Normalize()
	}
	if err := ctl.validate.Struct(req); err != nil {
		return apperr.Wrap(apperr.ErrInvalidObject, "invalid payload", err)
	}
	created, err := ctl.svc.Create(c.UserContext(), req.ToModel())
	if err != nil {
		return err
	}
	body, err := ctl.render(created)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(body)
}

func (ctl *Controller[T, C, U]) Update(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	var req U
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid payload")
	}
	if n, ok := any(&req).(Normalizer); ok {
		n.Normalize()
	}
	if v, ok := any(&req).(Validatable); ok {
		if err := v.Validate(); err != nil {
			return err
		}
	}
	updated, err := ctl.svc.Update(c.UserContext(), id, req)
	if err != nil {
		return err
	}
	body, err := ctl.render(updated)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(body)
}

func (ctl *Controller[T, C, U]) Delete(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	if err := ctl.svc.Delete(c.UserContext(), id); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (ctl *Controller[T, C, U]) render(rec *T) (any, error) {
	if v, ok := any(rec).(Viewer); ok {
		return v.View(), nil
	}
	body, err := serializer.Serialize(rec)
	if err != nil {
		return nil, apperr.Wrap(apperr.ErrExecutionFailed, "failed to serialize item", err)
	}
	return body, nil
}

func parseID(c *fiber.Ctx) (uint, error) {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return 0, fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}
	return uint(id), nil
}

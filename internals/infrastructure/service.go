package infrastructure

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"schoolsched_backend/internals/apperr"
)

// Service is the thin orchestration layer over a repository: it promotes
// absence to NotFound, re-wraps unexpected failures per operation and logs
// expected domain conditions at warning level, unexpected ones at error
// level. No error is swallowed.
type Service[T any] struct {
	name string
	repo Repository[T]
	log  *slog.Logger
}

func NewService[T any](name string, repo Repository[T]) *Service[T] {
	return &Service[T]{
		name: name,
		repo: repo,
		log:  slog.Default().With("service", name),
	}
}

func (s *Service[T]) GetByID(ctx context.Context, id uint, relationships ...string) (*T, error) {
	rec, err := s.repo.GetByID(ctx, id, relationships...)
	if err != nil {
		s.log.Error("get by id failed", "id", id, "err", err)
		return nil, err
	}
	if rec == nil {
		s.log.Warn("item not found", "id", id)
		return nil, apperr.New(apperr.ErrNotFound, fmt.Sprintf("%s with id %d was not found", s.name, id))
	}
	return rec, nil
}

func (s *Service[T]) GetAll(ctx context.Context, pageNumber, pageSize int, filter string) (*Page[T], error) {
	page, err := s.repo.GetAll(ctx, pageNumber, pageSize, filter)
	if err != nil {
		s.log.Error("list failed", "err", err)
		return nil, apperr.Wrap(apperr.ErrExecutionFailed, "failed to list "+s.name+" items", err)
	}
	s.log.Debug("listed items", "total", page.TotalItems)
	return page, nil
}

func (s *Service[T]) GetAllWithoutPagination(ctx context.Context) ([]*T, error) {
	items, err := s.repo.GetAllWithoutPagination(ctx)
	if err != nil {
		s.log.Error("list all failed", "err", err)
		return nil, apperr.Wrap(apperr.ErrExecutionFailed, "failed to list all "+s.name+" items", err)
	}
	return items, nil
}

func (s *Service[T]) Create(ctx context.Context, rec *T) (*T, error) {
	created, err := s.repo.Create(ctx, rec)
	if err != nil {
		if errors.Is(err, apperr.ErrAlreadyExists) {
			s.log.Warn("item already exists", "err", err)
			return nil, err
		}
		s.log.Error("create failed", "err", err)
		return nil, apperr.Wrap(apperr.ErrCreationFailed, "failed to create "+s.name, err)
	}
	s.log.Debug("item created", "id", recordID(created))
	return created, nil
}

func (s *Service[T]) Update(ctx context.Context, id uint, patch Patch[T]) (*T, error) {
	updated, err := s.repo.Update(ctx, id, patch)
	if err != nil {
		if errors.Is(err, apperr.ErrInvalidObject) {
			s.log.Warn("invalid update payload", "id", id, "err", err)
			return nil, err
		}
		s.log.Error("update failed", "id", id, "err", err)
		return nil, apperr.Wrap(apperr.ErrUpdateFailed, "failed to update "+s.name, err)
	}
	if updated == nil {
		s.log.Warn("item not found for update", "id", id)
		return nil, apperr.New(apperr.ErrNotFound, fmt.Sprintf("%s with id %d was not found", s.name, id))
	}
	s.log.Debug("item updated", "id", id)
	return updated, nil
}

func (s *Service[T]) Delete(ctx context.Context, id uint) error {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		s.log.Error("delete failed", "id", id, "err", err)
		return apperr.Wrap(apperr.ErrDeleteFailed, "failed to delete "+s.name, err)
	}
	if !deleted {
		s.log.Warn("item not found for delete", "id", id)
		return apperr.New(apperr.ErrNotFound, fmt.Sprintf("%s with id %d was not found", s.name, id))
	}
	s.log.Debug("item deleted", "id", id)
	return nil
}

func (s *Service[T]) CountAll(ctx context.Context) (int64, error) {
	total, err := s.repo.CountAll(ctx)
	if err != nil {
		s.log.Error("count failed", "err", err)
		return 0, apperr.Wrap(apperr.ErrExecutionFailed, "failed to count "+s.name+" items", err)
	}
	return total, nil
}

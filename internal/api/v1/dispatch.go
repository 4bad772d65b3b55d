package v1

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/google/uuid"

	"github.com/gosuda/estatehub/internal/domain"
	"github.com/gosuda/estatehub/internal/router"
)

// IDOutput is returned by commands that create or touch an entity.
type IDOutput struct {
	Body struct {
		ID uuid.UUID `json:"id" doc:"Entity ID"`
	}
}

func idOutput(id uuid.UUID) *IDOutput {
	out := &IDOutput{}
	out.Body.ID = id
	return out
}

// dispatch sends req and converts the result to T, mapping domain errors to
// HTTP errors.
func dispatch[T any](ctx context.Context, d Dispatcher, req router.Request) (T, error) {
	var zero T

	res, err := d.Dispatch(ctx, req)
	if err != nil {
		return zero, httpError(err)
	}

	v, ok := res.(T)
	if !ok {
		return zero, huma.Error500InternalServerError(
			fmt.Sprintf("unexpected %s result %T", router.RequestName(req), res))
	}
	return v, nil
}

// command dispatches req and returns the id of the touched entity.
func command(ctx context.Context, d Dispatcher, req router.Request) (*IDOutput, error) {
	id, err := dispatch[uuid.UUID](ctx, d, req)
	if err != nil {
		return nil, err
	}
	return idOutput(id), nil
}

func httpError(err error) error {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return huma.Error404NotFound(err.Error())
	case errors.Is(err, domain.ErrInvalid):
		return huma.Error400BadRequest(err.Error())
	case errors.Is(err, domain.ErrConflict):
		return huma.Error409Conflict(err.Error())
	default:
		return huma.Error500InternalServerError("request failed", err)
	}
}

// parseDate reads a YYYY-MM-DD query value. Empty yields the zero time.
func parseDate(name, s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return time.Time{}, huma.Error400BadRequest(fmt.Sprintf("%s must be a YYYY-MM-DD date", name))
	}
	return t, nil
}

// parseRange reads a required start/end pair.
func parseRange(start, end string) (time.Time, time.Time, error) {
	s, err := parseDate("start_date", start)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	e, err := parseDate("end_date", end)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	if e.Before(s) {
		return time.Time{}, time.Time{}, huma.Error400BadRequest("end_date is before start_date")
	}
	return s, e, nil
}

// parseID reads an optional UUID query value. Empty yields uuid.Nil.
func parseID(name, s string) (uuid.UUID, error) {
	if s == "" {
		return uuid.Nil, nil
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, huma.Error400BadRequest(fmt.Sprintf("%s must be a UUID", name))
	}
	return id, nil
}

// parseIDs reads a list of UUIDs, accepting comma-separated values.
func parseIDs(name string, values []string) ([]uuid.UUID, error) {
	var out []uuid.UUID
	for _, v := range values {
		for part := range strings.SplitSeq(v, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			id, err := parseID(name, part)
			if err != nil {
				return nil, err
			}
			out = append(out, id)
		}
	}
	return out, nil
}

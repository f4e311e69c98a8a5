package search_routes

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/Kelale-BookingPortal/internal/domain"
	"github.com/m04kA/Kelale-BookingPortal/pkg/logger"
)

type fakeSearcher struct {
	got    *domain.RouteSearch
	routes []domain.Route
	err    error
}

func (f *fakeSearcher) SearchRoutes(_ context.Context, search domain.RouteSearch) ([]domain.Route, error) {
	f.got = &search
	return f.routes, f.err
}

func TestExecute_TrimsParameters(t *testing.T) {
	client := &fakeSearcher{routes: []domain.Route{{ID: "r1"}, {ID: "r2"}}}
	uc := NewUseCase(client, logger.Nop())

	resp, err := uc.Execute(context.Background(), &Request{From: "  Addis Ababa ", To: "Gondar ", Date: "2026-10-20"})
	require.NoError(t, err)
	assert.Len(t, resp.Routes, 2)

	require.NotNil(t, client.got)
	assert.Equal(t, "Addis Ababa", client.got.From)
	assert.Equal(t, "Gondar", client.got.To)
	require.NotNil(t, client.got.Date)
	assert.Equal(t, 20, client.got.Date.Day())
}

func TestExecute_EmptySearchIsAllowed(t *testing.T) {
	client := &fakeSearcher{}
	uc := NewUseCase(client, logger.Nop())

	resp, err := uc.Execute(context.Background(), &Request{})
	require.NoError(t, err)
	assert.Empty(t, resp.Routes)
	assert.Nil(t, client.got.Date)
}

func TestExecute_InvalidDate(t *testing.T) {
	client := &fakeSearcher{}
	uc := NewUseCase(client, logger.Nop())

	_, err := uc.Execute(context.Background(), &Request{Date: "20.10.2026"})
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Nil(t, client.got, "backend must not be called")
}

func TestExecute_BackendError(t *testing.T) {
	client := &fakeSearcher{err: errors.New("connection refused")}
	uc := NewUseCase(client, logger.Nop())

	_, err := uc.Execute(context.Background(), &Request{From: "Addis Ababa"})
	assert.ErrorIs(t, err, ErrInternal)
}

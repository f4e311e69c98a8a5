package workflow

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/Kelale-BookingPortal/internal/domain"
	"github.com/m04kA/Kelale-BookingPortal/internal/integrations/kelaleapi"
	"github.com/m04kA/Kelale-BookingPortal/internal/service/passengers"
	"github.com/m04kA/Kelale-BookingPortal/internal/service/seats"
	"github.com/m04kA/Kelale-BookingPortal/internal/usecase/create_booking"
	"github.com/m04kA/Kelale-BookingPortal/internal/usecase/load_route"
	"github.com/m04kA/Kelale-BookingPortal/pkg/logger"
	"github.com/m04kA/Kelale-BookingPortal/pkg/ptr"
)

var today = time.Date(2026, time.October, 19, 12, 0, 0, 0, time.UTC)

type fixedClock struct{}

func (fixedClock) Now() time.Time { return today }

type fakeRouteClient struct {
	route *domain.Route
	err   error
}

func (c *fakeRouteClient) GetRoute(context.Context, string) (*domain.Route, error) {
	return c.route, c.err
}

type fakeBookingClient struct {
	mu    sync.Mutex
	calls []domain.BookingRequest
	fn    func(ctx context.Context) (*domain.BookingResult, error)
}

func (c *fakeBookingClient) CreateBooking(ctx context.Context, _ string, req domain.BookingRequest) (*domain.BookingResult, error) {
	c.mu.Lock()
	c.calls = append(c.calls, req)
	fn := c.fn
	c.mu.Unlock()
	return fn(ctx)
}

func (c *fakeBookingClient) callCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.calls)
}

func succeed(context.Context) (*domain.BookingResult, error) {
	return &domain.BookingResult{
		Booking:     domain.Booking{ID: "bk1", Status: domain.StatusPending, TotalPrice: 850},
		QR:          "data:image/png;base64,AAA",
		PaymentCode: "PC-77",
	}, nil
}

var abel = &domain.User{ID: "u1", FirstName: "Abel", LastName: "T", PhoneNumber: "0911", DateOfBirth: "1990-05-01"}

func route(schedules ...domain.Schedule) *domain.Route {
	return &domain.Route{ID: "r1", From: "Addis Ababa", To: "Dire Dawa", Price: 850, Schedules: schedules}
}

func scenarioSchedule() domain.Schedule {
	return domain.Schedule{ID: "s1", Bus: &domain.Bus{ID: "b1", Seats: ptr.Ptr(45)}, SeatsLeft: ptr.Ptr(5)}
}

func newFlow(t *testing.T, r *domain.Route, booking *fakeBookingClient, user *domain.User) *Flow {
	t.Helper()
	log := logger.Nop()
	resolver := seats.NewResolver(50)

	var session domain.StaticSession
	if user != nil {
		session.Session = &domain.Session{Token: "tkn", User: user}
	}
	if booking == nil {
		booking = &fakeBookingClient{fn: succeed}
	}

	f := New("flow-1", "r1", "", Dependencies{
		Loader:    load_route.NewUseCase(&fakeRouteClient{route: r}, resolver, log),
		Submitter: create_booking.NewUseCase(booking, nil, resolver, nil, domain.PaymentCash, log),
		Sessions:  session,
		Clock:     fixedClock{},
		Logger:    log,
	})
	require.NoError(t, f.Load(context.Background()))
	return f
}

// readyToSubmit доводит страницу до состояния "можно отправлять": дата, форма, профиль, место 3
func readyToSubmit(t *testing.T, f *Flow) {
	t.Helper()
	require.NoError(t, f.SelectDepartureDate(today.AddDate(0, 0, 1)))
	require.NoError(t, f.ContinueToBooking())
	require.NoError(t, f.ChooseProfileMode(context.Background()))
	require.NoError(t, f.ToggleSeat(context.Background(), 3))
}

func TestFlow_LoadStates(t *testing.T) {
	f := New("f", "r1", "", Dependencies{
		Loader: load_route.NewUseCase(&fakeRouteClient{err: kelaleapi.ErrRouteNotFound}, seats.NewResolver(50), logger.Nop()),
	})
	assert.Equal(t, LoadLoading, f.View().Load)

	err := f.Load(context.Background())
	assert.ErrorIs(t, err, ErrRouteNotFound)
	assert.Equal(t, LoadNotFound, f.View().Load)
	assert.ErrorIs(t, f.ToggleSeat(context.Background(), 1), ErrNotLoaded)

	failing := New("f", "r1", "", Dependencies{
		Loader: load_route.NewUseCase(&fakeRouteClient{err: errors.New("timeout")}, seats.NewResolver(50), logger.Nop()),
	})
	assert.ErrorIs(t, failing.Load(context.Background()), ErrLoadFailed)
	v := failing.View()
	assert.Equal(t, LoadFailed, v.Load)
	assert.NotEmpty(t, v.LoadError)
}

func TestFlow_SeatMapAfterLoad(t *testing.T) {
	f := newFlow(t, route(scenarioSchedule()), nil, abel)

	v := f.View()
	require.Len(t, v.SeatMap, 45)
	assert.True(t, v.SeatMap[4].Selectable)
	assert.False(t, v.SeatMap[5].Selectable)
	assert.Equal(t, domain.TotalFromScheduleBus, v.Seats.TotalSource)
	assert.Equal(t, domain.PaymentCash, v.PaymentMethod)
	assert.False(t, v.SubmitEnabled)
}

func TestFlow_RouteWithoutSchedules(t *testing.T) {
	booking := &fakeBookingClient{fn: succeed}
	f := newFlow(t, route(), booking, abel)

	v := f.View()
	assert.True(t, v.NoSchedules)
	assert.False(t, v.SubmitEnabled)

	require.NoError(t, f.SelectDepartureDate(today))
	assert.ErrorIs(t, f.ContinueToBooking(), ErrNoSchedule)
	assert.ErrorIs(t, f.ChooseProfileMode(context.Background()), ErrNoSchedule)
	assert.ErrorIs(t, f.ToggleSeat(context.Background(), 1), ErrNoSchedule)

	_, err := f.Submit(context.Background())
	assert.ErrorIs(t, err, ErrNoSchedule)
	assert.Zero(t, booking.callCount())
}

func TestFlow_Dates(t *testing.T) {
	f := newFlow(t, route(scenarioSchedule()), nil, abel)

	assert.ErrorIs(t, f.SelectDepartureDate(today.AddDate(0, 0, -1)), ErrDateInPast)
	assert.ErrorIs(t, f.ContinueToBooking(), ErrDepartureDateRequired)
	assert.ErrorIs(t, f.SelectReturnDate(today.AddDate(0, 0, 5)), ErrNotRoundTrip)

	require.NoError(t, f.SetTripType(TripRoundTrip))
	require.NoError(t, f.SelectDepartureDate(today.AddDate(0, 0, 3)))
	assert.ErrorIs(t, f.SelectReturnDate(today.AddDate(0, 0, 2)), ErrReturnBeforeDeparture)
	require.NoError(t, f.SelectReturnDate(today.AddDate(0, 0, 7)))

	// новая дата отправления позже даты возвращения сбрасывает возвращение
	require.NoError(t, f.SelectDepartureDate(today.AddDate(0, 0, 10)))
	assert.Nil(t, f.View().ReturnDate)

	require.NoError(t, f.SelectReturnDate(today.AddDate(0, 0, 12)))
	require.NoError(t, f.SetTripType(TripOneWay))
	assert.Nil(t, f.View().ReturnDate, "one-way trip has no return date")

	assert.ErrorIs(t, f.SetTripType("there-and-back"), ErrInvalidInput)
}

func TestFlow_PassengerModeSwitchClearsData(t *testing.T) {
	f := newFlow(t, route(scenarioSchedule()), nil, abel)

	assert.ErrorIs(t, f.UpdateManualPassenger(domain.ManualFields{FirstName: "X"}), ErrNotManualMode)

	require.NoError(t, f.ChooseManualMode())
	require.NoError(t, f.UpdateManualPassenger(domain.ManualFields{
		FirstName: "Hana", LastName: "Girma", DateOfBirth: "2000-10-20", Gender: domain.GenderFemale,
	}))
	v := f.View()
	assert.Equal(t, domain.SourceManual, v.PassengerMode)
	assert.Equal(t, "Hana Girma", v.Passenger.FullName)
	require.NotNil(t, v.Passenger.Age)
	assert.Equal(t, 25, *v.Passenger.Age)

	require.NoError(t, f.ChooseProfileMode(context.Background()))
	v = f.View()
	assert.Equal(t, domain.SourceProfile, v.PassengerMode)
	assert.Equal(t, "Abel T", v.Passenger.FullName)

	require.NoError(t, f.ChooseManualMode())
	v = f.View()
	assert.Equal(t, "", v.Passenger.FirstName, "manual form starts empty, no merge with profile")
	assert.Nil(t, v.Passenger.Age)
}

func TestFlow_ProfileModeRequiresSessionAndNames(t *testing.T) {
	guest := newFlow(t, route(scenarioSchedule()), nil, nil)
	assert.ErrorIs(t, guest.ChooseProfileMode(context.Background()), ErrAuthRequired)

	incomplete := newFlow(t, route(scenarioSchedule()), nil, &domain.User{ID: "u2", LastName: "T"})
	require.NoError(t, incomplete.ChooseManualMode())

	err := incomplete.ChooseProfileMode(context.Background())
	require.ErrorIs(t, err, ErrInvalidPassenger)
	verrs, ok := passengers.AsValidationErrors(err)
	require.True(t, ok)
	assert.Equal(t, []string{passengers.FieldFirstName}, verrs.Fields())
	assert.Equal(t, domain.SourceManual, incomplete.View().PassengerMode, "rejected mode leaves the current mode")
}

func TestFlow_SubmitSucceeds(t *testing.T) {
	booking := &fakeBookingClient{fn: succeed}
	f := newFlow(t, route(scenarioSchedule()), booking, abel)
	readyToSubmit(t, f)
	require.NoError(t, f.SetPaymentMethod(domain.PaymentMobile))

	v := f.View()
	assert.True(t, v.SubmitEnabled)
	assert.Equal(t, 850.0, v.TotalPrice)

	conf, err := f.Submit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "bk1", conf.BookingID)
	assert.Equal(t, "Pending Payment", conf.Status.Label())
	assert.Equal(t, "PC-77", conf.PaymentCode)
	assert.Equal(t, 3, conf.Seat)

	require.Len(t, booking.calls, 1)
	assert.Equal(t, []int{3}, booking.calls[0].Seats)
	assert.Equal(t, domain.PaymentMobile, booking.calls[0].PaymentMethod)
	require.Len(t, booking.calls[0].Passengers, 1)
	assert.Equal(t, 3, booking.calls[0].Passengers[0].Seat)

	v = f.View()
	assert.Equal(t, RequestSucceeded, v.Request)
	assert.False(t, v.SubmitEnabled)
	require.NotNil(t, v.Confirmation)

	_, err = f.Submit(context.Background())
	assert.ErrorIs(t, err, ErrAlreadyBooked)
	assert.ErrorIs(t, f.ToggleSeat(context.Background(), 4), ErrAlreadyBooked)
	assert.Equal(t, 1, booking.callCount())
}

func TestFlow_ValidationLeavesRequestStateUnchanged(t *testing.T) {
	booking := &fakeBookingClient{fn: succeed}
	f := newFlow(t, route(scenarioSchedule()), booking, abel)
	require.NoError(t, f.SelectDepartureDate(today))
	require.NoError(t, f.ContinueToBooking())

	_, err := f.Submit(context.Background())
	assert.ErrorIs(t, err, ErrSeatNotSelected)
	assert.Equal(t, RequestIdle, f.View().Request)

	require.NoError(t, f.ToggleSeat(context.Background(), 2))
	_, err = f.Submit(context.Background())
	assert.ErrorIs(t, err, ErrInvalidPassenger, "no passenger mode chosen")

	require.NoError(t, f.ChooseManualMode())
	require.NoError(t, f.UpdateManualPassenger(domain.ManualFields{FirstName: "Hana", LastName: "Girma"}))
	_, err = f.Submit(context.Background())
	require.ErrorIs(t, err, ErrInvalidPassenger)
	verrs, ok := passengers.AsValidationErrors(err)
	require.True(t, ok)
	assert.ElementsMatch(t, []string{passengers.FieldDateOfBirth, passengers.FieldGender}, verrs.Fields())

	assert.Equal(t, RequestIdle, f.View().Request)
	assert.Zero(t, booking.callCount())
}

func TestFlow_BackendFailurePreservesSelections(t *testing.T) {
	attempts := 0
	booking := &fakeBookingClient{fn: func(ctx context.Context) (*domain.BookingResult, error) {
		attempts++
		if attempts == 1 {
			return nil, &kelaleapi.APIError{StatusCode: 400, Message: "Seat 3 is already booked"}
		}
		return succeed(ctx)
	}}
	f := newFlow(t, route(scenarioSchedule()), booking, abel)
	readyToSubmit(t, f)

	_, err := f.Submit(context.Background())
	require.ErrorIs(t, err, ErrSubmissionFailed)

	v := f.View()
	assert.Equal(t, RequestFailed, v.Request)
	assert.Equal(t, "Seat 3 is already booked", v.FailureReason)
	assert.Equal(t, 3, v.SelectedSeat)
	assert.Equal(t, "Abel T", v.Passenger.FullName)
	assert.True(t, v.SubmitEnabled, "user can retry without re-entering data")

	_, err = f.Submit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, RequestSucceeded, f.View().Request)
	assert.Empty(t, f.View().FailureReason)
}

func TestFlow_InFlightGuard(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{})
	booking := &fakeBookingClient{fn: func(ctx context.Context) (*domain.BookingResult, error) {
		close(started)
		<-release
		return succeed(ctx)
	}}
	f := newFlow(t, route(scenarioSchedule()), booking, abel)
	readyToSubmit(t, f)

	done := make(chan error, 1)
	go func() {
		_, err := f.Submit(context.Background())
		done <- err
	}()
	<-started

	v := f.View()
	assert.Equal(t, RequestSubmitting, v.Request)
	assert.False(t, v.SubmitEnabled)

	_, err := f.Submit(context.Background())
	assert.ErrorIs(t, err, ErrSubmissionInFlight)
	assert.ErrorIs(t, f.ToggleSeat(context.Background(), 4), ErrSubmissionInFlight)
	assert.ErrorIs(t, f.Load(context.Background()), ErrSubmissionInFlight)

	close(release)
	require.NoError(t, <-done)
	assert.Equal(t, 1, booking.callCount())
	assert.Equal(t, RequestSucceeded, f.View().Request)
}

func TestFlow_CloseCancelsSubmission(t *testing.T) {
	started := make(chan struct{})
	booking := &fakeBookingClient{fn: func(ctx context.Context) (*domain.BookingResult, error) {
		close(started)
		<-ctx.Done()
		return nil, ctx.Err()
	}}
	f := newFlow(t, route(scenarioSchedule()), booking, abel)
	readyToSubmit(t, f)

	done := make(chan error, 1)
	go func() {
		_, err := f.Submit(context.Background())
		done <- err
	}()
	<-started

	f.Close()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, ErrFlowClosed)
	case <-time.After(2 * time.Second):
		t.Fatal("submission was not cancelled")
	}

	assert.True(t, f.Closed())
	assert.ErrorIs(t, f.ToggleSeat(context.Background(), 1), ErrFlowClosed)
	assert.ErrorIs(t, f.Load(context.Background()), ErrFlowClosed)
	f.Close()
}

func TestFlow_ReloadClearsUnavailableSeat(t *testing.T) {
	client := &fakeRouteClient{route: route(domain.Schedule{ID: "s1", Bus: &domain.Bus{Seats: ptr.Ptr(10)}, SeatsLeft: ptr.Ptr(10)})}
	resolver := seats.NewResolver(50)
	f := New("f", "r1", "s1", Dependencies{
		Loader: load_route.NewUseCase(client, resolver, logger.Nop()),
		Clock:  fixedClock{},
	})
	require.NoError(t, f.Load(context.Background()))
	require.NoError(t, f.ToggleSeat(context.Background(), 8))

	client.route = route(domain.Schedule{ID: "s1", Bus: &domain.Bus{Seats: ptr.Ptr(10)}, SeatsLeft: ptr.Ptr(3)})
	require.NoError(t, f.Load(context.Background()))
	assert.Equal(t, 0, f.View().SelectedSeat)
}

func TestFlow_Apply(t *testing.T) {
	f := newFlow(t, route(scenarioSchedule()), nil, abel)

	roundTrip := TripRoundTrip
	departure := today.AddDate(0, 0, 1)
	ret := today.AddDate(0, 0, 4)
	mode := domain.SourceManual
	card := domain.PaymentCard

	require.NoError(t, f.Apply(context.Background(), Update{
		TripType:        &roundTrip,
		DepartureDate:   &departure,
		ReturnDate:      &ret,
		ContinueBooking: true,
		PassengerMode:   &mode,
		ManualPassenger: &domain.ManualFields{FirstName: "Hana", LastName: "Girma", DateOfBirth: "2000-01-01", Gender: domain.GenderFemale},
		PaymentMethod:   &card,
	}))

	v := f.View()
	assert.Equal(t, TripRoundTrip, v.TripType)
	assert.True(t, v.FormShown)
	assert.Equal(t, "Hana Girma", v.Passenger.FullName)
	assert.Equal(t, domain.PaymentCard, v.PaymentMethod)

	bad := domain.PaymentMethod("crypto")
	assert.ErrorIs(t, f.Apply(context.Background(), Update{PaymentMethod: &bad}), ErrInvalidInput)
}

type sessionKey struct{}

// ctxSessions сессия из контекста вызова, как у HTTP запросов
type ctxSessions struct{}

func (ctxSessions) GetSession(ctx context.Context) (*domain.Session, bool) {
	s, _ := ctx.Value(sessionKey{}).(*domain.Session)
	return s, s != nil && s.Token != ""
}

func as(s *domain.Session) context.Context {
	return context.WithValue(context.Background(), sessionKey{}, s)
}

func newSharedFlow(t *testing.T, booking *fakeBookingClient) *Flow {
	t.Helper()
	log := logger.Nop()
	resolver := seats.NewResolver(50)

	f := New("flow-shared", "r1", "", Dependencies{
		Loader:    load_route.NewUseCase(&fakeRouteClient{route: route(scenarioSchedule())}, resolver, log),
		Submitter: create_booking.NewUseCase(booking, nil, resolver, nil, domain.PaymentCash, log),
		Sessions:  ctxSessions{},
		Clock:     fixedClock{},
		Logger:    log,
	})
	require.NoError(t, f.Load(context.Background()))
	return f
}

func TestFlow_OwnedByFirstSession(t *testing.T) {
	booking := &fakeBookingClient{fn: succeed}
	f := newSharedFlow(t, booking)

	ownerUser := &domain.User{ID: "a", FirstName: "Abel", LastName: "T", Email: "abel@x", PhoneNumber: "0911", DateOfBirth: "1990-05-01"}
	owner := as(&domain.Session{Token: "tkn-a", Subject: "a", Verified: true, User: ownerUser})
	other := as(&domain.Session{Token: "tkn-b", Subject: "b", Verified: true, User: &domain.User{ID: "b", FirstName: "Bob", LastName: "K"}})
	guest := context.Background()

	require.NoError(t, f.Apply(owner, Update{
		DepartureDate:   ptr.Ptr(today.AddDate(0, 0, 1)),
		ContinueBooking: true,
		PassengerMode:   ptr.Ptr(domain.SourceProfile),
	}))
	require.NoError(t, f.ToggleSeat(owner, 3))

	assert.ErrorIs(t, f.ToggleSeat(other, 4), ErrNotFlowOwner)
	assert.ErrorIs(t, f.Apply(other, Update{PassengerMode: ptr.Ptr(domain.SourceProfile)}), ErrNotFlowOwner)
	assert.ErrorIs(t, f.Apply(guest, Update{PaymentMethod: ptr.Ptr(domain.PaymentCard)}), ErrAuthRequired)
	assert.ErrorIs(t, f.Authorize(other), ErrNotFlowOwner)

	_, err := f.Submit(other)
	assert.ErrorIs(t, err, ErrNotFlowOwner)
	assert.Zero(t, booking.callCount(), "another session must not book with the owner's passenger")

	for name, ctx := range map[string]context.Context{"guest": guest, "other": other} {
		v := f.ViewFor(ctx)
		assert.Nil(t, v.Passenger, name)
		assert.False(t, v.SubmitEnabled, name)
		assert.Equal(t, 3, v.SelectedSeat, name)
	}

	v := f.ViewFor(owner)
	require.NotNil(t, v.Passenger)
	assert.Equal(t, "abel@x", v.Passenger.Email)

	conf, err := f.Submit(owner)
	require.NoError(t, err)
	assert.Equal(t, "PC-77", conf.PaymentCode)

	redacted := f.ViewFor(other).Confirmation
	require.NotNil(t, redacted)
	assert.Empty(t, redacted.PaymentCode)
	assert.Empty(t, redacted.QR)
	assert.Empty(t, redacted.BookingID)
	assert.Equal(t, domain.StatusPending, redacted.Status)
}

func TestFlow_GuestFlowIsClaimedOnLogin(t *testing.T) {
	f := newSharedFlow(t, &fakeBookingClient{fn: succeed})

	require.NoError(t, f.Apply(context.Background(), Update{DepartureDate: ptr.Ptr(today.AddDate(0, 0, 1))}))

	loggedIn := as(&domain.Session{Token: "opaque-a", User: abel})
	require.NoError(t, f.Apply(loggedIn, Update{ContinueBooking: true, PassengerMode: ptr.Ptr(domain.SourceProfile)}))

	// неподписанный токен закрепляет страницу за самим токеном
	sameUserOtherToken := as(&domain.Session{Token: "opaque-b", User: abel})
	assert.ErrorIs(t, f.ToggleSeat(sameUserOtherToken, 3), ErrNotFlowOwner)
	require.NoError(t, f.ToggleSeat(loggedIn, 3))
}

func TestFlow_ViewKeepsFlowAlive(t *testing.T) {
	clock := &movingClock{now: today}
	f := New("f", "r1", "", Dependencies{
		Loader: load_route.NewUseCase(&fakeRouteClient{route: route(scenarioSchedule())}, seats.NewResolver(50), logger.Nop()),
		Clock:  clock,
	})
	require.NoError(t, f.Load(context.Background()))

	clock.now = today.Add(20 * time.Minute)
	f.View()
	assert.Equal(t, clock.now, f.LastActivity())

	clock.now = today.Add(40 * time.Minute)
	f.ViewFor(context.Background())
	assert.Equal(t, clock.now, f.LastActivity())
}

type movingClock struct {
	now time.Time
}

func (c *movingClock) Now() time.Time { return c.now }

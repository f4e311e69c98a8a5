package workflow

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/m04kA/Kelale-BookingPortal/internal/domain"
	"github.com/m04kA/Kelale-BookingPortal/internal/service/passengers"
	"github.com/m04kA/Kelale-BookingPortal/internal/service/seats"
	"github.com/m04kA/Kelale-BookingPortal/internal/usecase/create_booking"
	"github.com/m04kA/Kelale-BookingPortal/internal/usecase/load_route"
)

// Flow состояние одной открытой страницы бронирования маршрута:
// загрузка маршрута -> тип поездки и даты -> пассажир -> место -> отправка -> подтверждение.
// Все методы безопасны для конкурентного вызова
type Flow struct {
	mu sync.Mutex

	id         string
	routeID    string
	scheduleID string
	deps       Dependencies

	load             LoadState
	loadError        string
	route            *domain.Route
	schedule         *domain.Schedule
	scheduleFallback bool
	availability     domain.SeatAvailability

	tripType      TripType
	departureDate *time.Time
	returnDate    *time.Time
	formShown     bool

	source    domain.PassengerSource
	selection seats.Selection
	payment   domain.PaymentMethod

	request       RequestState
	failureReason string
	confirmation  *Confirmation
	cancelSubmit  context.CancelFunc

	// owner principal сессии, за которой закреплена страница. Пусто - страница еще ничья
	owner string

	closed       bool
	lastActivity time.Time
}

// New создает страницу бронирования маршрута routeID. scheduleID - рейс из ссылки (может быть пустым).
// Маршрут загружается отдельным вызовом Load
func New(id, routeID, scheduleID string, deps Dependencies) *Flow {
	deps = deps.withDefaults()
	return &Flow{
		id:           id,
		routeID:      routeID,
		scheduleID:   scheduleID,
		deps:         deps,
		load:         LoadLoading,
		tripType:     TripOneWay,
		payment:      deps.DefaultPaymentMethod,
		request:      RequestIdle,
		lastActivity: deps.Clock.Now(),
	}
}

// ID идентификатор страницы
func (f *Flow) ID() string {
	return f.id
}

// LastActivity время последней операции
func (f *Flow) LastActivity() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lastActivity
}

// Authorize закрепляет ничью страницу за сессией вызывающего и проверяет, что вызывающий - владелец.
// Гость получает ErrAuthRequired, другая сессия - ErrNotFlowOwner
func (f *Flow) Authorize(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.authorize(ctx)
}

// Load загружает маршрут и выбирает рейс. Повторный вызов перезагружает данные;
// выбранное место снимается, если оно перестало быть доступным
func (f *Flow) Load(ctx context.Context) error {
	f.mu.Lock()
	if err := f.authorize(ctx); err != nil {
		f.mu.Unlock()
		return err
	}
	if err := f.checkOpen(); err != nil {
		f.mu.Unlock()
		return err
	}
	if f.request == RequestSubmitting {
		f.mu.Unlock()
		return ErrSubmissionInFlight
	}
	f.load = LoadLoading
	f.loadError = ""
	f.touch()
	f.mu.Unlock()

	resp, err := f.deps.Loader.Execute(ctx, &load_route.Request{RouteID: f.routeID, ScheduleID: f.scheduleID})

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return ErrFlowClosed
	}

	if err != nil {
		f.route, f.schedule = nil, nil
		f.availability = domain.SeatAvailability{}
		f.selection.Clear()
		if errors.Is(err, load_route.ErrRouteNotFound) {
			f.load = LoadNotFound
			f.loadError = "Route not found"
			return fmt.Errorf("%w: %w", ErrRouteNotFound, err)
		}
		f.load = LoadFailed
		f.loadError = "Failed to load route. Please try again."
		return fmt.Errorf("%w: %w", ErrLoadFailed, err)
	}

	f.load = LoadReady
	f.route = resp.Route
	f.schedule = resp.Schedule
	f.scheduleFallback = resp.ScheduleFallback
	f.availability = resp.Seats
	if f.selection.Reconcile(f.availability) {
		f.deps.Logger.Info("Flow %s: selected seat is no longer available, selection cleared", f.id)
	}
	return nil
}

// SetTripType меняет тип поездки. В одну сторону - дата возвращения сбрасывается
func (f *Flow) SetTripType(t TripType) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.checkEditable(); err != nil {
		return err
	}
	if !t.IsValid() {
		return fmt.Errorf("%w: unknown trip type %q", ErrInvalidInput, t)
	}

	f.tripType = t
	if t == TripOneWay {
		f.returnDate = nil
	}
	return nil
}

// SelectDepartureDate выбирает дату отправления (не раньше сегодня).
// Дата возвращения раньше новой даты отправления сбрасывается
func (f *Flow) SelectDepartureDate(d time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.checkEditable(); err != nil {
		return err
	}

	day := dateOnly(d)
	if day.Before(f.today()) {
		return ErrDateInPast
	}

	f.departureDate = &day
	if f.returnDate != nil && f.returnDate.Before(day) {
		f.returnDate = nil
	}
	return nil
}

// SelectReturnDate выбирает дату возвращения (только туда-обратно, не раньше отправления)
func (f *Flow) SelectReturnDate(d time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.checkEditable(); err != nil {
		return err
	}
	if f.tripType != TripRoundTrip {
		return ErrNotRoundTrip
	}

	day := dateOnly(d)
	if day.Before(f.today()) {
		return ErrDateInPast
	}
	if f.departureDate != nil && day.Before(*f.departureDate) {
		return ErrReturnBeforeDeparture
	}

	f.returnDate = &day
	return nil
}

// ContinueToBooking открывает форму бронирования. Нужна дата отправления.
// Если у маршрута нет рейсов, форма не открывается
func (f *Flow) ContinueToBooking() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.checkEditable(); err != nil {
		return err
	}
	if f.departureDate == nil {
		return ErrDepartureDateRequired
	}
	if f.schedule == nil {
		return ErrNoSchedule
	}

	f.formShown = true
	return nil
}

// ChooseProfileMode пассажир - сам пользователь: данные копируются из профиля сессии.
// Профиль без имени или фамилии отклоняется, текущий режим при этом не меняется
func (f *Flow) ChooseProfileMode(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.authorize(ctx); err != nil {
		return err
	}
	if err := f.checkBookable(); err != nil {
		return err
	}

	session, ok := f.deps.Sessions.GetSession(ctx)
	if !ok || session.User == nil {
		return ErrAuthRequired
	}

	source := domain.ProfileSource{User: *session.User}
	if _, err := passengers.ToPassengerRecord(source, 1, f.deps.Clock.Now()); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidPassenger, err)
	}

	f.source = source
	return nil
}

// ChooseManualMode бронирование на другого человека: пустая форма, копия профиля отбрасывается
func (f *Flow) ChooseManualMode() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.checkBookable(); err != nil {
		return err
	}

	f.source = domain.ManualSource{}
	return nil
}

// UpdateManualPassenger заменяет поля ручной формы. Возраст пересчитывается из даты рождения
func (f *Flow) UpdateManualPassenger(fields domain.ManualFields) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.checkBookable(); err != nil {
		return err
	}
	if _, ok := f.source.(domain.ManualSource); !ok {
		return ErrNotManualMode
	}

	f.source = domain.ManualSource{Fields: fields}
	return nil
}

// ToggleSeat выбирает место; повторный выбор того же места снимает выбор, другое место заменяет выбранное
func (f *Flow) ToggleSeat(ctx context.Context, seat int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.authorize(ctx); err != nil {
		return err
	}
	if err := f.checkBookable(); err != nil {
		return err
	}

	if err := f.selection.Toggle(f.availability, seat); err != nil {
		return fmt.Errorf("%w: %w", ErrSeatNotSelectable, err)
	}
	return nil
}

// SetPaymentMethod выбирает способ оплаты: cash, card или mobile
func (f *Flow) SetPaymentMethod(m domain.PaymentMethod) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.checkBookable(); err != nil {
		return err
	}
	if !m.IsValid() {
		return fmt.Errorf("%w: unknown payment method %q", ErrInvalidInput, m)
	}

	f.payment = m
	return nil
}

// Apply применяет несколько изменений по порядку, останавливаясь на первой ошибке.
// Изменения принимаются только от владельца страницы
func (f *Flow) Apply(ctx context.Context, u Update) error {
	if err := f.Authorize(ctx); err != nil {
		return err
	}
	if u.TripType != nil {
		if err := f.SetTripType(*u.TripType); err != nil {
			return err
		}
	}
	if u.DepartureDate != nil {
		if err := f.SelectDepartureDate(*u.DepartureDate); err != nil {
			return err
		}
	}
	if u.ReturnDate != nil {
		if err := f.SelectReturnDate(*u.ReturnDate); err != nil {
			return err
		}
	}
	if u.ContinueBooking {
		if err := f.ContinueToBooking(); err != nil {
			return err
		}
	}
	if u.PassengerMode != nil {
		var err error
		switch *u.PassengerMode {
		case domain.SourceProfile:
			err = f.ChooseProfileMode(ctx)
		case domain.SourceManual:
			err = f.ChooseManualMode()
		default:
			err = fmt.Errorf("%w: unknown passenger mode %q", ErrInvalidInput, *u.PassengerMode)
		}
		if err != nil {
			return err
		}
	}
	if u.ManualPassenger != nil {
		if err := f.UpdateManualPassenger(*u.ManualPassenger); err != nil {
			return err
		}
	}
	if u.PaymentMethod != nil {
		if err := f.SetPaymentMethod(*u.PaymentMethod); err != nil {
			return err
		}
	}
	return nil
}

// Submit отправляет бронирование. Пока отправка не завершилась, повторная отклоняется.
// Ошибки валидации не меняют состояние отправки; при отказе backend'а выбор места и данные пассажира сохраняются
func (f *Flow) Submit(ctx context.Context) (*Confirmation, error) {
	f.mu.Lock()
	if err := f.authorize(ctx); err != nil {
		f.mu.Unlock()
		return nil, err
	}
	if err := f.checkBookable(); err != nil {
		f.mu.Unlock()
		return nil, err
	}
	if !f.formShown {
		f.mu.Unlock()
		return nil, ErrBookingFormNotShown
	}

	session, _ := f.deps.Sessions.GetSession(ctx)
	req := &create_booking.Request{
		Session:       session,
		Route:         f.route,
		Schedule:      f.schedule,
		Seat:          f.selection.Selected(),
		Source:        f.source,
		PaymentMethod: f.payment,
	}

	prevState, prevReason := f.request, f.failureReason
	submitCtx, cancel := context.WithCancel(ctx)
	f.request = RequestSubmitting
	f.failureReason = ""
	f.cancelSubmit = cancel
	f.mu.Unlock()

	resp, err := f.deps.Submitter.Execute(submitCtx, req)
	cancel()

	f.mu.Lock()
	defer f.mu.Unlock()
	f.cancelSubmit = nil
	f.touch()

	if err == nil {
		f.request = RequestSucceeded
		f.confirmation = &Confirmation{
			BookingID:     resp.BookingID,
			Status:        resp.Status,
			PaymentCode:   resp.PaymentCode,
			QR:            resp.QR,
			TotalPrice:    resp.TotalPrice,
			Seat:          resp.Passenger.Seat,
			PassengerName: resp.Passenger.FullName(),
			PaymentMethod: req.PaymentMethod,
		}
		if resp.Ticket != nil {
			f.confirmation.PaymentMethod = resp.Ticket.PaymentMethod
		}
		f.deps.Logger.Info("Flow %s: booking id=%s created, status=%s", f.id, resp.BookingID, resp.Status)
		return f.confirmation, nil
	}

	if f.closed {
		return nil, fmt.Errorf("%w: %w", ErrFlowClosed, err)
	}

	if flowErr := validationError(err); flowErr != nil {
		f.request, f.failureReason = prevState, prevReason
		return nil, flowErr
	}

	f.request = RequestFailed
	if errors.Is(err, create_booking.ErrCancelled) {
		f.failureReason = "Booking submission was cancelled."
		return nil, fmt.Errorf("%w: %w", ErrSubmissionCancelled, err)
	}
	f.failureReason = create_booking.FailureMessage(err)
	f.deps.Logger.Warn("Flow %s: booking submission failed: %v", f.id, err)
	return nil, fmt.Errorf("%w: %w", ErrSubmissionFailed, err)
}

// Close закрывает страницу: отменяет отправку в полете, дальнейшие операции возвращают ErrFlowClosed
func (f *Flow) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return
	}
	f.closed = true
	if f.cancelSubmit != nil {
		f.cancelSubmit()
	}
}

// Closed закрыта ли страница
func (f *Flow) Closed() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.closed
}

// validationError ошибки предусловий отправки (не меняют состояние отправки). nil - это не ошибка валидации
func validationError(err error) error {
	pairs := []struct {
		cause error
		flow  error
	}{
		{create_booking.ErrAuthRequired, ErrAuthRequired},
		{create_booking.ErrSeatNotSelected, ErrSeatNotSelected},
		{create_booking.ErrNoSchedule, ErrNoSchedule},
		{create_booking.ErrSeatNotAvailable, ErrSeatNotSelectable},
		{create_booking.ErrInvalidPassenger, ErrInvalidPassenger},
		{create_booking.ErrInvalidInput, ErrInvalidInput},
	}
	for _, p := range pairs {
		if errors.Is(err, p.cause) {
			return fmt.Errorf("%w: %w", p.flow, err)
		}
	}
	return nil
}

func (f *Flow) authorize(ctx context.Context) error {
	principal := f.principal(ctx)
	switch {
	case f.owner == "":
		f.owner = principal
	case principal == "":
		return ErrAuthRequired
	case principal != f.owner:
		return ErrNotFlowOwner
	}
	return nil
}

func (f *Flow) principal(ctx context.Context) string {
	session, ok := f.deps.Sessions.GetSession(ctx)
	if !ok {
		return ""
	}
	return session.Principal()
}

func (f *Flow) checkOpen() error {
	if f.closed {
		return ErrFlowClosed
	}
	return nil
}

// checkEditable состояние можно менять: страница открыта, маршрут загружен, отправка не идет и не завершилась
func (f *Flow) checkEditable() error {
	if err := f.checkOpen(); err != nil {
		return err
	}
	if f.load != LoadReady {
		return ErrNotLoaded
	}
	switch f.request {
	case RequestSubmitting:
		return ErrSubmissionInFlight
	case RequestSucceeded:
		return ErrAlreadyBooked
	}
	f.touch()
	return nil
}

// checkBookable как checkEditable, плюс у маршрута должен быть рейс
func (f *Flow) checkBookable() error {
	if err := f.checkEditable(); err != nil {
		return err
	}
	if f.schedule == nil {
		return ErrNoSchedule
	}
	return nil
}

func (f *Flow) touch() {
	f.lastActivity = f.deps.Clock.Now()
}

func (f *Flow) today() time.Time {
	return dateOnly(f.deps.Clock.Now())
}

func dateOnly(t time.Time) time.Time {
	return domain.DateOnly(t)
}

func copyTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	c := *t
	return &c
}

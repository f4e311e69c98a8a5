package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/m04kA/Kelale-BookingPortal/internal/domain"
	createBooking "github.com/m04kA/Kelale-BookingPortal/internal/usecase/create_booking"
	"github.com/m04kA/Kelale-BookingPortal/internal/workflow"
)

const (
	msgNoSchedules       = "no schedules available"
	msgRouteNotFound     = "Route not found"
	msgLoginRequired     = "please log in to book a ticket"
	msgFlowClosed        = "booking view is closed"
	msgNotFlowOwner      = "booking view belongs to another session"
	msgNotLoaded         = "route is not loaded"
	msgInFlight          = "booking submission is already in progress"
	msgAlreadyBooked     = "booking already created"
	msgSeatNotSelected   = "Please select a seat"
	msgSeatNotSelectable = "seat is not available"
	msgInvalidPassenger  = "passenger details are incomplete"
	msgFormNotShown      = "continue to booking first"
	msgNotManualMode     = "passenger details can only be edited when booking for someone else"
	msgInvalidInput      = "invalid input"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// PassengerResponse данные пассажира на странице бронирования
type PassengerResponse struct {
	FirstName   string `json:"firstName"`
	MiddleName  string `json:"middleName,omitempty"`
	LastName    string `json:"lastName"`
	FullName    string `json:"fullName"`
	Phone       string `json:"phone,omitempty"`
	Email       string `json:"email,omitempty"`
	DateOfBirth string `json:"dateOfBirth,omitempty"`
	Gender      string `json:"gender,omitempty"`
	Age         *int   `json:"age,omitempty"`
}

// ConfirmationResponse подтверждение бронирования с кодом оплаты
type ConfirmationResponse struct {
	BookingID     string  `json:"bookingId"`
	Status        string  `json:"status"`
	StatusLabel   string  `json:"statusLabel"`
	PaymentCode   string  `json:"paymentCode"`
	QR            string  `json:"qr,omitempty"`
	TotalPrice    float64 `json:"totalPrice"`
	Seat          int     `json:"seat"`
	PassengerName string  `json:"passengerName"`
	PaymentMethod string  `json:"paymentMethod"`
}

// FlowResponse состояние страницы бронирования
type FlowResponse struct {
	ID               string                `json:"id"`
	RouteID          string                `json:"routeId"`
	Load             string                `json:"load"`
	LoadError        string                `json:"loadError,omitempty"`
	Route            *RouteResponse        `json:"route,omitempty"`
	Schedule         *ScheduleResponse     `json:"schedule,omitempty"`
	ScheduleFallback bool                  `json:"scheduleFallback"`
	NoSchedules      bool                  `json:"noSchedules"`
	Message          string                `json:"message,omitempty"`
	TripType         string                `json:"tripType"`
	DepartureDate    *string               `json:"departureDate,omitempty"`
	ReturnDate       *string               `json:"returnDate,omitempty"`
	FormShown        bool                  `json:"bookingFormShown"`
	PassengerMode    string                `json:"passengerMode,omitempty"`
	Passenger        *PassengerResponse    `json:"passenger,omitempty"`
	Seats            SeatsResponse         `json:"seats"`
	SelectedSeat     int                   `json:"selectedSeat"`
	PaymentMethod    string                `json:"paymentMethod"`
	TotalPrice       float64               `json:"totalPrice"`
	Request          string                `json:"request"`
	FailureReason    string                `json:"failureReason,omitempty"`
	SubmitEnabled    bool                  `json:"submitEnabled"`
	Confirmation     *ConfirmationResponse `json:"confirmation,omitempty"`
	Closed           bool                  `json:"closed"`
}

// FromView конвертирует снимок страницы в HTTP модель
func FromView(v workflow.View) *FlowResponse {
	resp := &FlowResponse{
		ID:               v.ID,
		RouteID:          v.RouteID,
		Load:             string(v.Load),
		LoadError:        v.LoadError,
		Route:            FromDomainRoute(v.Route),
		Schedule:         FromDomainSchedule(v.Schedule),
		ScheduleFallback: v.ScheduleFallback,
		NoSchedules:      v.NoSchedules,
		TripType:         string(v.TripType),
		DepartureDate:    formatDate(v.DepartureDate),
		ReturnDate:       formatDate(v.ReturnDate),
		FormShown:        v.FormShown,
		PassengerMode:    string(v.PassengerMode),
		Seats:            FromSeats(v.Seats, v.SeatMap),
		SelectedSeat:     v.SelectedSeat,
		PaymentMethod:    string(v.PaymentMethod),
		TotalPrice:       v.TotalPrice,
		Request:          string(v.Request),
		FailureReason:    v.FailureReason,
		SubmitEnabled:    v.SubmitEnabled,
		Closed:           v.Closed,
	}
	if v.NoSchedules {
		resp.Message = msgNoSchedules
	}

	if p := v.Passenger; p != nil {
		resp.Passenger = &PassengerResponse{
			FirstName:   p.FirstName,
			MiddleName:  p.MiddleName,
			LastName:    p.LastName,
			FullName:    p.FullName,
			Phone:       p.Phone,
			Email:       p.Email,
			DateOfBirth: p.DateOfBirth,
			Gender:      string(p.Gender),
			Age:         p.Age,
		}
	}

	if c := v.Confirmation; c != nil {
		resp.Confirmation = &ConfirmationResponse{
			BookingID:     c.BookingID,
			Status:        string(c.Status),
			StatusLabel:   c.Status.Label(),
			PaymentCode:   c.PaymentCode,
			QR:            c.QR,
			TotalPrice:    c.TotalPrice,
			Seat:          c.Seat,
			PassengerName: c.PassengerName,
			PaymentMethod: string(c.PaymentMethod),
		}
	}

	return resp
}

// RespondFlowError переводит ошибку операции страницы бронирования в HTTP ответ.
// op - префикс строки лога ("PATCH /flows/{id}")
func RespondFlowError(w http.ResponseWriter, logger Logger, op, flowID string, err error) {
	switch {
	case errors.Is(err, workflow.ErrFlowClosed):
		logger.Warn("%s - Flow closed: flow_id=%s", op, flowID)
		RespondError(w, http.StatusGone, msgFlowClosed)

	case errors.Is(err, workflow.ErrAuthRequired):
		logger.Warn("%s - Authentication required: flow_id=%s", op, flowID)
		RespondUnauthorized(w, msgLoginRequired)

	case errors.Is(err, workflow.ErrNotFlowOwner):
		logger.Warn("%s - Flow belongs to another session: flow_id=%s", op, flowID)
		RespondForbidden(w, msgNotFlowOwner)

	case errors.Is(err, workflow.ErrRouteNotFound):
		logger.Warn("%s - Route not found: flow_id=%s", op, flowID)
		RespondNotFound(w, msgRouteNotFound)

	case errors.Is(err, workflow.ErrSubmissionInFlight):
		logger.Warn("%s - Submission in flight: flow_id=%s", op, flowID)
		RespondConflict(w, msgInFlight)

	case errors.Is(err, workflow.ErrAlreadyBooked):
		logger.Warn("%s - Already booked: flow_id=%s", op, flowID)
		RespondConflict(w, msgAlreadyBooked)

	case errors.Is(err, workflow.ErrNotLoaded):
		RespondConflict(w, msgNotLoaded)

	case errors.Is(err, workflow.ErrNoSchedule):
		RespondValidation(w, msgNoSchedules, err)

	case errors.Is(err, workflow.ErrSeatNotSelected):
		RespondValidation(w, msgSeatNotSelected, err)

	case errors.Is(err, workflow.ErrSeatNotSelectable):
		RespondValidation(w, msgSeatNotSelectable, err)

	case errors.Is(err, workflow.ErrInvalidPassenger):
		logger.Warn("%s - Invalid passenger: flow_id=%s, %v", op, flowID, err)
		RespondValidation(w, msgInvalidPassenger, err)

	case errors.Is(err, workflow.ErrBookingFormNotShown):
		RespondValidation(w, msgFormNotShown, err)

	case errors.Is(err, workflow.ErrNotManualMode):
		RespondValidation(w, msgNotManualMode, err)

	case errors.Is(err, workflow.ErrDateInPast),
		errors.Is(err, workflow.ErrReturnBeforeDeparture),
		errors.Is(err, workflow.ErrNotRoundTrip),
		errors.Is(err, workflow.ErrDepartureDateRequired):
		RespondValidation(w, dateMessage(err), err)

	case errors.Is(err, workflow.ErrInvalidInput):
		RespondValidation(w, msgInvalidInput, err)

	case errors.Is(err, workflow.ErrSubmissionFailed):
		logger.Warn("%s - Booking submission failed: flow_id=%s, error=%v", op, flowID, err)
		RespondBadGateway(w, createBooking.FailureMessage(err))

	case errors.Is(err, workflow.ErrSubmissionCancelled):
		logger.Warn("%s - Booking submission cancelled: flow_id=%s", op, flowID)
		RespondError(w, http.StatusServiceUnavailable, "Booking submission was cancelled.")

	case errors.Is(err, workflow.ErrLoadFailed):
		logger.Error("%s - Failed to load route: flow_id=%s, error=%v", op, flowID, err)
		RespondBadGateway(w, "Failed to load route. Please try again.")

	default:
		logger.Error("%s - Unexpected error: flow_id=%s, error=%v", op, flowID, err)
		RespondInternalError(w)
	}
}

func dateMessage(err error) string {
	switch {
	case errors.Is(err, workflow.ErrDateInPast):
		return "date cannot be in the past"
	case errors.Is(err, workflow.ErrReturnBeforeDeparture):
		return "return date cannot be before departure date"
	case errors.Is(err, workflow.ErrNotRoundTrip):
		return "return date is only available for round trips"
	default:
		return "Please select a departure date"
	}
}

func formatDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(domain.DateFormat)
	return &s
}

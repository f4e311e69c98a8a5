package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/m04kA/Kelale-BookingPortal/internal/service/passengers"
)

const (
	msgInternalError = "internal server error"
	loginRedirect    = "/login"
)

// maxBodyBytes ограничение размера тела запроса
const maxBodyBytes = 1 << 20

// ErrorResponse тело ответа с ошибкой
type ErrorResponse struct {
	Error    string                       `json:"error"`
	Redirect string                       `json:"redirect,omitempty"`
	Fields   []passengers.ValidationError `json:"fields,omitempty"`
}

// DecodeJSON читает JSON тело запроса в dst. Неизвестные поля отклоняются
func DecodeJSON(r *http.Request, dst interface{}) error {
	if r.Body == nil {
		return errors.New("empty request body")
	}
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return err
	}
	return nil
}

// RespondJSON пишет data как JSON с указанным статусом
func RespondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		_ = json.NewEncoder(w).Encode(data)
	}
}

// RespondError пишет ошибку с сообщением
func RespondError(w http.ResponseWriter, status int, message string) {
	RespondJSON(w, status, ErrorResponse{Error: message})
}

// RespondBadRequest 400
func RespondBadRequest(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusBadRequest, message)
}

// RespondUnauthorized 401 с переходом на страницу входа
func RespondUnauthorized(w http.ResponseWriter, message string) {
	RespondJSON(w, http.StatusUnauthorized, ErrorResponse{Error: message, Redirect: loginRedirect})
}

// RespondForbidden 403
func RespondForbidden(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusForbidden, message)
}

// RespondNotFound 404
func RespondNotFound(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusNotFound, message)
}

// RespondConflict 409
func RespondConflict(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusConflict, message)
}

// RespondValidation 422 со списком полей, не прошедших проверку (если они есть в err)
func RespondValidation(w http.ResponseWriter, message string, err error) {
	resp := ErrorResponse{Error: message}
	if verrs, ok := passengers.AsValidationErrors(err); ok {
		resp.Fields = verrs
	}
	RespondJSON(w, http.StatusUnprocessableEntity, resp)
}

// RespondBadGateway 502 с сообщением backend'а
func RespondBadGateway(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusBadGateway, message)
}

// RespondInternalError 500 без деталей
func RespondInternalError(w http.ResponseWriter) {
	RespondError(w, http.StatusInternalServerError, msgInternalError)
}

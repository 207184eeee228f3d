package response

import (
	"errors"
	"fmt"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"
	"net/http"
	"strings"
)

// Response is the envelope every API reply is wrapped in.
type Response struct {
	Status string      `json:"status" example:"success/error"`
	Error  string      `json:"error,omitempty" example:"Error message if status is 'error'"`
	Data   interface{} `json:"data,omitempty"`
}

// SuccessResponse is used by swagger to describe a success envelope with data.
type SuccessResponse struct {
	Status string      `json:"status" example:"success"`
	Data   interface{} `json:"data"`
}

// ErrorResponse is used by swagger to describe an error envelope.
type ErrorResponse struct {
	Status string `json:"status" example:"error"`
	Error  string `json:"error" example:"Error message"`
}

const (
	StatusOK    = "success"
	StatusError = "error"
)

func OK() Response {
	return Response{
		Status: StatusOK,
	}
}

func Success(data interface{}) Response {
	return Response{
		Status: StatusOK,
		Data:   data,
	}
}

func Error(message string) Response {
	return Response{
		Status: StatusError,
		Error:  message,
	}
}

func SendSuccess(w http.ResponseWriter, r *http.Request, statusCode int, data interface{}) {
	render.Status(r, statusCode)
	render.JSON(w, r, Success(data))
}

func SendOK(w http.ResponseWriter, r *http.Request, statusCode int) {
	render.Status(r, statusCode)
	render.JSON(w, r, OK())
}

func SendError(w http.ResponseWriter, r *http.Request, statusCode int, errorMessage string) {
	render.Status(r, statusCode)
	render.JSON(w, r, Error(errorMessage))
}

func SendValidationError(w http.ResponseWriter, r *http.Request, err error) {
	var errMsgs []string
	var validationErrs validator.ValidationErrors

	if errors.As(err, &validationErrs) {
		for _, fe := range validationErrs {
			errMsgs = append(errMsgs, fmt.Sprintf("field '%s' failed on a '%s' validation", lowerFirst(fe.Field()), fe.Tag()))
		}
	} else {
		errMsgs = append(errMsgs, err.Error())
	}

	render.Status(r, http.StatusBadRequest)
	render.JSON(w, r, Error(strings.Join(errMsgs, "; ")))
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}

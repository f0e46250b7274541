package api

import (
	stderrors "errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hashicorp/go-multierror"

	"cityweather.app/internal/adapters/api/views"
	"cityweather.app/internal/core/weather"
	"cityweather.app/internal/ports"
	errorspkg "cityweather.app/pkg/errors"
)

// handleError renders the error page for any failure reaching the request
// boundary. A *multierror.Error lists one message per failed lookup and takes
// the highest status among them.
func (s *HTTPServerAdapter) handleError(c *gin.Context, err error) {
	status, messages := describeError(err)

	fields := []ports.Field{
		ports.F("request_id", c.GetString(requestIDKey)),
		ports.F("path", c.Request.URL.Path),
		ports.F("status", status),
		ports.F("error", err.Error()),
	}
	if status >= http.StatusInternalServerError {
		s.logger.Error("Request failed", fields...)
	} else {
		s.logger.Warn("Request rejected", fields...)
	}

	s.renderError(c, status, errorTitle(status), messages)
}

func (s *HTTPServerAdapter) renderError(c *gin.Context, status int, title string, messages []string) {
	s.render(c, status, views.ErrorPage, views.ErrorView{
		Status:    status,
		Title:     title,
		Messages:  messages,
		RequestID: c.GetString(requestIDKey),
	})
}

func describeError(err error) (int, []string) {
	var merr *multierror.Error
	if stderrors.As(err, &merr) && len(merr.Errors) > 0 {
		status := 0
		messages := make([]string, 0, len(merr.Errors))
		for _, e := range merr.Errors {
			if st := errorspkg.TypeOf(e).HTTPStatus(); st > status {
				status = st
			}
			messages = append(messages, lookupMessage(e))
		}
		return status, messages
	}
	return errorspkg.TypeOf(err).HTTPStatus(), []string{userMessage(err)}
}

func lookupMessage(err error) string {
	var lookupErr *weather.CityLookupError
	if !stderrors.As(err, &lookupErr) {
		return userMessage(err)
	}
	if lookupErr.City == "" {
		return userMessage(lookupErr.Err)
	}
	return fmt.Sprintf("%s: %s", lookupErr.City, userMessage(lookupErr.Err))
}

// userMessage is the text shown to the visitor. Upstream failures are
// described generically; request errors carry their own message.
func userMessage(err error) string {
	switch errorspkg.TypeOf(err) {
	case errorspkg.ValidationError, errorspkg.NotFoundError:
		var appErr *errorspkg.AppError
		if stderrors.As(err, &appErr) {
			return appErr.Message
		}
		return err.Error()
	case errorspkg.ExternalAPIError:
		return "the weather provider returned an unexpected response"
	case errorspkg.TransientError:
		return "the weather provider is temporarily unavailable, please try again later"
	default:
		return "internal server error"
	}
}

func errorTitle(status int) string {
	switch status {
	case http.StatusBadRequest:
		return "Invalid request"
	case http.StatusNotFound:
		return "City not found"
	case http.StatusBadGateway:
		return "Weather provider error"
	case http.StatusServiceUnavailable:
		return "Weather provider unavailable"
	default:
		return "Something went wrong"
	}
}

package api

import (
	stderrors "errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/hashicorp/go-multierror"

	"cityweather.app/internal/adapters/api/views"
	"cityweather.app/internal/core/weather"
	"cityweather.app/internal/ports"
	"cityweather.app/pkg/errors"
	"cityweather.app/pkg/validation"
)

// ResultsRequest represents the query string of the results page
type ResultsRequest struct {
	City  string `form:"city" binding:"required,city"`
	Units string `form:"units"`
}

// ComparisonRequest represents the query string of the comparison page
type ComparisonRequest struct {
	City1 string `form:"city1" binding:"required,city"`
	City2 string `form:"city2" binding:"required,city"`
	Units string `form:"units"`
}

// home handles GET / requests
func (s *HTTPServerAdapter) home(c *gin.Context) {
	s.render(c, http.StatusOK, views.HomePage, s.weatherUseCase.Home(c.Request.Context()))
}

// results handles GET /results requests
func (s *HTTPServerAdapter) results(c *gin.Context) {
	var req ResultsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		s.handleError(c, bindingError(err, false))
		return
	}

	report, err := s.weatherUseCase.GetReport(c.Request.Context(), weather.WeatherQuery{
		City:  req.City,
		Units: req.Units,
	})
	if err != nil {
		s.handleError(c, err)
		return
	}

	s.render(c, http.StatusOK, views.ResultsPage, report)
}

// comparisonResults handles GET /comparison_results requests
func (s *HTTPServerAdapter) comparisonResults(c *gin.Context) {
	var req ComparisonRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		s.handleError(c, bindingError(err, true))
		return
	}

	comparison, err := s.weatherUseCase.Compare(c.Request.Context(), weather.ComparisonQuery{
		City1: req.City1,
		City2: req.City2,
		Units: req.Units,
	})
	if err != nil {
		s.handleError(c, err)
		return
	}

	s.render(c, http.StatusOK, views.ComparisonPage, comparison)
}

// bindingError turns validator failures into validation errors naming the
// query parameter. With perSlot set each failure is reported for its
// comparison slot.
func bindingError(err error, perSlot bool) error {
	var fieldErrs validator.ValidationErrors
	if !stderrors.As(err, &fieldErrs) {
		return errors.NewValidationError("invalid query parameters")
	}

	var result *multierror.Error
	for _, fe := range fieldErrs {
		param := strings.ToLower(fe.Field())
		appErr := errors.NewValidationError(param + " parameter is required")
		if !perSlot {
			return appErr
		}
		result = multierror.Append(result, &weather.CityLookupError{Slot: param, Err: appErr})
	}
	return result.ErrorOrNil()
}

// ValidateCity rejects city values that are blank after trimming
func ValidateCity(fl validator.FieldLevel) bool {
	return validation.IsNotEmpty(fl.Field().String())
}

// registerValidators installs the custom binding tags used by the request structs
func registerValidators(v *validator.Validate, logger ports.Logger) {
	if err := v.RegisterValidation("city", ValidateCity); err != nil {
		logger.Warn("Failed to register city validator", ports.F("error", err))
	}
}

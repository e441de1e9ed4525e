package middlewares

import (
	"fmt"
	"net/http"

	"github.com/gofrs/uuid"
	"github.com/labstack/echo/v4"
	"github.com/mdouchement/novatech/internal/cmserror"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// HTTPErrorHandler returns a handler that formats rendered errors.
func HTTPErrorHandler(log logrus.FieldLogger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		if cmserr := cmserror.FromStore(err); cmserr != nil && cmserror.StatusCode(cmserr) != http.StatusInternalServerError {
			log.WithField("path", c.Path()).WithError(err).Warn("storage error")
			_ = c.JSON(cmserror.StatusCode(cmserr), cmserr)
			return
		}

		switch e := errors.Cause(err).(type) {
		case *echo.HTTPError:
			if e.Internal != nil {
				log.WithError(e.Internal).Debug("echo error")
			}
			_ = c.JSON(e.Code, echo.Map{
				"error": echo.Map{
					"message": fmt.Sprint(e.Message),
				},
			})
		case *cmserror.Error:
			status := cmserror.StatusCode(e)
			if status < 500 {
				_ = c.JSON(status, e)
				return
			}

			internal(log, err, c)
		default:
			internal(log, err, c)
		}
	}
}

func internal(log logrus.FieldLogger, err error, c echo.Context) {
	id := uuid.Must(uuid.NewV4()).String()
	log.WithField("id", id).WithField("path", c.Path()).Errorf("%+v", err)

	_ = c.JSON(http.StatusInternalServerError, echo.Map{
		"error": echo.Map{
			"message": fmt.Sprintf("Unexpected error (id: %s)", id),
		},
	})
}

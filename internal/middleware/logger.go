package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/sirupsen/logrus"

	"store-rating/internal/api"
)

// RequestLogger 每個請求輸出一筆 logrus 紀錄
func RequestLogger(log logrus.FieldLogger) echo.MiddlewareFunc {
	return echomw.RequestLoggerWithConfig(echomw.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogRemoteIP:  true,
		LogError:     true,
		LogValuesFunc: func(c echo.Context, v echomw.RequestLoggerValues) error {
			entry := log.WithFields(logrus.Fields{
				"method":     v.Method,
				"uri":        v.URI,
				"status":     v.Status,
				"latency":    v.Latency.String(),
				"request_id": v.RequestID,
				"remote_ip":  v.RemoteIP,
			})
			switch {
			case v.Status >= http.StatusInternalServerError:
				entry.WithError(v.Error).Error("request")
			case v.Status >= http.StatusBadRequest:
				entry.Warn("request")
			default:
				entry.Info("request")
			}
			return nil
		},
	})
}

const contextLoggerKey = "logger"

// RequestEntry 帶 request id 的 log entry
func RequestEntry(log logrus.FieldLogger, c echo.Context) *logrus.Entry {
	id := c.Response().Header().Get(echo.HeaderXRequestID)
	if id == "" {
		id = c.Request().Header.Get(echo.HeaderXRequestID)
	}
	return log.WithField("request_id", id)
}

// ContextLogger 將帶 request id 的 entry 放入 context，handler 以 Logger(c) 取用
func ContextLogger(log logrus.FieldLogger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set(contextLoggerKey, RequestEntry(log, c))
			return next(c)
		}
	}
}

// Logger 取出 ContextLogger 設定的 entry；未設定時使用 logrus 標準 logger
func Logger(c echo.Context) logrus.FieldLogger {
	if entry, ok := c.Get(contextLoggerKey).(*logrus.Entry); ok {
		return entry
	}
	return RequestEntry(logrus.StandardLogger(), c)
}

// ErrorHandler 將所有錯誤輸出為 {"error": "..."}；非 HTTPError 一律 500
func ErrorHandler(log logrus.FieldLogger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}
		code := http.StatusInternalServerError
		msg := http.StatusText(code)
		if he, ok := err.(*echo.HTTPError); ok {
			code = he.Code
			if m, ok := he.Message.(string); ok {
				msg = m
			} else {
				msg = http.StatusText(code)
			}
		} else {
			RequestEntry(log, c).WithError(err).Error("unhandled error")
		}

		if c.Request().Method == http.MethodHead {
			err = c.NoContent(code)
		} else {
			err = c.JSON(code, api.ErrorResponse{Error: msg})
		}
		if err != nil {
			RequestEntry(log, c).WithError(err).Error("write error response")
		}
	}
}

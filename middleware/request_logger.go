package middleware

import (
	"time"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
)

// RequestLogger logs one line per request. Server errors are logged at
// error level, client errors at warn, everything else at info.
func RequestLogger(logger *zap.SugaredLogger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRemoteIP:  true,
		LogError:     true,
		HandleError:  true,
		LogRequestID: true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			requestID := v.RequestID
			if requestID == "" {
				requestID = GetRequestID(c.Request().Context())
			}
			fields := []interface{}{
				"method", v.Method,
				"uri", v.URI,
				"status", v.Status,
				"latency_ms", float64(v.Latency) / float64(time.Millisecond),
				"remote_ip", v.RemoteIP,
				"request_id", requestID,
				"locale", GetLocale(c),
			}
			switch {
			case v.Error != nil && v.Status >= 500:
				logger.Errorw("request failed", append(fields, "error", v.Error)...)
			case v.Status >= 500:
				logger.Errorw("request failed", fields...)
			case v.Status >= 400:
				logger.Warnw("request rejected", append(fields, "error", v.Error)...)
			default:
				logger.Infow("request", fields...)
			}
			return nil
		},
	})
}

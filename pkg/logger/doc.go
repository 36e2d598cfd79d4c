// Package logger builds configured slog loggers with attribute helpers
// for grant resolution domains.
//
// The factory wraps the chosen handler so registered context values,
// e.g. a request ID, land on every record automatically:
//
//	log := logger.New(
//		logger.WithProduction("backoffice"),
//		logger.WithContextValue("request_id", requestIDKey),
//	)
//	log.LogAttrs(ctx, slog.LevelInfo, "permission granted",
//		logger.UserID(userID),
//		logger.Permission("Orders.View"),
//	)
package logger

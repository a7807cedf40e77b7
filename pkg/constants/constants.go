package constants

type contextKey string

// LoggerKey carries the request-scoped *logrus.Entry through context.
const LoggerKey contextKey = "logger"

package flows

// Metrics счетчик открытых страниц бронирования
type Metrics interface {
	SetOpenFlows(n int)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
}

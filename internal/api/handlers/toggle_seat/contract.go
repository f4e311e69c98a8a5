package toggle_seat

import "github.com/m04kA/Kelale-BookingPortal/internal/workflow"

type FlowRegistry interface {
	Get(id string) (*workflow.Flow, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

package flows

import "errors"

var (
	// ErrFlowNotFound возвращается, когда страница не найдена или уже вытеснена по простою
	ErrFlowNotFound = errors.New("flows: flow not found")

	// ErrRegistryClosed возвращается после CloseAll
	ErrRegistryClosed = errors.New("flows: registry is closed")
)

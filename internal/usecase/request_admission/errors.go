package request_admission

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("request_admission: invalid input data")

	// ErrCapacityExceeded возвращается, когда лимит бронирований на дату исчерпан
	ErrCapacityExceeded = errors.New("request_admission: capacity exceeded for this date")

	// ErrNoTeamAvailable возвращается, когда ни одна подходящая команда не свободна на дату
	ErrNoTeamAvailable = errors.New("request_admission: no team available for this date")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("request_admission: internal error")
)

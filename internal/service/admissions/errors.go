package admissions

import "errors"

var (
	// ErrReservationNotFound возвращается, когда резервация не найдена или была явно отменена
	ErrReservationNotFound = errors.New("admissions: reservation not found")

	// ErrReservationExpired возвращается, когда удержание снято по таймауту до подтверждения
	ErrReservationExpired = errors.New("admissions: reservation expired")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("admissions: invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("admissions: internal error")
)

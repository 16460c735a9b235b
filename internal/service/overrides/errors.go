package overrides

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("overrides: booking not found")

	// ErrBookingNotAdjustable возвращается для отмененных бронирований
	ErrBookingNotAdjustable = errors.New("overrides: booking cannot be adjusted")

	// ErrReasonRequired возвращается, когда корректировка подана без причины
	ErrReasonRequired = errors.New("overrides: reason is required")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("overrides: invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("overrides: internal error")
)

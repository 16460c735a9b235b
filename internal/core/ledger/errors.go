package ledger

import "errors"

var (
	// ErrCapacityExceeded возвращается, когда слот заполнен на момент проверки
	ErrCapacityExceeded = errors.New("ledger: capacity exceeded for this date")

	// ErrReservationNotFound возвращается, когда резервация неизвестна или уже отменена
	ErrReservationNotFound = errors.New("ledger: reservation not found")

	// ErrReservationExpired возвращается при попытке подтвердить резервацию,
	// которая была снята по TTL
	ErrReservationExpired = errors.New("ledger: reservation expired")
)

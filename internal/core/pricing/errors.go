package pricing

import "errors"

var (
	// ErrUnknownServiceType возвращается, когда тип услуги отсутствует в прайс-листе
	ErrUnknownServiceType = errors.New("pricing: unknown service type")

	// ErrUnknownExtra возвращается при запросе допуслуги, которой нет в каталоге
	// Неизвестные допуслуги никогда не игнорируются молча
	ErrUnknownExtra = errors.New("pricing: unknown extra")

	// ErrInvalidQuantity возвращается при неположительном количестве допуслуги
	ErrInvalidQuantity = errors.New("pricing: invalid extra quantity")
)

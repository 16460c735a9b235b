package capacity

import "errors"

var (
	// ErrConfigNotFound возвращается, когда конфигурация не найдена
	ErrConfigNotFound = errors.New("capacity: config not found")

	// ErrConfigInvalid возвращается при попытке записать противоречивую конфигурацию
	ErrConfigInvalid = errors.New("capacity: invalid config")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("capacity: invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("capacity: internal error")
)

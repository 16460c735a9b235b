package pricelist

import "errors"

var (
	// ErrPriceListEmpty возвращается, когда в БД нет ни одной строки прайса
	ErrPriceListEmpty = errors.New("pricelist.repository: price list is empty")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("pricelist.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("pricelist.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("pricelist.repository: failed to scan row")
)

package domain

// CatalogRepository описывает доступ к каталогу товаров.
type CatalogRepository interface {
	// List возвращает товары в порядке каталога.
	List() []Product
	// Get возвращает товар по идентификатору или ErrProductNotFound.
	Get(id int) (Product, error)
}

// OrderHistoryRepository — журнал оформленных заказов, только на добавление.
type OrderHistoryRepository interface {
	// NextOrderID выдаёт следующий номер заказа, начиная с 1. Номера не возвращаются.
	NextOrderID() int64
	// Append сохраняет копию чека в конец журнала.
	Append(receipt Receipt) error
	// List возвращает копии чеков в порядке добавления.
	List() []Receipt
	// Count возвращает количество сохранённых чеков.
	Count() int
}

package create_booking

import (
	"time"
)

// Request модель запроса на создание бронирования
type Request struct {
	UserID           int64     // ID аутентифицированного пользователя
	UserEmail        string    // Email пользователя (перекрывается данными IdentityService)
	PropertyID       int64     // ID объекта размещения
	PropertyName     string    // Название объекта
	PropertyLocation string    // Локация объекта
	GuestName        string    // Имя гостя
	GuestPhone       string    // Телефон гостя
	CheckIn          time.Time // Дата заезда (без времени)
	CheckOut         time.Time // Дата выезда (без времени)
	Guests           int       // Количество гостей
	PricePerNight    float64   // Цена за ночь
	TotalCost        float64   // Полная стоимость проживания
	SpecialRequests  *string   // Пожелания гостя (опционально)
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID               int64     // ID созданного бронирования
	BookingReference string    // Человекочитаемый номер бронирования
	PropertyID       int64     // ID объекта
	PropertyName     string    // Название объекта
	PropertyLocation string    // Локация объекта
	UserID           int64     // ID пользователя
	UserEmail        string    // Email пользователя
	GuestName        string    // Имя гостя
	GuestPhone       string    // Телефон гостя
	CheckIn          time.Time // Дата заезда
	CheckOut         time.Time // Дата выезда
	Nights           int       // Количество ночей
	Guests           int       // Количество гостей
	PricePerNight    float64   // Цена за ночь
	TotalCost        float64   // Полная стоимость
	Status           string    // Статус бронирования
	PaymentStatus    string    // Статус оплаты
	SpecialRequests  *string   // Пожелания гостя

	CreatedAt time.Time // Время создания
	UpdatedAt time.Time // Время обновления
}

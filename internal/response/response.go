package response

// SuccessResponse представляет успешный ответ API
type SuccessResponse struct {
	Message string `json:"message" example:"Операция успешно выполнена"`
}

// ErrorResponse представляет ответ с ошибкой API
type ErrorResponse struct {
	// Код ошибки для программной обработки
	// example: QUOTA_EXCEEDED
	Code string `json:"code"`

	// Человекочитаемое сообщение об ошибке
	// example: Вы не можете забронировать более 2 аудиторий в день
	Message string `json:"message"`

	// Дополнительные детали об ошибке (опционально)
	// example: конфликтующее бронирование 10:00-12:00
	Details string `json:"details,omitempty"`
}

// TokenResponse представляет ответ с токенами авторизации
type TokenResponse struct {
	// JWT токен для доступа к защищенным эндпоинтам
	AccessToken string `json:"access_token"`

	// JWT токен для обновления access токена
	RefreshToken string `json:"refresh_token"`
}

// QueuedResponse возвращается, когда слот занят и запрос поставлен в очередь.
type QueuedResponse struct {
	Message  string `json:"message" example:"Аудитория занята. Вы встали в очередь."`
	QueueID  uint   `json:"queue_id"`
	Position int    `json:"position" example:"1"`
}

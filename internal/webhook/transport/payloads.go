package transport

// Telegram Bot API update, trimmed to the fields the relay reads.
type TelegramUpdate struct {
	UpdateID int64            `json:"update_id"`
	Message  *TelegramMessage `json:"message"`
}

type TelegramMessage struct {
	MessageID int64            `json:"message_id"`
	From      TelegramUser     `json:"from"`
	Chat      TelegramChat     `json:"chat"`
	Text      string           `json:"text"`
	Date      int64            `json:"date"`
	Contact   *TelegramContact `json:"contact,omitempty"`
}

type TelegramUser struct {
	ID        int64  `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name,omitempty"`
	Username  string `json:"username,omitempty"`
}

type TelegramChat struct {
	ID int64 `json:"id"`
}

type TelegramContact struct {
	PhoneNumber string `json:"phone_number"`
}

// WhatsAppInbound is the payload posted by the WhatsApp gateway.
type WhatsAppInbound struct {
	From string `json:"from" validate:"required"`
	Name string `json:"name,omitempty"`
	Body string `json:"body" validate:"required"`
}

// EmailInbound is the payload posted by the inbound email bridge.
type EmailInbound struct {
	From    string `json:"from" validate:"required,email"`
	Name    string `json:"name,omitempty"`
	Subject string `json:"subject,omitempty"`
	Body    string `json:"body" validate:"required"`
}

// SMSInbound is the payload posted by the SMS gateway.
type SMSInbound struct {
	From string `json:"from" validate:"required"`
	Body string `json:"body" validate:"required"`
}

package notify

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"gopkg.in/gomail.v2"
)

// Kind — тип уведомления.
type Kind string

const (
	KindQueuePosition    Kind = "queue_position"    // Вы поставлены в очередь (позиция N)
	KindSlotAvailable    Kind = "slot_available"    // Слот освободился, подтвердите в течение часа
	KindBookingCancelled Kind = "booking_cancelled" // Ваше бронирование отменено
)

// Notification — одно письмо пользователю. Поля заполняются отправителем
// настолько, насколько они известны; шаблон использует непустые.
type Notification struct {
	To         string
	Username   string
	Kind       Kind
	RoomNumber string
	Date       string // ДД.ММ.ГГГГ
	StartTime  string // ЧЧ:ММ
	EndTime    string // ЧЧ:ММ
	Position   int
}

// Notifier отправляет уведомление. Реализация может быть email, консоль и т.п.
type Notifier interface {
	Send(n Notification) error
}

// EmailNotifier отправляет письма через SMTP (gomail).
type EmailNotifier struct {
	dialer *gomail.Dialer
	from   string
}

func NewEmailNotifier() *EmailNotifier {
	port, err := strconv.Atoi(os.Getenv("MAIL_PORT"))
	if err != nil {
		port = 587
	}
	return &EmailNotifier{
		dialer: gomail.NewDialer(
			os.Getenv("MAIL_SERVER"),
			port,
			os.Getenv("MAIL_USERNAME"),
			os.Getenv("MAIL_PASSWORD"),
		),
		from: os.Getenv("MAIL_FROM"),
	}
}

func (e *EmailNotifier) Send(n Notification) error {
	subject, body := renderMessage(n)

	m := gomail.NewMessage()
	m.SetHeader("From", e.from)
	m.SetHeader("To", n.To)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	return e.dialer.DialAndSend(m)
}

func renderMessage(n Notification) (subject, body string) {
	switch n.Kind {
	case KindQueuePosition:
		subject = fmt.Sprintf("Вы в очереди бронирования - Позиция #%d", n.Position)
		body = fmt.Sprintf(
			"Здравствуйте, %s!\n\n"+
				"Аудитория %s на %s с %s по %s уже занята, поэтому мы добавили вас в очередь ожидания.\n\n"+
				"Ваша позиция в очереди: #%d\n\n"+
				"Когда эта аудитория станет доступна, мы вас уведомим!\n\n"+
				"С уважением,\nСистема бронирования аудиторий",
			n.Username, n.RoomNumber, n.Date, n.StartTime, n.EndTime, n.Position)
	case KindSlotAvailable:
		subject = fmt.Sprintf("Аудитория %s освободилась!", n.RoomNumber)
		body = fmt.Sprintf(
			"Здравствуйте, %s!\n\n"+
				"Аудитория %s на %s с %s по %s освободилась.\n\n"+
				"Подтвердите бронирование в течение 1 часа, отправив новый запрос, "+
				"иначе слот будет предложен следующему в очереди.\n\n"+
				"С уважением,\nСистема бронирования аудиторий",
			n.Username, n.RoomNumber, n.Date, n.StartTime, n.EndTime)
	case KindBookingCancelled:
		subject = "Ваше бронирование отменено"
		body = fmt.Sprintf(
			"Здравствуйте, %s!\n\n"+
				"Ваше бронирование аудитории %s на %s с %s по %s было отменено.\n\n"+
				"С уважением,\nСистема бронирования аудиторий",
			n.Username, n.RoomNumber, n.Date, n.StartTime, n.EndTime)
	default:
		subject = "Уведомление системы бронирования"
		body = fmt.Sprintf("Здравствуйте, %s!", n.Username)
	}
	return subject, body
}

// ConsoleNotifier пишет уведомления в лог. Используется в тестах и
// при отсутствии настроек SMTP.
type ConsoleNotifier struct{}

func (ConsoleNotifier) Send(n Notification) error {
	subject, _ := renderMessage(n)
	log.Printf("[notify] %s -> %s :: %s", n.Kind, n.To, subject)
	return nil
}

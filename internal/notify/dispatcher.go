package notify

import "log"

// Dispatcher отправляет уведомления асинхронно: Submit кладёт письмо в буфер
// и сразу возвращается, воркер отправляет в фоне. Ошибки отправки логируются
// и никогда не влияют на операцию, породившую уведомление.
type Dispatcher struct {
	notifier Notifier
	queue    chan Notification
	done     chan struct{}
}

func NewDispatcher(n Notifier) *Dispatcher {
	d := &Dispatcher{
		notifier: n,
		queue:    make(chan Notification, 256),
		done:     make(chan struct{}),
	}
	go d.run()
	return d
}

func (d *Dispatcher) run() {
	for n := range d.queue {
		if err := d.notifier.Send(n); err != nil {
			log.Printf("Ошибка при отправке email (%s -> %s): %v", n.Kind, n.To, err)
		}
	}
	close(d.done)
}

// Submit ставит уведомление в очередь отправки, не блокируясь.
// При переполненном буфере уведомление отбрасывается с записью в лог:
// доставка писем — best effort.
func (d *Dispatcher) Submit(n Notification) {
	select {
	case d.queue <- n:
	default:
		log.Printf("Буфер уведомлений переполнен, письмо %s -> %s отброшено", n.Kind, n.To)
	}
}

// Close останавливает воркер после отправки всего накопленного.
func (d *Dispatcher) Close() {
	close(d.queue)
	<-d.done
}

package notify

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/terraincognita07/shiftdesk/internal/i18n"
	"github.com/terraincognita07/shiftdesk/internal/models"
	"github.com/terraincognita07/shiftdesk/internal/services"
	"github.com/terraincognita07/shiftdesk/internal/workerpool"
)

const defaultDeliveryTimeout = 15 * time.Second

type SiteDirectory interface {
	FindByID(siteID string) (models.Site, error)
}

type UserDirectory interface {
	FindByID(userID string) (models.User, error)
}

type DispatcherConfig struct {
	Language        string
	DeliveryTimeout time.Duration
}

// Dispatcher turns committed shift events into messages and hands them to a
// worker pool. Publish never blocks on delivery and never reports failure.
type Dispatcher struct {
	pool     *workerpool.WorkerPool
	messages *i18n.Manager
	language string
	timeout  time.Duration
	email    Sink
	ops      Sink
	sites    SiteDirectory
	users    UserDirectory
	logger   *log.Logger
}

// NewDispatcher wires the sinks. email receives employee-facing messages; ops,
// when non-nil, receives a copy of every event.
func NewDispatcher(pool *workerpool.WorkerPool, messages *i18n.Manager, email Sink, ops Sink, sites SiteDirectory, users UserDirectory, logger *log.Logger, cfg DispatcherConfig) *Dispatcher {
	if logger == nil {
		logger = log.Default()
	}
	if email == nil {
		email = NewLogSink(logger)
	}
	timeout := cfg.DeliveryTimeout
	if timeout <= 0 {
		timeout = defaultDeliveryTimeout
	}
	return &Dispatcher{
		pool:     pool,
		messages: messages,
		language: messages.NormalizeLanguage(cfg.Language),
		timeout:  timeout,
		email:    email,
		ops:      ops,
		sites:    sites,
		users:    users,
		logger:   logger,
	}
}

func (dispatcher *Dispatcher) Publish(event services.ShiftEvent) {
	task := func(ctx context.Context) {
		dispatcher.deliver(ctx, event)
	}
	if err := dispatcher.pool.TrySubmit(task); err != nil {
		dispatcher.logger.Printf("notify: drop %s for shift %s: %v", event.Type, event.Shift.ID, err)
	}
}

type outboundMessage struct {
	to      string
	subject string
	text    string
}

func (dispatcher *Dispatcher) deliver(ctx context.Context, event services.ShiftEvent) {
	employeeMessage, opsMessage := dispatcher.compose(event)

	if employeeMessage != nil {
		dispatcher.send(ctx, dispatcher.email, event, *employeeMessage)
	}
	if dispatcher.ops != nil && opsMessage != nil {
		dispatcher.send(ctx, dispatcher.ops, event, *opsMessage)
	}
}

func (dispatcher *Dispatcher) send(parent context.Context, sink Sink, event services.ShiftEvent, message outboundMessage) {
	ctx, cancel := context.WithTimeout(parent, dispatcher.timeout)
	defer cancel()

	if err := sink.Notify(ctx, message.to, message.subject, message.text); err != nil {
		wrapped := fmt.Errorf("%w: %s shift %s: %v", ErrDeliveryFailed, event.Type, event.Shift.ID, err)
		dispatcher.logger.Printf("notify: %v", wrapped)
	}
}

// compose builds the employee email (created and updated only) and the ops note.
func (dispatcher *Dispatcher) compose(event services.ShiftEvent) (*outboundMessage, *outboundMessage) {
	lang := dispatcher.language
	shift := event.Shift
	day := dispatcher.messages.DayName(lang, shift.DayOfWeek)
	start := services.FormatMinuteOfDay(shift.StartMin)
	end := services.FormatMinuteOfDay(shift.EndMin)
	site := dispatcher.siteName(shift.SiteID)

	switch event.Type {
	case services.ShiftCreated, services.ShiftUpdated:
		subjectKey := "notify.shift.created.subject"
		bodyKey := "notify.shift.created.body"
		if event.Type == services.ShiftUpdated {
			subjectKey = "notify.shift.updated.subject"
			bodyKey = "notify.shift.updated.body"
		}
		subject := dispatcher.messages.Translate(lang, subjectKey)
		body := dispatcher.messages.Translatef(lang, bodyKey, day, start, end, site)
		text := dispatcher.letter(event.Recipient.Name, body)

		ops := &outboundMessage{subject: subject, text: body}
		if strings.TrimSpace(event.Recipient.Email) == "" {
			return nil, ops
		}
		ops.to = event.Recipient.Email
		return &outboundMessage{to: event.Recipient.Email, subject: subject, text: text}, ops
	case services.ShiftDeleted:
		text := dispatcher.messages.Translatef(lang, "notify.shift.deleted.ops", site, day, start, end)
		return nil, &outboundMessage{subject: text}
	case services.ShiftConfirmed:
		text := dispatcher.messages.Translatef(lang, "notify.shift.confirmed.ops", dispatcher.userName(shift.UserID), day, start, end)
		return nil, &outboundMessage{subject: text}
	default:
		return nil, nil
	}
}

func (dispatcher *Dispatcher) letter(name string, body string) string {
	lang := dispatcher.language
	signature := dispatcher.messages.Translate(lang, "notify.signature")
	return dispatcher.messages.Translatef(lang, "notify.greeting", name) + "\n\n" + body + "\n\n— " + signature
}

func (dispatcher *Dispatcher) siteName(siteID string) string {
	if dispatcher.sites != nil {
		if site, err := dispatcher.sites.FindByID(siteID); err == nil {
			return site.Name
		}
	}
	return dispatcher.messages.Translate(dispatcher.language, "notify.shift.unknown_site")
}

func (dispatcher *Dispatcher) userName(userID string) string {
	if dispatcher.users != nil {
		if user, err := dispatcher.users.FindByID(userID); err == nil {
			return user.Name
		}
	}
	return userID
}

// Package notify tells guests about their reservation: a confirmation when
// it is booked, a notice when it is cancelled and a receipt at check-out.
package notify

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/iliyamo/hotel-front-desk/internal/config"
	"github.com/iliyamo/hotel-front-desk/internal/queue"
)

type EmailSender interface {
	SendEmail(ctx context.Context, toName, toEmail, subject, plain, html string) error
}

type SMSSender interface {
	SendSMS(ctx context.Context, to, body string) error
}

// Notifier fans a lifecycle event out to the configured channels.  Either
// sender may be nil.
type Notifier struct {
	email EmailSender
	sms   SMSSender
	hotel string
	log   *zap.Logger
}

// New builds a Notifier with the senders configured in cfg.
func New(cfg config.NotifyConfig, log *zap.Logger) *Notifier {
	n := &Notifier{hotel: cfg.HotelName, log: log}
	if cfg.EmailEnabled() {
		n.email = NewSendGridSender(cfg.SendGridAPIKey, cfg.FromEmail, cfg.FromName)
	} else {
		log.Info("notify: SendGrid not configured, e-mail disabled")
	}
	if cfg.SMSEnabled() {
		n.sms = NewTwilioSender(cfg.TwilioSID, cfg.TwilioToken, cfg.TwilioFrom)
	} else {
		log.Info("notify: Twilio not configured, SMS disabled")
	}
	return n
}

// NewWithSenders is New with explicit senders.
func NewWithSenders(hotel string, email EmailSender, sms SMSSender, log *zap.Logger) *Notifier {
	return &Notifier{email: email, sms: sms, hotel: hotel, log: log}
}

// Message is the text sent for one event.
type Message struct {
	Subject string
	Plain   string
	HTML    string
	SMS     string // empty: no SMS for this event
}

// Compose returns the guest message for ev, or false when the event type
// is not one guests are told about.
func Compose(hotel string, ev queue.ReservationEvent) (Message, bool) {
	stay := fmt.Sprintf("room %s from %s to %s", ev.RoomNumber, ev.CheckIn, ev.CheckOut)
	switch ev.Type {
	case queue.EventBooked:
		plain := fmt.Sprintf("Dear %s,\n\nyour reservation #%d at %s is confirmed: %s.\n", ev.GuestName, ev.ReservationID, hotel, stay)
		return Message{
			Subject: fmt.Sprintf("%s: reservation #%d confirmed", hotel, ev.ReservationID),
			Plain:   plain,
			HTML:    htmlParagraphs(plain),
			SMS:     fmt.Sprintf("%s: reservation #%d confirmed, %s.", hotel, ev.ReservationID, stay),
		}, true
	case queue.EventCancelled:
		plain := fmt.Sprintf("Dear %s,\n\nyour reservation #%d at %s (%s) has been cancelled.\n", ev.GuestName, ev.ReservationID, hotel, stay)
		return Message{
			Subject: fmt.Sprintf("%s: reservation #%d cancelled", hotel, ev.ReservationID),
			Plain:   plain,
			HTML:    htmlParagraphs(plain),
		}, true
	case queue.EventCheckedOut:
		plain := fmt.Sprintf("Dear %s,\n\nthank you for staying at %s (%s).\nAmount paid: %s by %s.\nReceipt: %s\n",
			ev.GuestName, hotel, stay, FormatCents(ev.AmountCents), ev.Method, ev.Reference)
		return Message{
			Subject: fmt.Sprintf("%s: receipt for reservation #%d", hotel, ev.ReservationID),
			Plain:   plain,
			HTML:    htmlParagraphs(plain),
		}, true
	}
	return Message{}, false
}

// Notify sends the message for ev over every channel the guest can be
// reached on.  Errors of all channels are joined.
func (n *Notifier) Notify(ctx context.Context, ev queue.ReservationEvent) error {
	msg, ok := Compose(n.hotel, ev)
	if !ok {
		return nil
	}
	var errs []error
	if n.email != nil && ev.GuestEmail != "" {
		if err := n.email.SendEmail(ctx, ev.GuestName, ev.GuestEmail, msg.Subject, msg.Plain, msg.HTML); err != nil {
			errs = append(errs, err)
		} else {
			n.log.Info("notify: e-mail sent", zap.String("event", ev.Type), zap.Uint64("reservation_id", ev.ReservationID))
		}
	}
	if n.sms != nil && msg.SMS != "" && strings.HasPrefix(ev.GuestContact, "+") {
		if err := n.sms.SendSMS(ctx, ev.GuestContact, msg.SMS); err != nil {
			errs = append(errs, err)
		} else {
			n.log.Info("notify: SMS sent", zap.String("event", ev.Type), zap.Uint64("reservation_id", ev.ReservationID))
		}
	}
	return errors.Join(errs...)
}

// FormatCents renders an amount of cents as "1234.50".
func FormatCents(c int64) string {
	sign := ""
	if c < 0 {
		sign, c = "-", -c
	}
	return fmt.Sprintf("%s%d.%02d", sign, c/100, c%100)
}

func htmlParagraphs(plain string) string {
	var b strings.Builder
	for _, line := range strings.Split(strings.TrimSpace(plain), "\n") {
		if line = strings.TrimSpace(line); line != "" {
			b.WriteString("<p>" + htmlEscape(line) + "</p>")
		}
	}
	return b.String()
}

var htmlEscape = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;").Replace

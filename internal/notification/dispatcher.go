package notification

import (
	"context"
	"fmt"

	leadsdomain "conectaleads_backend/internal/leads/domain"
	"conectaleads_backend/internal/notification/service"
)

// Dispatcher routes an inbox reply to the matching channel sender. It backs
// the inbox service's Sender dependency.
type Dispatcher struct {
	email    service.EmailSender
	whatsapp service.WhatsAppSender
}

func NewDispatcher(email service.EmailSender, whatsapp service.WhatsAppSender) *Dispatcher {
	return &Dispatcher{email: email, whatsapp: whatsapp}
}

// Send delivers an outbound reply. Telegram and SMS have no outbound gateway
// configured today; replies on those channels are stored only.
func (d *Dispatcher) Send(ctx context.Context, channel, externalID, body string) error {
	switch channel {
	case leadsdomain.ChannelWhatsApp:
		return d.whatsapp.Send(ctx, externalID, body)
	case leadsdomain.ChannelEmail:
		return d.email.SendNotification(ctx, externalID, "Resposta da nossa equipe", "Resposta da nossa equipe", body)
	default:
		return fmt.Errorf("no outbound sender for channel %q", channel)
	}
}

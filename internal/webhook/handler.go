package webhook

import (
	"net/http"
	"strconv"
	"strings"

	inboxsvc "conectaleads_backend/internal/inbox/service"
	"conectaleads_backend/internal/leads/domain"
	"conectaleads_backend/internal/webhook/transport"
	"conectaleads_backend/platform/logger"

	"github.com/gin-gonic/gin"
)

// Handler receives channel webhooks and relays them into the inbox. Relays
// never compute scores; scoring reads the interaction rows the inbox appends.
// An accepted payload always gets a 200, even when processing partially
// failed, so the upstream does not retry forever.
type Handler struct {
	inbox *inboxsvc.Service
	log   *logger.Logger
}

func NewHandler(inbox *inboxsvc.Service, log *logger.Logger) *Handler {
	return &Handler{inbox: inbox, log: log}
}

func (h *Handler) Telegram(c *gin.Context) {
	var update transport.TelegramUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		h.log.WebhookEvent(domain.ChannelTelegram, "update", false, "malformed payload")
		c.Status(http.StatusOK)
		return
	}
	if update.Message == nil || update.Message.Text == "" {
		// Edits, joins, stickers: acknowledged and dropped.
		c.Status(http.StatusOK)
		return
	}

	msg := update.Message
	name := strings.TrimSpace(msg.From.FirstName + " " + msg.From.LastName)
	phone := ""
	if msg.Contact != nil {
		phone = msg.Contact.PhoneNumber
	}

	_, err := h.inbox.Ingest(c.Request.Context(), inboxsvc.InboundMessage{
		Channel:    domain.ChannelTelegram,
		ExternalID: strconv.FormatInt(msg.Chat.ID, 10),
		FromName:   name,
		Phone:      phone,
		Body:       msg.Text,
		Source:     "telegram",
	})
	h.logOutcome(domain.ChannelTelegram, "message", err)
	c.Status(http.StatusOK)
}

func (h *Handler) WhatsApp(c *gin.Context) {
	var payload transport.WhatsAppInbound
	if err := c.ShouldBindJSON(&payload); err != nil || payload.From == "" || payload.Body == "" {
		h.log.WebhookEvent(domain.ChannelWhatsApp, "message", false, "malformed payload")
		c.Status(http.StatusOK)
		return
	}

	_, err := h.inbox.Ingest(c.Request.Context(), inboxsvc.InboundMessage{
		Channel:    domain.ChannelWhatsApp,
		ExternalID: payload.From,
		FromName:   payload.Name,
		Phone:      payload.From,
		Body:       payload.Body,
		Source:     "whatsapp",
	})
	h.logOutcome(domain.ChannelWhatsApp, "message", err)
	c.Status(http.StatusOK)
}

func (h *Handler) Email(c *gin.Context) {
	var payload transport.EmailInbound
	if err := c.ShouldBindJSON(&payload); err != nil || payload.From == "" || payload.Body == "" {
		h.log.WebhookEvent(domain.ChannelEmail, "message", false, "malformed payload")
		c.Status(http.StatusOK)
		return
	}

	body := payload.Body
	if payload.Subject != "" {
		body = payload.Subject + "\n\n" + body
	}

	_, err := h.inbox.Ingest(c.Request.Context(), inboxsvc.InboundMessage{
		Channel:    domain.ChannelEmail,
		ExternalID: strings.ToLower(payload.From),
		FromName:   payload.Name,
		Body:       body,
		Source:     "email",
	})
	h.logOutcome(domain.ChannelEmail, "message", err)
	c.Status(http.StatusOK)
}

func (h *Handler) SMS(c *gin.Context) {
	var payload transport.SMSInbound
	if err := c.ShouldBindJSON(&payload); err != nil || payload.From == "" || payload.Body == "" {
		h.log.WebhookEvent(domain.ChannelSMS, "message", false, "malformed payload")
		c.Status(http.StatusOK)
		return
	}

	_, err := h.inbox.Ingest(c.Request.Context(), inboxsvc.InboundMessage{
		Channel:    domain.ChannelSMS,
		ExternalID: payload.From,
		Phone:      payload.From,
		Body:       payload.Body,
		Source:     "sms",
	})
	h.logOutcome(domain.ChannelSMS, "message", err)
	c.Status(http.StatusOK)
}

func (h *Handler) logOutcome(channel, event string, err error) {
	if err != nil {
		h.log.WebhookEvent(channel, event, false, err.Error())
		return
	}
	h.log.WebhookEvent(channel, event, true, "")
}

package services

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"

	"github.com/modaline/whatsapp-support-bot/internal/models"
)

// AgentService notifies the on-duty human agent over Twilio WhatsApp when a
// conversation escalates. The customer-facing channel stays on the Cloud API;
// this is the back-office side only.
type AgentService struct {
	client     *twilio.RestClient
	from       string
	agentPhone string
	log        *logrus.Logger
}

// NewAgentService creates the Twilio-backed agent notifier.
func NewAgentService(accountSID, authToken, from, agentPhone string, log *logrus.Logger) (*AgentService, error) {
	if accountSID == "" || authToken == "" || from == "" || agentPhone == "" {
		return nil, fmt.Errorf("missing Twilio credentials or agent phone in environment variables")
	}

	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: accountSID,
		Password: authToken,
	})

	return &AgentService{
		client:     client,
		from:       from,
		agentPhone: agentPhone,
		log:        log,
	}, nil
}

// NotifyAgent sends the escalation summary to the agent.
func (a *AgentService) NotifyAgent(ticket *models.SupportTicket) error {
	body := fmt.Sprintf("🔔 Yeni destek talebi %s\nKonu: %s\nMüşteri: %s", ticket.TicketID, topicLabel(ticket.Topic), ticket.PhoneNumber)
	if ticket.OrderNumber != "" {
		body += fmt.Sprintf("\nSipariş: #%s", ticket.OrderNumber)
	}

	params := &twilioApi.CreateMessageParams{}
	params.SetFrom(a.from)
	params.SetTo(fmt.Sprintf("whatsapp:%s", a.agentPhone))
	params.SetBody(body)

	resp, err := a.client.Api.CreateMessage(params)
	if err != nil {
		a.log.Errorf("Failed to notify agent about %s: %v", ticket.TicketID, err)
		return err
	}

	a.log.Infof("Agent notified about %s, SID: %s", ticket.TicketID, *resp.Sid)
	return nil
}

func topicLabel(topic string) string {
	switch topic {
	case models.TicketTopicReturn:
		return "İade talebi"
	case models.TicketTopicAgent:
		return "Temsilci talebi"
	default:
		return topic
	}
}

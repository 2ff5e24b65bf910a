package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"paint-estimate-be/internal/dto"
	"paint-estimate-be/internal/pkg/mailer"
	"paint-estimate-be/internal/repository/specification"
	"paint-estimate-be/internal/repository/unitofwork"
	"paint-estimate-be/internal/websocket"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// consumerService handles completed-estimate messages off the in-process bus:
// it emails the summary when an address was supplied and pushes a websocket
// notification to the contractor's open clients.
type consumerService struct {
	pubSub       *gochannel.GoChannel
	topicName    string
	uowFactory   unitofwork.RepositoryFactory
	emailService mailer.IEmailService
	hub          *websocket.Hub
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	uowFactory unitofwork.RepositoryFactory,
	emailService mailer.IEmailService,
	hub *websocket.Hub,
) IConsumerService {
	return &consumerService{
		pubSub:       pubSub,
		topicName:    topicName,
		uowFactory:   uowFactory,
		emailService: emailService,
		hub:          hub,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.PublishEstimateCompletedMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		log.Printf("[ERROR] Failed to unmarshal message: %v", err)
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	log.Printf("[INFO] Processing completed estimate %s", payload.EstimateId)

	uow := cs.uowFactory.NewUnitOfWork(ctx)
	estimate, err := uow.EstimateRepository().FindOne(ctx, specification.ByID{ID: payload.EstimateId})
	if err != nil {
		log.Printf("[ERROR] Failed to load estimate %s: %v", payload.EstimateId, err)
		msg.Nack() // Nack for retriable errors
		return
	}
	if estimate == nil {
		log.Printf("[ERROR] Estimate not found: %s", payload.EstimateId)
		msg.Ack() // Deleted already? Ack.
		return
	}

	if payload.SummaryEmail != "" && cs.emailService != nil {
		if err := cs.emailService.SendEstimateSummary(payload.SummaryEmail, estimate); err != nil {
			log.Printf("[ERROR] Failed to email estimate summary for %s: %v", payload.EstimateId, err)
			msg.Nack()
			return
		}
		log.Printf("[INFO] Estimate summary mailed to %s", payload.SummaryEmail)
	}

	if cs.hub != nil {
		cs.hub.Send(payload.UserId, websocket.Notification{
			Kind:       "estimate_completed",
			Title:      "Estimate ready",
			Message:    fmt.Sprintf("Your %s painting estimate is finished (total $%.2f).", estimate.ProjectType, estimate.Totals.Total),
			EstimateId: estimate.Id,
			SentAt:     time.Now(),
		})
	}

	log.Printf("[SUCCESS] Estimate %s processed", payload.EstimateId)
	msg.Ack()
}

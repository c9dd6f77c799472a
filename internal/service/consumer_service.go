package service

import (
	"context"
	"encoding/json"
	"log"

	"kurazhelp-be/internal/dto"
	"kurazhelp-be/internal/sync"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// consumerService drains document-change messages off the in-process bus and
// hands them to the sync controller, which reloads mirrors and fans out.
type consumerService struct {
	pubSub         *gochannel.GoChannel
	topicName      string
	syncController *sync.Controller
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	syncController *sync.Controller,
) IConsumerService {
	return &consumerService{
		pubSub:         pubSub,
		topicName:      topicName,
		syncController: syncController,
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
	var payload dto.DocumentChangedMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		log.Printf("[ERROR] Failed to unmarshal document change message: %v", err)
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	cs.syncController.NotifyChange(ctx, payload.UserId)
	msg.Ack()
}

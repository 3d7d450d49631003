package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/shopspring/decimal"

	"github.com/propstack/lease-rate-api/internal/config"
)

type MessageType string

const (
	MessageTypeIncrease MessageType = "STANDARD_INCREASE"
)

// Message is the wire format between the increase scheduler and the worker
// that applies standard increases.
type Message struct {
	Type          MessageType     `json:"type"`
	LeaseUnitID   string          `json:"lease_unit_id"`
	NewRate       decimal.Decimal `json:"new_rate"`
	EffectiveDate time.Time       `json:"effective_date"`
	Reason        string          `json:"reason"`
	Timestamp     time.Time       `json:"timestamp"`
}

type ReceivedMessage struct {
	Message       Message
	ReceiptHandle *string
}

type SQSService struct {
	client           *sqs.Client
	increaseQueueURL string
}

func NewSQSService(client *sqs.Client, config *config.SQSConfig) *SQSService {
	return &SQSService{
		client:           client,
		increaseQueueURL: config.IncreaseQueueURL,
	}
}

func (s *SQSService) IncreaseQueueURL() string {
	return s.increaseQueueURL
}

func (s *SQSService) SendIncreaseMessage(ctx context.Context, leaseUnitID string, newRate decimal.Decimal, effectiveDate time.Time, reason string) error {
	msg := Message{
		Type:          MessageTypeIncrease,
		LeaseUnitID:   leaseUnitID,
		NewRate:       newRate,
		EffectiveDate: effectiveDate,
		Reason:        reason,
		Timestamp:     time.Now(),
	}

	return s.sendMessage(ctx, msg, s.increaseQueueURL)
}

func (s *SQSService) sendMessage(ctx context.Context, msg Message, queueURL string) error {
	msgBody, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to marshal message: %w", err)
	}

	input := &sqs.SendMessageInput{
		MessageBody: aws.String(string(msgBody)),
		QueueUrl:    aws.String(queueURL),
	}

	_, err = s.client.SendMessage(ctx, input)
	if err != nil {
		return fmt.Errorf("failed to send message: %w", err)
	}

	return nil
}

func (s *SQSService) ReceiveMessages(ctx context.Context, queueURL string, maxMessages int32, waitTimeSeconds int32) ([]ReceivedMessage, error) {
	input := &sqs.ReceiveMessageInput{
		QueueUrl:            aws.String(queueURL),
		MaxNumberOfMessages: maxMessages,
		WaitTimeSeconds:     waitTimeSeconds,
	}

	output, err := s.client.ReceiveMessage(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("failed to receive messages: %w", err)
	}

	var messages []ReceivedMessage
	for _, msg := range output.Messages {
		var message Message
		if err := json.Unmarshal([]byte(*msg.Body), &message); err != nil {
			return nil, fmt.Errorf("failed to unmarshal message: %w", err)
		}
		messages = append(messages, ReceivedMessage{
			Message:       message,
			ReceiptHandle: msg.ReceiptHandle,
		})
	}

	return messages, nil
}

func (s *SQSService) DeleteMessage(ctx context.Context, queueURL string, receiptHandle *string) error {
	input := &sqs.DeleteMessageInput{
		QueueUrl:      aws.String(queueURL),
		ReceiptHandle: receiptHandle,
	}

	_, err := s.client.DeleteMessage(ctx, input)
	if err != nil {
		return fmt.Errorf("failed to delete message: %w", err)
	}

	return nil
}

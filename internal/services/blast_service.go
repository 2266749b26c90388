// internal/services/blast_service.go
package services

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/meridianmade/storefront/internal/repository"
)

type EmailSender interface {
	SendEmail(to, subject, htmlBody string) error
}

type SMSSender interface {
	SendSMS(to, message string) error
}

type BlastRequest struct {
	Subject  string `json:"subject"`
	HTMLBody string `json:"htmlBody"`
	Message  string `json:"message"`
}

type BlastResult struct {
	Sent   int `json:"sent"`
	Failed int `json:"failed"`
	Total  int `json:"total"`
}

// BlastService fans a message out to every active subscriber. One recipient's
// failure never stops the rest; the result tallies every dispatch attempt.
type BlastService struct {
	subscribers repository.SubscriberRepository
	email       EmailSender
	sms         SMSSender
}

func NewBlastService(subscribers repository.SubscriberRepository, email EmailSender, sms SMSSender) *BlastService {
	return &BlastService{
		subscribers: subscribers,
		email:       email,
		sms:         sms,
	}
}

func (s *BlastService) Send(ctx context.Context, req *BlastRequest) (*BlastResult, error) {
	emailBlast := req.Subject != "" && req.HTMLBody != ""
	smsBlast := req.Message != ""
	if !emailBlast && !smsBlast {
		return nil, NewValidationError("either subject and htmlBody, or message, is required")
	}

	subscribers, err := s.subscribers.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load subscribers: %w", err)
	}

	result := &BlastResult{}
	for _, sub := range subscribers {
		if emailBlast && sub.Email != "" {
			result.Total++
			if err := s.email.SendEmail(sub.Email, req.Subject, req.HTMLBody); err != nil {
				result.Failed++
				logrus.WithError(err).WithField("subscriber_id", sub.ID).
					Warn("Blast email failed")
			} else {
				result.Sent++
			}
		}

		if smsBlast && sub.Phone != "" {
			result.Total++
			if err := s.sms.SendSMS(sub.Phone, req.Message); err != nil {
				result.Failed++
				logrus.WithError(err).WithField("subscriber_id", sub.ID).
					Warn("Blast SMS failed")
			} else {
				result.Sent++
			}
		}
	}

	logrus.WithFields(logrus.Fields{
		"sent":   result.Sent,
		"failed": result.Failed,
		"total":  result.Total,
	}).Info("Blast completed")

	return result, nil
}

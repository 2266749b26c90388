// internal/services/blast_service_test.go
package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meridianmade/storefront/internal/models"
)

func subscriber(email, phone string) models.Subscriber {
	return models.Subscriber{Email: email, Phone: phone}
}

func TestBlastRequiresContent(t *testing.T) {
	svc := NewBlastService(&fakeSubscriberRepo{}, &fakeEmailSender{}, &fakeSMSSender{})

	_, err := svc.Send(context.Background(), &BlastRequest{})
	require.Error(t, err)
	assert.True(t, IsValidationError(err))

	// Subject without a body is not an email blast.
	_, err = svc.Send(context.Background(), &BlastRequest{Subject: "Sale"})
	require.Error(t, err)
	assert.True(t, IsValidationError(err))
}

func TestBlastEmailOnly(t *testing.T) {
	subs := &fakeSubscriberRepo{subscribers: []models.Subscriber{
		subscriber("a@example.com", "+15550001"),
		subscriber("b@example.com", ""),
	}}
	email := &fakeEmailSender{}
	sms := &fakeSMSSender{}
	svc := NewBlastService(subs, email, sms)

	result, err := svc.Send(context.Background(), &BlastRequest{
		Subject:  "Sale",
		HTMLBody: "<p>Everything must go</p>",
	})
	require.NoError(t, err)

	assert.Equal(t, &BlastResult{Sent: 2, Failed: 0, Total: 2}, result)
	assert.Len(t, email.sent, 2)
	assert.Empty(t, sms.sent, "no message means no SMS dispatches")
}

func TestBlastSMSSkipsSubscribersWithoutPhone(t *testing.T) {
	subs := &fakeSubscriberRepo{subscribers: []models.Subscriber{
		subscriber("a@example.com", "+15550001"),
		subscriber("b@example.com", ""),
	}}
	sms := &fakeSMSSender{}
	svc := NewBlastService(subs, &fakeEmailSender{}, sms)

	result, err := svc.Send(context.Background(), &BlastRequest{Message: "Sale on now"})
	require.NoError(t, err)

	assert.Equal(t, &BlastResult{Sent: 1, Failed: 0, Total: 1}, result)
	assert.Equal(t, []string{"+15550001"}, sms.sent)
}

func TestBlastOneFailureDoesNotStopTheRest(t *testing.T) {
	subs := &fakeSubscriberRepo{subscribers: []models.Subscriber{
		subscriber("a@example.com", ""),
		subscriber("bounce@example.com", ""),
		subscriber("c@example.com", ""),
	}}
	email := &fakeEmailSender{failFor: map[string]bool{"bounce@example.com": true}}
	svc := NewBlastService(subs, email, &fakeSMSSender{})

	result, err := svc.Send(context.Background(), &BlastRequest{
		Subject:  "Sale",
		HTMLBody: "<p>Hi</p>",
	})
	require.NoError(t, err)

	assert.Equal(t, &BlastResult{Sent: 2, Failed: 1, Total: 3}, result)
	assert.Equal(t, []string{"a@example.com", "c@example.com"}, email.sent)
}

func TestBlastCombinedEmailAndSMS(t *testing.T) {
	subs := &fakeSubscriberRepo{subscribers: []models.Subscriber{
		subscriber("a@example.com", "+15550001"),
	}}
	email := &fakeEmailSender{}
	sms := &fakeSMSSender{}
	svc := NewBlastService(subs, email, sms)

	result, err := svc.Send(context.Background(), &BlastRequest{
		Subject:  "Sale",
		HTMLBody: "<p>Hi</p>",
		Message:  "Sale on now",
	})
	require.NoError(t, err)

	assert.Equal(t, &BlastResult{Sent: 2, Failed: 0, Total: 2}, result)
}

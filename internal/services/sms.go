package services

import (
	"context"
	"fmt"
	"log"

	"github.com/twilio/twilio-go"
	twilioapi "github.com/twilio/twilio-go/rest/api/v2010"
)

// SMSService sends text messages through Twilio.
type SMSService struct {
	client *twilio.RestClient
	from   string
}

// NewSMSService creates an SMS service using the given Twilio credentials.
func NewSMSService(accountSID, authToken, fromNumber string) *SMSService {
	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: accountSID,
		Password: authToken,
	})
	return &SMSService{client: client, from: fromNumber}
}

// Send delivers a text message to the given phone number and returns the
// provider-assigned message SID.
func (s *SMSService) Send(_ context.Context, message, phoneNumber string) (string, error) {
	params := &twilioapi.CreateMessageParams{}
	params.SetBody(message)
	params.SetFrom(s.from)
	params.SetTo(phoneNumber)

	resp, err := s.client.Api.CreateMessage(params)
	if err != nil {
		return "", fmt.Errorf("error sending SMS to %s: %w", phoneNumber, err)
	}

	sid := ""
	if resp.Sid != nil {
		sid = *resp.Sid
	}
	log.Printf("✅ SMS sent successfully to %s: %s", phoneNumber, sid)
	return sid, nil
}

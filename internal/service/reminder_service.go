package service

import (
	"context"
	"fmt"
	"time"

	"career-autopilot/internal/config"
	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	"github.com/tidwall/gjson"
)

// Reminder is one scheduled follow-up handed to the external reminder sink.
type Reminder struct {
	JobID       string    `json:"job_id"`
	ContactName string    `json:"contact_name"`
	Channel     string    `json:"channel"`
	DueDate     time.Time `json:"due_date"`
	Message     string    `json:"message"`
}

type ReminderServiceInterface interface {
	Schedule(ctx context.Context, reminder Reminder) (string, error)
}

type ReminderService struct {
	client  *resty.Client
	baseURL string
	apiKey  string
}

func NewReminderService() *ReminderService {
	cfg := config.LoadReminderConfig()
	client := resty.New().
		SetTimeout(15 * time.Second).
		SetRetryCount(2)
	return &ReminderService{
		client:  client,
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
	}
}

// Schedule posts one reminder to the sink and returns its id. Without a
// configured sink it hands back a local id so development setups still get an
// acknowledgement.
func (s *ReminderService) Schedule(ctx context.Context, reminder Reminder) (string, error) {
	if s.baseURL == "" {
		return "local-" + uuid.NewString(), nil
	}

	resp, err := s.client.R().
		SetContext(ctx).
		SetHeader("Authorization", "Bearer "+s.apiKey).
		SetHeader("Content-Type", "application/json").
		SetBody(reminder).
		Post(s.baseURL + "/reminders")
	if err != nil {
		return "", fmt.Errorf("reminder sink request failed: %w", err)
	}
	if resp.IsError() {
		return "", fmt.Errorf("reminder sink returned %d: %s", resp.StatusCode(), resp.String())
	}

	id := gjson.GetBytes(resp.Body(), "id").String()
	if id == "" {
		return "", fmt.Errorf("reminder sink ack missing id: %s", resp.String())
	}
	return id, nil
}

package config

import (
	"os"
	"sync"
)

type ReminderConfig struct {
	BaseURL string
	APIKey  string
}

var (
	reminderConfig *ReminderConfig
	reminderOnce   sync.Once
)

func LoadReminderConfig() *ReminderConfig {
	reminderOnce.Do(func() {
		reminderConfig = &ReminderConfig{
			BaseURL: os.Getenv("REMINDER_BASE_URL"),
			APIKey:  os.Getenv("REMINDER_API_KEY"),
		}
	})
	return reminderConfig
}

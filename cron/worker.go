package cron

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strconv"

	"github.com/hibiken/asynq"

	"yumres/config"
	"yumres/models"
	"yumres/services/tasks"
	"yumres/services/whatsapp"
)

// RestaurantSource provides the restaurant profile for vendor selection.
type RestaurantSource interface {
	GetProfile(ctx context.Context, restaurantID string) (*models.Restaurant, error)
}

// InitReminderWorker runs the async reminder worker in the background. It
// delivers scheduled reservation reminders as WhatsApp template messages
// through the restaurant's configured transport.
func InitReminderWorker(restaurants RestaurantSource) {
	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisReminderQueueDB,
	}

	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeReminderSend, handleReminderTask(restaurants))

	go func() {
		log.Println("[ReminderWorker] starting async worker...")
		if err := srv.Run(mux); err != nil {
			log.Printf("[ReminderWorker] worker stopped: %v", err)
		}
	}()
}

func handleReminderTask(restaurants RestaurantSource) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p models.ReminderPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			log.Printf("[ReminderHandler] invalid payload: %v", err)
			return err
		}

		restaurant, err := restaurants.GetProfile(ctx, p.RestaurantID)
		if err != nil {
			return fmt.Errorf("restaurant %s not found: %w", p.RestaurantID, err)
		}

		provider, err := whatsapp.ProviderFor(restaurant.WhatsAppProvider)
		if err != nil {
			return err
		}

		components := []models.TemplateComponent{
			{
				"type": "body",
				"parameters": []map[string]string{
					{"type": "text", "text": p.GuestName},
					{"type": "text", "text": restaurant.Name},
					{"type": "text", "text": p.Date},
					{"type": "text", "text": p.Time},
					{"type": "text", "text": strconv.Itoa(p.PartySize)},
				},
			},
		}

		if err := provider.SendTemplate(ctx, p.GuestPhone, config.AppConfig.ReminderTemplateName, components); err != nil {
			log.Printf("[ReminderHandler] failed to send reminder for reservation %s: %v", p.ReservationID, err)
			return err
		}
		return nil
	}
}

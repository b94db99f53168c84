package tasks

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"

	"yumres/config"
	"yumres/models"
)

const TypeReminderSend = "reminder:send"

// Scheduler enqueues reservation reminders on the asynq queue, timed a
// configured lead ahead of the reservation.
type Scheduler struct {
	client   *asynq.Client
	leadTime time.Duration
}

func NewScheduler() *Scheduler {
	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisReminderQueueDB,
	}
	return &Scheduler{
		client:   asynq.NewClient(redisOpts),
		leadTime: time.Duration(config.AppConfig.ReminderLeadMinutes) * time.Minute,
	}
}

// Schedule enqueues a reminder for the reservation. Reservations too close to
// their start, or with unparseable date/time, are silently skipped.
func (s *Scheduler) Schedule(ctx context.Context, reservation *models.Reservation) error {
	if reservation.GuestPhone == "" {
		return nil
	}

	startsAt, err := time.ParseInLocation("2006-01-02 15:04", reservation.Date+" "+reservation.Time, time.Local)
	if err != nil {
		return fmt.Errorf("unparseable reservation date/time: %w", err)
	}
	fireAt := startsAt.Add(-s.leadTime)
	if !fireAt.After(time.Now()) {
		return nil
	}

	payload := models.ReminderPayload{
		ReservationID: reservation.ID,
		RestaurantID:  reservation.RestaurantID,
		GuestPhone:    reservation.GuestPhone,
		GuestName:     reservation.GuestName,
		Date:          reservation.Date,
		Time:          reservation.Time,
		PartySize:     reservation.PartySize,
	}
	b, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	task := asynq.NewTask(TypeReminderSend, b)
	_, err = s.client.EnqueueContext(ctx, task, asynq.ProcessAt(fireAt))
	return err
}

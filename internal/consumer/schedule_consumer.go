package consumer

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/22303425alamin/Railway-Ticket-Management-System/internal/calendar"
	"github.com/22303425alamin/Railway-Ticket-Management-System/internal/models"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// ScheduleMessage is the operations feed payload for a single train run.
type ScheduleMessage struct {
	TrainNumber  string `json:"train_number"`
	JourneyDate  string `json:"journey_date"`
	Status       string `json:"status"`
	DelayMinutes int    `json:"delay_minutes"`
}

type TrainFinder interface {
	FindByNumber(ctx context.Context, number string) (*models.Train, error)
}

type OverrideWriter interface {
	Upsert(ctx context.Context, override *models.ScheduleOverride) error
}

type ScheduleConsumer struct {
	trains    TrainFinder
	overrides OverrideWriter
	timeout   time.Duration
}

func NewScheduleConsumer(trains TrainFinder, overrides OverrideWriter) *ScheduleConsumer {
	return &ScheduleConsumer{trains: trains, overrides: overrides, timeout: 10 * time.Second}
}

// Start listens for messages and upserts schedule overrides.
func (sc *ScheduleConsumer) Start(msgs <-chan amqp.Delivery) {
	go func() {
		for msg := range msgs {
			sc.handleMessage(msg)
		}
		logrus.Info("schedule consumer: channel closed, stopping")
	}()
}

func (sc *ScheduleConsumer) handleMessage(msg amqp.Delivery) {
	log := logrus.WithField("routing_key", msg.RoutingKey)

	override, err := sc.apply(msg.Body)
	switch {
	case err == nil:
		log.WithFields(logrus.Fields{
			"train_id": override.TrainID,
			"date":     override.JourneyDate.Format(calendar.DateLayout),
			"status":   override.Status,
		}).Info("schedule override synced")
		_ = msg.Ack(false)
	case errors.Is(err, errPermanent):
		log.WithError(err).Warn("schedule consumer: dropping message")
		_ = msg.Nack(false, false)
	default:
		log.WithError(err).Error("schedule consumer: failed to upsert, requeueing")
		_ = msg.Nack(false, true) // requeue
	}
}

var errPermanent = errors.New("unprocessable schedule message")

func (sc *ScheduleConsumer) apply(body []byte) (*models.ScheduleOverride, error) {
	var m ScheduleMessage
	if err := json.Unmarshal(body, &m); err != nil {
		return nil, errors.Join(errPermanent, err)
	}

	status := models.ScheduleStatus(strings.ToLower(strings.TrimSpace(m.Status)))
	if !status.Valid() {
		return nil, errors.Join(errPermanent, errors.New("unknown status "+m.Status))
	}
	date, err := calendar.ParseDate(m.JourneyDate)
	if err != nil {
		return nil, errors.Join(errPermanent, err)
	}
	if m.DelayMinutes < 0 || (status != models.ScheduleDelayed && m.DelayMinutes != 0) {
		return nil, errors.Join(errPermanent, errors.New("delay minutes only apply to delayed trains"))
	}

	ctx, cancel := context.WithTimeout(context.Background(), sc.timeout)
	defer cancel()

	train, err := sc.trains.FindByNumber(ctx, strings.TrimSpace(m.TrainNumber))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.Join(errPermanent, errors.New("unknown train "+m.TrainNumber))
		}
		return nil, err
	}

	override := &models.ScheduleOverride{
		TrainID:      train.ID,
		JourneyDate:  date,
		Status:       status,
		DelayMinutes: m.DelayMinutes,
	}
	if err := sc.overrides.Upsert(ctx, override); err != nil {
		return nil, err
	}
	return override, nil
}

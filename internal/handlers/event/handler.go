package event

import (
	"context"
	"errors"
	"fmt"
	"nest/config"
	"nest/infras/kafka"
	"nest/infras/otel"
	"nest/internal/domains/appointment/model"
	"nest/shared/constant"
	"nest/shared/timezone"

	"github.com/rs/zerolog/log"
	kafkaGo "github.com/segmentio/kafka-go"
)

const dateLayout = "Mon, 02 Jan 2006"

type Handler struct {
	cfg   *config.Config
	kafka kafka.Client
	otel  otel.Otel
}

func New(cfg *config.Config, kafka kafka.Client, otel otel.Otel) Handler {
	return Handler{
		cfg:   cfg,
		kafka: kafka,
		otel:  otel,
	}
}

// Consume reads the appointment topic until ctx is done. Without brokers it
// returns immediately with a nil error.
func (handler *Handler) Consume(ctx context.Context) error {
	err := handler.kafka.Consume(ctx, handler.cfg.Kafka.ConsumerGroup, handler.cfg.Kafka.Topics.Appointment, handler.HandleAppointment)
	if errors.Is(err, kafka.ErrNoBrokers) {
		log.Warn().Msg("Kafka brokers are not configured, appointment consumer disabled")

		return nil
	}

	if err != nil {
		return fmt.Errorf("appointment consumer stopped: %w", err)
	}

	return nil
}

// HandleAppointment logs the renter notification for one appointment event.
// Undecodable payloads are dropped so they do not block the partition.
func (handler *Handler) HandleAppointment(ctx context.Context, msg kafkaGo.Message) error {
	_, scope := handler.otel.NewScope(ctx, constant.OtelEventScopeName, constant.OtelEventScopeName+".HandleAppointment")
	defer scope.End()

	event, err := kafka.Decode[model.Event](msg)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("key", string(msg.Key)).Msg("dropping malformed appointment event")

		return nil
	}

	text, ok := Notification(event)
	if !ok {
		log.Debug().Str("type", event.Type).Msg("ignoring appointment event")

		return nil
	}

	scope.SetAttribute("appointment.id", event.AppointmentID)
	log.Info().
		Str("to", event.RenterEmail).
		Int("appointmentId", event.AppointmentID).
		Str("type", event.Type).
		Msg(text)

	return nil
}

// Notification renders the message sent to the renter for event.
func Notification(event model.Event) (string, bool) {
	when := fmt.Sprintf("%s at %s", timezone.Format(event.AppointmentDate, dateLayout), event.AppointmentTime)

	switch event.Type {
	case model.EventCreated:
		return fmt.Sprintf("Hi %s, your viewing request for %s was received.", event.RenterName, when), true
	case model.EventStatusChanged:
		return fmt.Sprintf("Hi %s, your viewing on %s is now %s.", event.RenterName, when, event.Status), true
	default:
		return "", false
	}
}

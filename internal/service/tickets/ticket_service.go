// Package tickets implements the ticket confirmation workflow: verify the
// caller, look up the flight, render the ticket and mail it. Each step
// short-circuits the pipeline with a distinctly classified error.
package tickets

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Domenick1991/airtickets/internal/apperr"
	"github.com/Domenick1991/airtickets/internal/auth"
	"github.com/Domenick1991/airtickets/internal/domain"
	"github.com/Domenick1991/airtickets/internal/kafka"
	"github.com/Domenick1991/airtickets/internal/mail"
	"github.com/Domenick1991/airtickets/internal/repository"
	"github.com/Domenick1991/airtickets/internal/template"
)

type BookingDetails struct {
	FlightID   int64            `json:"flight_id"`
	Date       string           `json:"date"`
	PriceCents int64            `json:"price_cents"`
	SeatNumber int              `json:"seat_number"`
	SeatClass  domain.SeatClass `json:"seat_class"`
}

type Confirmation struct {
	Receipt *mail.Receipt `json:"receipt"`
}

type TicketUseCase interface {
	Confirm(ctx context.Context, claims *auth.Claims, details BookingDetails) (*Confirmation, error)
}

type Producer interface {
	Publish(ctx context.Context, topic, key string, value interface{}) error
}

type TicketService struct {
	flights  repository.FlightRepository
	renderer template.Renderer
	mailer   mail.Dispatcher
	producer Producer
	topic    string
	log      *zap.Logger
}

func NewTicketService(flights repository.FlightRepository, renderer template.Renderer, mailer mail.Dispatcher, producer Producer, topic string, log *zap.Logger) *TicketService {
	return &TicketService{flights: flights, renderer: renderer, mailer: mailer, producer: producer, topic: topic, log: log}
}

type ticketData struct {
	Name       string
	Email      string
	FlightID   int64
	From       string
	To         string
	Date       string
	SeatNumber int
	SeatClass  domain.SeatClass
	Price      string
}

func (s *TicketService) Confirm(ctx context.Context, claims *auth.Claims, details BookingDetails) (*Confirmation, error) {
	if claims == nil {
		return nil, apperr.New(apperr.KindUnauthenticated, "missing credential")
	}
	if err := validateDetails(details); err != nil {
		return nil, err
	}

	flight, err := s.flights.GetByID(ctx, details.FlightID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.New(apperr.KindNotFound, "flight not found")
		}
		return nil, apperr.Dependency("database", "database error", err)
	}

	body, err := s.renderer.Render(template.TicketTemplate, ticketData{
		Name:       claims.Username,
		Email:      claims.Email,
		FlightID:   flight.ID,
		From:       flight.From,
		To:         flight.To,
		Date:       details.Date,
		SeatNumber: details.SeatNumber,
		SeatClass:  details.SeatClass,
		Price:      formatPrice(details.PriceCents),
	})
	if err != nil {
		return nil, apperr.Dependency("template", "render error", err)
	}

	receipt, err := s.mailer.Send(ctx, mail.Message{
		To:      claims.Email,
		Subject: "Ticket Confirmation",
		HTML:    body,
	})
	if err != nil {
		return nil, apperr.Dependency("mail", "email send error", err)
	}

	s.publish(ctx, kafka.NotificationEvent{
		Type:      kafka.EventTicketSent,
		Email:     claims.Email,
		FlightID:  flight.ID,
		ReceiptID: receipt.ID,
		At:        time.Now(),
	})

	s.log.Info("ticket confirmation sent",
		zap.Int64("flight_id", flight.ID),
		zap.String("receipt_id", receipt.ID))
	return &Confirmation{Receipt: receipt}, nil
}

func (s *TicketService) publish(ctx context.Context, event kafka.NotificationEvent) {
	if s.producer == nil || s.topic == "" {
		return
	}
	if err := s.producer.Publish(ctx, s.topic, event.ReceiptID, event); err != nil {
		s.log.Warn("notification publish failed", zap.String("type", event.Type), zap.Error(err))
	}
}

func validateDetails(details BookingDetails) error {
	if details.FlightID <= 0 {
		return apperr.New(apperr.KindValidation, "flight id must be positive")
	}
	if details.SeatNumber <= 0 {
		return apperr.New(apperr.KindValidation, "seat number must be positive")
	}
	if !details.SeatClass.Valid() {
		return apperr.New(apperr.KindValidation, "unknown seat class")
	}
	return nil
}

func formatPrice(cents int64) string {
	return fmt.Sprintf("$%d.%02d", cents/100, cents%100)
}

var _ TicketUseCase = (*TicketService)(nil)

// Package account implements the password reset workflow. The new hash and
// the notification mail commit or fail together: the repository holds the
// update open in a transaction until the dispatcher accepts the message.
package account

import (
	"context"
	"crypto/rand"
	"errors"
	"math/big"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/Domenick1991/airtickets/internal/apperr"
	"github.com/Domenick1991/airtickets/internal/kafka"
	"github.com/Domenick1991/airtickets/internal/mail"
	"github.com/Domenick1991/airtickets/internal/repository"
	"github.com/Domenick1991/airtickets/internal/template"
)

const (
	passwordLength   = 16
	passwordAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789!@#$%^&*-_=+"
)

type ResetResult struct {
	Email     string `json:"email"`
	ReceiptID string `json:"receipt_id"`
}

type AccountUseCase interface {
	ResetPassword(ctx context.Context, email, username string) (*ResetResult, error)
}

type Producer interface {
	Publish(ctx context.Context, topic, key string, value interface{}) error
}

type AccountService struct {
	users      repository.UserRepository
	renderer   template.Renderer
	mailer     mail.Dispatcher
	producer   Producer
	topic      string
	bcryptCost int
	log        *zap.Logger
}

func NewAccountService(users repository.UserRepository, renderer template.Renderer, mailer mail.Dispatcher, producer Producer, topic string, log *zap.Logger) *AccountService {
	return &AccountService{
		users:      users,
		renderer:   renderer,
		mailer:     mailer,
		producer:   producer,
		topic:      topic,
		bcryptCost: bcrypt.DefaultCost,
		log:        log,
	}
}

func (s *AccountService) ResetPassword(ctx context.Context, email, username string) (*ResetResult, error) {
	if email == "" || username == "" {
		return nil, apperr.New(apperr.KindValidation, "email and username are required")
	}

	user, err := s.users.FindByEmailUsername(ctx, email, username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.New(apperr.KindNotFound, "email not found")
		}
		return nil, apperr.Dependency("database", "server error", err)
	}

	password, err := generatePassword(passwordLength)
	if err != nil {
		return nil, apperr.Dependency("random", "password generation error", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return nil, apperr.Dependency("hash", "hashing error", err)
	}

	body, err := s.renderer.Render(template.PasswordResetTemplate, map[string]any{
		"Username": user.Username,
		"Password": password,
	})
	if err != nil {
		return nil, apperr.Dependency("template", "render error", err)
	}

	// Persist and deliver atomically: the hash update commits only after the
	// dispatcher accepted the mail, so a delivery failure leaves the old
	// password valid.
	var receipt *mail.Receipt
	var deliverErr error
	err = s.users.UpdatePasswordHash(ctx, user.ID, string(hash), func(ctx context.Context) error {
		receipt, deliverErr = s.mailer.Send(ctx, mail.Message{
			To:      user.Email,
			Subject: "Password Reset",
			HTML:    body,
		})
		return deliverErr
	})
	if err != nil {
		if deliverErr != nil {
			return nil, apperr.Dependency("mail", "email send error", deliverErr)
		}
		return nil, apperr.Dependency("database", "update error", err)
	}

	s.publish(ctx, kafka.NotificationEvent{
		Type:      kafka.EventPasswordReset,
		Email:     user.Email,
		ReceiptID: receipt.ID,
		At:        time.Now(),
	})

	s.log.Info("password reset completed", zap.Int64("user_id", user.ID), zap.String("receipt_id", receipt.ID))
	return &ResetResult{Email: user.Email, ReceiptID: receipt.ID}, nil
}

func (s *AccountService) publish(ctx context.Context, event kafka.NotificationEvent) {
	if s.producer == nil || s.topic == "" {
		return
	}
	if err := s.producer.Publish(ctx, s.topic, event.ReceiptID, event); err != nil {
		s.log.Warn("notification publish failed", zap.String("type", event.Type), zap.Error(err))
	}
}

// generatePassword draws n characters from the printable alphabet with
// crypto/rand. Every call produces an independent password.
func generatePassword(n int) (string, error) {
	out := make([]byte, n)
	max := big.NewInt(int64(len(passwordAlphabet)))
	for i := range out {
		idx, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		out[i] = passwordAlphabet[idx.Int64()]
	}
	return string(out), nil
}

var _ AccountUseCase = (*AccountService)(nil)

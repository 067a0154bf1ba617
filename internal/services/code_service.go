package services

import (
	"context"
	"crypto/rand"
	"fmt"
	"log"
	"math/big"
	"time"

	"github.com/you/communitysvc/domain"
)

// SMSCodeServiceImpl implements domain.CodeService on an injected key-value
// store. One code is live per phone at a time: re-sending overwrites the
// previous code, and successful verification consumes the code immediately.
type SMSCodeServiceImpl struct {
	store    domain.CodeStore
	notifier domain.NotificationService
	config   CodeConfig
}

// CodeConfig carries the one-time code settings.
type CodeConfig struct {
	Length      int
	TTL         time.Duration
	MockEnabled bool
	MockCode    string
}

// NewSMSCodeService creates a new one-time code service.
func NewSMSCodeService(store domain.CodeStore, notifier domain.NotificationService, config CodeConfig) domain.CodeService {
	if config.Length == 0 {
		config.Length = 6
	}
	return &SMSCodeServiceImpl{store: store, notifier: notifier, config: config}
}

// Send implements domain.CodeService. In mock mode the configured fixed
// code is stored and logged so test harnesses can read it; otherwise a
// random code goes out via SMS.
func (s *SMSCodeServiceImpl) Send(ctx context.Context, phone string) error {
	code := s.config.MockCode
	if !s.config.MockEnabled {
		generated, err := s.generateSecureCode()
		if err != nil {
			return fmt.Errorf("failed to generate code: %w", err)
		}
		code = generated
	}

	if err := s.store.Put(ctx, phone, code, s.config.TTL); err != nil {
		return fmt.Errorf("failed to store code: %w", err)
	}

	if s.config.MockEnabled {
		log.Printf("[SMS Mock] Phone: %s, Code: %s", phone, code)
		return nil
	}

	message := fmt.Sprintf("您的验证码是 %s，%d 分钟内有效。", code, int(s.config.TTL.Minutes()))
	if err := s.notifier.SendSMS(phone, message); err != nil {
		// The stored code must not outlive a failed delivery.
		s.store.Delete(ctx, phone)
		return fmt.Errorf("failed to send code: %w", err)
	}
	return nil
}

// VerifyAndConsume implements domain.CodeService. A match deletes the code
// so it validates exactly once. Absent, expired and wrong codes are all the
// same false answer; callers cannot tell them apart.
func (s *SMSCodeServiceImpl) VerifyAndConsume(ctx context.Context, phone, code string) (bool, error) {
	stored, err := s.store.Get(ctx, phone)
	if err != nil {
		return false, fmt.Errorf("failed to read code: %w", err)
	}
	if stored == "" || stored != code {
		return false, nil
	}
	if err := s.store.Delete(ctx, phone); err != nil {
		return false, fmt.Errorf("failed to consume code: %w", err)
	}
	return true, nil
}

// generateSecureCode generates a cryptographically secure numeric code.
func (s *SMSCodeServiceImpl) generateSecureCode() (string, error) {
	digits := make([]byte, s.config.Length)
	for i := 0; i < s.config.Length; i++ {
		num, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return "", fmt.Errorf("failed to generate random digit: %w", err)
		}
		digits[i] = byte('0' + num.Int64())
	}
	return string(digits), nil
}

package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/you/communitysvc/internal/mocks"
)

func newMockCodeService(store *mocks.MockCodeStore, notifier *mocks.MockNotificationService) *SMSCodeServiceImpl {
	return NewSMSCodeService(store, notifier, CodeConfig{
		Length:      6,
		TTL:         5 * time.Minute,
		MockEnabled: true,
		MockCode:    "123456",
	}).(*SMSCodeServiceImpl)
}

func TestCodeService_MockModeSingleUse(t *testing.T) {
	ctx := context.Background()
	store := mocks.NewMockCodeStore()
	svc := newMockCodeService(store, mocks.NewMockNotificationService())

	require.NoError(t, svc.Send(ctx, "13800138000"))

	ok, err := svc.VerifyAndConsume(ctx, "13800138000", "123456")
	require.NoError(t, err)
	assert.True(t, ok)

	// The code is consumed on first success and never validates again.
	ok, err = svc.VerifyAndConsume(ctx, "13800138000", "123456")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCodeService_WrongCode(t *testing.T) {
	ctx := context.Background()
	store := mocks.NewMockCodeStore()
	svc := newMockCodeService(store, mocks.NewMockNotificationService())

	require.NoError(t, svc.Send(ctx, "13800138000"))

	ok, err := svc.VerifyAndConsume(ctx, "13800138000", "000000")
	require.NoError(t, err)
	assert.False(t, ok)

	// A wrong guess does not consume the real code.
	ok, err = svc.VerifyAndConsume(ctx, "13800138000", "123456")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestCodeService_PerPhoneIsolation(t *testing.T) {
	ctx := context.Background()
	store := mocks.NewMockCodeStore()
	svc := newMockCodeService(store, mocks.NewMockNotificationService())

	require.NoError(t, svc.Send(ctx, "13800138000"))

	// No code was ever sent to the second phone.
	ok, err := svc.VerifyAndConsume(ctx, "13900139000", "123456")
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = svc.VerifyAndConsume(ctx, "13800138000", "123456")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestCodeService_NoCodeSent(t *testing.T) {
	ctx := context.Background()
	svc := newMockCodeService(mocks.NewMockCodeStore(), mocks.NewMockNotificationService())

	ok, err := svc.VerifyAndConsume(ctx, "13800138000", "123456")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCodeService_RealModeSendsSMS(t *testing.T) {
	ctx := context.Background()

	stored := map[string]string{}
	store := mocks.NewMockCodeStore()
	store.PutFunc = func(ctx context.Context, key, value string, ttl time.Duration) error {
		stored[key] = value
		return nil
	}
	store.GetFunc = func(ctx context.Context, key string) (string, error) {
		return stored[key], nil
	}
	store.DeleteFunc = func(ctx context.Context, key string) error {
		delete(stored, key)
		return nil
	}
	notifier := mocks.NewMockNotificationService()

	svc := NewSMSCodeService(store, notifier, CodeConfig{
		Length: 6,
		TTL:    5 * time.Minute,
	}).(*SMSCodeServiceImpl)

	require.NoError(t, svc.Send(ctx, "13800138000"))
	require.Len(t, notifier.Sent, 1)
	assert.Equal(t, "13800138000", notifier.Sent[0].To)

	code := stored["13800138000"]
	require.Len(t, code, 6)
	assert.Contains(t, notifier.Sent[0].Message, code)

	ok, err := svc.VerifyAndConsume(ctx, "13800138000", code)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestCodeService_FailedDeliveryDropsCode(t *testing.T) {
	ctx := context.Background()
	store := mocks.NewMockCodeStore()
	notifier := mocks.NewMockNotificationService()
	notifier.SendSMSFunc = func(to, message string) error {
		return errors.New("carrier unavailable")
	}

	svc := NewSMSCodeService(store, notifier, CodeConfig{
		Length: 6,
		TTL:    5 * time.Minute,
	}).(*SMSCodeServiceImpl)

	require.Error(t, svc.Send(ctx, "13800138000"))

	// The stored code must not survive a failed delivery.
	val, err := store.Get(ctx, "13800138000")
	require.NoError(t, err)
	assert.Empty(t, val)
}

func TestCodeService_ResendOverwrites(t *testing.T) {
	ctx := context.Background()

	stored := map[string]string{}
	store := mocks.NewMockCodeStore()
	store.PutFunc = func(ctx context.Context, key, value string, ttl time.Duration) error {
		stored[key] = value
		return nil
	}
	store.GetFunc = func(ctx context.Context, key string) (string, error) {
		return stored[key], nil
	}
	store.DeleteFunc = func(ctx context.Context, key string) error {
		delete(stored, key)
		return nil
	}

	svc := NewSMSCodeService(store, mocks.NewMockNotificationService(), CodeConfig{
		Length: 6,
		TTL:    5 * time.Minute,
	}).(*SMSCodeServiceImpl)

	require.NoError(t, svc.Send(ctx, "13800138000"))
	first := stored["13800138000"]
	require.NoError(t, svc.Send(ctx, "13800138000"))
	second := stored["13800138000"]

	if first != second {
		// The overwritten code is dead even though it never expired.
		ok, err := svc.VerifyAndConsume(ctx, "13800138000", first)
		require.NoError(t, err)
		assert.False(t, ok)
	}

	ok, err := svc.VerifyAndConsume(ctx, "13800138000", second)
	require.NoError(t, err)
	assert.True(t, ok)
}

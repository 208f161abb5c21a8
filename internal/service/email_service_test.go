package service_test

import (
	"context"
	"errors"
	"net/smtp"
	"testing"

	"github.com/stretchr/testify/require"

	"recap/backend/internal/config"
	"recap/backend/internal/service"
)

type capturedSend struct {
	addr string
	auth smtp.Auth
	from string
	to   []string
	msg  []byte
	err  error
}

func (c *capturedSend) send(addr string, auth smtp.Auth, from string, to []string, msg []byte) error {
	c.addr = addr
	c.auth = auth
	c.from = from
	c.to = to
	c.msg = msg
	return c.err
}

func smtpConfig() config.SMTPConfig {
	return config.SMTPConfig{
		Host:     "smtp.example.com",
		Port:     587,
		Username: "mailer@example.com",
		Password: "secret",
		From:     "noreply@example.com",
	}
}

func TestEmailService_Send(t *testing.T) {
	captured := &capturedSend{}
	svc := service.NewEmailServiceWithSender(smtpConfig(), captured.send)

	err := svc.Send(context.Background(), []string{"a@example.com", "b@example.com"}, "hello summary", "My Subject")
	require.NoError(t, err)
	require.Equal(t, "smtp.example.com:587", captured.addr)
	require.NotNil(t, captured.auth)
	require.Equal(t, "noreply@example.com", captured.from)
	require.Equal(t, []string{"a@example.com", "b@example.com"}, captured.to)
	require.Contains(t, string(captured.msg), "Subject: My Subject")
	require.Contains(t, string(captured.msg), "Content-Type: text/html")
	require.Contains(t, string(captured.msg), "hello summary")
}

func TestEmailService_Send_DefaultSubject(t *testing.T) {
	captured := &capturedSend{}
	svc := service.NewEmailServiceWithSender(smtpConfig(), captured.send)

	err := svc.Send(context.Background(), []string{"a@example.com"}, "s", "")
	require.NoError(t, err)
	require.Contains(t, string(captured.msg), "Subject: Shared Summary")
}

func TestEmailService_Send_EscapesSummary(t *testing.T) {
	captured := &capturedSend{}
	svc := service.NewEmailServiceWithSender(smtpConfig(), captured.send)

	err := svc.Send(context.Background(), []string{"a@example.com"}, `<script>alert("x")</script>`, "")
	require.NoError(t, err)
	require.NotContains(t, string(captured.msg), "<script>")
	require.Contains(t, string(captured.msg), "&lt;script&gt;")
}

func TestEmailService_Send_Validation(t *testing.T) {
	captured := &capturedSend{}
	svc := service.NewEmailServiceWithSender(smtpConfig(), captured.send)
	ctx := context.Background()

	err := svc.Send(ctx, nil, "s", "")
	require.ErrorIs(t, err, service.ErrInvalid)

	err = svc.Send(ctx, []string{"not-an-address"}, "s", "")
	require.ErrorIs(t, err, service.ErrInvalid)

	require.Nil(t, captured.msg, "nothing sent on validation failure")
}

func TestEmailService_Send_MissingHost(t *testing.T) {
	svc := service.NewEmailServiceWithSender(config.SMTPConfig{}, (&capturedSend{}).send)

	err := svc.Send(context.Background(), []string{"a@example.com"}, "s", "")
	require.ErrorIs(t, err, service.ErrMisconfigured)
}

func TestEmailService_Send_NoAuthWithoutUsername(t *testing.T) {
	captured := &capturedSend{}
	cfg := smtpConfig()
	cfg.Username = ""
	cfg.Password = ""
	svc := service.NewEmailServiceWithSender(cfg, captured.send)

	err := svc.Send(context.Background(), []string{"a@example.com"}, "s", "")
	require.NoError(t, err)
	require.Nil(t, captured.auth)
}

func TestEmailService_Send_TransportError(t *testing.T) {
	captured := &capturedSend{err: errors.New("connection refused")}
	svc := service.NewEmailServiceWithSender(smtpConfig(), captured.send)

	err := svc.Send(context.Background(), []string{"a@example.com"}, "s", "")
	require.Error(t, err)
	require.Contains(t, err.Error(), "connection refused")
}

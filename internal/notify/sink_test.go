package notify

import (
	"bytes"
	"context"
	"errors"
	"log"
	"net"
	"net/smtp"
	"strings"
	"testing"
	"time"

	"gopkg.in/telebot.v3"
)

func TestSMTPSinkBuildsPlainTextMessage(t *testing.T) {
	sink := NewSMTPSink(SMTPConfig{Host: "smtp.example.com", User: "bot@example.com", Password: "secret"})

	var gotAddr string
	var gotTo []string
	var gotMsg []byte
	sink.sendMail = func(_ context.Context, addr string, _ smtp.Auth, from string, to []string, msg []byte) error {
		gotAddr = addr
		gotTo = to
		gotMsg = msg
		if from != "bot@example.com" {
			t.Fatalf("expected From to default to user, got %q", from)
		}
		return nil
	}

	if err := sink.Notify(context.Background(), "employe1@example.com", "Nouveau quart", "Bonjour\nligne 2"); err != nil {
		t.Fatalf("Notify() unexpected error: %v", err)
	}
	if gotAddr != "smtp.example.com:587" {
		t.Fatalf("expected default port 587, got %q", gotAddr)
	}
	if len(gotTo) != 1 || gotTo[0] != "employe1@example.com" {
		t.Fatalf("unexpected recipients %v", gotTo)
	}
	message := string(gotMsg)
	if !strings.Contains(message, "Content-Type: text/plain; charset=\"UTF-8\"") {
		t.Fatalf("expected plain text content type in %q", message)
	}
	if !strings.Contains(message, "Bonjour\r\nligne 2") {
		t.Fatalf("expected CRLF body in %q", message)
	}
}

func TestSMTPSinkEncodesNonASCIISubject(t *testing.T) {
	msg := string(buildPlainTextMessage("a@example.com", "b@example.com", "Mise à jour", "x"))
	if !strings.Contains(msg, "Subject: =?UTF-8?b?") {
		t.Fatalf("expected encoded subject in %q", msg)
	}
}

func TestSMTPSinkSkipsEmptyRecipientAndWrapsErrors(t *testing.T) {
	sink := NewSMTPSink(SMTPConfig{Host: "smtp.example.com", Port: "2525", User: "u", Password: "p"})
	calls := 0
	sink.sendMail = func(context.Context, string, smtp.Auth, string, []string, []byte) error {
		calls++
		return errors.New("535 auth failed")
	}

	if err := sink.Notify(context.Background(), " ", "s", "t"); err != nil || calls != 0 {
		t.Fatalf("expected silent skip, got err=%v calls=%d", err, calls)
	}
	if err := sink.Notify(context.Background(), "x@example.com", "s", "t"); err == nil || !strings.Contains(err.Error(), "535") {
		t.Fatalf("expected wrapped smtp error, got %v", err)
	}
}

func TestSMTPSinkStopsWhenContextExpires(t *testing.T) {
	sink := NewSMTPSink(SMTPConfig{Host: "smtp.example.com", User: "u", Password: "p"})
	sink.sendMail = func(ctx context.Context, _ string, _ smtp.Auth, _ string, _ []string, _ []byte) error {
		<-ctx.Done()
		return ctx.Err()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- sink.Notify(ctx, "x@example.com", "s", "t") }()
	select {
	case err := <-done:
		if !errors.Is(err, context.DeadlineExceeded) {
			t.Fatalf("expected deadline exceeded, got %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Notify() did not return after the context expired")
	}
}

func TestSendMailContextGivesUpOnSilentRelay(t *testing.T) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	defer listener.Close()

	accepted := make(chan net.Conn, 1)
	go func() {
		conn, err := listener.Accept()
		if err == nil {
			accepted <- conn
		}
	}()
	defer func() {
		select {
		case conn := <-accepted:
			conn.Close()
		default:
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	started := time.Now()
	err = sendMailContext(ctx, listener.Addr().String(), nil, "a@example.com", []string{"b@example.com"}, []byte("x"))
	if err == nil {
		t.Fatal("expected error from a relay that never greets")
	}
	if elapsed := time.Since(started); elapsed > 2*time.Second {
		t.Fatalf("expected send to stop near the deadline, took %v", elapsed)
	}
}

func TestSMTPConfigEnabled(t *testing.T) {
	if (SMTPConfig{Host: "h", User: "u"}).Enabled() {
		t.Fatal("expected disabled without password")
	}
	if !(SMTPConfig{Host: "h", User: "u", Password: "p"}).Enabled() {
		t.Fatal("expected enabled")
	}
}

type stubTelegramSender struct {
	to   telebot.Recipient
	text string
	err  error
}

func (stub *stubTelegramSender) Send(to telebot.Recipient, what interface{}, _ ...interface{}) (*telebot.Message, error) {
	stub.to = to
	stub.text, _ = what.(string)
	return &telebot.Message{}, stub.err
}

func TestTelegramSinkPostsToOpsChat(t *testing.T) {
	sender := &stubTelegramSender{}
	sink := &TelegramSink{bot: sender, chatID: telebot.ChatID(-100123)}

	if err := sink.Notify(context.Background(), "employe1@example.com", "Nouveau quart", "lundi 17:00-20:00"); err != nil {
		t.Fatalf("Notify() unexpected error: %v", err)
	}
	if sender.to.Recipient() != "-100123" {
		t.Fatalf("unexpected chat %q", sender.to.Recipient())
	}
	if !strings.HasPrefix(sender.text, "Nouveau quart\n→ employe1@example.com\n\n") {
		t.Fatalf("unexpected text %q", sender.text)
	}

	sender.err = errors.New("chat not found")
	if err := sink.Notify(context.Background(), "", "s", ""); err == nil {
		t.Fatal("expected telegram error")
	}
}

func TestLogSinkWritesMessage(t *testing.T) {
	var buffer bytes.Buffer
	sink := NewLogSink(log.New(&buffer, "", 0))
	if err := sink.Notify(context.Background(), "x@example.com", "subject", "text"); err != nil {
		t.Fatalf("Notify() unexpected error: %v", err)
	}
	if !strings.Contains(buffer.String(), `to="x@example.com"`) {
		t.Fatalf("unexpected log line %q", buffer.String())
	}
}

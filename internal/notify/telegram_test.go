package notify

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
)

// telegramStub fakes the Bot API: it answers getMe so the constructor
// succeeds and serves a scripted response for sendMessage.
type telegramStub struct {
	sendStatus int
	sendBody   string
	lastSend   url.Values
}

func (s *telegramStub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch {
	case strings.HasSuffix(r.URL.Path, "/getMe"):
		fmt.Fprint(w, `{"ok":true,"result":{"id":1,"is_bot":true,"first_name":"golazo","username":"golazo_bot"}}`)
	case strings.HasSuffix(r.URL.Path, "/sendMessage"):
		r.ParseForm()
		s.lastSend = r.PostForm
		if s.sendStatus != 0 {
			w.WriteHeader(s.sendStatus)
		}
		body := s.sendBody
		if body == "" {
			body = `{"ok":true,"result":{"message_id":7,"date":1,"text":"x","chat":{"id":-100123}}}`
		}
		fmt.Fprint(w, body)
	default:
		http.NotFound(w, r)
	}
}

func newTelegramFixture(t *testing.T, stub *telegramStub) *TelegramSender {
	t.Helper()
	srv := httptest.NewServer(stub)
	t.Cleanup(srv.Close)

	sender, err := NewTelegramSender("123:token", -100123,
		WithTelegramEndpoint(srv.URL+"/bot%s/%s"))
	if err != nil {
		t.Fatalf("creating sender: %v", err)
	}
	return sender
}

func TestTelegramSendDeliversHTML(t *testing.T) {
	stub := &telegramStub{}
	sender := newTelegramFixture(t, stub)

	text := "⚽️ <b>¡GOOOOL!</b> ⚽️"
	if err := sender.Send(context.Background(), text); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := stub.lastSend.Get("text"); got != text {
		t.Errorf("text = %q", got)
	}
	if got := stub.lastSend.Get("parse_mode"); got != "HTML" {
		t.Errorf("parse_mode = %q", got)
	}
	if got := stub.lastSend.Get("chat_id"); got != "-100123" {
		t.Errorf("chat_id = %q", got)
	}
}

func TestTelegramErrorClassification(t *testing.T) {
	cases := []struct {
		name          string
		status        int
		body          string
		wantPermanent bool
	}{
		{
			"rate limited is transient",
			http.StatusTooManyRequests,
			`{"ok":false,"error_code":429,"description":"Too Many Requests: retry after 5","parameters":{"retry_after":5}}`,
			false,
		},
		{
			"server error is transient",
			http.StatusBadGateway,
			`{"ok":false,"error_code":502,"description":"Bad Gateway"}`,
			false,
		},
		{
			"bad request is permanent",
			http.StatusBadRequest,
			`{"ok":false,"error_code":400,"description":"Bad Request: chat not found"}`,
			true,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			stub := &telegramStub{sendStatus: tc.status, sendBody: tc.body}
			sender := newTelegramFixture(t, stub)

			err := sender.Send(context.Background(), "hola")
			if err == nil {
				t.Fatal("expected an error")
			}
			if got := IsPermanent(err); got != tc.wantPermanent {
				t.Errorf("IsPermanent = %v, want %v (err: %v)", got, tc.wantPermanent, err)
			}
		})
	}
}

func TestNewTelegramSenderValidates(t *testing.T) {
	if _, err := NewTelegramSender("", -1); err == nil {
		t.Error("expected an error without a token")
	}
	if _, err := NewTelegramSender("123:token", 0); err == nil {
		t.Error("expected an error without a chat id")
	}
}

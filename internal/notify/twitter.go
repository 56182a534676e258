package notify

import (
	"context"
	"errors"
	"fmt"

	"github.com/dghubble/go-twitter/twitter" //nolint:staticcheck // Using stable v1.1 API
	"github.com/dghubble/oauth1"
)

// Twitter error codes that indicate a retry can succeed.
const (
	twitterCodeRateLimit    = 88
	twitterCodeOverCapacity = 130
	twitterCodeInternal     = 131
)

// TwitterCredentials holds the OAuth1 application and user tokens.
type TwitterCredentials struct {
	APIKey       string
	APISecret    string
	AccessToken  string
	AccessSecret string
}

// TwitterSender posts match notifications as tweets. An alternative to the
// Telegram channel for operators without a bot chat.
type TwitterSender struct {
	client *twitter.Client
}

// NewTwitterSender creates a sender from OAuth1 credentials.
func NewTwitterSender(creds TwitterCredentials) (*TwitterSender, error) {
	if creds.APIKey == "" || creds.APISecret == "" || creds.AccessToken == "" || creds.AccessSecret == "" {
		return nil, fmt.Errorf("missing required Twitter credentials")
	}

	config := oauth1.NewConfig(creds.APIKey, creds.APISecret)
	token := oauth1.NewToken(creds.AccessToken, creds.AccessSecret)
	httpClient := config.Client(oauth1.NoContext, token)

	return &TwitterSender{client: twitter.NewClient(httpClient)}, nil
}

// Send posts one tweet. The Telegram-oriented HTML markup is stripped and
// tweets over the 280 limit are truncated.
func (s *TwitterSender) Send(ctx context.Context, text string) error {
	if err := ctx.Err(); err != nil {
		return Transient(err)
	}

	text = StripHTML(text)
	if len(text) > 280 {
		text = text[:277] + "..."
	}

	if _, _, err := s.client.Statuses.Update(text, nil); err != nil {
		return classifyTwitterError(err)
	}
	return nil
}

func classifyTwitterError(err error) error {
	var apiErr twitter.APIError
	if errors.As(err, &apiErr) {
		for _, detail := range apiErr.Errors {
			switch detail.Code {
			case twitterCodeRateLimit, twitterCodeOverCapacity, twitterCodeInternal:
				return Transient(err)
			}
		}
		// Duplicate status, locked account, bad auth: retrying won't help.
		return Permanent(err)
	}
	return Transient(err)
}

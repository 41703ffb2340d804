package notify

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"
)

// Notifier delivers a rendered HTML report. It only sends pre-rendered
// documents; rendering happens in the report package.
type Notifier interface {
	Send(ctx context.Context, to, subject, htmlBody string) error
}

type sesNotifier struct {
	client    *sesv2.Client
	fromEmail string
}

// NewSESNotifier creates a notifier backed by AWS SES. region is the AWS
// region hosting the verified identity, fromEmail the verified sender. The
// credential chain is the standard AWS one (env, shared config, role) and
// is never written to by this process.
func NewSESNotifier(ctx context.Context, region, fromEmail string) (Notifier, error) {
	if fromEmail == "" {
		return nil, fmt.Errorf("sender email is required")
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	return &sesNotifier{
		client:    sesv2.NewFromConfig(cfg),
		fromEmail: fromEmail,
	}, nil
}

func (n *sesNotifier) Send(ctx context.Context, to, subject, htmlBody string) error {
	input := &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(n.fromEmail),
		Destination: &types.Destination{
			ToAddresses: []string{to},
		},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{
					Data:    aws.String(subject),
					Charset: aws.String("UTF-8"),
				},
				Body: &types.Body{
					Html: &types.Content{
						Data:    aws.String(htmlBody),
						Charset: aws.String("UTF-8"),
					},
				},
			},
		},
	}

	if _, err := n.client.SendEmail(ctx, input); err != nil {
		return fmt.Errorf("failed to send email via SES: %w", err)
	}

	return nil
}

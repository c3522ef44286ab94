package cloud

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/rs/zerolog/log"

	"github.com/wattr-labs/wattr-demo/internal/domain"
)

// publisher is the part of *sns.Client the notifier uses.
type publisher interface {
	Publish(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error)
}

// SNSClient publishes demo notifications to a single topic.
type SNSClient struct {
	svc      publisher
	topicArn string
}

func NewSNSClient(ctx context.Context, region, topicArn string) (*SNSClient, error) {
	if topicArn == "" {
		return nil, fmt.Errorf("sns topic arn is empty")
	}
	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("unable to load SDK config: %w", err)
	}
	return &SNSClient{svc: sns.NewFromConfig(cfg), topicArn: topicArn}, nil
}

func (c *SNSClient) send(ctx context.Context, subject, message string) error {
	out, err := c.svc.Publish(ctx, &sns.PublishInput{
		TopicArn: aws.String(c.topicArn),
		Subject:  aws.String(subject),
		Message:  aws.String(message),
	})
	if err != nil {
		return fmt.Errorf("failed to publish to SNS: %w", err)
	}
	log.Debug().Str("message_id", aws.ToString(out.MessageId)).Str("subject", subject).Msg("sns published")
	return nil
}

// SendEnquiry forwards a contact form submission to the sales topic.
func (c *SNSClient) SendEnquiry(ctx context.Context, id string, e domain.Enquiry) error {
	company := e.Company
	if company == "" {
		company = "(not given)"
	}
	subject := fmt.Sprintf("Wattr enquiry from %s", e.Name)
	message := fmt.Sprintf(
		"New demo enquiry\n\n"+
			"Reference: %s\n"+
			"Name: %s\n"+
			"Email: %s\n"+
			"Company: %s\n\n"+
			"%s",
		id, e.Name, e.Email, company, e.Message,
	)
	return c.send(ctx, subject, message)
}

// SendOverloadAlert reports the workload crossing into overload.
func (c *SNSClient) SendOverloadAlert(ctx context.Context, workload float64, at time.Time) error {
	subject := "Wattr demo: overload condition"
	message := fmt.Sprintf(
		"Overload condition\n\n"+
			"Workload: %.0f%%\n"+
			"Time: %s\n\n"+
			"Automated load shedding recommended.",
		workload,
		at.Format(time.RFC3339),
	)
	return c.send(ctx, subject, message)
}

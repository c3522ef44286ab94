package cloud

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sns"

	"github.com/wattr-labs/wattr-demo/internal/domain"
)

type fakePublisher struct {
	inputs []*sns.PublishInput
	err    error
}

func (f *fakePublisher) Publish(_ context.Context, in *sns.PublishInput, _ ...func(*sns.Options)) (*sns.PublishOutput, error) {
	f.inputs = append(f.inputs, in)
	if f.err != nil {
		return nil, f.err
	}
	return &sns.PublishOutput{MessageId: aws.String("m-1")}, nil
}

func TestSendEnquiry(t *testing.T) {
	fp := &fakePublisher{}
	c := &SNSClient{svc: fp, topicArn: "arn:aws:sns:eu-west-2:000000000000:wattr"}

	err := c.SendEnquiry(context.Background(), "ref-1", domain.Enquiry{
		Name:    "Ada",
		Email:   "ada@example.com",
		Message: "Interested in a pilot.",
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(fp.inputs) != 1 {
		t.Fatalf("published %d messages", len(fp.inputs))
	}
	in := fp.inputs[0]
	if aws.ToString(in.TopicArn) != c.topicArn {
		t.Errorf("topic %q", aws.ToString(in.TopicArn))
	}
	msg := aws.ToString(in.Message)
	for _, want := range []string{"ref-1", "ada@example.com", "(not given)", "Interested in a pilot."} {
		if !strings.Contains(msg, want) {
			t.Errorf("message missing %q:\n%s", want, msg)
		}
	}
}

func TestSendOverloadAlert(t *testing.T) {
	fp := &fakePublisher{}
	c := &SNSClient{svc: fp, topicArn: "t"}
	at := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	if err := c.SendOverloadAlert(context.Background(), 120, at); err != nil {
		t.Fatal(err)
	}
	msg := aws.ToString(fp.inputs[0].Message)
	if !strings.Contains(msg, "120%") || !strings.Contains(msg, "2026-06-01T12:00:00Z") {
		t.Errorf("message %q", msg)
	}
}

func TestPublishErrorIsWrapped(t *testing.T) {
	boom := errors.New("throttled")
	c := &SNSClient{svc: &fakePublisher{err: boom}, topicArn: "t"}
	err := c.SendOverloadAlert(context.Background(), 101, time.Now())
	if !errors.Is(err, boom) {
		t.Fatalf("expected wrapped error, got %v", err)
	}
}

func TestNewSNSClientRequiresTopic(t *testing.T) {
	if _, err := NewSNSClient(context.Background(), "eu-west-2", ""); err == nil {
		t.Fatal("expected error for empty topic")
	}
}

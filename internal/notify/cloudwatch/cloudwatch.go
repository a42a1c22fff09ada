// Package cloudwatch appends activity records to an AWS CloudWatch Logs
// group, one stream per calendar day.
package cloudwatch

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatchlogs"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatchlogs/types"

	"expensetracker/internal/notify"
)

const streamPrefix = "expense-tracker-"

type Sink struct {
	client *cloudwatchlogs.Client
	group  string

	// streams already ensured within this invocation
	ready map[string]bool
}

// New builds the sink and creates the log group when it does not exist
// yet. An already-existing group is fine.
func New(ctx context.Context, region, group string) (*Sink, error) {
	if group == "" {
		return nil, errors.New("log group name is required")
	}
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	s := &Sink{
		client: cloudwatchlogs.NewFromConfig(cfg),
		group:  group,
		ready:  make(map[string]bool),
	}
	if err := s.ensureGroup(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Sink) ensureGroup(ctx context.Context) error {
	_, err := s.client.CreateLogGroup(ctx, &cloudwatchlogs.CreateLogGroupInput{
		LogGroupName: aws.String(s.group),
	})
	if err != nil {
		var exists *types.ResourceAlreadyExistsException
		if errors.As(err, &exists) {
			return nil
		}
		return fmt.Errorf("create log group %s: %w", s.group, err)
	}
	return nil
}

func (s *Sink) ensureStream(ctx context.Context, stream string) error {
	if s.ready[stream] {
		return nil
	}
	_, err := s.client.CreateLogStream(ctx, &cloudwatchlogs.CreateLogStreamInput{
		LogGroupName:  aws.String(s.group),
		LogStreamName: aws.String(stream),
	})
	if err != nil {
		var exists *types.ResourceAlreadyExistsException
		if !errors.As(err, &exists) {
			return fmt.Errorf("create log stream %s: %w", stream, err)
		}
	}
	s.ready[stream] = true
	return nil
}

// Notify appends one record to today's stream.
func (s *Sink) Notify(ctx context.Context, level notify.Level, message string) error {
	now := time.Now()
	stream := streamPrefix + now.Format("2006-01-02")
	if err := s.ensureStream(ctx, stream); err != nil {
		return err
	}

	line := notify.FormatRecord(level, now.Format(time.RFC3339), message)
	_, err := s.client.PutLogEvents(ctx, &cloudwatchlogs.PutLogEventsInput{
		LogGroupName:  aws.String(s.group),
		LogStreamName: aws.String(stream),
		LogEvents: []types.InputLogEvent{{
			Timestamp: aws.Int64(now.UnixMilli()),
			Message:   aws.String(line),
		}},
	})
	if err != nil {
		return fmt.Errorf("put log events: %w", err)
	}
	return nil
}

// Ping verifies the log group is visible.
func (s *Sink) Ping(ctx context.Context) error {
	_, err := s.client.DescribeLogGroups(ctx, &cloudwatchlogs.DescribeLogGroupsInput{
		LogGroupNamePrefix: aws.String(s.group),
		Limit:              aws.Int32(1),
	})
	if err != nil {
		return fmt.Errorf("describe log groups: %w", err)
	}
	return nil
}

var _ notify.Notifier = (*Sink)(nil)

package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/dmitrijs2005/growflow/internal/common"
	"github.com/dmitrijs2005/growflow/internal/logging"
	"github.com/dmitrijs2005/growflow/internal/server/config"
	"github.com/dmitrijs2005/growflow/internal/server/models"
)

// SnapshotURLValidity is how long a snapshot download link stays valid.
const SnapshotURLValidity = 15 * time.Minute

var (
	loadDefaultAWSConfig = awsconfig.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}

	newS3PresignClient = func(c *s3.Client) *s3.PresignClient {
		return s3.NewPresignClient(c)
	}

	putObject = func(c *s3.Client, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
		return c.PutObject(ctx, in, optFns...)
	}

	presignGetObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignGetObject(ctx, in, optFns...)
	}

	nowFunc = time.Now
)

// Snapshot is the stored export of a user's garden.
type Snapshot struct {
	UserID  string         `json:"userId"`
	TakenAt time.Time      `json:"takenAt"`
	Tasks   []*models.Task `json:"tasks"`
}

// SnapshotResult points at an uploaded snapshot.
type SnapshotResult struct {
	Key string `json:"key"`
	URL string `json:"url"`
}

// TaskLister is the part of TaskService a snapshot needs.
type TaskLister interface {
	List(ctx context.Context, userID string) ([]*models.Task, error)
}

// SnapshotService exports a user's tasks as JSON to S3-compatible storage.
type SnapshotService struct {
	tasks  TaskLister
	config *config.Config
	log    logging.Logger
}

func NewSnapshotService(tasks TaskLister, cfg *config.Config, log logging.Logger) *SnapshotService {
	return &SnapshotService{tasks: tasks, config: cfg, log: log}
}

// SnapshotKey returns the object key for a snapshot taken at t.
func SnapshotKey(userID string, t time.Time) string {
	return fmt.Sprintf("snapshots/%s/%04d/%02d/%02d/%v.json", userID, t.Year(), int(t.Month()), t.Day(), uuid.New())
}

func (s *SnapshotService) getClient(ctx context.Context) (*s3.Client, error) {
	cfg, err := loadDefaultAWSConfig(ctx,
		awsconfig.WithRegion(s.config.S3Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			s.config.S3RootUser,
			s.config.S3RootPassword,
			"",
		)))
	if err != nil {
		return nil, err
	}

	return newS3ClientFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(s.config.S3BaseEndpoint)
		o.UsePathStyle = true
	}), nil
}

// Create uploads the caller's current task list and returns its key with a
// short-lived download URL.
func (s *SnapshotService) Create(ctx context.Context, userID string) (*SnapshotResult, error) {
	tasks, err := s.tasks.List(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := nowFunc().UTC()
	body, err := json.Marshal(Snapshot{UserID: userID, TakenAt: now, Tasks: tasks})
	if err != nil {
		return nil, s.unavailable(ctx, "encode snapshot", err)
	}

	client, err := s.getClient(ctx)
	if err != nil {
		return nil, s.unavailable(ctx, "configure s3 client", err)
	}

	bucket := s.config.S3Bucket
	key := SnapshotKey(userID, now)

	_, err = putObject(client, ctx, &s3.PutObjectInput{
		Bucket:      &bucket,
		Key:         &key,
		Body:        bytes.NewReader(body),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return nil, s.unavailable(ctx, "upload snapshot", err)
	}

	req, err := presignGetObject(newS3PresignClient(client), ctx, &s3.GetObjectInput{
		Bucket: &bucket,
		Key:    &key,
	}, s3.WithPresignExpires(SnapshotURLValidity))
	if err != nil {
		return nil, s.unavailable(ctx, "presign snapshot", err)
	}

	s.log.Info(ctx, "garden snapshot stored", "user_id", userID, "key", key, "tasks", len(tasks))

	return &SnapshotResult{Key: key, URL: req.URL}, nil
}

func (s *SnapshotService) unavailable(ctx context.Context, op string, err error) error {
	s.log.Error(ctx, op+" failed", "error", err)
	return common.ErrorServiceUnavailable
}

package services

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"regexp"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/growflow/internal/common"
	"github.com/dmitrijs2005/growflow/internal/logging"
	"github.com/dmitrijs2005/growflow/internal/server/config"
	"github.com/dmitrijs2005/growflow/internal/server/models"
)

type fakeLister struct {
	tasks []*models.Task
	err   error
}

func (f *fakeLister) List(ctx context.Context, userID string) ([]*models.Task, error) {
	return f.tasks, f.err
}

type s3Calls struct {
	baseEndpoint string
	pathStyle    bool
	region       string
	bucket       string
	key          string
	body         []byte
	presignedKey string
	expires      time.Duration
}

// stubS3 replaces the AWS seams for the duration of the test.
func stubS3(t *testing.T, putErr, presignErr error) *s3Calls {
	t.Helper()

	origLoad, origNew, origPre, origPut, origGet, origNow :=
		loadDefaultAWSConfig, newS3ClientFromConfig, newS3PresignClient, putObject, presignGetObject, nowFunc
	t.Cleanup(func() {
		loadDefaultAWSConfig, newS3ClientFromConfig, newS3PresignClient, putObject, presignGetObject, nowFunc =
			origLoad, origNew, origPre, origPut, origGet, origNow
	})

	calls := &s3Calls{}

	loadDefaultAWSConfig = func(ctx context.Context, optFns ...func(*awsconfig.LoadOptions) error) (aws.Config, error) {
		var lo awsconfig.LoadOptions
		for _, fn := range optFns {
			require.NoError(t, fn(&lo))
		}
		calls.region = lo.Region
		return aws.Config{}, nil
	}

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		var opts s3.Options
		for _, fn := range optFns {
			fn(&opts)
		}
		calls.baseEndpoint = aws.ToString(opts.BaseEndpoint)
		calls.pathStyle = opts.UsePathStyle
		return &s3.Client{}
	}

	newS3PresignClient = func(c *s3.Client) *s3.PresignClient { return &s3.PresignClient{} }

	putObject = func(c *s3.Client, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
		if putErr != nil {
			return nil, putErr
		}
		calls.bucket = aws.ToString(in.Bucket)
		calls.key = aws.ToString(in.Key)
		b, err := io.ReadAll(in.Body)
		require.NoError(t, err)
		calls.body = b
		return &s3.PutObjectOutput{}, nil
	}

	presignGetObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		if presignErr != nil {
			return nil, presignErr
		}
		var po s3.PresignOptions
		for _, fn := range optFns {
			fn(&po)
		}
		calls.presignedKey = aws.ToString(in.Key)
		calls.expires = po.Expires
		return &v4.PresignedHTTPRequest{URL: "https://s3.example/" + aws.ToString(in.Key), Method: http.MethodGet}, nil
	}

	nowFunc = func() time.Time { return time.Date(2025, 4, 7, 10, 0, 0, 0, time.UTC) }

	return calls
}

func newSnapshotService(lister TaskLister) *SnapshotService {
	cfg := &config.Config{
		S3Region:       "us-east-1",
		S3RootUser:     "minioadmin",
		S3RootPassword: "minioadmin",
		S3BaseEndpoint: "http://127.0.0.1:9000",
		S3Bucket:       "growflow",
	}
	return NewSnapshotService(lister, cfg, logging.Nop{})
}

func TestSnapshotService_Create(t *testing.T) {
	calls := stubS3(t, nil, nil)
	lister := &fakeLister{tasks: []*models.Task{{ID: "t1", UserID: "u1", Name: "Water Roses", PlantType: "rose", GrowthStage: 2}}}

	res, err := newSnapshotService(lister).Create(context.Background(), "u1")
	require.NoError(t, err)

	assert.Regexp(t, regexp.MustCompile(`^snapshots/u1/2025/04/07/[0-9a-f-]{36}\.json$`), res.Key)
	assert.Equal(t, "https://s3.example/"+res.Key, res.URL)

	assert.Equal(t, "us-east-1", calls.region)
	assert.Equal(t, "http://127.0.0.1:9000", calls.baseEndpoint)
	assert.True(t, calls.pathStyle)
	assert.Equal(t, "growflow", calls.bucket)
	assert.Equal(t, res.Key, calls.key)
	assert.Equal(t, res.Key, calls.presignedKey)
	assert.Equal(t, SnapshotURLValidity, calls.expires)

	var snap Snapshot
	require.NoError(t, json.Unmarshal(calls.body, &snap))
	assert.Equal(t, "u1", snap.UserID)
	require.Len(t, snap.Tasks, 1)
	assert.Equal(t, 2, snap.Tasks[0].GrowthStage)
}

func TestSnapshotService_Create_Failures(t *testing.T) {
	t.Run("list error passes through", func(t *testing.T) {
		stubS3(t, nil, nil)
		_, err := newSnapshotService(&fakeLister{err: common.ErrorServiceUnavailable}).Create(context.Background(), "u1")
		assert.ErrorIs(t, err, common.ErrorServiceUnavailable)
	})

	t.Run("upload error", func(t *testing.T) {
		stubS3(t, errBoom{}, nil)
		_, err := newSnapshotService(&fakeLister{}).Create(context.Background(), "u1")
		assert.ErrorIs(t, err, common.ErrorServiceUnavailable)
	})

	t.Run("presign error", func(t *testing.T) {
		stubS3(t, nil, errBoom{})
		_, err := newSnapshotService(&fakeLister{}).Create(context.Background(), "u1")
		assert.ErrorIs(t, err, common.ErrorServiceUnavailable)
	})

	t.Run("aws config error", func(t *testing.T) {
		stubS3(t, nil, nil)
		loadDefaultAWSConfig = func(ctx context.Context, optFns ...func(*awsconfig.LoadOptions) error) (aws.Config, error) {
			return aws.Config{}, errBoom{}
		}
		_, err := newSnapshotService(&fakeLister{}).Create(context.Background(), "u1")
		assert.ErrorIs(t, err, common.ErrorServiceUnavailable)
	})
}

func TestSnapshotKey(t *testing.T) {
	k1 := SnapshotKey("u1", time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC))
	k2 := SnapshotKey("u1", time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC))

	assert.Regexp(t, `^snapshots/u1/2025/12/31/`, k1)
	assert.NotEqual(t, k1, k2)
}

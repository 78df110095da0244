package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/victorhaugaard/sugar-reset-sub002/models"
)

// S3ProfileStore keeps the remote profile copy as JSON objects in S3:
// one profile snapshot per user plus one object per mirrored check-in.
type S3ProfileStore struct {
	client *s3.Client
	bucket string
}

func NewS3ProfileStore(ctx context.Context) (*S3ProfileStore, error) {
	bucket := os.Getenv("SYNC_BUCKET")
	if bucket == "" {
		return nil, errors.New("SYNC_BUCKET not set")
	}
	region := os.Getenv("AWS_REGION")
	if region == "" {
		region = "ap-south-1"
	}
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, err
	}
	return &S3ProfileStore{client: s3.NewFromConfig(cfg), bucket: bucket}, nil
}

func (st *S3ProfileStore) profileKey(userID uint) string {
	return fmt.Sprintf("profiles/%d.json", userID)
}

func (st *S3ProfileStore) checkInKey(userID uint, date string) string {
	return fmt.Sprintf("checkins/%d/%s.json", userID, date)
}

func (st *S3ProfileStore) FetchProfile(ctx context.Context, userID uint) (*RemoteProfile, error) {
	out, err := st.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(st.bucket),
		Key:    aws.String(st.profileKey(userID)),
	})
	if err != nil {
		var noKey *types.NoSuchKey
		if errors.As(err, &noKey) {
			return nil, nil
		}
		return nil, err
	}
	defer out.Body.Close()

	raw, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, err
	}
	var profile RemoteProfile
	if err := json.Unmarshal(raw, &profile); err != nil {
		return nil, fmt.Errorf("decode remote profile: %w", err)
	}
	return &profile, nil
}

func (st *S3ProfileStore) WriteStreak(ctx context.Context, userID uint, streak models.StreakState) error {
	profile := RemoteProfile{UserID: userID, Streak: streak, UpdatedAt: time.Now()}
	raw, err := json.Marshal(profile)
	if err != nil {
		return err
	}
	return st.putJSON(ctx, st.profileKey(userID), raw)
}

func (st *S3ProfileStore) WriteCheckIn(ctx context.Context, userID uint, rec CheckInRecord) error {
	raw, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	return st.putJSON(ctx, st.checkInKey(userID, rec.Date), raw)
}

func (st *S3ProfileStore) putJSON(ctx context.Context, key string, raw []byte) error {
	_, err := st.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(st.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(raw),
		ContentType: aws.String("application/json"),
	})
	return err
}

package utils

import (
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/google/uuid"
)

// StorageManager issues presigned S3 PUT URLs. The core never uploads
// bytes itself; clients upload directly and the resulting object URL is
// stored verbatim in img/url field values.
type StorageManager struct {
	bucket    string
	endpoint  string
	urlExpiry time.Duration
	client    *s3.S3
}

func NewStorageManager(accessKey, secretKey, region, endpoint, bucket string, urlExpiry time.Duration) (*StorageManager, error) {
	sess, err := session.NewSession(&aws.Config{
		Region:      aws.String(region),
		Endpoint:    aws.String(endpoint),
		Credentials: credentials.NewStaticCredentials(accessKey, secretKey, ""),
	})
	if err != nil {
		return nil, err
	}
	return &StorageManager{
		bucket:    bucket,
		endpoint:  endpoint,
		urlExpiry: urlExpiry,
		client:    s3.New(sess),
	}, nil
}

// PresignedPutURL returns the upload URL a client PUTs the file to and the
// public URL the object will be reachable at afterwards. Object keys are
// salted with a uuid so identical file names never collide.
func (m *StorageManager) PresignedPutURL(folder, fileName, contentType string) (string, string, error) {
	key := fmt.Sprintf("%s/%s-%s", folder, uuid.New().String(), fileName)

	req, _ := m.client.PutObjectRequest(&s3.PutObjectInput{
		Bucket:      aws.String(m.bucket),
		Key:         aws.String(key),
		ContentType: aws.String(contentType),
	})
	uploadURL, err := req.Presign(m.urlExpiry)
	if err != nil {
		return "", "", fmt.Errorf("unable to presign upload: %v", err)
	}

	fileURL := fmt.Sprintf("https://%s/%s/%s", m.endpoint, m.bucket, key)
	return uploadURL, fileURL, nil
}

package imagewriter

import (
	"bytes"
	"context"
	"mime"
	"time"

	errorsmod "cosmossdk.io/errors"
	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/request"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// UploadTimeout bounds a single object upload
const UploadTimeout = 30 * time.Second

// ObjectPutter is the part of the S3 client used to publish images
type ObjectPutter interface {
	PutObjectWithContext(ctx aws.Context, input *s3.PutObjectInput, opts ...request.Option) (*s3.PutObjectOutput, error)
}

// Publisher uploads encoded images to an S3 bucket
type Publisher struct {
	client ObjectPutter
	bucket string
	prefix string
	logger core.Logger
}

// NewS3Client creates an S3 client using the default credential chain
// (environment, shared config). endpoint is optional and enables path-style addressing.
func NewS3Client(region, endpoint string) (*s3.S3, error) {
	cfg := &aws.Config{Region: aws.String(region)}
	if endpoint != "" {
		cfg.Endpoint = aws.String(endpoint)
		cfg.S3ForcePathStyle = aws.Bool(true)
	}
	sess, err := session.NewSession(cfg)
	if err != nil {
		return nil, errorsmod.Wrapf(core.ErrImageOutput, "create S3 session: %v", err)
	}
	return s3.New(sess), nil
}

// NewPublisher creates a publisher writing objects under prefix in bucket
func NewPublisher(client ObjectPutter, bucket, prefix string, logger core.Logger) *Publisher {
	if logger == nil {
		logger = core.NopLogger{}
	}
	return &Publisher{client: client, bucket: bucket, prefix: prefix, logger: logger}
}

// ObjectKey returns the full key an image named key is stored under
func (p *Publisher) ObjectKey(key string) string {
	return p.prefix + key
}

// Publish uploads data as <prefix><key>
func (p *Publisher) Publish(ctx context.Context, key, format string, data []byte) error {
	ctx, cancel := context.WithTimeout(ctx, UploadTimeout)
	defer cancel()

	contentType := mime.TypeByExtension("." + format)
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	objectKey := p.ObjectKey(key)
	_, err := p.client.PutObjectWithContext(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(p.bucket),
		Key:           aws.String(objectKey),
		Body:          bytes.NewReader(data),
		ContentLength: aws.Int64(int64(len(data))),
		ContentType:   aws.String(contentType),
	})
	if err != nil {
		return errorsmod.Wrapf(core.ErrImageOutput, "upload %s: %v", objectKey, err)
	}

	p.logger.Printf("Uploaded s3://%s/%s (%d bytes)\n", p.bucket, objectKey, len(data))
	return nil
}

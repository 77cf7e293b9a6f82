// Package storage guarda los XML/ZIP originales en un almacenamiento S3 compatible
// (AWS S3, MinIO, Cloudflare R2).
package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/contaperu/contaperu-api/internal/application/ports"
	"github.com/contaperu/contaperu-api/pkg/config"
	"github.com/contaperu/contaperu-api/pkg/logger"
)

var _ ports.ObjectStorage = (*S3Storage)(nil)

// s3API subconjunto del cliente S3 usado aquí (sustituible en tests).
type s3API interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	ListObjectsV2(ctx context.Context, in *s3.ListObjectsV2Input, optFns ...func(*s3.Options)) (*s3.ListObjectsV2Output, error)
}

// S3Storage implementa ports.ObjectStorage con aws-sdk-go-v2.
type S3Storage struct {
	client s3API
	bucket string
	log    *logger.Logger
}

// NewS3Storage construye el cliente desde la configuración. Sin endpoint se usa AWS.
func NewS3Storage(ctx context.Context, cfg config.StorageConfig, log *logger.Logger) (*S3Storage, error) {
	if cfg.Bucket == "" {
		return nil, errors.New("storage: bucket requerido")
	}
	region := cfg.Region
	if region == "" {
		region = "us-east-1"
	}

	opts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(region)}
	if cfg.AccessKey != "" && cfg.SecretKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("storage: configuración AWS: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.UsePathStyle = cfg.PathStyle
		if cfg.Endpoint != "" {
			endpoint := cfg.Endpoint
			if !strings.HasPrefix(endpoint, "http://") && !strings.HasPrefix(endpoint, "https://") {
				endpoint = "https://" + endpoint
			}
			o.BaseEndpoint = aws.String(endpoint)
		}
	})
	return newS3Storage(client, cfg.Bucket, log), nil
}

func newS3Storage(client s3API, bucket string, log *logger.Logger) *S3Storage {
	return &S3Storage{client: client, bucket: bucket, log: logger.OrNop(log).Component("storage")}
}

// Put sube el objeto.
func (s *S3Storage) Put(ctx context.Context, key string, data []byte, contentType string) error {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(int64(len(data))),
	})
	if err != nil {
		return fmt.Errorf("storage: subir %s: %w", key, err)
	}
	s.log.Debug().Str("key", key).Int("bytes", len(data)).Msg("objeto almacenado")
	return nil
}

// Usage recorre el prefijo con paginación y suma tamaños.
func (s *S3Storage) Usage(ctx context.Context, prefix string) (int64, int, error) {
	var total int64
	var count int
	p := s3.NewListObjectsV2Paginator(s.client, &s3.ListObjectsV2Input{
		Bucket: aws.String(s.bucket),
		Prefix: aws.String(prefix),
	})
	for p.HasMorePages() {
		page, err := p.NextPage(ctx)
		if err != nil {
			return 0, 0, fmt.Errorf("storage: listar %s: %w", prefix, err)
		}
		for _, obj := range page.Contents {
			total += aws.ToInt64(obj.Size)
			count++
		}
	}
	return total, count, nil
}

// ObjectKey clave de archivo para un comprobante: {empresa}/{periodo}/{ruc}-{tipo}-{serie}-{numero}.xml
func ObjectKey(companyID, period, emitterRUC, docType, documentNumber string) string {
	return fmt.Sprintf("%s/%s/%s-%s-%s.xml", companyID, period, emitterRUC, docType, documentNumber)
}

package storage

import (
	"context"
	"fmt"
	"io"
	"path"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/anri-dev/reservation-api/internal/config"
)

// LetterStore guarda as cartas de solicitação (surat permohonan) em storage
// compatível com S3.
type LetterStore struct {
	client *s3.Client
	bucket string
}

// NewLetterStore retorna nil quando o bucket não está configurado; o upload
// de cartas fica desabilitado.
func NewLetterStore(cfg *config.Config) *LetterStore {
	if cfg.S3Bucket == "" || cfg.S3AccessKey == "" {
		return nil
	}

	opts := s3.Options{
		Region: cfg.S3Region,
		Credentials: credentials.NewStaticCredentialsProvider(
			cfg.S3AccessKey,
			cfg.S3SecretKey,
			"",
		),
		UsePathStyle: true,
	}
	if cfg.S3Endpoint != "" {
		opts.BaseEndpoint = aws.String(cfg.S3Endpoint)
	}

	return &LetterStore{
		client: s3.New(opts),
		bucket: cfg.S3Bucket,
	}
}

func (s *LetterStore) Put(
	ctx context.Context,
	key string,
	contentType string,
	body io.Reader,
) error {

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
	})
	return err
}

// LetterKey monta a chave do objeto a partir da referência da reserva.
func LetterKey(reference, filename string) string {
	return fmt.Sprintf("letters/%s/%s", reference, path.Base(filename))
}

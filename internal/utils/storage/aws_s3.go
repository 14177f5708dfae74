package storage

import (
	"My-Tax-Tracker/internal/utils"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/gofiber/fiber/v2/log"
)

// AllowReceipt lists the content types accepted for receipt uploads.
var AllowReceipt = []string{
	"image/jpeg",
	"image/png",
	"image/gif",
	"image/webp",
	"application/pdf",
}

type (
	AwsS3 interface {
		UploadFile(ctx context.Context, objectKey string, file *multipart.FileHeader, allowedTypes ...string) error
		GetFile(ctx context.Context, objectKey string) ([]byte, error)
		DeleteFile(ctx context.Context, objectKey string) error
		BucketName() string
	}

	awsS3 struct {
		client     *s3.Client
		bucketName string
	}
)

func NewAwsS3() AwsS3 {
	cfg, err := awsconfig.LoadDefaultConfig(
		context.Background(),
		awsconfig.WithRegion(utils.GetConfig("AWS_REGION")),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			utils.GetConfig("AWS_ACCESS_KEY"),
			utils.GetConfig("AWS_SECRET_KEY"),
			"",
		)),
	)
	if err != nil {
		log.Fatalf("error loading AWS configuration: %v", err)
	}

	return &awsS3{
		client:     s3.NewFromConfig(cfg),
		bucketName: utils.GetConfig("AWS_S3_BUCKET"),
	}
}

func (a *awsS3) BucketName() string {
	return a.bucketName
}

func (a *awsS3) UploadFile(ctx context.Context, objectKey string, file *multipart.FileHeader, allowedTypes ...string) error {
	contentType := detectContentType(file)
	if len(allowedTypes) > 0 && !typeAllowed(contentType, allowedTypes) {
		return fmt.Errorf("content type %s not allowed", contentType)
	}

	src, err := file.Open()
	if err != nil {
		return err
	}
	defer src.Close()

	_, err = a.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(a.bucketName),
		Key:         aws.String(objectKey),
		Body:        src,
		ContentType: aws.String(contentType),
	})
	return err
}

func (a *awsS3) GetFile(ctx context.Context, objectKey string) ([]byte, error) {
	out, err := a.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(a.bucketName),
		Key:    aws.String(objectKey),
	})
	if err != nil {
		return nil, err
	}
	defer out.Body.Close()
	return io.ReadAll(out.Body)
}

func (a *awsS3) DeleteFile(ctx context.Context, objectKey string) error {
	_, err := a.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(a.bucketName),
		Key:    aws.String(objectKey),
	})
	return err
}

func detectContentType(file *multipart.FileHeader) string {
	if contentType := file.Header.Get("Content-Type"); contentType != "" {
		return contentType
	}
	switch strings.ToLower(filepath.Ext(file.Filename)) {
	case ".png":
		return "image/png"
	case ".gif":
		return "image/gif"
	case ".webp":
		return "image/webp"
	case ".pdf":
		return "application/pdf"
	default:
		return "image/jpeg"
	}
}

func typeAllowed(contentType string, allowed []string) bool {
	for _, t := range allowed {
		if contentType == t {
			return true
		}
	}
	return false
}

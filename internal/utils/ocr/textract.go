package ocr

import (
	"My-Tax-Tracker/internal/utils"
	"My-Tax-Tracker/pkg/extraction"
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/textract"
	"github.com/aws/aws-sdk-go-v2/service/textract/types"
	"github.com/gofiber/fiber/v2/log"
)

type (
	// ExpenseExtractor runs the managed document-analysis service over an
	// already uploaded receipt object and returns its flattened summary
	// fields.
	ExpenseExtractor interface {
		AnalyzeReceipt(ctx context.Context, objectKey string) (map[string]string, error)
	}

	textractExtractor struct {
		client     *textract.Client
		bucketName string
	}
)

// NewTextractExtractor analyzes objects in the given bucket, which must
// be the same bucket the storage wrapper uploads to.
func NewTextractExtractor(bucketName string) ExpenseExtractor {
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

	return &textractExtractor{
		client:     textract.NewFromConfig(cfg),
		bucketName: bucketName,
	}
}

func (t *textractExtractor) AnalyzeReceipt(ctx context.Context, objectKey string) (map[string]string, error) {
	out, err := t.client.AnalyzeExpense(ctx, analyzeExpenseInput(t.bucketName, objectKey))
	if err != nil {
		return nil, err
	}
	return extraction.ParseExpenseFields(out.ExpenseDocuments), nil
}

func analyzeExpenseInput(bucket, objectKey string) *textract.AnalyzeExpenseInput {
	return &textract.AnalyzeExpenseInput{
		Document: &types.Document{
			S3Object: &types.S3Object{
				Bucket: aws.String(bucket),
				Name:   aws.String(objectKey),
			},
		},
	}
}

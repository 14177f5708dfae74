package extraction

import (
	"github.com/aws/aws-sdk-go-v2/service/textract/types"
)

// ParseExpenseFields flattens the summary fields of an AnalyzeExpense
// response into a label -> text map. Fields with an empty label or value
// are dropped; a repeated label overwrites the earlier one.
func ParseExpenseFields(documents []types.ExpenseDocument) map[string]string {
	fields := make(map[string]string)
	for _, doc := range documents {
		for _, field := range doc.SummaryFields {
			label := detectionText(field.LabelDetection)
			value := detectionText(field.ValueDetection)
			if label != "" && value != "" {
				fields[label] = value
			}
		}
	}
	return fields
}

func detectionText(detection *types.ExpenseDetection) string {
	if detection == nil || detection.Text == nil {
		return ""
	}
	return *detection.Text
}

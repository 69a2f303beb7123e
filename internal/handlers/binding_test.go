package handlers

import (
	"bytes"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestBindNestedOrFlat(t *testing.T) {
	tests := []struct {
		name        string
		key         string
		body        string
		expected    CreateTuitionRequest
		expectError bool
	}{
		{
			name:     "nested",
			key:      "tuition",
			body:     `{"tuition": {"student_no": "S1", "term": "2024-1", "amount": 1000}}`,
			expected: CreateTuitionRequest{StudentNo: "S1", Term: "2024-1", Amount: decimal.NewFromInt(1000)},
		},
		{
			name:     "flat",
			key:      "tuition",
			body:     `{"student_no": "S2", "term": "2024-2", "amount": "250.75", "student_name": "Ana"}`,
			expected: CreateTuitionRequest{StudentNo: "S2", Term: "2024-2", Amount: decimal.RequireFromString("250.75"), StudentName: "Ana"},
		},
		{
			name:     "other key falls back to flat",
			key:      "tuition",
			body:     `{"payment": {"student_no": "X"}, "student_no": "S3", "term": "2024-1"}`,
			expected: CreateTuitionRequest{StudentNo: "S3", Term: "2024-1"},
		},
		{
			name:        "invalid amount",
			key:         "tuition",
			body:        `{"student_no": "S4", "amount": "ten"}`,
			expectError: true,
		},
		{
			name:        "nested invalid content",
			key:         "tuition",
			body:        `{"tuition": {"student_no": 12}}`,
			expectError: true,
		},
		{
			name:        "nested key is not an object",
			key:         "tuition",
			body:        `{"tuition": "S1"}`,
			expectError: true,
		},
		{
			name:        "empty body",
			key:         "tuition",
			body:        ``,
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := gin.CreateTestContext(httptest.NewRecorder())
			c.Request = httptest.NewRequest("POST", "/", bytes.NewBufferString(tt.body))
			c.Request.Header.Set("Content-Type", "application/json")

			var result CreateTuitionRequest
			err := BindNestedOrFlat(c, tt.key, &result)

			if tt.expectError {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.expected.StudentNo, result.StudentNo)
			assert.Equal(t, tt.expected.Term, result.Term)
			assert.Equal(t, tt.expected.StudentName, result.StudentName)
			assert.True(t, tt.expected.Amount.Equal(result.Amount), "amount %s", result.Amount)
		})
	}
}

package report_test

import (
	"testing"

	"transparency/internal/report"

	"github.com/stretchr/testify/assert"
)

func TestCalculateStatus(t *testing.T) {
	tests := []struct {
		name          string
		hasRemittance bool
		totalStudents int
		paidStudents  int
		want          report.RemitStatus
	}{
		{
			name:          "no remittance record",
			hasRemittance: false,
			totalStudents: 5,
			paidStudents:  5,
			want:          report.StatusNotRemitted,
		},
		{
			name:          "no remittance and nobody paid",
			hasRemittance: false,
			totalStudents: 5,
			paidStudents:  0,
			want:          report.StatusNotRemitted,
		},
		{
			name:          "all students paid",
			hasRemittance: true,
			totalStudents: 5,
			paidStudents:  5,
			want:          report.StatusCompleted,
		},
		{
			name:          "three of five paid",
			hasRemittance: true,
			totalStudents: 5,
			paidStudents:  3,
			want:          report.StatusPartial,
		},
		{
			name:          "remittance but nobody paid",
			hasRemittance: true,
			totalStudents: 5,
			paidStudents:  0,
			want:          report.StatusPartial,
		},
		{
			name:          "empty roster with remittance",
			hasRemittance: true,
			totalStudents: 0,
			paidStudents:  0,
			want:          report.StatusCompleted,
		},
		{
			name:          "paid count exceeds roster",
			hasRemittance: true,
			totalStudents: 4,
			paidStudents:  6,
			want:          report.StatusCompleted,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := report.CalculateStatus(tt.hasRemittance, tt.totalStudents, tt.paidStudents)
			assert.Equal(t, tt.want, got)
		})
	}
}

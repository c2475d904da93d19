package repository

import (
	"github.com/dorjilhenduptenzin2892-jpg/Bank-of-Bhutan-Reporting-sub000/internal/domain/entity"
)

type ExportRepository interface {
	ExportKPIsToCSV(kpis []entity.BucketKPI, comparisons []entity.ComparisonResult, filename, outputDir string) (string, error)
	ExportKPIsToJSON(kpis []entity.BucketKPI, comparisons []entity.ComparisonResult, filename, outputDir string) (string, error)
	ExportKPIsToPDF(kpis []entity.BucketKPI, comparisons []entity.ComparisonResult, summary, filename, outputDir string) (string, error)

	// Analytics (visão transversal)
	ExportAnalyticsToCSV(result entity.AnalyticsResult, filename, outputDir string) (string, error)
	ExportAnalyticsToJSON(result entity.AnalyticsResult, filename, outputDir string) (string, error)
	ExportAnalyticsToPDF(result entity.AnalyticsResult, filename, outputDir string) (string, error)
}

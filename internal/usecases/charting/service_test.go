package charting

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/sales-insights/internal/domain"
	"gonum.org/v1/plot/vg"
)

func newTestService(t *testing.T, format string) *Service {
	return NewServiceWithOptions(Options{
		OutputDir: filepath.Join(t.TempDir(), "charts"),
		Format:    format,
		TopN:      2,
		Width:     4 * vg.Inch,
		Height:    3 * vg.Inch,
	})
}

func rankedProducts() []domain.RankedProduct {
	return []domain.RankedProduct{
		{Position: 1, ProductAggregate: domain.ProductAggregate{Product: "Classic Cars", Revenue: decimal.NewFromInt(3000)}},
		{Position: 2, ProductAggregate: domain.ProductAggregate{Product: "Motorcycles", Revenue: decimal.NewFromInt(2000)}},
		{Position: 3, ProductAggregate: domain.ProductAggregate{Product: "Trains", Revenue: decimal.NewFromInt(500)}},
	}
}

func TestService_RenderTopProducts(t *testing.T) {
	for _, format := range []string{"png", "svg"} {
		t.Run(format, func(t *testing.T) {
			svc := newTestService(t, format)

			path, err := svc.RenderTopProducts(rankedProducts())
			require.NoError(t, err)

			assert.Equal(t, "top_products."+format, filepath.Base(path))
			info, err := os.Stat(path)
			require.NoError(t, err)
			assert.Greater(t, info.Size(), int64(0))
		})
	}
}

func TestService_RenderMonthlyTrend(t *testing.T) {
	svc := newTestService(t, "png")

	path, err := svc.RenderMonthlyTrend([]domain.MonthlyAggregate{
		{Period: "2024-01", Revenue: decimal.NewFromInt(25)},
		{Period: "2024-02", Revenue: decimal.NewFromInt(10)},
	})
	require.NoError(t, err)

	assert.Equal(t, "monthly_trend.png", filepath.Base(path))
	_, err = os.Stat(path)
	assert.NoError(t, err)
}

func TestService_RenderMonthlyTrend_SingleMonth(t *testing.T) {
	svc := newTestService(t, "png")

	_, err := svc.RenderMonthlyTrend([]domain.MonthlyAggregate{
		{Period: "2024-01", Revenue: decimal.NewFromInt(25)},
	})
	assert.NoError(t, err)
}

func TestService_EmptyCollectionsFail(t *testing.T) {
	svc := newTestService(t, "png")

	path, err := svc.RenderTopProducts(nil)
	assert.Empty(t, path)
	var renderErr *domain.RenderError
	require.True(t, errors.As(err, &renderErr))
	assert.Equal(t, TopProductsChart, renderErr.Chart)
	assert.True(t, errors.Is(err, domain.ErrNothingToPlot))

	path, err = svc.RenderMonthlyTrend([]domain.MonthlyAggregate{})
	assert.Empty(t, path)
	require.True(t, errors.As(err, &renderErr))
	assert.Equal(t, MonthlyTrendChart, renderErr.Chart)
	assert.True(t, errors.Is(err, domain.ErrNothingToPlot))
}

func TestService_UnwritableOutput(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))

	svc := NewServiceWithOptions(Options{OutputDir: filepath.Join(blocker, "charts"), Format: "png"})

	_, err := svc.RenderTopProducts(rankedProducts())
	assert.True(t, errors.Is(err, domain.ErrChartWrite))
}

func TestShorten(t *testing.T) {
	assert.Equal(t, "Trains", shorten("Trains"))
	assert.Equal(t, 24, len([]rune(shorten("A very long product line name that keeps going"))))
}

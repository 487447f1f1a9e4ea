package operations

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"glreport/internal/benford"
	"glreport/internal/dataprocessing"
	apperrors "glreport/internal/errors"
	"glreport/internal/files"
	"glreport/internal/shared/testutil"
	"glreport/pkg/contracts/domain"
)

func TestSteps_RunInSequence(t *testing.T) {
	dir := t.TempDir()
	path := testutil.WriteCSV(t, dir, "je.csv", []string{"Amount", "Source"}, [][]string{
		{"120", " Manual "},
		{"35", "Auto"},
	})
	ctx := context.Background()
	state := NewFileState(files.FileInfo{Path: path, Name: "je.csv"})

	require.NoError(t, NewLoadStep(dataprocessing.NewLoader(nil)).Execute(ctx, state))
	require.Equal(t, 2, state.RowCount())
	assert.Equal(t, " Manual ", state.Dataset.Records[0].Get("Source").Text)

	require.NoError(t, CleanStep{}.Execute(ctx, state))
	assert.Equal(t, "Manual", state.Dataset.Records[0].Get("Source").Text)

	require.NoError(t, NewAggregateStep(dataprocessing.NewAggregator(nil)).Execute(ctx, state))
	assert.True(t, state.Summary.TotalAmount.Equal(decimal.NewFromInt(155)))
	require.Len(t, state.Categories, 1)

	require.NoError(t, NewBenfordStep(benford.NewAnalyzer(nil, dir, nil)).Execute(ctx, state))
	assert.Equal(t, domain.BenfordAnalyzed, state.Benford.Status)
	assert.Equal(t, 2, state.Benford.SampleSize)
	assert.Empty(t, state.Benford.ChartFile)
}

func TestLoadStep_MissingFile(t *testing.T) {
	state := NewFileState(files.FileInfo{Path: "does/not/exist.xlsx", Name: "exist.xlsx"})

	err := NewLoadStep(dataprocessing.NewLoader(nil)).Execute(context.Background(), state)

	require.Error(t, err)
	assert.True(t, apperrors.IsLoadError(err))
	assert.Nil(t, state.Dataset)
}

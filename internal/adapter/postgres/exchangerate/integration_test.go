package exchangerate_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/vacancy-normalizer/internal/adapter/postgres/exchangerate"
	"github.com/heartmarshall/vacancy-normalizer/internal/adapter/postgres/testhelper"
	"github.com/heartmarshall/vacancy-normalizer/internal/domain"
)

func TestRepo_Integration_SaveAndLoad(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	repo := exchangerate.New(pool)
	ctx := context.Background()
	day := time.Date(2023, 1, 9, 0, 0, 0, 0, time.UTC)

	n, err := repo.Save(ctx, domain.NewRateTable(day, []domain.ExchangeRate{
		{Currency: "USD", Rate: testhelper.Rate("11350.25")},
		{Currency: "RUB", Rate: testhelper.Rate("163.8")},
	}))
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)

	// Upsert replaces an existing day.
	_, err = repo.Save(ctx, domain.NewRateTable(day, []domain.ExchangeRate{
		{Currency: "USD", Rate: testhelper.Rate("11400")},
	}))
	require.NoError(t, err)

	got, err := repo.RatesForDate(ctx, day.Add(20*time.Hour))
	require.NoError(t, err)
	usd, ok := got.Rate("USD")
	require.True(t, ok)
	assert.True(t, usd.Equal(testhelper.Rate("11400")), "USD = %s", usd)
	rub, ok := got.Rate("RUB")
	require.True(t, ok)
	assert.True(t, rub.Equal(testhelper.Rate("163.8")), "RUB = %s", rub)

	_, err = repo.RatesForDate(ctx, day.AddDate(0, 0, 1))
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

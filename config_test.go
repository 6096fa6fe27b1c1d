package hugecache

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFillDefaultsLeavesExplicitValuesAlone(t *testing.T) {
	cfg := Config{CoarseEpochs: 32}
	cfg.fillDefaults()

	require.EqualValues(t, 32, cfg.CoarseEpochs)
	require.Equal(t, DetailedEpochs, cfg.DetailedEpochs)
	require.EqualValues(t, MinCacheLimit, cfg.MinCacheLimit)
}

func TestValidateRejectsNonPositiveEpochs(t *testing.T) {
	cfg := DefaultConfig()
	cfg.DetailedEpochs = 0

	require.Error(t, cfg.validate())
}

func TestValidateRejectsNonPowerOfTwoCoarseEpochs(t *testing.T) {
	cfg := DefaultConfig()
	cfg.CoarseEpochs = 15

	require.Error(t, cfg.validate())
}

func TestValidateRejectsOutOfRangeFraction(t *testing.T) {
	cfg := DefaultConfig()
	cfg.FractionToReleaseFromCache = 1.5

	require.Error(t, cfg.validate())
}

func TestValidateAcceptsDefaults(t *testing.T) {
	require.NoError(t, DefaultConfig().validate())
}

package server

import (
	"github.com/sportsx/sportsx-server/pkg/config"
	"github.com/sportsx/sportsx-server/pkg/config/env"
	"github.com/sportsx/sportsx-server/pkg/config/memory"
	"github.com/sportsx/sportsx-server/pkg/config/wrapper"
)

const (
	envConfigPrefix = "TICKETING_SERVICE_"

	StripedLockParallelizationConfigEnvName = envConfigPrefix + "STRIPED_LOCK_PARALLELIZATION"
	defaultStripedLockParallelization       = 64

	NonceFilterSizeConfigEnvName = envConfigPrefix + "NONCE_FILTER_SIZE"
	defaultNonceFilterSize       = 1_000_000

	NonceFilterFalsePositiveRateConfigEnvName = envConfigPrefix + "NONCE_FILTER_FALSE_POSITIVE_RATE"
	defaultNonceFilterFalsePositiveRate       = 0.01
)

type conf struct {
	stripedLockParallelization   config.Uint64
	nonceFilterSize              config.Uint64
	nonceFilterFalsePositiveRate config.Float64
}

// ConfigProvider defines how config values are pulled
type ConfigProvider func() *conf

// WithEnvConfigs returns configuration pulled from environment variables
func WithEnvConfigs() ConfigProvider {
	return func() *conf {
		return &conf{
			stripedLockParallelization:   env.NewUint64Config(StripedLockParallelizationConfigEnvName, defaultStripedLockParallelization),
			nonceFilterSize:              env.NewUint64Config(NonceFilterSizeConfigEnvName, defaultNonceFilterSize),
			nonceFilterFalsePositiveRate: env.NewFloat64Config(NonceFilterFalsePositiveRateConfigEnvName, defaultNonceFilterFalsePositiveRate),
		}
	}
}

type testOverrides struct {
}

func withManualTestOverrides(overrides *testOverrides) ConfigProvider {
	return func() *conf {
		return &conf{
			stripedLockParallelization:   wrapper.NewUint64Config(memory.NewConfig(uint64(defaultStripedLockParallelization)), defaultStripedLockParallelization),
			nonceFilterSize:              wrapper.NewUint64Config(memory.NewConfig(uint64(defaultNonceFilterSize)), defaultNonceFilterSize),
			nonceFilterFalsePositiveRate: wrapper.NewFloat64Config(memory.NewConfig(defaultNonceFilterFalsePositiveRate), defaultNonceFilterFalsePositiveRate),
		}
	}
}

package pof

import (
	"time"

	"github.com/sportsx/sportsx-server/pkg/config"
	"github.com/sportsx/sportsx-server/pkg/config/env"
	"github.com/sportsx/sportsx-server/pkg/config/memory"
	"github.com/sportsx/sportsx-server/pkg/config/wrapper"
)

const (
	envConfigPrefix = "POF_SERVICE_"

	DailyCheckinIntervalConfigEnvName = envConfigPrefix + "DAILY_CHECKIN_INTERVAL"
	defaultDailyCheckinInterval       = 24 * time.Hour

	StripedLockParallelizationConfigEnvName = envConfigPrefix + "STRIPED_LOCK_PARALLELIZATION"
	defaultStripedLockParallelization       = 64
)

type conf struct {
	dailyCheckinInterval       config.Duration
	stripedLockParallelization config.Uint64
}

// ConfigProvider defines how config values are pulled
type ConfigProvider func() *conf

// WithEnvConfigs returns configuration pulled from environment variables
func WithEnvConfigs() ConfigProvider {
	return func() *conf {
		return &conf{
			dailyCheckinInterval:       env.NewDurationConfig(DailyCheckinIntervalConfigEnvName, defaultDailyCheckinInterval),
			stripedLockParallelization: env.NewUint64Config(StripedLockParallelizationConfigEnvName, defaultStripedLockParallelization),
		}
	}
}

type testOverrides struct {
	dailyCheckinInterval time.Duration
}

func withManualTestOverrides(overrides *testOverrides) ConfigProvider {
	return func() *conf {
		dailyCheckinInterval := defaultDailyCheckinInterval
		if overrides.dailyCheckinInterval > 0 {
			dailyCheckinInterval = overrides.dailyCheckinInterval
		}

		return &conf{
			dailyCheckinInterval:       wrapper.NewDurationConfig(memory.NewConfig(dailyCheckinInterval), defaultDailyCheckinInterval),
			stripedLockParallelization: wrapper.NewUint64Config(memory.NewConfig(uint64(defaultStripedLockParallelization)), defaultStripedLockParallelization),
		}
	}
}

package wasmstore

import (
	"go.uber.org/zap"

	"github.com/tetratelabs/wasmstore/internal/logging"
	"github.com/tetratelabs/wasmstore/internal/wasm"
)

// TableGrowthPolicy decides what api.Table Grow does. See RuntimeConfig.WithTableGrowth
type TableGrowthPolicy = wasm.TableGrowthPolicy

const (
	// TableGrowthUnsupported makes api.Table Grow fail without changing the table. This is the default.
	TableGrowthUnsupported = wasm.TableGrowthUnsupported
	// TableGrowthBounded lets api.Table Grow extend the table with null references, up to its max.
	TableGrowthBounded = wasm.TableGrowthBounded
)

// RuntimeConfig controls runtime behavior, with the default implementation as NewRuntimeConfig
type RuntimeConfig struct {
	tableGrowth    TableGrowthPolicy
	memoryMaxPages uint32
	logger         *zap.Logger
}

// defaultConfig is the zero-knob configuration. logger stays nil so the process default is read late.
var defaultConfig = &RuntimeConfig{
	tableGrowth:    TableGrowthUnsupported,
	memoryMaxPages: wasm.MemoryLimitPages,
}

// clone ensures all fields are copied even if nil.
func (c *RuntimeConfig) clone() *RuntimeConfig {
	return &RuntimeConfig{
		tableGrowth:    c.tableGrowth,
		memoryMaxPages: c.memoryMaxPages,
		logger:         c.logger,
	}
}

// NewRuntimeConfig returns the default configuration. Each WithXXX method returns a modified copy, so a config can be
// shared and specialized safely.
func NewRuntimeConfig() *RuntimeConfig {
	return defaultConfig.clone()
}

// WithTableGrowth sets the policy of every table allocated by instances of the runtime. Defaults to
// TableGrowthUnsupported.
//
// Note: Clones keep the policy of the instance they were cloned from.
func (c *RuntimeConfig) WithTableGrowth(policy TableGrowthPolicy) *RuntimeConfig {
	ret := c.clone()
	ret.tableGrowth = policy
	return ret
}

// WithMemoryMaxPages reduces the maximum number of pages a memory can define from 65536 pages (4GiB) to a lower value.
//
// Notes:
// * Runtime.NewMemory fails when max is larger than this amount.
// * Values above 65536 are ignored.
func (c *RuntimeConfig) WithMemoryMaxPages(memoryMaxPages uint32) *RuntimeConfig {
	if memoryMaxPages > wasm.MemoryLimitPages {
		memoryMaxPages = wasm.MemoryLimitPages
	}
	ret := c.clone()
	ret.memoryMaxPages = memoryMaxPages
	return ret
}

// WithLogger sets the logger of instances created by the runtime. Defaults to logging.Logger when nil.
func (c *RuntimeConfig) WithLogger(logger *zap.Logger) *RuntimeConfig {
	ret := c.clone()
	ret.logger = logger
	return ret
}

// loggerOrDefault resolves the logger at runtime creation, so SetLogger before NewRuntime takes effect.
func (c *RuntimeConfig) loggerOrDefault() *zap.Logger {
	return logging.OrDefault(c.logger)
}

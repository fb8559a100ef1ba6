// SPDX-License-Identifier: MIT
package treeindex

import (
	"runtime"

	"github.com/sirupsen/logrus"
)

type (
	// Config defines configuration options for the [BuildSource] & [Index]'s operations.
	Config struct {
		// Logger for [Index] messages.
		//
		// Preferring a public field to allow for sharing.
		Logger logrus.FieldLogger
		Debug  bool

		// AncestorCacheSize is the number of ancestor chains kept by [Index.AllParents], 0
		// disables the cache.
		AncestorCacheSize int

		// PoolSize bounds the goroutines used by [Index.Validate].
		PoolSize int
	}
)

// DefConfig obtains the package's [Index] default options.
func DefConfig() *Config {
	return &Config{
		Logger:   logrus.New(),
		Debug:    false,
		PoolSize: runtime.GOMAXPROCS(0),
	}
}

// Validate populates missing Config entries with defaults.
func (c *Config) Validate() {
	if c.Logger == nil {
		c.Logger = logrus.New()
	}
	if c.PoolSize < 1 {
		c.PoolSize = runtime.GOMAXPROCS(0)
	}
	if c.AncestorCacheSize < 0 {
		c.AncestorCacheSize = 0
	}
}

/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package lookup reads typed values from a chain of config backends. The
// first backend holding a key wins.
package lookup

import (
	"time"

	"github.com/ibm-blockchain/ibc-go/pkg/common/providers/core"
	"github.com/ibm-blockchain/ibc-go/pkg/util/pathvar"
	"github.com/mitchellh/mapstructure"
	"github.com/spf13/cast"
)

// ConfigLookup resolves keys against its backends in order
type ConfigLookup struct {
	backends []core.ConfigBackend
}

// New returns a lookup over the given backends. Nil backends are skipped.
func New(coreBackends ...core.ConfigBackend) *ConfigLookup {
	return &ConfigLookup{backends: coreBackends}
}

// Lookup returns the value of key from the first backend that has it
func (c *ConfigLookup) Lookup(key string) (interface{}, bool) {
	for _, backend := range c.backends {
		if backend == nil {
			continue
		}
		if val, ok := backend.Lookup(key); ok {
			return val, true
		}
	}
	return nil, false
}

// GetString returns the string value of key, empty if unset
func (c *ConfigLookup) GetString(key string) string {
	return c.GetStringOrDefault(key, "")
}

// GetStringOrDefault returns the string value of key, or def if unset or empty
func (c *ConfigLookup) GetStringOrDefault(key string, def string) string {
	value, ok := c.Lookup(key)
	if !ok {
		return def
	}
	if s := cast.ToString(value); s != "" {
		return s
	}
	return def
}

// GetPath returns the file system path configured under key with its
// ${VAR} references expanded, or def if unset
func (c *ConfigLookup) GetPath(key string, def string) string {
	return pathvar.Subst(c.GetStringOrDefault(key, def))
}

// GetDuration returns the duration of key. Plain numbers are nanoseconds.
func (c *ConfigLookup) GetDuration(key string) time.Duration {
	value, ok := c.Lookup(key)
	if !ok {
		return 0
	}
	return cast.ToDuration(value)
}

// GetDurationOrDefault returns the duration for key, or def if unset or not positive
func (c *ConfigLookup) GetDurationOrDefault(key string, def time.Duration) time.Duration {
	if d := c.GetDuration(key); d > 0 {
		return d
	}
	return def
}

// UnmarshalKey decodes the value of key into rawVal using mapstructure tags.
// An unset key leaves rawVal untouched. Scalars are weakly typed, so a port
// given as "443" decodes into an int.
func (c *ConfigLookup) UnmarshalKey(key string, rawVal interface{}) error {
	value, ok := c.Lookup(key)
	if !ok {
		return nil
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:       mapstructure.StringToTimeDurationHookFunc(),
		WeaklyTypedInput: true,
		Result:           rawVal,
	})
	if err != nil {
		return err
	}
	return decoder.Decode(value)
}

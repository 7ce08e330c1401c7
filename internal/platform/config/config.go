// Package config reads application settings from prefix scoped environment
// views. Must* accessors panic through the logger when a value is missing or
// malformed; May* accessors warn and fall back to the default
package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"pbl/internal/platform/logger"
)

// lookupEnv is swapped in tests
var lookupEnv = os.LookupEnv

// Conf is a namespaced view over environment variables, e.g. New().Prefix("PG_")
type Conf struct{ prefix string }

// New returns the unprefixed view
func New() Conf { return Conf{} }

// Prefix returns a child view with an extra prefix
func (c Conf) Prefix(p string) Conf { return Conf{prefix: c.prefix + p} }

// Key returns the fully qualified variable name for key
func (c Conf) Key(key string) string { return c.prefix + key }

func (c Conf) get(key string) string {
	v, _ := lookupEnv(c.Key(key))
	return strings.TrimSpace(v)
}

func (c Conf) invalid(key, val string, def any) {
	logger.Get().Warn().Str("key", c.Key(key)).Str("value", val).Interface("default", def).Msg("invalid config value; using default")
}

// MustString panics when key is unset or blank
func (c Conf) MustString(key string) string {
	v := c.get(key)
	if v == "" {
		logger.Get().Panic().Str("key", c.Key(key)).Msg("missing required env")
	}
	return v
}

// MustLocation panics when key does not name a loadable time zone
func (c Conf) MustLocation(key string) *time.Location {
	name := c.MustString(key)
	loc, err := time.LoadLocation(name)
	if err != nil {
		logger.Get().Panic().Err(err).Str("key", c.Key(key)).Str("value", name).Msg("invalid time zone")
	}
	return loc
}

// MayString returns the value or def
func (c Conf) MayString(key, def string) string {
	if v := c.get(key); v != "" {
		return v
	}
	return def
}

// MayInt returns the value or def, warning when the value is not an int
func (c Conf) MayInt(key string, def int) int {
	s := c.get(key)
	if s == "" {
		return def
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		c.invalid(key, s, def)
		return def
	}
	return v
}

// MayFloat64 returns the value or def, warning when the value is not a number
func (c Conf) MayFloat64(key string, def float64) float64 {
	s := c.get(key)
	if s == "" {
		return def
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		c.invalid(key, s, def)
		return def
	}
	return v
}

// MayBool returns the value or def, warning when strconv.ParseBool rejects it
func (c Conf) MayBool(key string, def bool) bool {
	s := c.get(key)
	if s == "" {
		return def
	}
	v, err := strconv.ParseBool(s)
	if err != nil {
		c.invalid(key, s, def)
		return def
	}
	return v
}

// MayDuration returns the value or def, warning on values like "5" with no unit
func (c Conf) MayDuration(key string, def time.Duration) time.Duration {
	s := c.get(key)
	if s == "" {
		return def
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		c.invalid(key, s, def.String())
		return def
	}
	return d
}

// MayCSV splits a comma separated value, dropping blanks
func (c Conf) MayCSV(key string, def []string) []string {
	s := c.get(key)
	if s == "" {
		return def
	}
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}

// MayPairs parses "K1=v1,K2=v2". Malformed pairs are skipped with a warning;
// the order of the input is kept
func (c Conf) MayPairs(key string) [][2]string {
	var out [][2]string
	for _, item := range c.MayCSV(key, nil) {
		k, v, ok := strings.Cut(item, "=")
		k, v = strings.TrimSpace(k), strings.TrimSpace(v)
		if !ok || k == "" || v == "" {
			logger.Get().Warn().Str("key", c.Key(key)).Str("pair", item).Msg("skipping malformed pair")
			continue
		}
		out = append(out, [2]string{k, v})
	}
	return out
}

// MayEnum returns the value when it is one of allowed (any case) and panics
// otherwise; def is returned when unset
func (c Conf) MayEnum(key, def string, allowed ...string) string {
	v := c.MayString(key, def)
	for _, a := range allowed {
		if strings.EqualFold(v, a) {
			return a
		}
	}
	logger.Get().Panic().Str("key", c.Key(key)).Str("value", v).Strs("allowed", allowed).Msg("invalid enum value")
	return ""
}

// MayLocation returns the named zone, or def when unset or unknown
func (c Conf) MayLocation(key string, def *time.Location) *time.Location {
	name := c.get(key)
	if name == "" {
		return def
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		c.invalid(key, name, def.String())
		return def
	}
	return loc
}

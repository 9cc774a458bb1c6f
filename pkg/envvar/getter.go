// Package envvar reads TACORE_ prefixed environment variables.
package envvar

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

const Prefix = "TACORE_"

// Name returns the prefixed variable name of n, e.g. "max_bar_count" -> "TACORE_MAX_BAR_COUNT".
func Name(n string) string {
	n = strings.ToUpper(n)
	if strings.HasPrefix(n, Prefix) {
		return n
	}
	return Prefix + n
}

func lookup(n string) (string, bool) {
	str, ok := os.LookupEnv(Name(n))
	if !ok || strings.TrimSpace(str) == "" {
		return "", false
	}
	return strings.TrimSpace(str), true
}

func String(n string, args ...string) (string, bool) {
	defaultValue := ""
	if len(args) > 0 {
		defaultValue = args[0]
	}

	str, ok := lookup(n)
	if !ok {
		return defaultValue, false
	}

	return str, true
}

func Duration(n string, args ...time.Duration) (time.Duration, bool) {
	defaultValue := time.Duration(0)
	if len(args) > 0 {
		defaultValue = args[0]
	}

	str, ok := lookup(n)
	if !ok {
		return defaultValue, false
	}

	du, err := time.ParseDuration(str)
	if err != nil {
		logrus.WithError(err).Errorf("can not parse env var %s=%q as time.Duration", Name(n), str)
		return defaultValue, false
	}

	return du, true
}

func Int(n string, args ...int) (int, bool) {
	defaultValue := 0
	if len(args) > 0 {
		defaultValue = args[0]
	}

	str, ok := lookup(n)
	if !ok {
		return defaultValue, false
	}

	num, err := strconv.Atoi(str)
	if err != nil {
		logrus.WithError(err).Errorf("can not parse env var %s=%q as int", Name(n), str)
		return defaultValue, false
	}

	return num, true
}

func Int64(n string, args ...int64) (int64, bool) {
	defaultValue := int64(0)
	if len(args) > 0 {
		defaultValue = args[0]
	}

	str, ok := lookup(n)
	if !ok {
		return defaultValue, false
	}

	num, err := strconv.ParseInt(str, 10, 64)
	if err != nil {
		logrus.WithError(err).Errorf("can not parse env var %s=%q as int64", Name(n), str)
		return defaultValue, false
	}

	return num, true
}

func Bool(n string, args ...bool) (bool, bool) {
	defaultValue := false
	if len(args) > 0 {
		defaultValue = args[0]
	}

	str, ok := lookup(n)
	if !ok {
		return defaultValue, false
	}

	b, err := strconv.ParseBool(str)
	if err != nil {
		logrus.WithError(err).Errorf("can not parse env var %s=%q as bool", Name(n), str)
		return defaultValue, false
	}

	return b, true
}

func SetInt(n string, v *int) bool {
	i, ok := Int(n)
	if ok {
		*v = i
	}
	return ok
}

func SetInt64(n string, v *int64) bool {
	i, ok := Int64(n)
	if ok {
		*v = i
	}
	return ok
}

func SetDuration(n string, v *time.Duration) bool {
	d, ok := Duration(n)
	if ok {
		*v = d
	}
	return ok
}

func SetBool(n string, v *bool) bool {
	b, ok := Bool(n)
	if ok {
		*v = b
	}
	return ok
}

func SetString(n string, v *string) bool {
	s, ok := String(n)
	if ok {
		*v = s
	}
	return ok
}

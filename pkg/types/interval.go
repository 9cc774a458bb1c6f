package types

import (
	"encoding/json"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
)

// Interval is the period covered by one bar, e.g. "1m", "4h", "1d".
type Interval string

var Interval1s = Interval("1s")
var Interval1m = Interval("1m")
var Interval5m = Interval("5m")
var Interval15m = Interval("15m")
var Interval30m = Interval("30m")
var Interval1h = Interval("1h")
var Interval2h = Interval("2h")
var Interval4h = Interval("4h")
var Interval6h = Interval("6h")
var Interval12h = Interval("12h")
var Interval1d = Interval("1d")
var Interval3d = Interval("3d")
var Interval1w = Interval("1w")

var intervalPattern = regexp.MustCompile(`^(\d+)(s|m|h|d|w|Mo)$`)

var unitSeconds = map[string]int{
	"s":  1,
	"m":  60,
	"h":  60 * 60,
	"d":  24 * 60 * 60,
	"w":  7 * 24 * 60 * 60,
	"Mo": 30 * 24 * 60 * 60,
}

// ParseInterval returns the number of seconds of the given interval literal, 0 if it is invalid.
func ParseInterval(input Interval) int {
	m := intervalPattern.FindStringSubmatch(strings.TrimSpace(string(input)))
	if m == nil {
		return 0
	}

	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0
	}

	return n * unitSeconds[m[2]]
}

func (i Interval) Seconds() int {
	return ParseInterval(i)
}

func (i Interval) Duration() time.Duration {
	return time.Duration(i.Seconds()) * time.Second
}

// Validate returns an error if the interval literal can not be parsed.
func (i Interval) Validate() error {
	if i.Seconds() == 0 {
		return errors.Errorf("invalid interval %q", string(i))
	}
	return nil
}

func (i *Interval) UnmarshalJSON(b []byte) (err error) {
	var a string
	err = json.Unmarshal(b, &a)
	if err != nil {
		return err
	}

	*i = Interval(a)
	return
}

func (i Interval) String() string {
	return string(i)
}

type IntervalSlice []Interval

func (s IntervalSlice) Sort() {
	sort.Slice(s, func(i, j int) bool {
		return s[i].Seconds() < s[j].Seconds()
	})
}

func (s IntervalSlice) StringSlice() (slice []string) {
	for _, interval := range s {
		slice = append(slice, `"`+interval.String()+`"`)
	}
	return slice
}

package config

import (
	"github.com/pkg/errors"
	"go.uber.org/multierr"
)

// PriceSources can be referenced by any indicator without being defined.
var PriceSources = []string{"close", "open", "high", "low", "volume", "typical"}

type indicatorShape int

const (
	shapePrice indicatorShape = iota
	shapeConstant
	shapeWindowed
	shapeUnary
	shapeBinary
)

var indicatorShapes = map[string]indicatorShape{
	"close":    shapePrice,
	"open":     shapePrice,
	"high":     shapePrice,
	"low":      shapePrice,
	"volume":   shapePrice,
	"typical":  shapePrice,
	"constant": shapeConstant,
	"sma":      shapeWindowed,
	"ema":      shapeWindowed,
	"mma":      shapeWindowed,
	"previous": shapeWindowed,
	"abs":      shapeUnary,
	"sqrt":     shapeUnary,
	"plus":     shapeBinary,
	"minus":    shapeBinary,
	"multiply": shapeBinary,
	"divide":   shapeBinary,
	"min":      shapeBinary,
	"max":      shapeBinary,
}

func IsPriceSource(name string) bool {
	for _, p := range PriceSources {
		if p == name {
			return true
		}
	}
	return false
}

// ValidateIndicators checks types, parameters and references. An indicator may
// only reference prices and indicators defined before it.
func ValidateIndicators(configs []IndicatorConfig) (err error) {
	defined := make(map[string]struct{})

	ref := func(c IndicatorConfig, field, name string) {
		if name == "" {
			err = multierr.Append(err, errors.Errorf("indicator %s: %s is required", c.ID, field))
			return
		}

		if _, ok := defined[name]; ok || IsPriceSource(name) {
			return
		}

		err = multierr.Append(err, errors.Errorf("indicator %s: %s %q is not defined before it", c.ID, field, name))
	}

	for _, c := range configs {
		if c.ID == "" {
			err = multierr.Append(err, errors.Errorf("indicator of type %q has no id", c.Type))
			continue
		}

		if _, dup := defined[c.ID]; dup || IsPriceSource(c.ID) {
			err = multierr.Append(err, errors.Errorf("indicator %s: duplicated id", c.ID))
		}

		shape, ok := indicatorShapes[c.Type]
		if !ok {
			err = multierr.Append(err, errors.Errorf("indicator %s: unknown type %q", c.ID, c.Type))
		}

		switch {
		case !ok:
		case shape == shapeWindowed:
			ref(c, "source", c.Source)
			if c.Window <= 0 {
				err = multierr.Append(err, errors.Errorf("indicator %s: window must be positive, got %d", c.ID, c.Window))
			}

		case shape == shapeUnary:
			ref(c, "source", c.Source)

		case shape == shapeBinary:
			ref(c, "left", c.Left)
			ref(c, "right", c.Right)
		}

		defined[c.ID] = struct{}{}
	}

	return err
}

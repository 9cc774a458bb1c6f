// Package randomwalk generates synthetic bars from a seeded geometric random walk.
//
// The same seed always yields the same prices, so a float series and a decimal
// series fed from two generators with equal options hold the same bars.
package randomwalk

import (
	"math"
	"math/rand"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/c9s/tacore/pkg/fixedpoint"
	"github.com/c9s/tacore/pkg/types"
)

var log = logrus.WithField("component", "randomwalk")

// minPrice keeps the walk strictly positive.
const minPrice = 0.01

type Options struct {
	Seed       int64
	StartPrice float64
	// Volatility is the standard deviation of the relative change per tick.
	Volatility float64
	TicksOfBar int
	Interval   types.Interval
	// StartTime is the begin time of the first bar, truncated to the interval.
	StartTime time.Time
}

// Tick is one simulated trade.
type Tick struct {
	Time   time.Time
	Price  float64
	Volume float64
}

//go:generate callbackgen -type Generator
type Generator struct {
	Options

	factory fixedpoint.Factory
	rnd     *rand.Rand
	price   float64
	period  time.Duration
	endTime time.Time
	builder *types.BarBuilder

	tickCallbacks []func(tick Tick)
}

func New(f fixedpoint.Factory, options Options) *Generator {
	if options.Interval == "" {
		options.Interval = types.Interval1m
	}
	if options.StartPrice <= 0 {
		options.StartPrice = 100
	}
	if options.TicksOfBar <= 0 {
		options.TicksOfBar = 1
	}
	if options.StartTime.IsZero() {
		options.StartTime = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	}

	period := options.Interval.Duration()
	options.StartTime = options.StartTime.Truncate(period)
	return &Generator{
		Options: options,
		factory: f,
		rnd:     rand.New(rand.NewSource(options.Seed)),
		price:   options.StartPrice,
		period:  period,
		endTime: options.StartTime.Add(period),
	}
}

func (g *Generator) Factory() fixedpoint.Factory {
	return g.factory
}

func (g *Generator) nextPrice() float64 {
	g.price *= 1 + g.Volatility*g.rnd.NormFloat64()
	g.price = math.Max(math.Round(g.price*100)/100, minPrice)
	return g.price
}

func (g *Generator) nextVolume() float64 {
	return math.Round((0.1+g.rnd.ExpFloat64())*1000) / 1000
}

// NextTicks returns the ticks of the next bar period, evenly spaced inside it.
func (g *Generator) NextTicks() []Tick {
	ticks := make([]Tick, g.TicksOfBar)
	step := g.period / time.Duration(g.TicksOfBar)
	begin := g.endTime.Add(-g.period)
	for i := range ticks {
		ticks[i] = Tick{
			Time:   begin.Add(step * time.Duration(i)),
			Price:  g.nextPrice(),
			Volume: g.nextVolume(),
		}
	}

	g.endTime = g.endTime.Add(g.period)
	return ticks
}

// NextBar aggregates the next period's ticks into a closed bar.
func (g *Generator) NextBar() types.Bar {
	endTime := g.endTime
	bar := types.NewBar(g.factory, g.period, endTime)
	for _, tick := range g.NextTicks() {
		bar.AddTrade(g.factory.NewFromFloat(tick.Volume), g.factory.NewFromFloat(tick.Price))
	}
	bar.Closed = true
	return bar
}

// Bars returns the next n closed bars.
func (g *Generator) Bars(n int) []types.Bar {
	bars := make([]types.Bar, n)
	for i := range bars {
		bars[i] = g.NextBar()
	}
	return bars
}

// Feed drives one bar period into series the way a live market stream would:
// the ticks go through a time bar builder, so the first tick opens a new bar,
// every following tick updates it in place and the bar is closed at the end of
// the period.
func (g *Generator) Feed(series *types.BarSeries) error {
	if g.builder == nil || g.builder.Series() != series {
		builder, err := types.NewTimeBarBuilder(series, g.period)
		if err != nil {
			return err
		}
		g.builder = builder
	}

	for _, tick := range g.NextTicks() {
		g.EmitTick(tick)

		if err := g.builder.AddTrade(tick.Time, g.factory.NewFromFloat(tick.Volume), g.factory.NewFromFloat(tick.Price)); err != nil {
			return err
		}
	}

	if err := g.builder.Close(); err != nil {
		return err
	}

	if log.Logger.IsLevelEnabled(logrus.DebugLevel) {
		last, _ := series.LastBar()
		log.Debugf("fed bar %d: %s", series.EndIndex(), last.String())
	}

	return nil
}

package indicator

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/c9s/tacore/pkg/testing/testhelper"
)

var smaInput = []float64{1, 2, 3, 4, 3, 4, 5, 4, 3, 3, 4, 3, 2}

func Test_SMA(t *testing.T) {
	expected := []float64{
		1,             // warm-up: shrinking window of 1
		1.5,           // warm-up: (1+2)/2
		2,             // (1+2+3)/3
		3,             // (2+3+4)/3
		10.0 / 3,      // (3+4+3)/3
		11.0 / 3,      // (4+3+4)/3
		4,             // (3+4+5)/3
		13.0 / 3,      // (4+5+4)/3
		4,             // (5+4+3)/3
		10.0 / 3,      // (4+3+3)/3
		10.0 / 3,      // (3+3+4)/3
		10.0 / 3,      // (3+4+3)/3
		3,             // (4+3+2)/3
	}

	for _, tt := range testhelper.Factories {
		t.Run(tt.Name, func(t *testing.T) {
			series := testhelper.SeriesFromCloses(tt.Factory, smaInput)
			sma := SMA(ClosePrice(series), 3)

			assert.Equal(t, 3, sma.UnstableBars())
			assert.Equal(t, 3, sma.Window())
			assert.False(t, IsStable(sma, 2))
			assert.True(t, IsStable(sma, 3))

			// both ends of the series
			testhelper.AssertValue(t, 1, sma.ValueAt(0), 1e-9)
			testhelper.AssertValue(t, 1.5, sma.ValueAt(1), 1e-9)
			assert.True(t, sma.ValueAt(2).Eq(tt.Factory.NewFromInt(6).Div(tt.Factory.NewFromInt(3))))
			testhelper.AssertValue(t, 3, sma.ValueAt(12), 1e-9)

			testhelper.AssertValues(t, expected, Values(sma), 1e-9)
			testhelper.AssertValue(t, 3, Last(sma), 1e-9)
		})
	}
}

func Test_SMA_DecimalIsExact(t *testing.T) {
	series := testhelper.SeriesFromCloses(testhelper.Factories[1].Factory, smaInput)
	sma := SMA(ClosePrice(series), 3)
	assert.Equal(t, "3.3333333333333333", sma.ValueAt(4).String())
	assert.Equal(t, "2", sma.ValueAt(2).String())
}

package style

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewTable(t *testing.T) {
	var buf bytes.Buffer
	tbl := NewTable(&buf, "bench", "numeric", "mean", "stddev")
	tbl.SetStyle(*NewPlainTableStyle())
	tbl.AppendRow([]interface{}{"float", "1.2ms", "0.1ms"})
	tbl.AppendRow([]interface{}{"decimal", "10.5ms", "0.3ms"})
	out := tbl.Render()

	assert.Contains(t, out, "bench")
	assert.Contains(t, out, "NUMERIC")
	assert.Contains(t, out, "decimal")
	assert.Contains(t, buf.String(), "10.5ms")
}

package domain

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReport_WriteTo(t *testing.T) {
	report := Report{Day: 3, Items: []ItemView{
		{Name: "Aged Brie", SellIn: -1, Quality: 2},
		{Name: "Widget, deluxe", SellIn: 4, Quality: 0},
	}}

	var buf bytes.Buffer
	n, err := report.WriteTo(&buf)
	require.NoError(t, err)

	want := "name, sellIn, quality\nAged Brie, -1, 2\nWidget, deluxe, 4, 0\n"
	assert.Equal(t, want, buf.String())
	assert.Equal(t, int64(len(want)), n)
	assert.Equal(t, want, report.String())
}

func TestItemView_Line(t *testing.T) {
	assert.Equal(t, "x, 0, 0", ItemView{Name: "x"}.Line())
}

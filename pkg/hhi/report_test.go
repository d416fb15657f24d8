package hhi

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyConcentration(t *testing.T) {
	cases := []struct {
		score float64
		want  ConcentrationLevel
	}{
		{0, Unconcentrated},
		{1499.99, Unconcentrated},
		{1500, ModeratelyConcentrated},
		{2000, ModeratelyConcentrated},
		{2500, ModeratelyConcentrated},
		{2500.01, HighlyConcentrated},
		{10000, HighlyConcentrated},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, ClassifyConcentration(tc.score), "score %v", tc.score)
	}
}

func TestRenderReport_Speed(t *testing.T) {
	var buf bytes.Buffer
	res := Result{
		Score: 5200,
		Details: []MarketShare{
			{Name: "Big-IX", DisplayValue: 60.0, SharePercent: 60},
			{Name: "Small-IX", DisplayValue: 40.0, SharePercent: 40},
		},
	}

	RenderReport(&buf, "DE", MetricSpeed, res)
	out := buf.String()

	assert.Contains(t, out, "IXP Market Concentration Analysis for DE (by Port Capacity)")
	assert.Contains(t, out, "Herfindahl-Hirschman Index (HHI): 5200.00")
	assert.Contains(t, out, string(ModeratelyConcentrated))
	assert.Contains(t, out, "Capacity (Gbps)")
	assert.Contains(t, out, "Big-IX")
	assert.Contains(t, out, "60.0")
}

func TestRenderReport_ASNs(t *testing.T) {
	var buf bytes.Buffer
	res := Result{
		Score: 10000,
		Details: []MarketShare{
			{Name: "Solo-IX", DisplayValue: 42, SharePercent: 100},
		},
	}

	RenderReport(&buf, "US", MetricASNs, res)
	out := buf.String()

	assert.Contains(t, out, "(by Connected Networks)")
	assert.Contains(t, out, string(HighlyConcentrated))
	assert.Contains(t, out, "Networks")
	// Network counts render as integers
	assert.Contains(t, out, "42")
	assert.NotContains(t, out, "42.0")
}

func TestRenderReport_EmptyMarket(t *testing.T) {
	var buf bytes.Buffer

	RenderReport(&buf, "XX", MetricSpeed, Result{})
	out := buf.String()

	assert.Contains(t, out, "No market data found.")
	assert.NotContains(t, out, "Top")
}

func TestRenderReport_CapsAtFifteenRows(t *testing.T) {
	res := Result{Score: 100}
	for i := 0; i < 20; i++ {
		res.Details = append(res.Details, MarketShare{
			Name:         fmt.Sprintf("IX-%02d", i),
			DisplayValue: float64(100 - i),
			SharePercent: 5,
		})
	}

	var buf bytes.Buffer
	RenderReport(&buf, "US", MetricSpeed, res)
	out := buf.String()

	assert.Contains(t, out, "IX-00")
	assert.Contains(t, out, "IX-14")
	assert.False(t, strings.Contains(out, "IX-15"), "rows beyond the cap must not render")
}

package number

import (
	"testing"

	"github.com/bmizerany/assert"
	"github.com/shopspring/decimal"
)

func TestCeil(t *testing.T) {
	data := map[string]string{
		"0.10304":     "0.11",
		"0.100000001": "0.11",
		"0.108":       "0.11",
		"0.1":         "0.1",
	}

	for k, v := range data {
		t.Run(k, func(t *testing.T) {
			c := Ceil(decimal.RequireFromString(k), 2)
			assert.Equal(t, v, c.String(), "should be ceil")
		})
	}
}

func TestFloor(t *testing.T) {
	data := map[string]string{
		"0.10304": "0.1",
		"0.108":   "0.1",
		"1.999":   "1.99",
		"-0.001":  "-0.01",
	}

	for k, v := range data {
		t.Run(k, func(t *testing.T) {
			c := Floor(decimal.RequireFromString(k), 2)
			assert.Equal(t, v, c.String(), "should be floor")
		})
	}
}

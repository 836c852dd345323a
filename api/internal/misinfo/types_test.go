package misinfo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAggregate(t *testing.T) {
	res := Aggregate([]Finding{
		{Type: ModalityText, Verdict: VerdictAccurate},
		{Type: ModalityImage, Verdict: VerdictMisinfo},
	})
	assert.Equal(t, OverallMisinfo, res.OverallVerdict)

	res = Aggregate([]Finding{{Type: ModalityText, Verdict: VerdictAccurate}})
	assert.Equal(t, OverallAccurate, res.OverallVerdict)

	// ERROR findings are not misinformation
	res = Aggregate([]Finding{{Type: ModalityText, Verdict: VerdictError}})
	assert.Equal(t, OverallAccurate, res.OverallVerdict)

	res = Aggregate(nil)
	assert.Equal(t, OverallAccurate, res.OverallVerdict)
}

func TestAggregatePreservesOrder(t *testing.T) {
	in := []Finding{
		{Type: ModalityText, Verdict: VerdictAccurate, Reason: "first"},
		{Type: ModalityImage, Verdict: VerdictMisinfo, Reason: "second"},
	}
	res := Aggregate(in)
	assert.Equal(t, "first", res.Findings[0].Reason)
	assert.Equal(t, "second", res.Findings[1].Reason)
}

func TestNormalizeVerdict(t *testing.T) {
	assert.Equal(t, VerdictMisinfo, normalizeVerdict("  misinfo "))
	assert.Equal(t, VerdictAccurate, normalizeVerdict("ACCURATE"))
	assert.Equal(t, VerdictError, normalizeVerdict("PROBABLY FINE"))
	assert.Equal(t, VerdictError, normalizeVerdict(""))
}

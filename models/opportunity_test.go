package models

import (
	"testing"
)

func TestStageForProbability(t *testing.T) {
	cases := []struct {
		probability int
		stage       string
	}{
		{0, StageClosedLost},
		{10, StageProspecting},
		{20, StageProspecting},
		{21, StageQualification},
		{40, StageQualification},
		{41, StageNeedsAnalysis},
		{50, StageNeedsAnalysis},
		{60, StageNeedsAnalysis},
		{61, StageValueProposition},
		{70, StageValueProposition},
		{71, StageDecisionMakers},
		{80, StageDecisionMakers},
		{81, StagePerceptionAnalysis},
		{85, StagePerceptionAnalysis},
		{86, StageProposalPriceQuote},
		{90, StageProposalPriceQuote},
		{91, StageNegotiationReview},
		{95, StageNegotiationReview},
		{100, StageClosedWon},
	}
	for _, c := range cases {
		got, err := StageForProbability(c.probability)
		if err != nil {
			t.Errorf("StageForProbability(%d) returned error: %v", c.probability, err)
			continue
		}
		if got != c.stage {
			t.Errorf("StageForProbability(%d) = %q, want %q", c.probability, got, c.stage)
		}
	}
}

func TestStageForProbabilityUndefinedHoles(t *testing.T) {
	undefined := []int{1, 5, 9, 96, 97, 98, 99, -1, 101}
	for _, p := range undefined {
		if _, err := StageForProbability(p); err != ErrInvalidProbability {
			t.Errorf("StageForProbability(%d) error = %v, want ErrInvalidProbability", p, err)
		}
	}
}

func TestStageBandsCoverZeroToHundred(t *testing.T) {
	// Every probability in 0..100 either maps to exactly one stage or is one
	// of the known undefined holes.
	holes := map[int]bool{}
	for p := 1; p <= 9; p++ {
		holes[p] = true
	}
	for p := 96; p <= 99; p++ {
		holes[p] = true
	}
	for p := 0; p <= 100; p++ {
		stage, err := StageForProbability(p)
		if holes[p] {
			if err == nil {
				t.Errorf("StageForProbability(%d) = %q, want undefined", p, stage)
			}
			continue
		}
		if err != nil {
			t.Errorf("StageForProbability(%d) unexpectedly undefined", p)
		}
	}
}

func TestConvertCurrencies(t *testing.T) {
	rates := map[string]float64{
		"USD": 10.0,
		"EUR": 9.2,
	}
	out := ConvertCurrencies(1000, rates)

	if out["USD"] != 10000.00 {
		t.Errorf("USD = %v, want 10000.00", out["USD"])
	}
	if out["EUR"] != 9200.00 {
		t.Errorf("EUR = %v, want 9200.00", out["EUR"])
	}
	if out["INR"] != 1000.00 {
		t.Errorf("INR passthrough = %v, want 1000.00", out["INR"])
	}
}

func TestConvertCurrenciesRounding(t *testing.T) {
	rates := map[string]float64{"EUR": 9.2}
	out := ConvertCurrencies(10.555, rates)
	// 10.555 * 9.2 = 97.106 -> 97.11
	if out["EUR"] != 97.11 {
		t.Errorf("EUR = %v, want 97.11", out["EUR"])
	}
	if out["INR"] != 10.56 {
		t.Errorf("INR = %v, want 10.56", out["INR"])
	}
}

func TestApplyConversionsSetsAllColumns(t *testing.T) {
	rates := map[string]float64{
		"USD": 10.0, "AUD": 15.0, "CAD": 13.5, "JPY": 1450.0,
		"EUR": 9.2, "GBP": 7.9, "CNY": 71.5,
	}
	var o Opportunity
	o.ApplyConversions(ConvertCurrencies(1000, rates))

	columns := map[string]*float64{
		"usd": o.USD, "aud": o.AUD, "cad": o.CAD, "jpy": o.JPY,
		"eur": o.EUR, "gbp": o.GBP, "cny": o.CNY,
	}
	for name, v := range columns {
		if v == nil {
			t.Errorf("column %s not set", name)
		}
	}
	if o.USD == nil || *o.USD != 10000.00 {
		t.Errorf("usd = %v, want 10000.00", o.USD)
	}
	if o.JPY == nil || *o.JPY != 1450000.00 {
		t.Errorf("jpy = %v, want 1450000.00", o.JPY)
	}
}

func TestOpportunityFilterEmpty(t *testing.T) {
	var f OpportunityFilter
	if !f.Empty() {
		t.Error("zero filter should be empty")
	}

	f.DealerCode = "D-42"
	if f.Empty() {
		t.Error("filter with dealer_code should not be empty")
	}

	p := 50
	f = OpportunityFilter{Probability: &p}
	if f.Empty() {
		t.Error("filter with probability should not be empty")
	}
}

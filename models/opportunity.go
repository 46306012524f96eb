package models

import (
	"errors"
	"math"
	"time"

	"github.com/jinzhu/gorm"
)

// Funnel stage labels derived from probability.
const StageClosedLost = "Closed Lost"
const StageProspecting = "Prospecting"
const StageQualification = "Qualification"
const StageNeedsAnalysis = "Needs Analysis"
const StageValueProposition = "Value Proposition"
const StageDecisionMakers = "Decision Makers"
const StagePerceptionAnalysis = "Perception Analysis"
const StageProposalPriceQuote = "Proposal/Price Quote"
const StageNegotiationReview = "Negotiation/Review"
const StageClosedWon = "Closed Won"
const StageUnknown = "Unknown"

var ErrInvalidProbability = errors.New("probability does not map to a stage; allowed: 0, 10-95, 100")

// Opportunity is a sales-pipeline row. Product identity fields are a snapshot
// taken at creation time; the seven currency columns are always derived from
// Amount together, never individually.
type Opportunity struct {
	OpportunityID   string     `gorm:"column:opportunity_id;primary_key" json:"opportunity_id"`
	OpportunityName string     `json:"opportunity_name" form:"opportunity_name"`
	AccountName     string     `gorm:"index" json:"account_name" form:"account_name"`
	CloseDate       *time.Time `json:"close_date"`
	Amount          *float64   `json:"amount" form:"amount"`
	AmountInWords   string     `json:"amount_in_words" form:"amount_in_words"`
	Description     string     `gorm:"type:text" json:"description" form:"description"`
	DealerID        string     `json:"dealer_id" form:"dealer_id"`
	DealerCode      string     `json:"dealer_code" form:"dealer_code"`
	Stage           string     `json:"stage" form:"stage"`
	Probability     *int       `json:"probability" form:"probability"`
	NextStep        string     `json:"next_step" form:"next_step"`
	CreatedDate     time.Time  `json:"created_date"`

	USD *float64 `gorm:"column:usd" json:"usd"`
	AUD *float64 `gorm:"column:aud" json:"aud"`
	CAD *float64 `gorm:"column:cad" json:"cad"`
	JPY *float64 `gorm:"column:jpy" json:"jpy"`
	EUR *float64 `gorm:"column:eur" json:"eur"`
	GBP *float64 `gorm:"column:gbp" json:"gbp"`
	CNY *float64 `gorm:"column:cny" json:"cny"`

	EmployeeID      string `gorm:"not null;index" json:"employee_id" form:"employee_id"`
	ProductID       string `gorm:"not null;index" json:"product_id" form:"product_id"`
	ProductName     string `json:"product_name"`
	ProductBrand    string `json:"product_brand"`
	ProductModel    string `json:"product_model"`
	ProductImageURL string `gorm:"column:product_image_url" json:"product_image_url"`
}

func (Opportunity) TableName() string {
	return "opportunities"
}

// StageForProbability maps probability to its stage label over a fixed,
// non-overlapping partition of 0..100. The 1-9 and 96-99 holes are inherited
// from the legacy partition and deliberately kept undefined.
func StageForProbability(p int) (string, error) {
	switch {
	case p == 0:
		return StageClosedLost, nil
	case p >= 10 && p <= 20:
		return StageProspecting, nil
	case p >= 21 && p <= 40:
		return StageQualification, nil
	case p >= 41 && p <= 60:
		return StageNeedsAnalysis, nil
	case p >= 61 && p <= 70:
		return StageValueProposition, nil
	case p >= 71 && p <= 80:
		return StageDecisionMakers, nil
	case p >= 81 && p <= 85:
		return StagePerceptionAnalysis, nil
	case p >= 86 && p <= 90:
		return StageProposalPriceQuote, nil
	case p >= 91 && p <= 95:
		return StageNegotiationReview, nil
	case p == 100:
		return StageClosedWon, nil
	}
	return "", ErrInvalidProbability
}

// ConvertCurrencies multiplies the base INR amount by each fixed rate,
// rounded to 2 decimals. INR itself is the rounded original amount.
func ConvertCurrencies(amount float64, rates map[string]float64) map[string]float64 {
	out := make(map[string]float64, len(rates)+1)
	for currency, rate := range rates {
		out[currency] = round2(amount * rate)
	}
	out["INR"] = round2(amount)
	return out
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// ApplyConversions refreshes all seven derived columns at once; a partial
// refresh would leave the row internally inconsistent.
func (o *Opportunity) ApplyConversions(conversions map[string]float64) {
	set := func(currency string) *float64 {
		v, ok := conversions[currency]
		if !ok {
			return nil
		}
		return &v
	}
	o.USD = set("USD")
	o.AUD = set("AUD")
	o.CAD = set("CAD")
	o.JPY = set("JPY")
	o.EUR = set("EUR")
	o.GBP = set("GBP")
	o.CNY = set("CNY")
}

// OpportunityFilter is the delete/select criteria set. Requiring callers to
// go through Empty() keeps "at least one criterion" structurally enforced.
type OpportunityFilter struct {
	OpportunityID   string
	AccountName     string
	DealerID        string
	DealerCode      string
	OpportunityName string
	Stage           string
	Probability     *int
	CloseDate       *time.Time
}

func (f OpportunityFilter) Empty() bool {
	return f.OpportunityID == "" && f.AccountName == "" && f.DealerID == "" &&
		f.DealerCode == "" && f.OpportunityName == "" && f.Stage == "" &&
		f.Probability == nil && f.CloseDate == nil
}

func (f OpportunityFilter) Apply(query *gorm.DB) *gorm.DB {
	if f.OpportunityID != "" {
		query = query.Where("opportunity_id = ?", f.OpportunityID)
	}
	if f.AccountName != "" {
		query = query.Where("account_name = ?", f.AccountName)
	}
	if f.DealerID != "" {
		query = query.Where("dealer_id = ?", f.DealerID)
	}
	if f.DealerCode != "" {
		query = query.Where("dealer_code = ?", f.DealerCode)
	}
	if f.OpportunityName != "" {
		query = query.Where("opportunity_name = ?", f.OpportunityName)
	}
	if f.Stage != "" {
		query = query.Where("stage = ?", f.Stage)
	}
	if f.Probability != nil {
		query = query.Where("probability = ?", *f.Probability)
	}
	if f.CloseDate != nil {
		query = query.Where("close_date = ?", *f.CloseDate)
	}
	return query
}

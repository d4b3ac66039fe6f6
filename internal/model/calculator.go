package model

import "math"

// PurchaseEstimate holds the results of a stock bar purchasing calculation.
type PurchaseEstimate struct {
	TotalRodLengthCm float64 `json:"total_rod_length_cm"` // Summed cut lengths of all rods (cm)
	TotalWeightKg    float64 `json:"total_weight_kg"`     // Summed rod weight (kg)
	CutLossCm        float64 `json:"cut_loss_cm"`         // Material lost per cut (cm)
	StockLengthCm    float64 `json:"stock_length_cm"`     // Length of one stock bar (cm)
	BarsNeededExact  float64 `json:"bars_needed_exact"`   // Exact fractional number of bars
	BarsNeededMin    int     `json:"bars_needed_min"`     // Minimum bars (ceiling of exact)
	BarsWithWaste    int     `json:"bars_with_waste"`     // Recommended bars including waste factor
	WastePercent     float64 `json:"waste_percent"`       // Waste factor applied (e.g., 15 for 15%)
	EstimatedCost    float64 `json:"estimated_cost"`      // Total cost if pricing available
	PricePerBar      float64 `json:"price_per_bar"`       // Price used for estimation
}

// CalculatePurchaseEstimate computes how many stock bars to buy for a rod
// list. Every rod consumes its cut length plus cutLossCm of saw loss; the
// waste percentage covers offcuts too short to reuse.
func CalculatePurchaseEstimate(rods []Rod, stockLengthCm, cutLossCm, wastePercent, pricePerBar float64) PurchaseEstimate {
	var totalLength, totalWeight float64
	for _, r := range rods {
		totalLength += r.Length() + cutLossCm
		totalWeight += r.WeightKg()
	}

	if stockLengthCm <= 0 {
		return PurchaseEstimate{
			TotalRodLengthCm: totalLength,
			TotalWeightKg:    totalWeight,
			CutLossCm:        cutLossCm,
			WastePercent:     wastePercent,
		}
	}

	exactBars := totalLength / stockLengthCm
	minBars := int(math.Ceil(exactBars))

	wasteFactor := 1.0 + (wastePercent / 100.0)
	barsWithWaste := int(math.Ceil(exactBars * wasteFactor))
	if barsWithWaste < minBars {
		barsWithWaste = minBars
	}

	estimatedCost := float64(barsWithWaste) * pricePerBar

	return PurchaseEstimate{
		TotalRodLengthCm: totalLength,
		TotalWeightKg:    totalWeight,
		CutLossCm:        cutLossCm,
		StockLengthCm:    stockLengthCm,
		BarsNeededExact:  exactBars,
		BarsNeededMin:    minBars,
		BarsWithWaste:    barsWithWaste,
		WastePercent:     wastePercent,
		EstimatedCost:    estimatedCost,
		PricePerBar:      pricePerBar,
	}
}

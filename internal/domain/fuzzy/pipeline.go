package fuzzy

// Evaluation captures every stage of one pipeline run.
type Evaluation struct {
	Service    ServiceDegrees `json:"service"`
	Food       FoodDegrees    `json:"food"`
	Rules      TipDegrees     `json:"rules"`
	Aggregated TipDegrees     `json:"aggregated"`
	Tip        float64        `json:"tip"`
}

// Pipeline runs fuzzification, rule evaluation, aggregation and
// defuzzification in sequence. The zero value uses MethodCentroid and is safe
// for concurrent use.
type Pipeline struct {
	Method Method
}

// Evaluate runs the pipeline and keeps the intermediate results.
func (p Pipeline) Evaluate(service, food float64) Evaluation {
	s, f := Fuzzify(service, food)
	rules := ApplyRules(s, f)
	agg := Aggregate(rules)
	return Evaluation{
		Service:    s,
		Food:       f,
		Rules:      rules,
		Aggregated: agg,
		Tip:        Defuzzify(agg, p.Method),
	}
}

// Calculate returns the crisp tip for the given inputs.
func (p Pipeline) Calculate(service, food float64) float64 {
	return p.Evaluate(service, food).Tip
}

// CalculateTip is the default entry point: service and food quality in
// [0,10] in, crisp tip out.
func CalculateTip(service, food float64) float64 {
	return Pipeline{}.Calculate(service, food)
}

package fuzzy

import "math"

// TipDegrees holds the activation of each output tip level.
type TipDegrees struct {
	Cheap    float64 `json:"cheap"`
	Average  float64 `json:"average"`
	Generous float64 `json:"generous"`
}

// Total returns the sum of all three activations.
func (t TipDegrees) Total() float64 {
	return t.Cheap + t.Average + t.Generous
}

// Rule describes one row of the rule table.
type Rule struct {
	Output      string   `json:"output"`
	Antecedents []string `json:"antecedents"`
	Connective  string   `json:"connective,omitempty"`
}

// Rules returns a description of the fixed rule table evaluated by ApplyRules.
func Rules() []Rule {
	return []Rule{
		{Output: "cheap", Antecedents: []string{"service.poor", "food.rancid"}, Connective: "or"},
		{Output: "average", Antecedents: []string{"service.good"}},
		{Output: "generous", Antecedents: []string{"service.excellent", "food.delicious"}, Connective: "or"},
	}
}

// ApplyRules evaluates the rule table. OR is max; single-antecedent rules
// assign directly.
func ApplyRules(s ServiceDegrees, f FoodDegrees) TipDegrees {
	return TipDegrees{
		Cheap:    math.Max(s.Poor, f.Rancid),
		Average:  s.Good,
		Generous: math.Max(s.Excellent, f.Delicious),
	}
}

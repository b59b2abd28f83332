package fuzzy

// ServiceDegrees holds the membership of a service score in each service set.
type ServiceDegrees struct {
	Poor      float64 `json:"poor"`
	Good      float64 `json:"good"`
	Excellent float64 `json:"excellent"`
}

// FoodDegrees holds the membership of a food score in each food set.
type FoodDegrees struct {
	Rancid    float64 `json:"rancid"`
	Delicious float64 `json:"delicious"`
}

// Fuzzify maps the two crisp inputs onto their linguistic sets. Inputs are
// expected to be validated by the caller.
func Fuzzify(service, food float64) (ServiceDegrees, FoodDegrees) {
	s := ServiceDegrees{
		Poor:      ServicePoor(service),
		Good:      ServiceGood(service),
		Excellent: ServiceExcellent(service),
	}
	f := FoodDegrees{
		Rancid:    Rancid(food),
		Delicious: Delicious(food),
	}
	return s, f
}

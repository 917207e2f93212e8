package lulu

import "fmt"

// Cover finishes accepted by PodPackageID.
const (
	FinishMatte  = "matte"
	FinishGlossy = "glossy"
)

// PodPackageID returns the product SKU of a US letter, full color, premium,
// 80# coated white paper, casewrap hardcover book with the given finish.
// Other products can be configured in the provider's price calculator.
func PodPackageID(finish string) (string, error) {
	switch finish {
	case FinishMatte:
		return "0850X1100FCPRECW080CW444MXX", nil
	case FinishGlossy:
		return "0850X1100FCPRECW080CW444GXX", nil
	default:
		return "", fmt.Errorf("finish must be either %q or %q, got %q", FinishMatte, FinishGlossy, finish)
	}
}

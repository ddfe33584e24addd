package pricing

import "strings"

// User-facing validation messages
const (
	MsgProductNameRequired = "Mohon isi nama produk terlebih dahulu."
	MsgCostsRequired       = "Mohon isi komponen biaya (HPP) terlebih dahulu."
)

// ValidationError is reported before any AI request is attempted
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *ValidationError) Error() string {
	return e.Message
}

// ValidateForAnalysis checks the preconditions of an AI pricing analysis:
// a product name and a non-zero total cost.
func ValidateForAnalysis(product ProductData, calc CalculationResult) error {
	if strings.TrimSpace(product.Name) == "" {
		return &ValidationError{Field: "name", Message: MsgProductNameRequired}
	}
	if !calc.ReadyForAnalysis() {
		return &ValidationError{Field: "costs", Message: MsgCostsRequired}
	}
	return nil
}

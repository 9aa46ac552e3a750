package usecase

// DomainError is a business rule violation, safe to show to callers.
type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

func IsDomainError(err error) bool {
	_, ok := err.(*DomainError)
	return ok
}

// TechnicalError is an infrastructure failure (provider or store).
type TechnicalError struct {
	Code    string
	Message string
}

func (e *TechnicalError) Error() string {
	return e.Message
}

func IsTechnicalError(err error) bool {
	_, ok := err.(*TechnicalError)
	return ok
}

// storeError classifies a row-store failure. Every sync treats the store
// the same way, so the code is shared.
func storeError(err error) *TechnicalError {
	return &TechnicalError{
		Code:    "ROWSTORE_ERROR",
		Message: "row store operation failed: " + err.Error(),
	}
}

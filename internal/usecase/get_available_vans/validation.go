package get_available_vans

import "fmt"

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req == nil {
		return fmt.Errorf("%w: request is required", ErrInvalidInput)
	}

	if req.Day.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if err := req.Time.Validate(); err != nil {
		return fmt.Errorf("%w: invalid schedule: %v", ErrInvalidInput, err)
	}

	if req.Duration != nil {
		if err := req.Duration.Validate(); err != nil {
			return fmt.Errorf("%w: invalid duration: %v", ErrInvalidInput, err)
		}
	}

	return nil
}

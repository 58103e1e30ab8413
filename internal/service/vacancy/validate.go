package vacancy

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/heartmarshall/vacancy-normalizer/internal/domain"
)

// checkStruct validates s against its tags and translates failures into a
// domain.ValidationError.
func (p *Pipeline) checkStruct(s any) error {
	err := p.validate.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	fields := make([]domain.FieldError, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, domain.FieldError{
			Field:   fe.Namespace(),
			Message: fe.Tag(),
		})
	}
	return domain.NewValidationErrors(fields)
}

package schema

import (
	"fmt"

	"paint-estimate-be/internal/entity"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ValidateRoom checks the full canonical-room invariant. A room failing it is
// rejected outright, never partially admitted or coerced further.
func ValidateRoom(room entity.CanonicalRoom) error {
	if err := validate.Struct(room); err != nil {
		return fmt.Errorf("room %q failed validation: %w", room.Id, err)
	}
	return nil
}

// ValidateLineItem applies the same validation gate to derived items before
// they are returned from generation.
func ValidateLineItem(item entity.LineItem) error {
	if err := validate.Struct(item); err != nil {
		return fmt.Errorf("line item %q failed validation: %w", item.Description, err)
	}
	return nil
}

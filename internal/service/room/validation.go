package room

import (
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

const roomIdMaxLength = 64

// room ids are opaque; only their length is bounded
var roomIdRule = []validation.Rule{
	validation.Required,
	validation.RuneLength(1, roomIdMaxLength),
}

// A max length <= 0 means unlimited.
func (s service) nameRule() []validation.Rule {
	if s.config.NameMaxLength <= 0 {
		return []validation.Rule{validation.Required}
	}

	return []validation.Rule{
		validation.Required,
		validation.RuneLength(1, s.config.NameMaxLength),
	}
}

func (s service) chatTextRule() []validation.Rule {
	if s.config.ChatMessageMaxLength <= 0 {
		return nil
	}

	return []validation.Rule{
		validation.RuneLength(0, s.config.ChatMessageMaxLength),
	}
}

func validationError(err error) error {
	if err == nil {
		return nil
	}

	return fmt.Errorf("%w: %w", ErrValidation, err)
}

func validateRoomId(roomId string) error {
	return validationError(validation.Validate(roomId, roomIdRule...))
}

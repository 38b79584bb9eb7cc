package editor

import (
	"fmt"

	"github.com/m04kA/SMC-PetCareService/internal/domain"
)

// OperationType тип операции редактирования
type OperationType string

const (
	OpToggle      OperationType = "toggle"
	OpSetPrice    OperationType = "set_price"
	OpSetQuantity OperationType = "set_quantity"
)

// Operation одно действие пользователя над черновиком.
// Value - сырой ввод: цена через domain.ParsePrice (мусор -> 0),
// количество через domain.ParseQuantity (мусор -> 1).
type Operation struct {
	Type    OperationType
	Service domain.ServiceKey
	Value   string
}

func (op Operation) apply(draft *domain.ExtraServices) error {
	switch op.Type {
	case OpToggle:
		service, err := domain.ParseServiceKey(string(op.Service))
		if err != nil {
			return err
		}
		return draft.Toggle(service)

	case OpSetPrice:
		service, err := domain.ParseServiceKey(string(op.Service))
		if err != nil {
			return err
		}
		return draft.SetPrice(service, domain.ParsePrice(op.Value))

	case OpSetQuantity:
		if op.Service != "" && op.Service != domain.ServiceExtraDays {
			return fmt.Errorf("%w: quantity applies only to %s, got %q",
				ErrInvalidOperation, domain.ServiceExtraDays, op.Service)
		}
		draft.SetQuantity(domain.ParseQuantity(op.Value))
		return nil

	default:
		return fmt.Errorf("%w: %q", ErrUnknownOperation, op.Type)
	}
}

func wrapOperationError(index int, err error) error {
	return fmt.Errorf("operation #%d: %w", index+1, err)
}

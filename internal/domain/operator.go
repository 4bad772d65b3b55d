package domain

import "github.com/google/uuid"

type Operator struct {
	ID                          uuid.UUID
	EstateID                    uuid.UUID
	Name                        string
	RequireCustomMerchantNumber bool
	RequireCustomTerminalNumber bool
}

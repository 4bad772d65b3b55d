package domain

import "github.com/google/uuid"

// DefaultUser is attached to every known estate. There is no user store;
// the console only ever signs in as this account.
var DefaultUser = EstateUser{ //nolint:gochecknoglobals // fixed fixture
	ID:    uuid.MustParse("5f1e9b8e-3c2a-4d7b-9a61-0c8e4f2d7a10"),
	Email: "estateuser@testestate1.co.uk",
	Role:  "Estate",
}

package checkout

import "errors"

var (
	ErrInvalidRequest = errors.New("invalid request")
	ErrAlreadyMember  = errors.New("already an active member of this club")
	ErrGatewaySession = errors.New("failed to create checkout session")
	ErrGatewayLookup  = errors.New("failed to retrieve checkout session")
	ErrPersistence    = errors.New("failed to persist membership")
)

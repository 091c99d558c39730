package interfaces

import "context"

// IIdentifierSource produces raw customer identifiers. Manual text entry and
// an external QR-decode step both satisfy it; the service treats either as an
// opaque string producer and validates the value afterwards.
type IIdentifierSource interface {
	Next(ctx context.Context) (string, error)
}

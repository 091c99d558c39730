package usecase

import (
	"context"
	"errors"
	"log"
	"strings"

	"banksampah/internal/domain/entities"
	"banksampah/internal/usecase/interfaces"

	qrcode "github.com/skip2/go-qrcode"
)

var (
	ErrInvalidIdentifier = errors.New("invalid customer identifier")
	ErrCustomerNotFound  = errors.New("customer not found")
)

const qrCardSizePx = 256

// ICustomerUseCase resolves raw identifiers against the customer directory.
//
// A raw identifier comes either from manual text entry or from an external
// QR-decode step; both arrive as opaque strings and are treated uniformly.
// Lookups are pure reads with no retries; the caller decides whether to
// re-prompt.
type ICustomerUseCase interface {
	Resolve(ctx context.Context, rawIdentifier string) (entities.Customer, error)
	ResolveNext(ctx context.Context, src interfaces.IIdentifierSource) (entities.Customer, error)
	QRCardPNG(ctx context.Context, rawIdentifier string) ([]byte, error)
}

type CustomerUseCase struct {
	repo interfaces.ICustomerRepository
}

var _ ICustomerUseCase = (*CustomerUseCase)(nil)

func NewCustomerUseCase(repo interfaces.ICustomerRepository) *CustomerUseCase {
	return &CustomerUseCase{repo: repo}
}

func (u *CustomerUseCase) Resolve(ctx context.Context, rawIdentifier string) (entities.Customer, error) {
	id := strings.TrimSpace(rawIdentifier)
	if id == "" {
		return entities.Customer{}, ErrInvalidIdentifier
	}

	customer, err := u.repo.GetByID(ctx, id)
	if err != nil {
		log.Printf("[customer][usecase] resolve lookup failed customer_id=%s err=%v", id, err)
		return entities.Customer{}, err
	}
	if customer.ID == "" {
		return entities.Customer{}, ErrCustomerNotFound
	}
	return customer, nil
}

// ResolveNext pulls the next identifier from a source (keyboard, scanner
// pipeline) and resolves it.
func (u *CustomerUseCase) ResolveNext(ctx context.Context, src interfaces.IIdentifierSource) (entities.Customer, error) {
	raw, err := src.Next(ctx)
	if err != nil {
		log.Printf("[customer][usecase] identifier source failed err=%v", err)
		return entities.Customer{}, err
	}
	return u.Resolve(ctx, raw)
}

// QRCardPNG renders the member card QR for a customer. The encoded payload is
// the customer id, which is exactly what the counter scanner feeds back into
// Resolve.
func (u *CustomerUseCase) QRCardPNG(ctx context.Context, rawIdentifier string) ([]byte, error) {
	customer, err := u.Resolve(ctx, rawIdentifier)
	if err != nil {
		return nil, err
	}

	png, err := qrcode.Encode(customer.ID, qrcode.Medium, qrCardSizePx)
	if err != nil {
		log.Printf("[customer][usecase] qr encode failed customer_id=%s err=%v", customer.ID, err)
		return nil, err
	}
	return png, nil
}

package usecase

import (
	"context"
	"errors"
	"log"
	"strings"
	"sync"

	"banksampah/internal/domain/entities"
	"banksampah/internal/usecase/interfaces"
)

var (
	ErrCartNotFound       = errors.New("cart not found")
	ErrCategoryNotFound   = errors.New("waste category not found")
	ErrCheckoutInProgress = errors.New("a checkout is already in progress for this cart")
)

// ICartUseCase manages the live carts being assembled at the deposit counter.
//
// Carts exist in process memory only. Each operator session owns one cart at a
// time; the registry mutex only guards the shared map and the per-cart
// checkout flag, not concurrent use of a single cart by multiple operators
// (which the session model rules out).
type ICartUseCase interface {
	Create(ctx context.Context) (entities.Cart, error)
	Get(ctx context.Context, cartID string) (entities.Cart, error)
	BindCustomer(ctx context.Context, cartID, rawIdentifier string) (entities.Customer, error)
	AddItem(ctx context.Context, cartID, categoryID string, weightKg float64) (entities.LineItem, error)
	RemoveItem(ctx context.Context, cartID, lineItemID string) error
	Discard(ctx context.Context, cartID string) error
}

type cartSession struct {
	cart             *entities.Cart
	checkoutInFlight bool
}

type CartUseCase struct {
	resolver   ICustomerUseCase
	categories interfaces.ICategoryRepository

	mu       sync.Mutex
	sessions map[string]*cartSession
}

var _ ICartUseCase = (*CartUseCase)(nil)

func NewCartUseCase(resolver ICustomerUseCase, categories interfaces.ICategoryRepository) *CartUseCase {
	return &CartUseCase{
		resolver:   resolver,
		categories: categories,
		sessions:   make(map[string]*cartSession),
	}
}

func (u *CartUseCase) Create(ctx context.Context) (entities.Cart, error) {
	cart := entities.NewCart()

	u.mu.Lock()
	u.sessions[cart.ID] = &cartSession{cart: cart}
	u.mu.Unlock()

	log.Printf("[cart][usecase] created cart_id=%s", cart.ID)
	return cartView(cart), nil
}

func (u *CartUseCase) Get(ctx context.Context, cartID string) (entities.Cart, error) {
	u.mu.Lock()
	defer u.mu.Unlock()

	session, err := u.session(cartID)
	if err != nil {
		return entities.Cart{}, err
	}
	return cartView(session.cart), nil
}

// BindCustomer resolves the raw identifier (typed or QR-decoded) and binds the
// resulting customer to the cart.
func (u *CartUseCase) BindCustomer(ctx context.Context, cartID, rawIdentifier string) (entities.Customer, error) {
	customer, err := u.resolver.Resolve(ctx, rawIdentifier)
	if err != nil {
		return entities.Customer{}, err
	}

	u.mu.Lock()
	defer u.mu.Unlock()

	session, err := u.session(cartID)
	if err != nil {
		return entities.Customer{}, err
	}
	if err := session.cart.BindCustomer(customer); err != nil {
		return entities.Customer{}, err
	}

	log.Printf("[cart][usecase] customer bound cart_id=%s customer_id=%s", cartID, customer.ID)
	return customer, nil
}

// AddItem snapshots the category's current price into a new line item. The
// catalog read happens before the registry lock; the snapshot keeps the item
// immune to later catalog edits either way.
func (u *CartUseCase) AddItem(ctx context.Context, cartID, categoryID string, weightKg float64) (entities.LineItem, error) {
	category, err := u.findCategory(ctx, categoryID)
	if err != nil {
		return entities.LineItem{}, err
	}

	u.mu.Lock()
	defer u.mu.Unlock()

	session, err := u.session(cartID)
	if err != nil {
		return entities.LineItem{}, err
	}

	item, err := session.cart.AddItem(category, weightKg)
	if err != nil {
		return entities.LineItem{}, err
	}
	log.Printf("[cart][usecase] item added cart_id=%s category_id=%s weight_kg=%v subtotal=%v", cartID, categoryID, weightKg, item.Subtotal())
	return item, nil
}

func (u *CartUseCase) RemoveItem(ctx context.Context, cartID, lineItemID string) error {
	u.mu.Lock()
	defer u.mu.Unlock()

	session, err := u.session(cartID)
	if err != nil {
		return err
	}
	if err := session.cart.RemoveItem(lineItemID); err != nil {
		return err
	}
	log.Printf("[cart][usecase] item removed cart_id=%s item_id=%s", cartID, lineItemID)
	return nil
}

// Discard aborts the cart and drops it from the registry. Aborted is terminal;
// the operator starts over with a fresh cart.
func (u *CartUseCase) Discard(ctx context.Context, cartID string) error {
	u.mu.Lock()
	defer u.mu.Unlock()

	session, err := u.session(cartID)
	if err != nil {
		return err
	}
	if session.checkoutInFlight {
		return ErrCheckoutInProgress
	}
	session.cart.MarkAborted()
	delete(u.sessions, cartID)
	log.Printf("[cart][usecase] discarded cart_id=%s", cartID)
	return nil
}

// beginCheckout freezes the cart for settlement and flags it so a second
// checkout cannot start while one is outstanding.
func (u *CartUseCase) beginCheckout(cartID string) (entities.CartSnapshot, error) {
	u.mu.Lock()
	defer u.mu.Unlock()

	session, err := u.session(cartID)
	if err != nil {
		return entities.CartSnapshot{}, err
	}
	if session.checkoutInFlight {
		return entities.CartSnapshot{}, ErrCheckoutInProgress
	}

	snapshot, err := session.cart.Snapshot()
	if err != nil {
		return entities.CartSnapshot{}, err
	}
	session.checkoutInFlight = true
	return snapshot, nil
}

// endCheckout releases the in-flight flag. On success the cart reaches its
// terminal committed state and leaves the registry; on failure it stays live
// so the caller can retry with the same idempotency key or discard it.
func (u *CartUseCase) endCheckout(cartID string, committed bool) {
	u.mu.Lock()
	defer u.mu.Unlock()

	session, ok := u.sessions[cartID]
	if !ok {
		return
	}
	session.checkoutInFlight = false
	if committed {
		session.cart.MarkCommitted()
		delete(u.sessions, cartID)
	}
}

func (u *CartUseCase) session(cartID string) (*cartSession, error) {
	session, ok := u.sessions[strings.TrimSpace(cartID)]
	if !ok {
		return nil, ErrCartNotFound
	}
	return session, nil
}

func (u *CartUseCase) findCategory(ctx context.Context, categoryID string) (entities.WasteCategory, error) {
	categoryID = strings.TrimSpace(categoryID)
	if categoryID == "" {
		return entities.WasteCategory{}, ErrCategoryNotFound
	}

	categories, err := u.categories.List(ctx)
	if err != nil {
		log.Printf("[cart][usecase] catalog read failed err=%v", err)
		return entities.WasteCategory{}, ErrCatalogUnavailable
	}
	for _, category := range categories {
		if category.ID == categoryID {
			return category, nil
		}
	}
	return entities.WasteCategory{}, ErrCategoryNotFound
}

// cartView returns a copy safe to hand outside the registry lock.
func cartView(cart *entities.Cart) entities.Cart {
	view := *cart
	view.Items = make([]entities.LineItem, len(cart.Items))
	copy(view.Items, cart.Items)
	if cart.Customer != nil {
		customer := *cart.Customer
		view.Customer = &customer
	}
	return view
}

package bridge

import (
	"context"

	"github.com/anpos/pos-client/internal/models"
)

// Remote command names, one per backend operation
const (
	cmdCreateCart             = "create_cart"
	cmdAddCartItem            = "add_cart_item"
	cmdRemoveCartItem         = "remove_cart_item"
	cmdUpdateCartItemQuantity = "update_cart_item_quantity"
	cmdParkCart               = "park_cart"
	cmdActivateCart           = "activate_cart"
	cmdCheckoutCart           = "checkout_cart"
	cmdConfirmPayment         = "confirm_payment"
	cmdCancelCart             = "cancel_cart"
	cmdListActiveCart         = "list_active_cart"
	cmdListParkedCarts        = "list_parked_carts"
	cmdListCartItems          = "list_cart_items"
	cmdCleanupExpiredCarts    = "cleanup_expired_carts"
)

type createCartParams struct {
	CartName string `json:"cart_name"`
}

type addCartItemParams struct {
	CartID         int64   `json:"cart_id"`
	ProductID      int64   `json:"product_id"`
	ScannedBarcode *string `json:"scanned_barcode"`
	Quantity       int     `json:"quantity"`
	Price          float64 `json:"price"`
	PurchasingType string  `json:"purchasing_type"`
	Discount       float64 `json:"discount"`
}

type removeCartItemParams struct {
	CartID         int64  `json:"cart_id"`
	ProductID      int64  `json:"product_id"`
	PurchasingType string `json:"purchasing_type"`
}

type updateQuantityParams struct {
	CartID         int64  `json:"cart_id"`
	ProductID      int64  `json:"product_id"`
	PurchasingType string `json:"purchasing_type"`
	Quantity       int    `json:"quantity"`
}

type parkCartParams struct {
	CartID   int64  `json:"cart_id"`
	CartName string `json:"cart_name"`
}

type cartIDParams struct {
	CartID int64 `json:"cart_id"`
}

type checkoutCartParams struct {
	CartID     int64  `json:"cart_id"`
	StoreID    string `json:"store_id"`
	StoremanID string `json:"storeman_id"`
}

type cleanupParams struct {
	TTLMinutes int64 `json:"ttl_minutes"`
}

// CreateCart opens a new active cart under the given name
func (c *Client) CreateCart(ctx context.Context, cartName string) (*models.Cart, error) {
	var cart models.Cart
	if err := c.call(ctx, cmdCreateCart, createCartParams{CartName: cartName}, &cart); err != nil {
		return nil, err
	}
	return &cart, nil
}

// AddCartItem appends a priced line to an active cart
func (c *Client) AddCartItem(ctx context.Context, cartID, productID int64, scannedBarcode *string, quantity int, price float64, purchasingType string, discount float64) (*models.CartItem, error) {
	params := addCartItemParams{
		CartID:         cartID,
		ProductID:      productID,
		ScannedBarcode: scannedBarcode,
		Quantity:       quantity,
		Price:          price,
		PurchasingType: purchasingType,
		Discount:       discount,
	}

	var item models.CartItem
	if err := c.call(ctx, cmdAddCartItem, params, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

// RemoveCartItem drops a line identified by product and pricing type
func (c *Client) RemoveCartItem(ctx context.Context, cartID, productID int64, purchasingType string) error {
	return c.call(ctx, cmdRemoveCartItem, removeCartItemParams{
		CartID:         cartID,
		ProductID:      productID,
		PurchasingType: purchasingType,
	}, nil)
}

// UpdateCartItemQuantity changes a line's quantity
func (c *Client) UpdateCartItemQuantity(ctx context.Context, cartID, productID int64, purchasingType string, quantity int) error {
	return c.call(ctx, cmdUpdateCartItemQuantity, updateQuantityParams{
		CartID:         cartID,
		ProductID:      productID,
		PurchasingType: purchasingType,
		Quantity:       quantity,
	}, nil)
}

// ParkCart suspends an active cart under a name for later resumption
func (c *Client) ParkCart(ctx context.Context, cartID int64, cartName string) error {
	return c.call(ctx, cmdParkCart, parkCartParams{CartID: cartID, CartName: cartName}, nil)
}

// ActivateCart resumes a parked cart
func (c *Client) ActivateCart(ctx context.Context, cartID int64) error {
	return c.call(ctx, cmdActivateCart, cartIDParams{CartID: cartID}, nil)
}

// CheckoutCart moves the cart to pending checkout and returns the
// backend-assigned invoice identifier
func (c *Client) CheckoutCart(ctx context.Context, cartID int64, storeID, storemanID string) (string, error) {
	var invoiceID string
	err := c.call(ctx, cmdCheckoutCart, checkoutCartParams{
		CartID:     cartID,
		StoreID:    storeID,
		StoremanID: storemanID,
	}, &invoiceID)
	if err != nil {
		return "", err
	}
	return invoiceID, nil
}

// ConfirmPayment finalizes a checked-out cart
func (c *Client) ConfirmPayment(ctx context.Context, cartID int64) error {
	return c.call(ctx, cmdConfirmPayment, cartIDParams{CartID: cartID}, nil)
}

// CancelCart discards a cart and its items
func (c *Client) CancelCart(ctx context.Context, cartID int64) error {
	return c.call(ctx, cmdCancelCart, cartIDParams{CartID: cartID}, nil)
}

// ListActiveCart returns the active cart, or nil when there is none
func (c *Client) ListActiveCart(ctx context.Context) (*models.Cart, error) {
	var cart *models.Cart
	if err := c.call(ctx, cmdListActiveCart, struct{}{}, &cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// ListParkedCarts returns every parked cart
func (c *Client) ListParkedCarts(ctx context.Context) ([]models.Cart, error) {
	var carts []models.Cart
	if err := c.call(ctx, cmdListParkedCarts, struct{}{}, &carts); err != nil {
		return nil, err
	}
	return carts, nil
}

// ListCartItems returns the lines of one cart
func (c *Client) ListCartItems(ctx context.Context, cartID int64) ([]models.CartItem, error) {
	var items []models.CartItem
	if err := c.call(ctx, cmdListCartItems, cartIDParams{CartID: cartID}, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// CleanupExpiredCarts asks the backend to purge active carts idle for
// longer than ttlMinutes
func (c *Client) CleanupExpiredCarts(ctx context.Context, ttlMinutes int64) error {
	return c.call(ctx, cmdCleanupExpiredCarts, cleanupParams{TTLMinutes: ttlMinutes}, nil)
}

package bridge

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/golang-jwt/jwt/v4"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/anpos/pos-client/internal/config"
)

const testSecret = "test-secret"

// rawRequest is the backend's view of an envelope
type rawRequest struct {
	ID     string          `json:"id"`
	Cmd    string          `json:"cmd"`
	Params json.RawMessage `json:"params"`
}

// dialFake starts a scripted cart backend and connects a client to it.
// handle produces the response body for each request; the id is filled
// in by the loop.
func dialFake(t *testing.T, handle func(rawRequest) response) *Client {
	t.Helper()

	upgrader := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()

		for {
			var req rawRequest
			if err := conn.ReadJSON(&req); err != nil {
				return
			}
			resp := handle(req)
			resp.ID = req.ID
			if err := conn.WriteJSON(resp); err != nil {
				return
			}
		}
	}))
	t.Cleanup(srv.Close)

	cfg := config.Bridge{
		URL:             "ws" + strings.TrimPrefix(srv.URL, "http"),
		Secret:          testSecret,
		ClientID:        "terminal-9",
		TokenTTLMinutes: 5,
	}

	client, err := Dial(cfg, zap.NewNop())
	if err != nil {
		t.Fatalf("Dial() error = %v", err)
	}
	t.Cleanup(func() { client.Close() })

	return client
}

func resultOf(v interface{}) response {
	raw, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return response{Result: raw}
}

func errorOf(msg string) response {
	return response{Error: &msg}
}

func TestCreateCart(t *testing.T) {
	client := dialFake(t, func(req rawRequest) response {
		if req.Cmd != "create_cart" {
			t.Errorf("cmd = %q, want create_cart", req.Cmd)
		}

		var params struct {
			CartName string `json:"cart_name"`
		}
		if err := json.Unmarshal(req.Params, &params); err != nil {
			t.Errorf("decode params: %v", err)
		}
		if params.CartName != "counter 1" {
			t.Errorf("cart_name = %q, want counter 1", params.CartName)
		}

		return resultOf(map[string]interface{}{
			"cart_id":   int64(7),
			"cart_name": params.CartName,
			"status":    "active",
			"added_at":  "2026-08-30 10:15:00",
		})
	})

	cart, err := client.CreateCart(context.Background(), "counter 1")
	if err != nil {
		t.Fatalf("CreateCart() error = %v", err)
	}
	if cart.CartID != 7 || cart.Status != "active" {
		t.Errorf("cart = %+v", cart)
	}
}

func TestAddCartItemParamShapes(t *testing.T) {
	client := dialFake(t, func(req rawRequest) response {
		var params map[string]interface{}
		if err := json.Unmarshal(req.Params, &params); err != nil {
			t.Errorf("decode params: %v", err)
			return errorOf("bad params")
		}

		for _, key := range []string{"cart_id", "product_id", "scanned_barcode", "quantity", "price", "purchasing_type", "discount"} {
			if _, ok := params[key]; !ok {
				t.Errorf("params missing key %q", key)
			}
		}

		return resultOf(map[string]interface{}{
			"cart_id":         int64(7),
			"product_id":      int64(10001),
			"scanned_barcode": "1234567890123",
			"quantity":        2,
			"price":           2.5,
			"purchasing_type": "single",
			"discount":        0.0,
		})
	})

	barcode := "1234567890123"
	item, err := client.AddCartItem(context.Background(), 7, 10001, &barcode, 2, 2.5, "single", 0)
	if err != nil {
		t.Fatalf("AddCartItem() error = %v", err)
	}
	if item.Quantity != 2 || item.PurchasingType != "single" {
		t.Errorf("item = %+v", item)
	}
}

func TestCheckoutCartReturnsInvoiceID(t *testing.T) {
	client := dialFake(t, func(req rawRequest) response {
		return resultOf("S1_ADM_20260830_001")
	})

	invoiceID, err := client.CheckoutCart(context.Background(), 7, "S1", "ADM")
	if err != nil {
		t.Fatalf("CheckoutCart() error = %v", err)
	}
	if invoiceID != "S1_ADM_20260830_001" {
		t.Errorf("invoiceID = %q", invoiceID)
	}
}

// Backend failures must reach the caller with the message untouched
func TestRemoteErrorPassesThrough(t *testing.T) {
	client := dialFake(t, func(req rawRequest) response {
		return errorOf("Cart is not active")
	})

	_, err := client.AddCartItem(context.Background(), 7, 10001, nil, 1, 2.5, "single", 0)
	if err == nil {
		t.Fatal("expected error")
	}

	var remoteErr *RemoteError
	if !errors.As(err, &remoteErr) {
		t.Fatalf("error type = %T, want *RemoteError", err)
	}
	if err.Error() != "Cart is not active" {
		t.Errorf("message = %q, want backend message verbatim", err.Error())
	}
	if remoteErr.Cmd != "add_cart_item" {
		t.Errorf("cmd = %q", remoteErr.Cmd)
	}
}

func TestListActiveCartMayBeEmpty(t *testing.T) {
	client := dialFake(t, func(req rawRequest) response {
		return response{Result: json.RawMessage("null")}
	})

	cart, err := client.ListActiveCart(context.Background())
	if err != nil {
		t.Fatalf("ListActiveCart() error = %v", err)
	}
	if cart != nil {
		t.Errorf("cart = %+v, want nil", cart)
	}
}

func TestListParkedCarts(t *testing.T) {
	client := dialFake(t, func(req rawRequest) response {
		return resultOf([]map[string]interface{}{
			{"cart_id": int64(1), "cart_name": "mrs. lan", "status": "parked", "added_at": "2026-08-30 09:00:00"},
			{"cart_id": int64(2), "cart_name": "delivery", "status": "parked", "added_at": "2026-08-30 09:30:00"},
		})
	})

	carts, err := client.ListParkedCarts(context.Background())
	if err != nil {
		t.Fatalf("ListParkedCarts() error = %v", err)
	}
	if len(carts) != 2 {
		t.Fatalf("got %d carts, want 2", len(carts))
	}
	if carts[0].CartName != "mrs. lan" || carts[1].CartID != 2 {
		t.Errorf("carts = %+v", carts)
	}
}

func TestCleanupExpiredCarts(t *testing.T) {
	gotTTL := make(chan int64, 1)
	client := dialFake(t, func(req rawRequest) response {
		var params struct {
			TTLMinutes int64 `json:"ttl_minutes"`
		}
		if err := json.Unmarshal(req.Params, &params); err != nil {
			t.Errorf("decode params: %v", err)
		}
		gotTTL <- params.TTLMinutes
		return response{}
	})

	if err := client.CleanupExpiredCarts(context.Background(), 120); err != nil {
		t.Fatalf("CleanupExpiredCarts() error = %v", err)
	}
	if ttl := <-gotTTL; ttl != 120 {
		t.Errorf("ttl_minutes = %d, want 120", ttl)
	}
}

func TestDialSendsBearerToken(t *testing.T) {
	authHeader := make(chan string, 1)

	upgrader := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader <- r.Header.Get("Authorization")
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		conn.Close()
	}))
	defer srv.Close()

	cfg := config.Bridge{
		URL:             "ws" + strings.TrimPrefix(srv.URL, "http"),
		Secret:          testSecret,
		ClientID:        "terminal-9",
		TokenTTLMinutes: 5,
	}

	client, err := Dial(cfg, zap.NewNop())
	if err != nil {
		t.Fatalf("Dial() error = %v", err)
	}
	defer client.Close()

	header := <-authHeader
	tokenString, ok := strings.CutPrefix(header, "Bearer ")
	if !ok {
		t.Fatalf("Authorization = %q, want Bearer token", header)
	}

	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(testSecret), nil
	})
	if err != nil {
		t.Fatalf("parse token: %v", err)
	}
	if !token.Valid {
		t.Fatal("token invalid")
	}
	if claims.Subject != "terminal-9" {
		t.Errorf("subject = %q, want terminal-9", claims.Subject)
	}
}

func TestCallAfterCloseFails(t *testing.T) {
	client := dialFake(t, func(req rawRequest) response {
		return response{}
	})

	client.Close()

	err := client.CancelCart(context.Background(), 7)
	if !errors.Is(err, ErrClosed) {
		t.Errorf("error = %v, want ErrClosed", err)
	}
}

package payment

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ayush/storefront/backend/internal/logging"
)

type fakeGateway struct {
	amount   int64
	currency string
	receipt  string
	order    json.RawMessage
	err      error
	secret   string
}

func (f *fakeGateway) KeyID() string { return "rzp_test_key" }

func (f *fakeGateway) CreateOrder(_ context.Context, amount int64, currency, receipt string) (json.RawMessage, error) {
	f.amount, f.currency, f.receipt = amount, currency, receipt
	return f.order, f.err
}

func (f *fakeGateway) VerifyPaymentSignature(orderID, paymentID, signature string) bool {
	return NewClient("", "", f.secret).VerifyPaymentSignature(orderID, paymentID, signature)
}

func post(h http.HandlerFunc, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	rec := httptest.NewRecorder()
	h(rec, req)
	return rec
}

func TestToMinorUnits(t *testing.T) {
	assert.Equal(t, int64(50000), ToMinorUnits(500))
	assert.Equal(t, int64(49950), ToMinorUnits(499.5))
	assert.Equal(t, int64(1999), ToMinorUnits(19.99))
	assert.Equal(t, int64(0), ToMinorUnits(0))
}

func TestCreateOrder(t *testing.T) {
	gw := &fakeGateway{order: json.RawMessage(providerOrder)}
	h := NewHandler(gw, "INR", logging.Nop())

	rec := post(h.CreateOrder, "/order", `{"order_id":"cart-7","price":499.5,"order_details":{"items":[1,2]}}`)
	require.Equal(t, http.StatusOK, rec.Code)

	assert.Equal(t, int64(49950), gw.amount)
	assert.Equal(t, "INR", gw.currency)
	assert.Equal(t, "cart-7", gw.receipt)
	assert.JSONEq(t, `{"success":true,"key":"rzp_test_key","data":`+providerOrder+`}`, rec.Body.String())
}

func TestCreateOrder_BadInput(t *testing.T) {
	h := NewHandler(&fakeGateway{}, "INR", logging.Nop())

	for _, body := range []string{`{`, `{"price":0}`, `{"price":-3}`, `{}`} {
		rec := post(h.CreateOrder, "/order", body)
		assert.Equal(t, http.StatusBadRequest, rec.Code, body)
		assert.Contains(t, rec.Body.String(), `"success":false`)
	}
}

func TestCreateOrder_ProviderFailure(t *testing.T) {
	h := NewHandler(&fakeGateway{err: errors.New("timeout")}, "INR", logging.Nop())

	rec := post(h.CreateOrder, "/order", `{"price":10}`)
	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.JSONEq(t, `{"success":false,"error":"payment provider unavailable"}`, rec.Body.String())
}

func TestConfirmPayment(t *testing.T) {
	h := NewHandler(&fakeGateway{secret: "shh"}, "INR", logging.Nop())

	good := `{"razorpay_order_id":"order_1","razorpay_payment_id":"pay_1","razorpay_signature":"` + sign("shh", "order_1", "pay_1") + `"}`
	rec := post(h.ConfirmPayment, "/payment", good)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success":true}`, rec.Body.String())

	bad := `{"razorpay_order_id":"order_1","razorpay_payment_id":"pay_1","razorpay_signature":"` + sign("guess", "order_1", "pay_1") + `"}`
	rec = post(h.ConfirmPayment, "/payment", bad)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"success":false,"error":"payment verification failed"}`, rec.Body.String())

	rec = post(h.ConfirmPayment, "/payment", `{}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

package utils_test

import (
	"testing"

	"github.com/MikeRez0/ypcheckout/internal/core/utils"
	"github.com/stretchr/testify/assert"
)

func TestVerifyPaymentSignature(t *testing.T) {
	const secret = "key_secret"
	pairs := []struct {
		orderID   string
		paymentID string
	}{
		{"order_DBJOWzybf0sJbb", "pay_DGrvPZ4ZBFaXfJ"},
		{"order_1", "pay_1"},
		{"order_ünicode", "pay_ß"},
	}

	for _, p := range pairs {
		t.Run(p.orderID, func(t *testing.T) {
			sig := utils.SignPayment(p.orderID, p.paymentID, secret)
			assert.True(t, utils.VerifyPaymentSignature(p.orderID, p.paymentID, sig, secret))
			assert.False(t, utils.VerifyPaymentSignature(p.orderID, p.paymentID, sig, "other"))
			assert.False(t, utils.VerifyPaymentSignature(p.paymentID, p.orderID, sig, secret))

			raw := []byte(sig)
			for i := range raw {
				for bit := 0; bit < 8; bit++ {
					mutated := make([]byte, len(raw))
					copy(mutated, raw)
					mutated[i] ^= 1 << bit
					assert.False(t, utils.VerifyPaymentSignature(p.orderID, p.paymentID, string(mutated), secret))
				}
			}
		})
	}
}

func TestVerifyPaymentSignature_Malformed(t *testing.T) {
	const secret = "key_secret"
	sig := utils.SignPayment("order_1", "pay_1", secret)

	tests := []struct {
		name      string
		orderID   string
		paymentID string
		signature string
	}{
		{name: "empty signature", orderID: "order_1", paymentID: "pay_1", signature: ""},
		{name: "short signature", orderID: "order_1", paymentID: "pay_1", signature: sig[:10]},
		{name: "uppercase hex", orderID: "order_1", paymentID: "pay_1", signature: "A" + sig[1:]},
		{name: "not hex", orderID: "order_1", paymentID: "pay_1", signature: "zz" + sig[2:]},
		{name: "empty order", orderID: "", paymentID: "pay_1", signature: sig},
		{name: "empty payment", orderID: "order_1", paymentID: "", signature: sig},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			assert.False(t, utils.VerifyPaymentSignature(test.orderID, test.paymentID, test.signature, secret))
		})
	}
}

func TestVerifyWebhookSignature(t *testing.T) {
	body := []byte(`{"event":"payment.captured"}`)
	sig := utils.SignWebhook(body, "whsec")

	assert.True(t, utils.VerifyWebhookSignature(body, sig, "whsec"))
	assert.False(t, utils.VerifyWebhookSignature(body, sig, "key_secret"))
	assert.False(t, utils.VerifyWebhookSignature([]byte(`{"event":"payment.failed"}`), sig, "whsec"))
	assert.False(t, utils.VerifyWebhookSignature(nil, sig, "whsec"))
}

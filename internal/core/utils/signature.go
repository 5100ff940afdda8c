package utils

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
)

// SignPayment returns the lowercase hex HMAC-SHA256 of "orderID|paymentID".
func SignPayment(providerOrderID, providerPaymentID, secret string) string {
	return sign([]byte(providerOrderID+"|"+providerPaymentID), secret)
}

// VerifyPaymentSignature checks a checkout callback signature in constant time.
func VerifyPaymentSignature(providerOrderID, providerPaymentID, signature, secret string) bool {
	if providerOrderID == "" || providerPaymentID == "" {
		return false
	}
	return equalHex(SignPayment(providerOrderID, providerPaymentID, secret), signature)
}

// SignWebhook signs a raw webhook body.
func SignWebhook(body []byte, secret string) string {
	return sign(body, secret)
}

func VerifyWebhookSignature(body []byte, signature, secret string) bool {
	if len(body) == 0 {
		return false
	}
	return equalHex(SignWebhook(body, secret), signature)
}

func sign(message []byte, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(message)
	return hex.EncodeToString(mac.Sum(nil))
}

func equalHex(expected, claimed string) bool {
	if len(claimed) != len(expected) {
		return false
	}
	return hmac.Equal([]byte(expected), []byte(claimed))
}

package utils

import (
	"encoding/binary"
	"errors"
	"strconv"

	"github.com/google/uuid"
)

var errLuhn = errors.New("luhn checksum failed")

// ValidateLuhn checks a numeric string including its trailing check digit.
func ValidateLuhn(number string) error {
	if len(number) < 2 {
		return errLuhn
	}
	check, err := LuhnCheckDigit(number[:len(number)-1])
	if err != nil {
		return err
	}
	if number[len(number)-1] != check {
		return errLuhn
	}
	return nil
}

// LuhnCheckDigit returns the digit that makes payload+digit pass ValidateLuhn.
func LuhnCheckDigit(payload string) (byte, error) {
	sum := luhnSum(payload)
	if sum < 0 {
		return 0, errLuhn
	}
	return byte('0' + (10-sum%10)%10), nil
}

// luhnSum doubles every second digit counting from the right of payload,
// which is where they land once the check digit is appended.
func luhnSum(payload string) int {
	sum := 0
	double := true
	for i := len(payload) - 1; i >= 0; i-- {
		c := payload[i]
		if c < '0' || c > '9' {
			return -1
		}
		d := int(c - '0')
		if double {
			d *= 2
			if d > 9 {
				d -= 9
			}
		}
		sum += d
		double = !double
	}
	return sum
}

// OrderNumber derives a 13 digit customer-facing number from an order id.
func OrderNumber(id uuid.UUID) string {
	n := binary.BigEndian.Uint64(id[:8])%900_000_000_000 + 100_000_000_000
	payload := strconv.FormatUint(n, 10)
	check, _ := LuhnCheckDigit(payload)
	return payload + string(check)
}

// Package format holds the display and validation helpers shared by
// the storefront: naira prices, Nigerian phone numbers, delivery
// estimates and order IDs.
package format

import (
	"fmt"
	"math/rand"
	"strconv"
	"strings"
	"time"
	"unicode"
)

const orderIDAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// FormatPrice renders a whole-naira amount with thousands separators,
// e.g. 3500 -> "₦3,500".
func FormatPrice(amount int) string {
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}
	digits := strconv.Itoa(amount)
	var b strings.Builder
	lead := len(digits) % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
	}
	for i := lead; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(digits[i : i+3])
	}
	return "₦" + sign + b.String()
}

func digitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// ValidateNigerianPhone accepts exactly three encodings: 11 digits
// starting with 0, 13 digits starting with 234, or 10 digits not
// starting with 0. Everything but digits is ignored first.
func ValidateNigerianPhone(phone string) bool {
	digits := digitsOnly(phone)
	return (len(digits) == 11 && strings.HasPrefix(digits, "0")) ||
		(len(digits) == 13 && strings.HasPrefix(digits, "234")) ||
		(len(digits) == 10 && !strings.HasPrefix(digits, "0"))
}

// FormatPhoneNumber normalizes a Nigerian number to the
// "+234 XXX XXX XXXX" display form. Numbers that fit neither the
// local-0 nor the 234 country-code shape come back unchanged.
func FormatPhoneNumber(phone string) string {
	digits := digitsOnly(phone)

	var national string
	switch {
	case strings.HasPrefix(digits, "234"):
		national = digits[3:]
	case strings.HasPrefix(digits, "0"):
		national = digits[1:]
	default:
		return phone
	}
	if len(national) < 7 {
		return phone
	}
	return fmt.Sprintf("+234 %s %s %s", national[:3], national[3:6], national[6:])
}

// FormatDeliveryTime renders minutes as "<m> mins" under an hour,
// otherwise "<h>h" or "<h>h <m>m".
func FormatDeliveryTime(minutes int) string {
	if minutes < 60 {
		return fmt.Sprintf("%d mins", minutes)
	}
	hours := minutes / 60
	remaining := minutes % 60
	if remaining > 0 {
		return fmt.Sprintf("%dh %dm", hours, remaining)
	}
	return fmt.Sprintf("%dh", hours)
}

// GenerateOrderID produces a session-unique order ID: "HK", the last
// six digits of the unix-millisecond clock, and a three-character
// random suffix. Collision-resistant enough for a local order list,
// not cryptographically unique.
func GenerateOrderID() string {
	return newOrderID(time.Now(), rand.Intn)
}

func newOrderID(at time.Time, intn func(int) int) string {
	millis := strconv.FormatInt(at.UnixMilli(), 10)
	if len(millis) > 6 {
		millis = millis[len(millis)-6:]
	}

	suffix := make([]byte, 3)
	for i := range suffix {
		suffix[i] = orderIDAlphabet[intn(len(orderIDAlphabet))]
	}
	return "HK" + millis + string(suffix)
}

package util

import "strings"

// MaskCardNumber скрывает номер карты, оставляя только последние четыре цифры
// "4111111111111111" превращается в "**** **** **** 1111"
// Полный номер карты не сохраняется и не логируется нигде в сервисе
func MaskCardNumber(cardNumber string) string {
	digits := strings.ReplaceAll(cardNumber, " ", "")
	if len(digits) < 4 {
		return "****"
	}

	return "**** **** **** " + digits[len(digits)-4:]
}

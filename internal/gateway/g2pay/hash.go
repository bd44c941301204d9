package g2pay

import (
	"crypto/md5"
	"crypto/sha1"
	"encoding/hex"
	"strings"
)

// GeneratePaymentHash вычисляет контрольную подпись запроса по документации
// G2Pay: конкатенация orderNumber+amount+currency+description+password
// переводится в верхний регистр, от нее берется MD5 в hex, и уже от этой
// hex-строки (как текста, не как байтов дайджеста) берется SHA1 в hex.
// Двухэтапная схема — легаси-контракт шлюза, упрощать до одного хэша нельзя.
func GeneratePaymentHash(orderNumber, amount, currency, description, password string) string {
	toMD5 := strings.ToUpper(orderNumber + amount + currency + description + password)

	md5Sum := md5.Sum([]byte(toMD5))
	md5Hex := hex.EncodeToString(md5Sum[:])

	sha1Sum := sha1.Sum([]byte(md5Hex))
	return hex.EncodeToString(sha1Sum[:])
}

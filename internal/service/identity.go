package service

import (
	"crypto/sha256"
	"encoding/hex"
)

// NewsID — детерминированный идентификатор новости:
// hex(sha256(source + ":" + url)). Другие поля на него не влияют.
func NewsID(source, url string) string {
	sum := sha256.Sum256([]byte(source + ":" + url))
	return hex.EncodeToString(sum[:])
}

package utils

import (
	"math/rand"
	"time"
)

const charset = "abcdefghijklmnopqrstuvwxyz0123456789"

var randGenerator = rand.New(rand.NewSource(time.Now().UnixNano()))

// GenerateRandomString returns a random lowercase alphanumeric string,
// used for image object keys.
func GenerateRandomString(length int) string {
	b := make([]byte, length)
	for i := range b {
		b[i] = charset[randGenerator.Intn(len(charset))]
	}
	return string(b)
}

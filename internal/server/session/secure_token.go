package session

import (
	"crypto/rand"
	"math/big"
)

const base58 = "123456789ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnopqrstuvwxyz"

// SecureToken generates a unique random base58 token.
// It is used as JWT identifier.
func SecureToken(length int) string {
	if length < 0 {
		panic("session: negative token length")
	}

	token := make([]byte, length)
	max := big.NewInt(int64(len(base58)))

	for i := range token {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			panic(err) // should never occured because max >= 0
		}
		token[i] = base58[n.Int64()]
	}

	return string(token)
}

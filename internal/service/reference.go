package service

import (
	"crypto/rand"
	"math/big"
)

const (
	pnrLength    = 10
	txnDigits    = 12
	txnPrefix    = "TXN"
	defaultTries = 5
)

// ReferenceGenerator issues booking and payment references. Uniqueness is
// enforced by the database; generators only need to spread values well.
type ReferenceGenerator interface {
	PNR() string
	TransactionID() string
}

type randomReferences struct{}

func RandomReferences() ReferenceGenerator {
	return randomReferences{}
}

func (randomReferences) PNR() string {
	return randomDigits(pnrLength)
}

func (randomReferences) TransactionID() string {
	return txnPrefix + randomDigits(txnDigits)
}

var ten = big.NewInt(10)

func randomDigits(n int) string {
	buf := make([]byte, n)
	for i := range buf {
		d, err := rand.Int(rand.Reader, ten)
		if err != nil {
			panic(err)
		}
		buf[i] = byte('0' + d.Int64())
	}
	return string(buf)
}

// Package hasher хранит одноразовые коды в виде argon2id-хеша.
package hasher

import (
	"errors"

	"github.com/alexedwards/argon2id"

	"github.com/BheruLalM/edustore-api/internal/domain"
)

type Hasher struct {
	params *argon2id.Params
}

var _ domain.SecretHasher = (*Hasher)(nil)

// NewForOTP: код живёт минуты, поэтому параметры легче, чем для паролей.
func NewForOTP() *Hasher {
	return &Hasher{params: &argon2id.Params{
		Memory:      16 * 1024,
		Iterations:  1,
		Parallelism: 2,
		SaltLength:  16,
		KeyLength:   32,
	}}
}

// Hash возвращает строку формата $argon2id$v=19$m=...
func (h *Hasher) Hash(plain string) (string, error) {
	if h == nil || h.params == nil {
		return "", errors.New("argon2id params not set")
	}
	return argon2id.CreateHash(plain, h.params)
}

func (h *Hasher) Verify(plain, encodedHash string) (bool, error) {
	return argon2id.ComparePasswordAndHash(plain, encodedHash)
}

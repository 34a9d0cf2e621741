package auth

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/bcrypt"
)

type (
	// HasherParams is the argon2id work factor used for new hashes.
	// Existing hashes carry their own parameters.
	HasherParams struct {
		Time      uint32
		MemoryKiB uint32
		Threads   uint8
	}

	// Hasher produces and checks password hashes.
	//
	// New hashes are argon2id in the usual PHC string format. Verify also
	// understands bcrypt hashes so accounts seeded by other tools still work.
	Hasher struct {
		params  HasherParams
		entropy io.Reader
	}
)

const (
	saltLen = 16
	keyLen  = 32

	// upper bounds applied to parameters read back from storage
	maxMemoryKiB = 1 << 20
	maxTime      = 64
)

var (
	DefaultHasherParams = HasherParams{Time: 3, MemoryKiB: 64 * 1024, Threads: 2}

	errEmptyPassword = errors.New("auth: refusing to hash an empty password")
)

func NewHasher(params HasherParams) *Hasher {
	if params.Time == 0 {
		params.Time = DefaultHasherParams.Time
	}
	if params.MemoryKiB == 0 {
		params.MemoryKiB = DefaultHasherParams.MemoryKiB
	}
	if params.Threads == 0 {
		params.Threads = 1
	}
	return &Hasher{params: params, entropy: rand.Reader}
}

// Hash returns an argon2id PHC string for password using a fresh random salt.
func (h *Hasher) Hash(password string) (string, error) {
	if len(password) == 0 {
		return "", errEmptyPassword
	}
	salt := make([]byte, saltLen)
	if _, err := io.ReadFull(h.entropy, salt); err != nil {
		return "", fmt.Errorf("auth: unable to generate salt, cause %w", err)
	}
	key := argon2.IDKey([]byte(password), salt, h.params.Time, h.params.MemoryKiB, h.params.Threads, keyLen)
	return fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version, h.params.MemoryKiB, h.params.Time, h.params.Threads,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key)), nil
}

// Verify reports whether password produces stored. A stored value that
// cannot be parsed simply does not match.
func (h *Hasher) Verify(password, stored string) bool {
	switch {
	case strings.HasPrefix(stored, "$argon2id$"):
		return verifyArgon2id(password, stored)
	case strings.HasPrefix(stored, "$2a$"), strings.HasPrefix(stored, "$2b$"), strings.HasPrefix(stored, "$2y$"):
		return bcrypt.CompareHashAndPassword([]byte(stored), []byte(password)) == nil
	}
	return false
}

func verifyArgon2id(password, stored string) bool {
	// "", "argon2id", "v=19", "m=..,t=..,p=..", salt, key
	parts := strings.Split(stored, "$")
	if len(parts) != 6 {
		return false
	}
	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil || version != argon2.Version {
		return false
	}
	var memory, time uint32
	var threads uint8
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &memory, &time, &threads); err != nil {
		return false
	}
	if threads == 0 || time == 0 || time > maxTime || memory == 0 || memory > maxMemoryKiB {
		return false
	}
	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil || len(salt) == 0 {
		return false
	}
	want, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil || len(want) == 0 {
		return false
	}
	got := argon2.IDKey([]byte(password), salt, time, memory, threads, uint32(len(want)))
	return subtle.ConstantTimeCompare(got, want) == 1
}

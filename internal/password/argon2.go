// Package password hashes and verifies credentials with argon2id,
// encoded in PHC string format.
package password

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"golang.org/x/crypto/argon2"
)

const (
	minMemoryKB    uint32 = 8 * 1024
	minTimeCost    uint32 = 1
	minParallelism uint8  = 1
	minSaltLength  uint32 = 16
	minKeyLength   uint32 = 16
	algorithmID           = "argon2id"
)

// Config holds argon2id cost parameters. Values below the package minimums
// are rejected by NewArgon2.
type Config struct {
	Memory      uint32 // in KB
	Time        uint32
	Parallelism uint8
	SaltLength  uint32
	KeyLength   uint32
}

// DefaultConfig returns interactive-login cost parameters.
func DefaultConfig() Config {
	return Config{
		Memory:      64 * 1024,
		Time:        3,
		Parallelism: 2,
		SaltLength:  16,
		KeyLength:   32,
	}
}

// Argon2 hashes and verifies passwords with a fixed parameter set.
type Argon2 struct {
	config Config
}

type parsedPHC struct {
	memory      uint32
	time        uint32
	parallelism uint8
	salt        []byte
	hash        []byte
	keyLength   uint32
}

// NewArgon2 validates cfg and returns a hasher.
func NewArgon2(cfg Config) (*Argon2, error) {
	if err := validateConfig(cfg); err != nil {
		return nil, err
	}
	return &Argon2{config: cfg}, nil
}

// Hash derives an argon2id hash over password with a fresh random salt and
// returns it in PHC format.
func (a *Argon2) Hash(password string) (string, error) {
	// Raw string bytes exactly as provided, no Unicode normalization.
	salt := make([]byte, a.config.SaltLength)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return "", err
	}

	hash := argon2.IDKey(
		[]byte(password),
		salt,
		a.config.Time,
		a.config.Memory,
		a.config.Parallelism,
		a.config.KeyLength,
	)

	saltEncoded := base64.StdEncoding.EncodeToString(salt)
	hashEncoded := base64.StdEncoding.EncodeToString(hash)

	return fmt.Sprintf(
		"$%s$v=%d$m=%d,t=%d,p=%d$%s$%s",
		algorithmID,
		argon2.Version,
		a.config.Memory,
		a.config.Time,
		a.config.Parallelism,
		saltEncoded,
		hashEncoded,
	), nil
}

// Verify reports whether password matches encodedHash. Comparison is
// constant-time over the derived keys.
func (a *Argon2) Verify(password string, encodedHash string) (bool, error) {
	parsed, err := parsePHC(encodedHash)
	if err != nil {
		return false, err
	}

	computed := argon2.IDKey(
		[]byte(password),
		parsed.salt,
		parsed.time,
		parsed.memory,
		parsed.parallelism,
		parsed.keyLength,
	)

	return subtle.ConstantTimeCompare(computed, parsed.hash) == 1, nil
}

func validateConfig(cfg Config) error {
	if cfg.Memory < minMemoryKB {
		return fmt.Errorf("argon2 memory must be at least %d KB", minMemoryKB)
	}
	if cfg.Time < minTimeCost {
		return fmt.Errorf("argon2 time cost must be at least %d", minTimeCost)
	}
	if cfg.Parallelism < minParallelism {
		return fmt.Errorf("argon2 parallelism must be at least %d", minParallelism)
	}
	if cfg.SaltLength < minSaltLength {
		return fmt.Errorf("argon2 salt length must be at least %d", minSaltLength)
	}
	if cfg.KeyLength < minKeyLength {
		return fmt.Errorf("argon2 key length must be at least %d", minKeyLength)
	}
	return nil
}

func parsePHC(encoded string) (*parsedPHC, error) {
	parts := strings.Split(encoded, "$")
	if len(parts) != 6 || parts[0] != "" {
		return nil, errors.New("invalid PHC format")
	}
	if parts[1] != algorithmID {
		return nil, fmt.Errorf("unsupported algorithm: %s", parts[1])
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil {
		return nil, errors.New("invalid PHC version")
	}
	if version != argon2.Version {
		return nil, fmt.Errorf("unsupported argon2 version: %d", version)
	}

	params := strings.Split(parts[3], ",")
	if len(params) != 3 {
		return nil, errors.New("invalid PHC parameters")
	}

	memory, err := parsePHCParam(params[0], "m")
	if err != nil {
		return nil, err
	}
	timeCost, err := parsePHCParam(params[1], "t")
	if err != nil {
		return nil, err
	}
	parallelism, err := parsePHCParam(params[2], "p")
	if err != nil {
		return nil, err
	}
	if parallelism > 255 {
		return nil, errors.New("invalid PHC parallelism")
	}

	salt, err := base64.StdEncoding.DecodeString(parts[4])
	if err != nil {
		return nil, errors.New("invalid PHC salt encoding")
	}
	hash, err := base64.StdEncoding.DecodeString(parts[5])
	if err != nil {
		return nil, errors.New("invalid PHC hash encoding")
	}
	if len(salt) == 0 || len(hash) == 0 {
		return nil, errors.New("empty PHC salt or hash")
	}

	return &parsedPHC{
		memory:      uint32(memory),
		time:        uint32(timeCost),
		parallelism: uint8(parallelism),
		salt:        salt,
		hash:        hash,
		keyLength:   uint32(len(hash)),
	}, nil
}

func parsePHCParam(raw, name string) (uint64, error) {
	value, ok := strings.CutPrefix(raw, name+"=")
	if !ok {
		return 0, fmt.Errorf("invalid PHC parameter %q", raw)
	}
	parsed, err := strconv.ParseUint(value, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid PHC parameter %q", raw)
	}
	return parsed, nil
}

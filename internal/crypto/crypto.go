package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"io"

	"golang.org/x/crypto/bcrypt"
)

// keyLen — длина ключа для AES‑256 (в байтах).
const keyLen = 32

// ErrInvalidCiphertext возвращается, когда шифртекст не был создан этой
// схемой либо ключ не совпадает. Явная ошибка вместо «мусорного» plaintext.
var ErrInvalidCiphertext = errors.New("invalid ciphertext")

// DeriveKey превращает произвольную строку секрета из конфигурации
// в 32-байтовый ключ AES-256.
func DeriveKey(secret string) []byte {
	sum := sha256.Sum256([]byte(secret))
	return sum[:keyLen]
}

// Encrypt шифрует данные plain с помощью AES‑GCM и заданного ключа.
// Возвращает nonce || ciphertext одним срезом.
func Encrypt(plain []byte, key []byte) ([]byte, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}
	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, err
	}
	return gcm.Seal(nonce, nonce, plain, nil), nil
}

// Decrypt расшифровывает срез nonce || ciphertext. При любом несоответствии
// формата или ключа возвращает ErrInvalidCiphertext.
func Decrypt(data []byte, key []byte) ([]byte, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}
	if len(data) < gcm.NonceSize() {
		return nil, ErrInvalidCiphertext
	}
	nonce, ciphertext := data[:gcm.NonceSize()], data[gcm.NonceSize():]
	plain, err := gcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, ErrInvalidCiphertext
	}
	return plain, nil
}

// EncryptString шифрует строку и кодирует результат в base64 —
// в таком виде секрет хранится в БД.
func EncryptString(plain string, key []byte) (string, error) {
	out, err := Encrypt([]byte(plain), key)
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(out), nil
}

// DecryptString — обратная операция для EncryptString.
func DecryptString(enc string, key []byte) (string, error) {
	raw, err := base64.StdEncoding.DecodeString(enc)
	if err != nil {
		return "", ErrInvalidCiphertext
	}
	plain, err := Decrypt(raw, key)
	if err != nil {
		return "", err
	}
	return string(plain), nil
}

// HashPassword хеширует пароль учётной записи bcrypt с заданной стоимостью.
func HashPassword(password string, cost int) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// CheckPassword сверяет пароль с хешем.
func CheckPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// HashCost извлекает встроенный в хеш фактор стоимости.
func HashCost(hash string) (int, error) {
	return bcrypt.Cost([]byte(hash))
}

package filestore

import (
	"context"
	"crypto/rand"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	apperrors "github.com/jrsteele09/go-school-client/internal/errors"
	"github.com/jrsteele09/go-school-client/sessions"
	"github.com/pkg/errors"
	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/chacha20poly1305"
)

const (
	formatVersion = 1
	saltLength    = 16

	argonTime    = 1
	argonMemory  = 64 * 1024
	argonThreads = 4
)

var _ sessions.Store = (*Store)(nil)

// fileFormat is the on-disk layout. Plain files carry Values; sealed files
// carry the XChaCha20-Poly1305 ciphertext of the JSON-encoded values.
type fileFormat struct {
	Version    int               `json:"version"`
	Values     map[string]string `json:"values,omitempty"`
	Salt       []byte            `json:"salt,omitempty"`
	Nonce      []byte            `json:"nonce,omitempty"`
	Ciphertext []byte            `json:"ciphertext,omitempty"`
}

// Store persists the session as a single JSON file, the CLI counterpart of
// browser localStorage. The file is re-read on every call so concurrent
// schoolctl processes observe each other's writes.
type Store struct {
	path       string
	passphrase []byte
	lock       sync.Mutex
}

type Option func(*Store)

// WithPassphrase seals the file contents with a key derived from passphrase.
func WithPassphrase(passphrase string) Option {
	return func(s *Store) {
		if passphrase != "" {
			s.passphrase = []byte(passphrase)
		}
	}
}

func New(path string, options ...Option) *Store {
	s := &Store{path: path}
	for _, opt := range options {
		opt(s)
	}
	return s
}

// Path returns the backing file location.
func (s *Store) Path() string {
	return s.path
}

func (s *Store) Get(_ context.Context, key string) (string, error) {
	s.lock.Lock()
	defer s.lock.Unlock()

	values, err := s.load()
	if err != nil {
		return "", err
	}
	v, ok := values[key]
	if !ok {
		return "", apperrors.ErrNotFound
	}
	return v, nil
}

func (s *Store) Set(_ context.Context, key, value string) error {
	s.lock.Lock()
	defer s.lock.Unlock()

	values, err := s.load()
	if err != nil {
		return err
	}
	values[key] = value
	return s.save(values)
}

func (s *Store) Delete(_ context.Context, keys ...string) error {
	s.lock.Lock()
	defer s.lock.Unlock()

	values, err := s.load()
	if err != nil {
		return err
	}
	for _, k := range keys {
		delete(values, k)
	}
	return s.save(values)
}

func (s *Store) load() (map[string]string, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return make(map[string]string), nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "[filestore] read")
	}

	var f fileFormat
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, apperrors.Wrapf(apperrors.ErrSessionCorrupt, "[filestore] %s: %v", s.path, err)
	}

	if f.Ciphertext == nil {
		if f.Values == nil {
			f.Values = make(map[string]string)
		}
		return f.Values, nil
	}

	if s.passphrase == nil {
		return nil, apperrors.ErrSessionKeyRequired
	}
	return s.open(&f)
}

func (s *Store) save(values map[string]string) error {
	f := fileFormat{Version: formatVersion}
	if s.passphrase == nil {
		f.Values = values
	} else if err := s.seal(&f, values); err != nil {
		return err
	}

	data, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return errors.Wrap(err, "[filestore] encode")
	}
	return writeFileAtomic(s.path, data)
}

func (s *Store) seal(f *fileFormat, values map[string]string) error {
	plaintext, err := json.Marshal(values)
	if err != nil {
		return errors.Wrap(err, "[filestore] encode values")
	}

	f.Salt = make([]byte, saltLength)
	if _, err := rand.Read(f.Salt); err != nil {
		return errors.Wrap(err, "[filestore] salt")
	}
	aead, err := chacha20poly1305.NewX(s.deriveKey(f.Salt))
	if err != nil {
		return errors.Wrap(err, "[filestore] cipher")
	}
	f.Nonce = make([]byte, aead.NonceSize())
	if _, err := rand.Read(f.Nonce); err != nil {
		return errors.Wrap(err, "[filestore] nonce")
	}
	f.Ciphertext = aead.Seal(nil, f.Nonce, plaintext, nil)
	return nil
}

func (s *Store) open(f *fileFormat) (map[string]string, error) {
	aead, err := chacha20poly1305.NewX(s.deriveKey(f.Salt))
	if err != nil {
		return nil, errors.Wrap(err, "[filestore] cipher")
	}
	if len(f.Nonce) != aead.NonceSize() {
		return nil, apperrors.Wrapf(apperrors.ErrSessionCorrupt, "[filestore] bad nonce")
	}
	plaintext, err := aead.Open(nil, f.Nonce, f.Ciphertext, nil)
	if err != nil {
		return nil, apperrors.Wrapf(apperrors.ErrSessionCorrupt, "[filestore] wrong passphrase or tampered file")
	}

	values := make(map[string]string)
	if err := json.Unmarshal(plaintext, &values); err != nil {
		return nil, apperrors.Wrapf(apperrors.ErrSessionCorrupt, "[filestore] %v", err)
	}
	return values, nil
}

func (s *Store) deriveKey(salt []byte) []byte {
	return argon2.IDKey(s.passphrase, salt, argonTime, argonMemory, argonThreads, chacha20poly1305.KeySize)
}

func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return errors.Wrap(err, "[filestore] mkdir")
	}

	tmp, err := os.CreateTemp(dir, ".session-*")
	if err != nil {
		return errors.Wrap(err, "[filestore] temp file")
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return errors.Wrap(err, "[filestore] write")
	}
	if err := tmp.Chmod(0o600); err != nil {
		tmp.Close()
		return errors.Wrap(err, "[filestore] chmod")
	}
	if err := tmp.Close(); err != nil {
		return errors.Wrap(err, "[filestore] close")
	}
	return os.Rename(tmp.Name(), path)
}

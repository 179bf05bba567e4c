package server

import (
	"crypto/sha256"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/mhout/cadence/internal/logger"
	"github.com/mhout/cadence/internal/storage"
)

// APIKeyPrefix marks live keys; the bare UUID after it is what gets hashed.
const APIKeyPrefix = "cad_live_"

// GenerateAPIKey mints a new key and returns it alongside the hash to
// persist. The plaintext key is shown once and never stored.
func GenerateAPIKey() (key, hash string) {
	key = APIKeyPrefix + uuid.NewString()
	return key, HashAPIKey(key)
}

// HashAPIKey creates a SHA256 hash of an API key for storage
func HashAPIKey(key string) string {
	sum := sha256.Sum256([]byte(key))
	return fmt.Sprintf("%x", sum)
}

// RegisterAPIKey stores a freshly minted key's hash under the given label.
func RegisterAPIKey(store storage.Store, label string) (string, error) {
	key, hash := GenerateAPIKey()
	if err := store.PutAPIKey(hash, label); err != nil {
		return "", err
	}
	return key, nil
}

func (s *Server) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ah := r.Header.Get("Authorization")
		token, ok := strings.CutPrefix(ah, "Bearer ")
		if !ok || !strings.HasPrefix(token, APIKeyPrefix) {
			authFailuresTotal.Inc()
			http.Error(w, `{"error":"api key required"}`, http.StatusUnauthorized)
			return
		}

		label, found, err := s.store.GetAPIKey(HashAPIKey(token))
		if err != nil {
			logger.Error("Failed to look up api key", "error", err)
			http.Error(w, `{"error":"storage error"}`, http.StatusInternalServerError)
			return
		}
		if !found {
			logger.Warn("Rejected unknown api key")
			authFailuresTotal.Inc()
			http.Error(w, `{"error":"invalid api key"}`, http.StatusUnauthorized)
			return
		}

		logger.Debug("Authenticated request", "key_label", label)
		next.ServeHTTP(w, r)
	})
}

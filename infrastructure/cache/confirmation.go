package cache

import (
	"context"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
)

const confirmationPrefix = "delete-confirm:"

// ConfirmationStore associa um token de confirmação ao id do benefício.
// Um token só pode ser consumido uma vez, e só para o benefício a que pertence:
// apresentado com outro id ele continua válido.
type ConfirmationStore interface {
	Save(ctx context.Context, token, benefitID string, ttl time.Duration) error
	Consume(ctx context.Context, token, benefitID string) (bool, error)
}

// apaga a chave só se o valor for o id esperado
var consumeScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

type redisConfirmationStore struct {
	client *redis.Client
}

func NewRedisConfirmationStore(client *redis.Client) ConfirmationStore {
	return &redisConfirmationStore{client: client}
}

func (s *redisConfirmationStore) Save(ctx context.Context, token, benefitID string, ttl time.Duration) error {
	if err := s.client.Set(ctx, confirmationPrefix+token, benefitID, ttl).Err(); err != nil {
		return errors.Wrap(err, "erro ao gravar confirmação de exclusão")
	}
	return nil
}

func (s *redisConfirmationStore) Consume(ctx context.Context, token, benefitID string) (bool, error) {
	n, err := consumeScript.Run(ctx, s.client, []string{confirmationPrefix + token}, benefitID).Int()
	if err != nil {
		return false, errors.Wrap(err, "erro ao consumir confirmação de exclusão")
	}
	return n == 1, nil
}

type expiring struct {
	value     string
	expiresAt time.Time
}

type memoryConfirmationStore struct {
	mu      sync.Mutex
	now     func() time.Time
	entries map[string]expiring
}

func NewMemoryConfirmationStore() ConfirmationStore {
	return &memoryConfirmationStore{
		now:     time.Now,
		entries: make(map[string]expiring),
	}
}

func (s *memoryConfirmationStore) Save(ctx context.Context, token, benefitID string, ttl time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.purge()
	s.entries[token] = expiring{value: benefitID, expiresAt: s.now().Add(ttl)}
	return nil
}

func (s *memoryConfirmationStore) Consume(ctx context.Context, token, benefitID string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.entries[token]
	if !ok {
		return false, nil
	}
	if !s.now().Before(entry.expiresAt) {
		delete(s.entries, token)
		return false, nil
	}
	if entry.value != benefitID {
		return false, nil
	}

	delete(s.entries, token)
	return true, nil
}

// purge deve ser chamado com o lock adquirido
func (s *memoryConfirmationStore) purge() {
	now := s.now()
	for token, entry := range s.entries {
		if !now.Before(entry.expiresAt) {
			delete(s.entries, token)
		}
	}
}

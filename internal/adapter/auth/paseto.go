package auth

import (
	"fmt"
	"time"

	"aidanwoods.dev/go-paseto"
	"github.com/MikeRez0/ypcheckout/internal/adapter/config"
	"github.com/MikeRez0/ypcheckout/internal/core/domain"
	"github.com/MikeRez0/ypcheckout/internal/core/port"
)

const payloadClaim = "payload"

type PasetoToken struct {
	parser *paseto.Parser
	key    paseto.V4SymmetricKey
	ttl    time.Duration
}

// New builds the token service. Without a configured key a random one is
// generated, so tokens do not survive a restart.
func New(conf *config.Auth) (port.TokenService, error) {
	key := paseto.NewV4SymmetricKey()
	if conf.TokenKey != "" {
		var err error
		key, err = paseto.V4SymmetricKeyFromHex(conf.TokenKey)
		if err != nil {
			return nil, fmt.Errorf("invalid token key: %w", err)
		}
	}
	parser := paseto.NewParser()

	return &PasetoToken{
		parser: &parser,
		key:    key,
		ttl:    conf.TokenTTL,
	}, nil
}

func (p *PasetoToken) CreateToken(userID uint64) (string, error) {
	token := paseto.NewToken()
	now := time.Now()
	token.SetIssuedAt(now)
	token.SetNotBefore(now)
	token.SetExpiration(now.Add(p.ttl))

	err := token.Set(payloadClaim, port.TokenPayload{UserID: userID})
	if err != nil {
		return "", domain.ErrTokenCreation
	}

	return token.V4Encrypt(p.key, nil), nil
}

func (p *PasetoToken) VerifyToken(token string) (*port.TokenPayload, error) {
	parsedToken, err := p.parser.ParseV4Local(p.key, token, nil)
	if err != nil {
		return nil, domain.ErrInvalidToken
	}

	payload := port.TokenPayload{}
	err = parsedToken.Get(payloadClaim, &payload)
	if err != nil {
		return nil, domain.ErrInvalidToken
	}
	return &payload, nil
}

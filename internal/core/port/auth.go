package port

// TokenPayload is what an issued token proves about its bearer.
type TokenPayload struct {
	UserID uint64 `json:"user_id"`
}

//go:generate mockgen -source=auth.go -destination=mock/auth.go -package=mock
type TokenService interface {
	CreateToken(userID uint64) (string, error)
	VerifyToken(token string) (*TokenPayload, error)
}

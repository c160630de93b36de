package token

import (
	"cabinet/pkg/platform/middleware/auth"
)

// Adapter bridges the token service to the bearer middleware contract.
type Adapter struct {
	svc *Service
}

func NewAdapter(svc *Service) *Adapter {
	return &Adapter{svc: svc}
}

func (a *Adapter) Validate(tokenString string) (*auth.Claims, error) {
	claims, err := a.svc.Validate(tokenString)
	if err != nil {
		return nil, err
	}
	return &auth.Claims{
		UserID: claims.UserID,
		Email:  claims.Email,
		Role:   claims.Role,
	}, nil
}

package repoargs

import (
	"github.com/fsdevblog/paydesk/internal/domain"
)

type CreateUser struct {
	Username string
	Password string
	Profile  domain.Profile
}

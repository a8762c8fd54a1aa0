package handler

import (
	"net/http"
	"strings"

	"devlavka/internal/app/store/entity"
	"devlavka/internal/app/store/service"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware проверяет bearer токен через сервис аутентификации.
// Пользователь перечитывается из БД на каждом запросе: деактивация
// учетной записи действует немедленно.
type AuthMiddleware struct {
	authService service.AuthServiceInterface
}

func NewAuthMiddleware(authService service.AuthServiceInterface) *AuthMiddleware {
	return &AuthMiddleware{
		authService: authService,
	}
}

func (m *AuthMiddleware) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			respondError(c, http.StatusUnauthorized, "Authorization header required")
			c.Abort()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			respondError(c, http.StatusUnauthorized, "Invalid authorization header format")
			c.Abort()
			return
		}

		user, err := m.authService.ValidateToken(c.Request.Context(), parts[1])
		if err != nil {
			respondError(c, http.StatusUnauthorized, "Invalid or expired token")
			c.Abort()
			return
		}

		c.Set("user", user)
		c.Set("user_id", user.ID)
		c.Set("username", user.Username)
		c.Set("role", user.Role)

		c.Next()
	}
}

// currentUser достает аутентифицированного пользователя из контекста запроса
func currentUser(c *gin.Context) (*entity.User, bool) {
	value, exists := c.Get("user")
	if !exists {
		return nil, false
	}
	user, ok := value.(*entity.User)
	return user, ok
}

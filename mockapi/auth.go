package mockapi

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/Jathol7/oz-baby-toys-store/models"
)

type RegisterInput struct {
	Name                 string `json:"name"`
	Email                string `json:"email"`
	Password             string `json:"password"`
	PasswordConfirmation string `json:"password_confirmation"`
}

type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func jwtSecret() []byte {
	if s := os.Getenv("JWT_SECRET"); s != "" {
		return []byte(s)
	}
	return []byte("oz-dev-secret")
}

// hashPassword is deliberately lightweight: this server only ever guards
// demo accounts on a developer machine.
func hashPassword(plain string) string {
	sum := sha256.Sum256([]byte(plain))
	return hex.EncodeToString(sum[:])
}

func issueToken(u models.User) (string, error) {
	claims := jwt.MapClaims{
		"user_id": float64(u.ID),
		"role":    string(u.Role),
		"exp":     time.Now().Add(24 * time.Hour).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(jwtSecret())
}

// POST /register
func Register(repo Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input RegisterInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		fieldErrs := map[string][]string{}
		if strings.TrimSpace(input.Name) == "" {
			fieldErrs["name"] = append(fieldErrs["name"], "The name field is required.")
		}
		if !strings.Contains(input.Email, "@") {
			fieldErrs["email"] = append(fieldErrs["email"], "The email must be a valid email address.")
		}
		if len(input.Password) < 6 {
			fieldErrs["password"] = append(fieldErrs["password"], "The password must be at least 6 characters.")
		}
		if input.Password != input.PasswordConfirmation {
			fieldErrs["password"] = append(fieldErrs["password"], "The password confirmation does not match.")
		}
		if len(fieldErrs) > 0 {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"message": "The given data was invalid.",
				"errors":  fieldErrs,
			})
			return
		}

		user := models.User{
			Name:     input.Name,
			Email:    input.Email,
			Role:     roleFor(input.Email),
			Password: hashPassword(input.Password),
		}
		if err := repo.CreateUser(&user); err != nil {
			if errors.Is(err, ErrDuplicateEmail) {
				c.JSON(http.StatusUnprocessableEntity, gin.H{
					"message": "The given data was invalid.",
					"errors":  gin.H{"email": []string{"The email has already been taken."}},
				})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create user"})
			return
		}

		token, err := issueToken(user)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Token generation failed"})
			return
		}

		// Same nested shape as the production backend.
		c.JSON(http.StatusCreated, gin.H{"data": gin.H{"user": user, "token": token}})
	}
}

// POST /login
func Login(repo Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input LoginInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		user, err := repo.GetUserByEmail(input.Email)
		if err != nil || user.Password != hashPassword(input.Password) {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid credentials"})
			return
		}

		token, err := issueToken(user)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Token generation failed"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"data": gin.H{"user": user, "token": token}})
	}
}

// POST /logout. Tokens are stateless here, so this only confirms the call
// was authenticated.
func Logout() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
	}
}

// GET /user
func Profile(repo Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetUint("user_id")
		user, err := repo.GetUser(userID)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unknown user"})
			return
		}
		c.JSON(http.StatusOK, user)
	}
}

// roleFor grants admin to addresses listed in ADMIN_EMAILS (comma
// separated); everyone else is a customer.
func roleFor(email string) models.UserRole {
	for _, admin := range strings.Split(os.Getenv("ADMIN_EMAILS"), ",") {
		if admin != "" && strings.EqualFold(strings.TrimSpace(admin), email) {
			return models.RoleAdmin
		}
	}
	return models.RoleCustomer
}

package resp

import (
	"errors"
	"net/http"
	"strings"
	"unicode"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

func NotFound(c *gin.Context, msg string) {
	c.JSON(http.StatusNotFound, gin.H{"message": msg})
}

func BadRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{"message": msg})
}

func Unauthorized(c *gin.Context, msg string) {
	c.JSON(http.StatusUnauthorized, gin.H{"message": msg})
}

func Forbidden(c *gin.Context, msg string) {
	c.JSON(http.StatusForbidden, gin.H{"message": msg})
}

// ServerError deliberately carries a generic message; the real cause is
// logged server-side and never leaked to the client.
func ServerError(c *gin.Context, msg string) {
	c.JSON(http.StatusInternalServerError, gin.H{"message": msg})
}

// ValidationFailed renders the 422 field→message-list shape.
func ValidationFailed(c *gin.Context, fields map[string][]string) {
	c.JSON(http.StatusUnprocessableEntity, gin.H{"errors": fields})
}

// BindError maps a gin binding failure onto the 422 contract. Non-validator
// errors (malformed JSON, wrong types) surface as a single body error.
func BindError(c *gin.Context, err error) {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		ValidationFailed(c, map[string][]string{"body": {"invalid request body"}})
		return
	}
	fields := make(map[string][]string, len(verrs))
	for _, fe := range verrs {
		name := toSnake(fe.Field())
		fields[name] = append(fields[name], fieldMessage(name, fe))
	}
	ValidationFailed(c, fields)
}

func fieldMessage(name string, fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "The " + name + " field is required."
	case "email":
		return "The " + name + " must be a valid email address."
	case "oneof":
		return "The selected " + name + " is invalid."
	case "min":
		return "The " + name + " must be at least " + fe.Param() + "."
	case "max":
		return "The " + name + " may not be greater than " + fe.Param() + "."
	case "gte":
		return "The " + name + " must be at least " + fe.Param() + "."
	default:
		return "The " + name + " is invalid."
	}
}

func toSnake(s string) string {
	var b strings.Builder
	for i, r := range s {
		if unicode.IsUpper(r) {
			if i > 0 {
				b.WriteByte('_')
			}
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
